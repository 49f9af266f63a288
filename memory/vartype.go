package memory

import "fmt"

// VarType describes the finite domain and initial value of one memory
// slot: a runtime-validated type declaration for a single variable.
type VarType interface {
	// Init returns the slot's initial value.
	Init() Value
	// Validate reports an error if val is outside this type's domain.
	Validate(val Value) error
	// Domain enumerates every value this type admits, in canonical order.
	Domain() []Value
}

// BoolType is the domain {false, true}, with a configurable initial value.
type BoolType struct {
	init bool
}

// NewBoolType builds a BoolType with the given initial value.
func NewBoolType(init bool) BoolType { return BoolType{init: init} }

func (t BoolType) Init() Value { return Bool(t.init) }

func (t BoolType) Validate(val Value) error {
	if val.Kind != KindBool {
		return fmt.Errorf("expected bool, got %s", val.Kind)
	}
	return nil
}

func (t BoolType) Domain() []Value { return []Value{Bool(false), Bool(true)} }

// IntRangeType is the inclusive integer domain [Lo, Hi], initial value Lo.
type IntRangeType struct {
	Lo, Hi int
}

// NewIntRangeType builds an IntRangeType. Panics if hi < lo: an empty range
// is a builder bug, not a runtime condition, so it fails loudly at
// construction rather than returning a ConfigurationError.
func NewIntRangeType(lo, hi int) IntRangeType {
	if hi < lo {
		panic(fmt.Sprintf("memory: empty int range [%d, %d]", lo, hi))
	}
	return IntRangeType{Lo: lo, Hi: hi}
}

func (t IntRangeType) Init() Value { return Int(t.Lo) }

func (t IntRangeType) Validate(val Value) error {
	if val.Kind != KindInt {
		return fmt.Errorf("expected int, got %s", val.Kind)
	}
	if val.I < t.Lo || val.I > t.Hi {
		return fmt.Errorf("value %d out of range [%d, %d]", val.I, t.Lo, t.Hi)
	}
	return nil
}

func (t IntRangeType) Domain() []Value {
	out := make([]Value, 0, t.Hi-t.Lo+1)
	for i := t.Lo; i <= t.Hi; i++ {
		out = append(out, Int(i))
	}
	return out
}

// IntSetType is an explicit, ordered integer domain; its initial value is
// the first element of the declared sequence.
type IntSetType struct {
	values []int
}

// NewIntSetType builds an IntSetType from an ordered, non-empty sequence of
// integers. The first element is the initial value.
func NewIntSetType(values ...int) IntSetType {
	if len(values) == 0 {
		panic("memory: IntSetType requires at least one value")
	}
	cp := make([]int, len(values))
	copy(cp, values)
	return IntSetType{values: cp}
}

func (t IntSetType) Init() Value { return Int(t.values[0]) }

func (t IntSetType) Validate(val Value) error {
	if val.Kind != KindInt {
		return fmt.Errorf("expected int, got %s", val.Kind)
	}
	for _, v := range t.values {
		if v == val.I {
			return nil
		}
	}
	return fmt.Errorf("value %d not in domain %v", val.I, t.values)
}

func (t IntSetType) Domain() []Value {
	out := make([]Value, len(t.values))
	for i, v := range t.values {
		out[i] = Int(v)
	}
	return out
}
