package program

import (
	"fmt"

	"github.com/mr0re1/bla/memory"
)

// Expr is the expression IR every Op evaluates against the current memory:
// an explicit, pure tree the explorer can evaluate without embedding a
// general-purpose interpreter.
type Expr interface {
	Eval(mem memory.Memory) (memory.Value, error)
}

// Const is a literal value, independent of memory.
type Const struct{ V memory.Value }

func (e Const) Eval(memory.Memory) (memory.Value, error) { return e.V, nil }

// Slot reads the value at a fixed slot address.
type Slot struct{ Addr int }

func (e Slot) Eval(mem memory.Memory) (memory.Value, error) {
	if e.Addr < 0 || e.Addr >= len(mem) {
		panicInternal("slot address %d out of range [0, %d)", e.Addr, len(mem))
	}
	return mem[e.Addr], nil
}

// Eq reports whether A and B evaluate to the same value.
type Eq struct{ A, B Expr }

func (e Eq) Eval(mem memory.Memory) (memory.Value, error) {
	a, err := e.A.Eval(mem)
	if err != nil {
		return memory.Value{}, err
	}
	b, err := e.B.Eval(mem)
	if err != nil {
		return memory.Value{}, err
	}
	return memory.Bool(a.Equal(b)), nil
}

// Le reports whether A's integer value is less than or equal to B's.
type Le struct{ A, B Expr }

func (e Le) Eval(mem memory.Memory) (memory.Value, error) {
	a, err := evalInt(e.A, mem, "Le")
	if err != nil {
		return memory.Value{}, err
	}
	b, err := evalInt(e.B, mem, "Le")
	if err != nil {
		return memory.Value{}, err
	}
	return memory.Bool(a <= b), nil
}

// Not negates a boolean-valued expression.
type Not struct{ X Expr }

func (e Not) Eval(mem memory.Memory) (memory.Value, error) {
	v, err := e.X.Eval(mem)
	if err != nil {
		return memory.Value{}, err
	}
	if v.Kind != memory.KindBool {
		return memory.Value{}, fmt.Errorf("Not: operand is %s, not bool", v.Kind)
	}
	return memory.Bool(!v.B), nil
}

// And is the boolean conjunction of A and B, evaluating both (no
// short-circuit: neither operand can have a side effect, so there is
// nothing to save by skipping B).
type And struct{ A, B Expr }

func (e And) Eval(mem memory.Memory) (memory.Value, error) {
	a, err := evalBool(e.A, mem, "And")
	if err != nil {
		return memory.Value{}, err
	}
	b, err := evalBool(e.B, mem, "And")
	if err != nil {
		return memory.Value{}, err
	}
	return memory.Bool(a && b), nil
}

// Or is the boolean disjunction of A and B.
type Or struct{ A, B Expr }

func (e Or) Eval(mem memory.Memory) (memory.Value, error) {
	a, err := evalBool(e.A, mem, "Or")
	if err != nil {
		return memory.Value{}, err
	}
	b, err := evalBool(e.B, mem, "Or")
	if err != nil {
		return memory.Value{}, err
	}
	return memory.Bool(a || b), nil
}

func evalBool(e Expr, mem memory.Memory, op string) (bool, error) {
	v, err := e.Eval(mem)
	if err != nil {
		return false, err
	}
	if v.Kind != memory.KindBool {
		return false, fmt.Errorf("%s: operand is %s, not bool", op, v.Kind)
	}
	return v.B, nil
}

// arith is the shared implementation of Add/Sub/Mul: integer-domain
// arithmetic. The result is not validated here — mov is the only place
// that knows the destination's declared domain, so out-of-domain results
// become a ConfigurationError there, not here.
type arith struct {
	A, B Expr
	op   byte
	name string
}

func (e arith) Eval(mem memory.Memory) (memory.Value, error) {
	a, err := evalInt(e.A, mem, e.name)
	if err != nil {
		return memory.Value{}, err
	}
	b, err := evalInt(e.B, mem, e.name)
	if err != nil {
		return memory.Value{}, err
	}
	switch e.op {
	case '+':
		return memory.Int(a + b), nil
	case '-':
		return memory.Int(a - b), nil
	case '*':
		return memory.Int(a * b), nil
	default:
		panicInternal("unknown arithmetic op %q", e.op)
		return memory.Value{}, nil
	}
}

func evalInt(e Expr, mem memory.Memory, op string) (int, error) {
	v, err := e.Eval(mem)
	if err != nil {
		return 0, err
	}
	if v.Kind != memory.KindInt {
		return 0, fmt.Errorf("%s: operand is %s, not int", op, v.Kind)
	}
	return v.I, nil
}

// Add builds an integer addition expression.
func Add(a, b Expr) Expr { return arith{A: a, B: b, op: '+', name: "Add"} }

// Sub builds an integer subtraction expression.
func Sub(a, b Expr) Expr { return arith{A: a, B: b, op: '-', name: "Sub"} }

// Mul builds an integer multiplication expression.
func Mul(a, b Expr) Expr { return arith{A: a, B: b, op: '*', name: "Mul"} }
