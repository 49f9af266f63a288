// Package memory implements the slot-indexed, finite-domain memory model
// shared by every program under check: a fixed-length, immutable vector of
// Values addressed by slot index, plus the name-to-slot binding (Map) that
// validates and initializes it.
package memory

import "fmt"

// Kind discriminates the two value shapes a Value can hold.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is one cell of memory: either a boolean or an integer drawn from a
// declared finite domain. It is a plain value type (comparable, copyable) so
// that Memory slices and the canonical state encoding below never need to
// reach for interface{}.
type Value struct {
	Kind Kind
	B    bool
	I    int
}

// Bool builds a boolean Value.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// Int builds an integer Value.
func Int(i int) Value { return Value{Kind: KindInt, I: i} }

// Equal reports whether v and o denote the same value.
func (v Value) Equal(o Value) bool {
	return v.Kind == o.Kind && v.B == o.B && v.I == o.I
}

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return fmt.Sprintf("%t", v.B)
	case KindInt:
		return fmt.Sprintf("%d", v.I)
	default:
		return "<invalid value>"
	}
}

// encodedSize is the fixed width of a Value in the canonical state
// encoding: one tag byte plus eight payload bytes, wide enough for any int
// on this platform. A fixed-width byte encoding lets the explorer's visited
// set use a plain Go map[string]... instead of a tree keyed by a
// deep-equal struct.
const encodedSize = 9

func (v Value) encodeInto(buf []byte) {
	switch v.Kind {
	case KindBool:
		buf[0] = 0
		if v.B {
			buf[1] = 1
		} else {
			buf[1] = 0
		}
	case KindInt:
		buf[0] = 1
		u := uint64(v.I)
		for i := 0; i < 8; i++ {
			buf[1+i] = byte(u >> (8 * i))
		}
	}
}
