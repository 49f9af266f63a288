// Package assertion defines the predicates an explorer evaluates against
// every reachable state: positional asserts, the liveness-style "no
// infinite cycle" assert, and an escape hatch for user-defined checks. All
// three share the same Check contract so the explorer never needs to know
// which kind it is holding.
package assertion

import (
	"fmt"

	"github.com/mr0re1/bla/memory"
)

// StateView is the read-only projection of a global state an Assertion is
// allowed to inspect: a program's current op index by name, a variable's
// current value, and the raw memory (for predicates that want to look at
// several variables at once).
type StateView interface {
	// Pos returns the current op index of the named program.
	Pos(progName string) (int, error)
	// Val returns the current value of ref.
	Val(ref memory.Ref) (memory.Value, error)
	// Memory returns the full memory snapshot this view projects.
	Memory() memory.Memory
}

// Predicate tests a memory snapshot: a plain function over already-validated
// values, not an error-returning call, since a Predicate only ever runs
// against memory the explorer has already validated.
type Predicate func(memory.Memory) bool

// Assertion is a predicate over global state, optionally aware that the
// state just closed a cycle in the explorer's search (cyclic=true). Failing
// assertions report a descriptive error; they do not panic.
type Assertion interface {
	Check(sv StateView, cyclic bool) error
}

// Failed is the error an Assertion.Check returns to fail a proof. The
// explorer converts it into an explore.Failure; it never propagates further.
type Failed struct {
	Msg string
}

func (e *Failed) Error() string { return e.Msg }

// PositionalAssert fires only when the named program's current op index
// equals Pos; if Pred then evaluates false against the current memory, the
// assertion fails with "<program>:<pos>: <msg>". It ignores cyclic.
type PositionalAssert struct {
	Pred        Predicate
	ProgramName string
	Pos         int
	Msg         string
}

func (a *PositionalAssert) Check(sv StateView, cyclic bool) error {
	pos, err := sv.Pos(a.ProgramName)
	if err != nil {
		return err
	}
	if pos != a.Pos {
		return nil
	}
	if !a.Pred(sv.Memory()) {
		return &Failed{Msg: fmt.Sprintf("%s:%d: %s", a.ProgramName, a.Pos, a.Msg)}
	}
	return nil
}

// NeverCyclesAssert is the sole liveness hook (a.k.a. HALTS_ASSERT): it
// fails iff invoked with cyclic=true, i.e. the explorer just stepped to a
// successor that is already in its visited set.
type NeverCyclesAssert struct{}

func (NeverCyclesAssert) Check(sv StateView, cyclic bool) error {
	if cyclic {
		return &Failed{Msg: "There is a cycle in the program"}
	}
	return nil
}

// Halts is the shared NeverCyclesAssert instance, exported so callers don't
// need to allocate their own when all they want is the liveness check.
var Halts Assertion = NeverCyclesAssert{}

// Func adapts a plain function to the Assertion interface, an escape hatch
// for checks that don't fit the two built-in kinds.
type Func func(sv StateView, cyclic bool) error

func (f Func) Check(sv StateView, cyclic bool) error { return f(sv, cyclic) }
