// Package trace reconstructs a minimal counter-example witness from an
// explore.Context's parent map: the chain of states from the initial state
// to the state where an assertion or op failed.
package trace

import (
	"fmt"

	"github.com/mr0re1/bla/explore"
)

// Frame is one step of a counter-example: the state at that step, and
// which program steps next from it (the program whose position differs
// in the following frame's state). On the last frame ProgramIndex is the
// failing program taken from the explorer's Failure, which is -1 when the
// failure came from an assertion not tied to a specific program.
type Frame struct {
	State        explore.GlobalState
	ProgramIndex int
}

// Chain is a chronologically ordered counter-example: Chain[0] is the
// initial state, Chain[len-1] is the state where the search stopped.
type Chain []Frame

// MalformedTraceError indicates a bug in the explorer, not a user-facing
// condition: consecutive states in the parent chain must differ in
// exactly one position component, because every transition mutates
// exactly one program's counter.
type MalformedTraceError struct {
	Msg string
}

func (e *MalformedTraceError) Error() string { return "malformed trace: " + e.Msg }

// Reconstruct walks ctx.Parent from ctx.Failure.State back to the initial
// state and returns the chain in chronological order. It returns a nil
// Chain, nil error if ctx has no failure (nothing to reconstruct).
func Reconstruct(ctx *explore.Context) (Chain, error) {
	if ctx.Failure == nil {
		return nil, nil
	}

	chain := Chain{{State: ctx.Failure.State, ProgramIndex: ctx.Failure.ProgramIndex}}

	for {
		cur := chain[len(chain)-1].State
		parent, ok := ctx.Parent[cur.Key()]
		if !ok {
			return nil, &MalformedTraceError{Msg: fmt.Sprintf("state %q not found in parent map", cur.Key())}
		}
		if parent == nil {
			break // reached the initial state
		}

		progIdx := -1
		diffs := 0
		for p := range cur.Positions {
			if cur.Positions[p] != parent.Positions[p] {
				progIdx = p
				diffs++
			}
		}
		if diffs != 1 {
			return nil, &MalformedTraceError{Msg: fmt.Sprintf("expected exactly one differing position, got %d", diffs)}
		}

		chain = append(chain, Frame{State: *parent, ProgramIndex: progIdx})
	}

	// chain was built backwards (failure -> initial); reverse in place.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}
