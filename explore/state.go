// Package explore implements the state-space explorer: a deterministic
// depth-first search over the global-state graph formed by every program's
// possible interleavings, with atomic-region confinement, cycle detection,
// and per-state assertion evaluation. It is the model-checking engine at
// the heart of this module.
package explore

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/mr0re1/bla/assertion"
	"github.com/mr0re1/bla/memory"
	"github.com/mr0re1/bla/program"
)

// GlobalState is the pair (positions, memory): one op-index per program,
// plus the shared memory snapshot. positions[i] == programs[i].Ops()
// denotes that program i has halted. GlobalState is treated as immutable;
// every transition produces a new one.
type GlobalState struct {
	Positions []int
	Mem       memory.Memory
}

// Key returns the canonical encoding used to key the explorer's visited set
// and parent map: four bytes per position (big-endian), followed by the
// memory's own fixed-width encoding (memory.Memory.Encode), digested down
// to a fixed-size blake2b-256 sum. Equal states produce identical keys and
// vice versa, which lets the visited set be a plain Go map keyed on a
// comparable/hashable string instead of a tree keyed by a deep-equal
// struct. Hashing first means the map's key size no longer grows with the
// program count or variable count, which matters once a proof's reachable
// set runs into the millions of states.
func (s GlobalState) Key() string {
	buf := make([]byte, 4*len(s.Positions))
	for i, p := range s.Positions {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(int32(p)))
	}
	buf = append(buf, s.Mem.Encode()...)
	sum := blake2b.Sum256(buf)
	return string(sum[:])
}

// stateView implements assertion.StateView over a GlobalState plus the
// program/memory-map context needed to resolve names.
type stateView struct {
	state    GlobalState
	programs []*program.Program
	mm       *memory.Map
}

var _ assertion.StateView = stateView{}

func newStateView(state GlobalState, programs []*program.Program, mm *memory.Map) stateView {
	return stateView{state: state, programs: programs, mm: mm}
}

func (v stateView) Pos(progName string) (int, error) {
	for i, p := range v.programs {
		if p.Name == progName {
			return v.state.Positions[i], nil
		}
	}
	return 0, &memory.ConfigurationError{Msg: "program " + progName + " not found"}
}

func (v stateView) Val(ref memory.Ref) (memory.Value, error) {
	addr, err := v.mm.Addr(ref)
	if err != nil {
		return memory.Value{}, err
	}
	return v.state.Mem[addr], nil
}

func (v stateView) Memory() memory.Memory { return v.state.Mem }
