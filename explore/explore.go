package explore

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mr0re1/bla/assertion"
	"github.com/mr0re1/bla/memory"
	"github.com/mr0re1/bla/program"
)

// Failure is captured at the moment an op or assertion fails: the state it
// failed in, which program's step (or -1, if the failure came from an
// assertion not tied to a single op) triggered it, and the error itself.
type Failure struct {
	State        GlobalState
	ProgramIndex int
	Err          error
}

// Metrics are cheap counters collected during a search, exposed alongside
// Context so a caller can log or assert on search size without instrumenting
// the explorer itself.
type Metrics struct {
	StatesVisited int
	MaxFrontier   int
	CyclesClosed  int
}

// Context is the explorer's output: the programs and memory map it searched
// over, the parent map backing counter-example reconstruction, and the
// failure (if any) that stopped the search.
type Context struct {
	Programs []*program.Program
	Map      *memory.Map

	// Parent maps a state's Key() to its parent GlobalState. The initial
	// state maps to nil. A key present in Parent but not yet popped from
	// the stack is still "visited" for cycle-detection purposes — DFS
	// discovery order is what determines this map, so re-running on the
	// same input reproduces it exactly.
	Parent map[string]*GlobalState
	// Visited recovers the full GlobalState for a given key — Parent alone
	// only gives the parent, not the child the key belongs to.
	Visited map[string]GlobalState

	Failure *Failure
	Metrics Metrics
}

type runConfig struct {
	logger zerolog.Logger
}

// Option configures a Run call.
type Option func(*runConfig)

// WithLogger attaches a structured logger that emits one debug event per
// DFS pop and one info event on completion. The zero Option uses
// zerolog.Nop(), so a caller that never wires a logger pays nothing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *runConfig) { c.logger = l }
}

type frame struct {
	state   GlobalState
	allowed []int // nil means "all programs"
}

// Run performs an exhaustive depth-first search over every reachable
// interleaving: starting from the all-zero positions and the memory map's
// initial value, it repeatedly pops a frontier state, checks every
// assertion against it, then steps each allowed program (all of them,
// unless mid-atomic-region) to discover successor states. It returns as
// soon as any assertion or op fails, or once the (finite) state space is
// exhausted.
//
// Run returns a non-nil error only for conditions the search cannot
// recover from: ctx cancellation (a partially-explored search is never a
// valid "proved" verdict) or a ConfigurationError discovered lazily while
// stepping (an out-of-domain mov result). Assertion and op failures are
// never returned as errors — they populate Context.Failure instead.
func Run(ctx context.Context, programs []*program.Program, mm *memory.Map, asserts []assertion.Assertion, opts ...Option) (*Context, error) {
	cfg := runConfig{logger: zerolog.Nop()}
	for _, o := range opts {
		o(&cfg)
	}

	pc := &Context{
		Programs: programs,
		Map:      mm,
		Parent:   map[string]*GlobalState{},
		Visited:  map[string]GlobalState{},
	}

	init := GlobalState{Positions: make([]int, len(programs)), Mem: mm.Init()}
	initKey := init.Key()
	pc.Visited[initKey] = init
	pc.Parent[initKey] = nil
	pc.Metrics.StatesVisited = 1

	stack := []frame{{state: init, allowed: nil}}

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		state := f.state
		sv := newStateView(state, programs, mm)

		cfg.logger.Debug().
			Int("frontier", len(stack)).
			Int("visited", pc.Metrics.StatesVisited).
			Msg("explore: pop state")

		for _, a := range asserts {
			if err := a.Check(sv, false); err != nil {
				pc.Failure = &Failure{State: state, ProgramIndex: -1, Err: err}
				cfg.logger.Info().Bool("proved", false).Int("visited", pc.Metrics.StatesVisited).Msg("explore: done")
				return pc, nil
			}
		}

		candidates := f.allowed
		if candidates == nil {
			candidates = make([]int, len(programs))
			for i := range candidates {
				candidates[i] = i
			}
		}

		for _, i := range candidates {
			prog := programs[i]
			pos := state.Positions[i]
			if pos >= prog.Ops() {
				continue // halted
			}

			npos, nmem, atomicCont, err := prog.Step(pos, state.Mem)
			if err != nil {
				var failed *assertion.Failed
				if errors.As(err, &failed) {
					pc.Failure = &Failure{State: state, ProgramIndex: i, Err: err}
					cfg.logger.Info().Bool("proved", false).Int("visited", pc.Metrics.StatesVisited).Msg("explore: done")
					return pc, nil
				}
				return nil, err
			}

			nextPositions := make([]int, len(state.Positions))
			copy(nextPositions, state.Positions)
			nextPositions[i] = npos
			next := GlobalState{Positions: nextPositions, Mem: nmem}
			nkey := next.Key()

			if _, seen := pc.Visited[nkey]; seen {
				pc.Metrics.CyclesClosed++
				for _, a := range asserts {
					if err := a.Check(sv, true); err != nil {
						pc.Failure = &Failure{State: state, ProgramIndex: i, Err: err}
						cfg.logger.Info().Bool("proved", false).Int("visited", pc.Metrics.StatesVisited).Msg("explore: done")
						return pc, nil
					}
				}
				continue
			}

			parentState := state
			pc.Visited[nkey] = next
			pc.Parent[nkey] = &parentState
			pc.Metrics.StatesVisited++

			var allowed []int
			if atomicCont {
				allowed = []int{i}
			}
			stack = append(stack, frame{state: next, allowed: allowed})
			if len(stack) > pc.Metrics.MaxFrontier {
				pc.Metrics.MaxFrontier = len(stack)
			}
		}
	}

	cfg.logger.Info().Bool("proved", true).Int("visited", pc.Metrics.StatesVisited).Msg("explore: done")
	return pc, nil
}
