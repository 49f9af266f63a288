// Package bla is the public entry point of the model checker: given a set
// of Programs sharing a domain of typed variables and a set of assertions,
// Proof enumerates every reachable interleaving and reports either success
// or, via an attached Renderer, a concrete counter-example.
package bla

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/mr0re1/bla/assertion"
	"github.com/mr0re1/bla/explore"
	"github.com/mr0re1/bla/memory"
	"github.com/mr0re1/bla/program"
	"github.com/mr0re1/bla/render"
	"github.com/mr0re1/bla/trace"
)

// VarDecl is one entry of a DomainSpec: a variable name bound to a type
// declaration. Use the Bool/BoolInit/IntRange/IntSet/Raw constructors
// rather than building one by hand.
type VarDecl struct {
	Name string
	Type memory.VarType
}

// DomainSpec is an ordered sequence of named type declarations shared by
// every program under check. Order matters — it fixes slot indices, which
// must be deterministic across runs, so DomainSpec is a slice, not a Go
// map.
type DomainSpec []VarDecl

// Bool declares a boolean variable initialized to false (the grammar's
// "bool" / "False" case).
func Bool(name string) VarDecl {
	return VarDecl{Name: name, Type: memory.NewBoolType(false)}
}

// BoolInit declares a boolean variable with an explicit initial value (the
// grammar's "True" case is BoolInit(name, true)).
func BoolInit(name string, init bool) VarDecl {
	return VarDecl{Name: name, Type: memory.NewBoolType(init)}
}

// IntRange declares an integer variable over the inclusive range [lo, hi],
// initialized to lo (the grammar's "a..b" case).
func IntRange(name string, lo, hi int) VarDecl {
	return VarDecl{Name: name, Type: memory.NewIntRangeType(lo, hi)}
}

// IntSet declares an integer variable over an explicit ordered domain,
// initialized to vals[0] (the grammar's "[v0, v1, ...]" case).
func IntSet(name string, vals ...int) VarDecl {
	return VarDecl{Name: name, Type: memory.NewIntSetType(vals...)}
}

// Raw declares a variable using a pre-built memory.VarType, used as-is.
func Raw(name string, vt memory.VarType) VarDecl {
	return VarDecl{Name: name, Type: vt}
}

// BuildMap compiles a DomainSpec into a memory.Map. Exported so callers
// that need to hand-assemble Programs via program.Builder (every scenario
// under examples/ does) can build the map before building the programs.
func (d DomainSpec) BuildMap() (*memory.Map, error) {
	decls := make([]memory.Decl, len(d))
	for i, v := range d {
		decls[i] = memory.Decl{Ref: memory.Ref(v.Name), Type: v.Type}
	}
	return memory.NewMap(decls...)
}

type proofConfig struct {
	assertions []assertion.Assertion
	renderer   render.Renderer
	out        io.Writer
	ctx        context.Context
	logger     zerolog.Logger
}

// ProofOption configures a Proof call.
type ProofOption func(*proofConfig)

// WithAssertions adds assertions to check at every reachable state, beyond
// whatever Assert ops the programs themselves embed.
func WithAssertions(a ...assertion.Assertion) ProofOption {
	return func(c *proofConfig) { c.assertions = append(c.assertions, a...) }
}

// WithRenderer attaches a Renderer that is invoked with the proof's context
// whenever the search fails, writing to w. If no renderer is given, nothing
// is rendered; callers that want the reference CLI behavior should pass
// render.Short{} explicitly (see cmd/blaproof).
func WithRenderer(r render.Renderer, w io.Writer) ProofOption {
	return func(c *proofConfig) { c.renderer = r; c.out = w }
}

// WithContext attaches a cancellation/timeout context to the search. A
// canceled context aborts the DFS between pops; Proof then returns a
// non-nil error rather than a (possibly unsound) verdict.
func WithContext(ctx context.Context) ProofOption {
	return func(c *proofConfig) { c.ctx = ctx }
}

// WithLogger attaches a structured logger to the underlying explore.Run
// call.
func WithLogger(l zerolog.Logger) ProofOption {
	return func(c *proofConfig) { c.logger = l }
}

// Proof enumerates every reachable interleaving of programs over the given
// domain. It returns the boolean verdict (true iff no assertion failed
// anywhere in the reachable state space) and the explore.Context backing
// it, for callers that want to inspect the search (e.g. Metrics) beyond
// what a Renderer prints.
func Proof(programs []*program.Program, domain DomainSpec, opts ...ProofOption) (bool, *explore.Context, error) {
	cfg := proofConfig{ctx: context.Background(), logger: zerolog.Nop()}
	for _, o := range opts {
		o(&cfg)
	}

	mm, err := domain.BuildMap()
	if err != nil {
		return false, nil, err
	}

	ctx, err := explore.Run(cfg.ctx, programs, mm, cfg.assertions, explore.WithLogger(cfg.logger))
	if err != nil {
		return false, nil, err
	}

	if ctx.Failure != nil && cfg.renderer != nil {
		chain, tbErr := trace.Reconstruct(ctx)
		if tbErr != nil {
			return false, ctx, tbErr
		}
		if err := cfg.renderer.Render(cfg.out, chain, ctx); err != nil {
			return false, ctx, err
		}
	}

	return ctx.Failure == nil, ctx, nil
}
