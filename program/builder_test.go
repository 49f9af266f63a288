package program

import (
	"testing"

	"github.com/mr0re1/bla/memory"
)

func mustMap(t *testing.T, decls ...memory.Decl) *memory.Map {
	t.Helper()
	mm, err := memory.NewMap(decls...)
	if err != nil {
		t.Fatalf("memory.NewMap: %v", err)
	}
	return mm
}

func runToHalt(t *testing.T, p *Program, mem memory.Memory) memory.Memory {
	t.Helper()
	pos := 0
	for i := 0; i < 10000 && pos < p.Ops(); i++ {
		npos, nmem, _, err := p.Step(pos, mem)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		pos, mem = npos, nmem
	}
	if pos < p.Ops() {
		t.Fatal("program did not halt within the step budget")
	}
	return mem
}

func TestBuilderIfOnlyRunsTrueBranch(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "x", Type: memory.NewIntRangeType(0, 10)})
	b := NewBuilder(mm, "p")
	b.If(b.Bool(true), "if True:", func(b *Builder) {
		b.Mov("x", b.Int(5), "x = 5")
	})
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	mem := runToHalt(t, p, mm.Init())
	if got := mem[0].I; got != 5 {
		t.Errorf("x = %d, want 5", got)
	}
}

func TestBuilderIfElseFalseBranch(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "x", Type: memory.NewIntRangeType(0, 10)})
	b := NewBuilder(mm, "p")
	b.IfElse(b.Bool(false), "if False:",
		func(b *Builder) { b.Mov("x", b.Int(1), "x = 1") },
		func(b *Builder) { b.Mov("x", b.Int(2), "x = 2") },
	)
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	mem := runToHalt(t, p, mm.Init())
	if got := mem[0].I; got != 2 {
		t.Errorf("x = %d, want 2", got)
	}
}

func TestBuilderWhileCountsDown(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "n", Type: memory.NewIntRangeType(0, 10)})
	b := NewBuilder(mm, "p")
	b.Mov("n", b.Int(3), "n = 3")
	b.While(Not{X: Eq{A: b.Var("n"), B: b.Int(0)}}, "while n != 0:", func(b *Builder) {
		b.Mov("n", Sub(b.Var("n"), b.Int(1)), "n = n - 1")
	})
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	mem := runToHalt(t, p, mm.Init())
	if got := mem[0].I; got != 0 {
		t.Errorf("n = %d, want 0", got)
	}
}

func TestBuilderBreakExitsLoop(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "n", Type: memory.NewIntRangeType(0, 10)})
	b := NewBuilder(mm, "p")
	b.While(b.Bool(true), "while True:", func(b *Builder) {
		b.Mov("n", b.Int(1), "n = 1")
		b.Break()
		b.Mov("n", b.Int(99), "n = 99") // unreachable
	})
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	mem := runToHalt(t, p, mm.Init())
	if got := mem[0].I; got != 1 {
		t.Errorf("n = %d, want 1", got)
	}
}

func TestBuilderBreakOutsideLoopFails(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "n", Type: memory.NewIntRangeType(0, 10)})
	b := NewBuilder(mm, "p")
	b.Break()
	if _, err := b.Build(); err == nil {
		t.Fatal("expected an error for break outside a loop")
	}
}

func TestBuilderUnknownVariableFails(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "x", Type: memory.NewBoolType(false)})
	b := NewBuilder(mm, "p")
	b.Mov("y", b.Bool(true), "y = True")
	if _, err := b.Build(); err == nil {
		t.Fatal("expected an error for an unknown variable")
	}
}

func TestBuilderAtomicRegion(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "x", Type: memory.NewBoolType(false)})
	b := NewBuilder(mm, "p")
	b.Atomic(func(b *Builder) {
		b.Mov("x", b.Bool(true), "x = True")
	})
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !p.AtomicMask[0] {
		t.Error("op inside Atomic() should be marked atomic")
	}
}
