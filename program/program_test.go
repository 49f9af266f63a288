package program

import (
	"errors"
	"strings"
	"testing"

	"github.com/mr0re1/bla/assertion"
	"github.com/mr0re1/bla/memory"
)

func TestBuildRejectsUnknownLabel(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "x", Type: memory.NewBoolType(false)})
	_, err := Build(mm, "p", []Stmt{Goto("nowhere")})
	if err == nil {
		t.Fatal("expected an error for an unresolved label")
	}
}

func TestBuildRejectsNestedAtomic(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "x", Type: memory.NewBoolType(false)})
	_, err := Build(mm, "p", []Stmt{AtomicEnter(), AtomicEnter(), AtomicExit(), AtomicExit()})
	if err == nil {
		t.Fatal("expected an error for nested atomic regions")
	}
}

func TestBuildRejectsUnbalancedAtomic(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "x", Type: memory.NewBoolType(false)})
	_, err := Build(mm, "p", []Stmt{AtomicEnter()})
	if err == nil {
		t.Fatal("expected an error for an atomic region never closed")
	}
}

func TestStepAssertFailure(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "x", Type: memory.NewBoolType(false)})
	p, err := Build(mm, "p", []Stmt{AssertStmt(Const{V: memory.Bool(false)}, "nope").WithText("assert False")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, _, _, err = p.Step(0, mm.Init())
	var failed *assertion.Failed
	if !errors.As(err, &failed) {
		t.Fatalf("err = %v, want *assertion.Failed", err)
	}
	if failed.Msg != "nope" {
		t.Errorf("Msg = %q, want %q", failed.Msg, "nope")
	}
}

func TestStepMovOutOfDomainIsConfigurationError(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "x", Type: memory.NewIntRangeType(0, 2)})
	p, err := Build(mm, "p", []Stmt{Mov("x", Const{V: memory.Int(99)}).WithText("x = 99")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, _, _, err = p.Step(0, mm.Init())
	if _, ok := err.(*ConfigurationError); !ok {
		t.Fatalf("err = %v (%T), want *ConfigurationError", err, err)
	}
}

func TestAtomicContinueConfinesToSameProgram(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "x", Type: memory.NewBoolType(false)})
	p, err := Build(mm, "p", []Stmt{
		AtomicEnter(),
		Mov("x", Const{V: memory.Bool(true)}).WithText("x = True"),
		Mov("x", Const{V: memory.Bool(false)}).WithText("x = False"),
		AtomicExit(),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, _, cont, err := p.Step(0, mm.Init())
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !cont {
		t.Error("stepping the first op of a two-op atomic region should report atomicContinue = true")
	}
}

func TestRenderMarksCurrentOpAndHalt(t *testing.T) {
	mm := mustMap(t, memory.Decl{Ref: "x", Type: memory.NewBoolType(false)})
	p, err := Build(mm, "p", []Stmt{Mov("x", Const{V: memory.Bool(true)}).WithText("x = True")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out := p.Render(0)
	if !strings.Contains(out, "-> x = True") {
		t.Errorf("Render(0) = %q, want arrow on the op", out)
	}
	out = p.Render(1)
	if !strings.Contains(out, "<HALTED>") {
		t.Errorf("Render(1) = %q, want <HALTED>", out)
	}
}
