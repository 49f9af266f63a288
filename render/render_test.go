package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mr0re1/bla/explore"
	"github.com/mr0re1/bla/memory"
	"github.com/mr0re1/bla/program"
	"github.com/mr0re1/bla/trace"
)

func runFailingProgram(t *testing.T) (*explore.Context, trace.Chain) {
	t.Helper()
	mm, err := memory.NewMap(memory.Decl{Ref: "x", Type: memory.NewBoolType(false)})
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	p, err := program.Build(mm, "p", []program.Stmt{
		program.Mov("x", program.Const{V: memory.Bool(true)}).WithText("x = True"),
		program.AssertStmt(program.Const{V: memory.Bool(false)}, "boom").WithText("assert False"),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ctx, err := explore.Run(context.Background(), []*program.Program{p}, mm, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	chain, err := trace.Reconstruct(ctx)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	return ctx, chain
}

func TestLongRenderIncludesFailureMessage(t *testing.T) {
	ctx, chain := runFailingProgram(t)
	var buf bytes.Buffer
	if err := (Long{}).Render(&buf, chain, ctx); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("output missing failure message: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "x=true") {
		t.Errorf("output missing memory dump: %q", buf.String())
	}
}

func TestShortRenderIncludesFailureMessage(t *testing.T) {
	ctx, chain := runFailingProgram(t)
	var buf bytes.Buffer
	if err := (Short{}).Render(&buf, chain, ctx); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "FAIL: boom") {
		t.Errorf("output missing failure line: %q", buf.String())
	}
}

func TestRenderersReportOKWithNoFailure(t *testing.T) {
	var long, short bytes.Buffer
	if err := (Long{}).Render(&long, nil, nil); err != nil {
		t.Fatalf("Long.Render: %v", err)
	}
	if err := (Short{}).Render(&short, nil, nil); err != nil {
		t.Fatalf("Short.Render: %v", err)
	}
	if strings.TrimSpace(long.String()) != "OK" {
		t.Errorf("Long = %q, want OK", long.String())
	}
	if strings.TrimSpace(short.String()) != "OK" {
		t.Errorf("Short = %q, want OK", short.String())
	}
}
