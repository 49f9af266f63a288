package program

import (
	"fmt"

	"github.com/mr0re1/bla/memory"
)

// Builder assembles a Stmt sequence using standard structured control-flow
// lowering: if/while/atomic/assert/break/continue/return, each desugared to
// labels, conditional jumps, and gotos. It exists because this module ships
// no text-level front-end parser — scenarios under examples/ hand-assemble
// their programs by calling Builder methods directly, the same way a state
// machine can be hand-assembled from primitive transitions. Builder
// performs no source-text lowering of its own; it is a programmatic
// convenience, not a parser.
type Builder struct {
	mm   *memory.Map
	name string

	stmts []Stmt
	err   error

	labelCounter int
	breakLbls    []string
	continueLbls []string
	endLbl       string
}

// NewBuilder starts assembling a program named name, bound to mm for
// variable resolution.
func NewBuilder(mm *memory.Map, name string) *Builder {
	return &Builder{mm: mm, name: name, endLbl: "__end_" + name}
}

func (b *Builder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
	}
}

func (b *Builder) uniqLabel() string {
	b.labelCounter++
	return fmt.Sprintf("__lbl_%s_%d", b.name, b.labelCounter)
}

// Var returns an expression reading the named variable's current value.
func (b *Builder) Var(name string) Expr {
	if _, err := b.mm.Addr(memory.Ref(name)); err != nil {
		b.fail("%v", err)
		return Const{V: memory.Bool(false)}
	}
	return Slot{Addr: b.mm.MustAddr(memory.Ref(name))}
}

// Bool returns a boolean literal expression.
func (b *Builder) Bool(v bool) Expr { return Const{V: memory.Bool(v)} }

// Int returns an integer literal expression.
func (b *Builder) Int(v int) Expr { return Const{V: memory.Int(v)} }

func (b *Builder) append(s Stmt) { b.stmts = append(b.stmts, s) }

// Mov appends "dst = expr"; text is the line shown by Program.Render.
func (b *Builder) Mov(dst string, expr Expr, text string) *Builder {
	if _, err := b.mm.Addr(memory.Ref(dst)); err != nil {
		b.fail("%v", err)
	}
	b.append(Stmt{Kind: KindMov, Dst: dst, Expr: expr, Text: text})
	return b
}

// AssertStmt appends "assert pred", failing the program with msg if pred
// ever evaluates false while this op executes.
func (b *Builder) AssertStmt(pred Expr, msg, text string) *Builder {
	b.append(Stmt{Kind: KindAssert, Expr: pred, Msg: msg, Text: text})
	return b
}

// If lowers to: cond(!pred, elseLbl); body; elseLbl: — the single-branch
// case, with no else body.
func (b *Builder) If(pred Expr, text string, body func(*Builder)) *Builder {
	elseLbl := b.uniqLabel()
	b.append(Stmt{Kind: KindCond, Expr: pred, Target: elseLbl, Negate: true, Text: text})
	body(b)
	b.append(Stmt{Kind: KindLabel, Name: elseLbl})
	return b
}

// IfElse lowers to: cond(!pred, elseLbl); thenBody; goto endLbl; elseLbl:
// elseBody; endLbl: — the two-branch case.
func (b *Builder) IfElse(pred Expr, text string, thenBody, elseBody func(*Builder)) *Builder {
	elseLbl := b.uniqLabel()
	endLbl := b.uniqLabel()
	b.append(Stmt{Kind: KindCond, Expr: pred, Target: elseLbl, Negate: true, Text: text})
	thenBody(b)
	b.append(Stmt{Kind: KindGoto, Target: endLbl})
	b.append(Stmt{Kind: KindLabel, Name: elseLbl})
	elseBody(b)
	b.append(Stmt{Kind: KindLabel, Name: endLbl})
	return b
}

// While lowers to: beginLbl: cond(!pred, endLbl); body; goto beginLbl;
// endLbl: — break/continue inside body resolve against endLbl/beginLbl
// respectively.
func (b *Builder) While(pred Expr, text string, body func(*Builder)) *Builder {
	beginLbl := b.uniqLabel()
	endLbl := b.uniqLabel()

	b.append(Stmt{Kind: KindLabel, Name: beginLbl})
	b.append(Stmt{Kind: KindCond, Expr: pred, Target: endLbl, Negate: true, Text: text})

	b.breakLbls = append(b.breakLbls, endLbl)
	b.continueLbls = append(b.continueLbls, beginLbl)
	body(b)
	b.breakLbls = b.breakLbls[:len(b.breakLbls)-1]
	b.continueLbls = b.continueLbls[:len(b.continueLbls)-1]

	b.append(Stmt{Kind: KindGoto, Target: beginLbl})
	b.append(Stmt{Kind: KindLabel, Name: endLbl})
	return b
}

// Atomic lowers body to an uninterruptible region: AtomicEnter; body;
// AtomicExit. Nesting is rejected by Build.
func (b *Builder) Atomic(body func(*Builder)) *Builder {
	b.append(Stmt{Kind: KindAtomicEnter})
	body(b)
	b.append(Stmt{Kind: KindAtomicExit})
	return b
}

// Break jumps to the enclosing loop's end label.
func (b *Builder) Break() *Builder {
	if len(b.breakLbls) == 0 {
		b.fail("'break' outside loop")
		return b
	}
	b.append(Stmt{Kind: KindGoto, Target: b.breakLbls[len(b.breakLbls)-1]})
	return b
}

// Continue jumps to the enclosing loop's begin label.
func (b *Builder) Continue() *Builder {
	if len(b.continueLbls) == 0 {
		b.fail("'continue' outside loop")
		return b
	}
	b.append(Stmt{Kind: KindGoto, Target: b.continueLbls[len(b.continueLbls)-1]})
	return b
}

// Return jumps to the synthesized function-end label.
func (b *Builder) Return() *Builder {
	b.append(Stmt{Kind: KindGoto, Target: b.endLbl})
	return b
}

// Build compiles the assembled statements into a Program. Any deferred
// builder error (unknown variable, break/continue outside a loop) or any
// error from the underlying program.Build call (unbalanced atomic,
// unresolved label) is returned here.
func (b *Builder) Build() (*Program, error) {
	if b.err != nil {
		return nil, b.err
	}
	stmts := append(append([]Stmt{}, b.stmts...), Stmt{Kind: KindLabel, Name: b.endLbl})
	return Build(b.mm, b.name, stmts)
}
