package program

import "github.com/mr0re1/bla/memory"

// StmtKind discriminates the kinds of statement a Builder can append:
// the four op kinds, a label, and the two atomic-region sentinels.
type StmtKind uint8

const (
	KindMov StmtKind = iota
	KindCond
	KindGoto
	KindAssert
	KindLabel
	KindAtomicEnter
	KindAtomicExit
)

// Stmt is one element of the flat statement sequence Build consumes: a
// tagged variant rather than a closure, so a Program can be inspected,
// pretty-printed, and built without ever invoking host code. Kind selects
// which of the fields below are meaningful; the constructors
// are the only supported way to build one.
type Stmt struct {
	Kind StmtKind

	// Mov
	Dst  string // variable reference name
	Expr Expr   // Mov value, Cond predicate, or Assert predicate

	// Cond / Goto
	Target string
	Negate bool // Cond only

	// Assert
	Msg string

	// Label
	Name string

	// Text is the rendered source line for this statement, used by
	// Program.Render. Only meaningful for op kinds (Mov/Cond/Goto/Assert).
	Text string
}

// Mov assigns the value of expr to dst.
func Mov(dst string, expr Expr) Stmt {
	return Stmt{Kind: KindMov, Dst: dst, Expr: expr}
}

// Cond jumps to target if pred evaluates true (or false, if negate).
func Cond(pred Expr, target string, negate bool) Stmt {
	return Stmt{Kind: KindCond, Expr: pred, Target: target, Negate: negate}
}

// Goto jumps unconditionally to target.
func Goto(target string) Stmt {
	return Stmt{Kind: KindGoto, Target: target}
}

// AssertStmt fails the enclosing program with msg if pred evaluates false.
func AssertStmt(pred Expr, msg string) Stmt {
	return Stmt{Kind: KindAssert, Expr: pred, Msg: msg}
}

// Label marks the next-appended op's index under name.
func Label(name string) Stmt {
	return Stmt{Kind: KindLabel, Name: name}
}

// AtomicEnter opens an atomic region; every following op is atomic until
// the matching AtomicExit.
func AtomicEnter() Stmt { return Stmt{Kind: KindAtomicEnter} }

// AtomicExit closes the atomic region opened by the most recent
// AtomicEnter.
func AtomicExit() Stmt { return Stmt{Kind: KindAtomicExit} }

// WithText attaches s's rendered source line, used only by Program.Render.
// It returns a copy; Stmt is a plain value so this is a simple field set.
func (s Stmt) WithText(text string) Stmt {
	s.Text = text
	return s
}

// compiledOp is a Stmt bound to a memory.Map: labels are still resolved by
// name at Step time, but Mov's destination has been resolved to a slot
// address and its validator bound.
type compiledOp struct {
	kind   StmtKind
	dst    int
	expr   Expr
	target string
	negate bool
	msg    string

	validate func(val memory.Value) error // bound Mov validator; nil for other kinds
}
