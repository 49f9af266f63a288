// Package program implements the flat, opaque-step-function program
// representation the explorer executes: an expression IR, a tagged-variant
// Op encoding, label resolution, and the atomic-region mask that tells the
// explorer when it must not interleave other programs.
package program

import (
	"fmt"

	"github.com/mr0re1/bla/assertion"
	"github.com/mr0re1/bla/memory"
)

// Program is a named, immutable unit of concurrent execution: an ordered
// list of compiled ops, a label table, and an atomic mask (true iff the op
// at that index lies inside a source-level atomic region). Pretty-print
// metadata (lines) is opaque to the explorer.
type Program struct {
	Name       string
	Labels     map[string]int
	AtomicMask []bool

	ops   []compiledOp
	lines []string // rendered text, one entry per op, in op order
}

// Ops returns the number of ops in the program. positions equal to this
// length denote "halted" in a GlobalState.
func (p *Program) Ops() int { return len(p.ops) }

// Build compiles an ordered statement sequence into a Program, bound to mm
// for label resolution, slot-address resolution, and per-slot validation.
// It fails with a ConfigurationError if: a Mov references an unknown
// variable; a Cond/Goto references a label Build never sees defined;
// atomic sentinels are unbalanced or nest.
func Build(mm *memory.Map, name string, stmts []Stmt) (*Program, error) {
	labels := map[string]int{}
	var ops []compiledOp
	var atomicMask []bool
	var lines []string

	inAtomic := false
	for _, s := range stmts {
		switch s.Kind {
		case KindLabel:
			if _, dup := labels[s.Name]; dup {
				return nil, &ConfigurationError{Msg: fmt.Sprintf("label %q redefined", s.Name)}
			}
			labels[s.Name] = len(ops)

		case KindAtomicEnter:
			if inAtomic {
				return nil, &ConfigurationError{Msg: "nested atomic region"}
			}
			inAtomic = true

		case KindAtomicExit:
			if !inAtomic {
				return nil, &ConfigurationError{Msg: "atomic exit without matching enter"}
			}
			inAtomic = false

		case KindMov:
			addr, err := mm.Addr(memory.Ref(s.Dst))
			if err != nil {
				return nil, err
			}
			ops = append(ops, compiledOp{
				kind: KindMov, dst: addr, expr: s.Expr,
				validate: func(val memory.Value) error { return mm.ValidateAddr(addr, val) },
			})
			atomicMask = append(atomicMask, inAtomic)
			lines = append(lines, s.Text)

		case KindCond:
			ops = append(ops, compiledOp{kind: KindCond, expr: s.Expr, target: s.Target, negate: s.Negate})
			atomicMask = append(atomicMask, inAtomic)
			lines = append(lines, s.Text)

		case KindGoto:
			ops = append(ops, compiledOp{kind: KindGoto, target: s.Target})
			atomicMask = append(atomicMask, inAtomic)
			lines = append(lines, s.Text)

		case KindAssert:
			ops = append(ops, compiledOp{kind: KindAssert, expr: s.Expr, msg: s.Msg})
			atomicMask = append(atomicMask, inAtomic)
			lines = append(lines, s.Text)

		default:
			return nil, &ConfigurationError{Msg: fmt.Sprintf("unknown statement kind %d", s.Kind)}
		}
	}

	if inAtomic {
		return nil, &ConfigurationError{Msg: "atomic region not closed"}
	}

	for i, op := range ops {
		if op.kind == KindCond || op.kind == KindGoto {
			if _, ok := labels[op.target]; !ok {
				return nil, &ConfigurationError{Msg: fmt.Sprintf("op %d: unknown label %q", i, op.target)}
			}
		}
	}

	return &Program{
		Name:       name,
		Labels:     labels,
		AtomicMask: atomicMask,
		ops:        ops,
		lines:      lines,
	}, nil
}

// Step executes the op at pos against mem and returns the successor
// position, successor memory, and whether this transition must continue
// without yielding to other programs (atomicContinue).
//
// Step returns an *assertion.Failed if an Assert op fails, a
// *ConfigurationError if a Mov's expression produces a value outside its
// destination's declared domain, and panics with
// *InternalInvariantViolation if a Cond/Goto targets a label Build should
// have already rejected (a builder bug, never a user-facing condition).
func (p *Program) Step(pos int, mem memory.Memory) (nextPos int, nextMem memory.Memory, atomicContinue bool, err error) {
	if pos < 0 || pos >= len(p.ops) {
		panicInternal("Step called at halted/out-of-range position %d (len=%d)", pos, len(p.ops))
	}
	op := p.ops[pos]

	var label string
	nextMem = mem

	switch op.kind {
	case KindMov:
		val, evalErr := op.expr.Eval(mem)
		if evalErr != nil {
			return 0, nil, false, &ConfigurationError{Msg: fmt.Sprintf("%s: mov expression", p.Name), Cause: evalErr}
		}
		if verr := op.validate(val); verr != nil {
			return 0, nil, false, &ConfigurationError{Msg: fmt.Sprintf("%s: mov", p.Name), Cause: verr}
		}
		nextMem = mem.With(op.dst, val)

	case KindCond:
		val, evalErr := op.expr.Eval(mem)
		if evalErr != nil {
			return 0, nil, false, &ConfigurationError{Msg: fmt.Sprintf("%s: cond predicate", p.Name), Cause: evalErr}
		}
		if val.Kind != memory.KindBool {
			return 0, nil, false, &ConfigurationError{Msg: fmt.Sprintf("%s: cond predicate is not boolean", p.Name)}
		}
		branch := val.B
		if op.negate {
			branch = !branch
		}
		if branch {
			label = op.target
		}

	case KindGoto:
		label = op.target

	case KindAssert:
		val, evalErr := op.expr.Eval(mem)
		if evalErr != nil {
			return 0, nil, false, &ConfigurationError{Msg: fmt.Sprintf("%s: assert predicate", p.Name), Cause: evalErr}
		}
		if val.Kind != memory.KindBool {
			return 0, nil, false, &ConfigurationError{Msg: fmt.Sprintf("%s: assert predicate is not boolean", p.Name)}
		}
		if !val.B {
			return 0, nil, false, &assertion.Failed{Msg: op.msg}
		}

	default:
		panicInternal("program %s: op %d has unknown kind %d", p.Name, pos, op.kind)
	}

	if label == "" {
		nextPos = pos + 1
	} else {
		idx, ok := p.Labels[label]
		if !ok {
			panicInternal("program %s: label %q not found at run time", p.Name, label)
		}
		nextPos = idx
	}

	atomicContinue = nextPos < len(p.ops) && p.AtomicMask[pos] && p.AtomicMask[nextPos]
	return nextPos, nextMem, atomicContinue, nil
}

// Render renders the program's listing with an arrow marking the op at
// pos, or "<HALTED>" if pos denotes the halted position.
func (p *Program) Render(pos int) string {
	out := fmt.Sprintf("def %s():\n", p.Name)
	for i, line := range p.lines {
		prefix := "   "
		if i == pos {
			prefix = "-> "
		}
		out += prefix + line + "\n"
	}
	if pos >= len(p.lines) {
		out += "-> <HALTED>\n"
	}
	return out
}
