package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mr0re1/bla/explore"
	"github.com/mr0re1/bla/trace"
)

// Short renders a table with one row per step where memory changed:
// [step, program, source line, memory dump], using the stdlib
// text/tabwriter for column alignment.
type Short struct{}

func (Short) Render(w io.Writer, chain trace.Chain, ctx *explore.Context) error {
	if chain == nil {
		fmt.Fprintln(w, "OK")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, frame := range chain {
		var next *trace.Frame
		if i+1 < len(chain) {
			next = &chain[i+1]
		}
		if next != nil && next.State.Mem.Equal(frame.State.Mem) {
			continue
		}

		name, line := "???", "???"
		if frame.ProgramIndex >= 0 && frame.ProgramIndex < len(ctx.Programs) {
			p := ctx.Programs[frame.ProgramIndex]
			name = p.Name
			line = strings.TrimSpace(lastRenderedLine(p, frame.State.Positions[frame.ProgramIndex]))
		}

		var vals []string
		for _, d := range ctx.Map.Dump(frame.State.Mem) {
			vals = append(vals, fmt.Sprintf("%s=%s", d.Ref, d.Value))
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, name, line, strings.Join(vals, ";"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if ctx.Failure != nil {
		fmt.Fprintf(w, "FAIL: %v\n", ctx.Failure.Err)
	} else {
		fmt.Fprintln(w, "OK")
	}
	return nil
}

// lastRenderedLine extracts just the arrowed source line from a Program's
// full Render output, since Short wants one line per row, not a listing.
func lastRenderedLine(p interface{ Render(int) string }, pos int) string {
	lines := strings.Split(p.Render(pos), "\n")
	for _, l := range lines {
		if strings.HasPrefix(l, "-> ") {
			return strings.TrimPrefix(l, "-> ")
		}
	}
	return "<HALTED>"
}
