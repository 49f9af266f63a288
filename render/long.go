package render

import (
	"fmt"
	"io"

	"github.com/mr0re1/bla/explore"
	"github.com/mr0re1/bla/trace"
)

// Long renders one block per step: every program's source listing with the
// current op arrowed, followed by a full dump of every variable.
type Long struct{}

func (Long) Render(w io.Writer, chain trace.Chain, ctx *explore.Context) error {
	if chain == nil {
		fmt.Fprintln(w, "OK")
		return nil
	}

	for i, frame := range chain {
		fmt.Fprintf(w, "----- step #%d:\n", i)
		for pi, p := range ctx.Programs {
			fmt.Fprint(w, p.Render(frame.State.Positions[pi]))
		}
		for _, d := range ctx.Map.Dump(frame.State.Mem) {
			fmt.Fprintf(w, "%s=%s\n", d.Ref, d.Value)
		}
		fmt.Fprintln(w)
	}

	if ctx.Failure != nil {
		fmt.Fprintf(w, "Assertion failed: %v\n", ctx.Failure.Err)
	}
	return nil
}
