// Package render turns an explore.Context plus its trace.Chain into text.
// It is a pure function over the explorer's output: it never touches
// Program, Memory, or Explorer internals beyond what Context and Chain
// already expose.
package render

import (
	"io"

	"github.com/mr0re1/bla/explore"
	"github.com/mr0re1/bla/trace"
)

// Renderer produces textual output from a completed proof. Render must not
// mutate ctx or chain.
type Renderer interface {
	Render(w io.Writer, chain trace.Chain, ctx *explore.Context) error
}

func progIndex(ctx *explore.Context, i int) string {
	if i < 0 || i >= len(ctx.Programs) {
		return "???"
	}
	return ctx.Programs[i].Name
}
