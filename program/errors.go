package program

import "fmt"

// ConfigurationError reports a malformed program: nested or unbalanced
// atomic sentinels, an unknown label, or an arithmetic expression whose
// result falls outside its destination's declared domain, discovered the
// first time a mov executes. It always aborts before — or during, for the
// mov case — the search; it never becomes a search Failure.
type ConfigurationError struct {
	Msg   string
	Cause error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

// SyntaxError is retained as a named type for a future text-level
// front-end parser to report filename/line/column errors that never reach
// the explorer. No code in this module constructs one; it exists so a
// parser built against this package has somewhere to land its errors
// without colliding with ConfigurationError's different meaning (malformed
// program, not malformed source text).
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Msg)
}

// InternalInvariantViolation indicates a bug in the builder or explorer: a
// label that Build should have rejected turned out to be missing at run
// time. It is always a programmer error, never a user-facing condition, so
// it panics rather than returning an error, the same way any condition a
// correct implementation can never produce is reported by panicking
// instead of threading an error through callers that have no way to
// recover from it.
type InternalInvariantViolation struct {
	Msg string
}

func (e *InternalInvariantViolation) Error() string { return "internal invariant violation: " + e.Msg }

func panicInternal(format string, args ...any) {
	panic(&InternalInvariantViolation{Msg: fmt.Sprintf(format, args...)})
}
