package emitter

import "fmt"

// NotAnLValueError is "&" or an assignment target applied to an
// expression with no lvalue form (spec.md §7).
type NotAnLValueError struct {
	Message string
}

func (e NotAnLValueError) Error() string {
	return fmt.Sprintf("💥 not an lvalue: %s", e.Message)
}

// BreakOutsideLoopError is a break with no enclosing loop or switch.
type BreakOutsideLoopError struct{}

func (e BreakOutsideLoopError) Error() string {
	return "💥 break outside any loop or switch"
}

// GotoTargetUnknownError is a goto naming a label the function's pre-pass
// never discovered.
type GotoTargetUnknownError struct {
	Label string
}

func (e GotoTargetUnknownError) Error() string {
	return fmt.Sprintf("💥 goto target unknown: %q", e.Label)
}

// InternalError marks an emitter invariant violation — a bug in the
// emitter itself, never in the B source being compiled.
type InternalError struct {
	Message string
}

func (e InternalError) Error() string {
	return fmt.Sprintf("🤖 internal error: %s", e.Message)
}

// ArityMismatch (spec.md §7) is explicitly optional: a call site's
// argument count is only checkable when the callee resolves to a directly
// named function with a known declared arity, and refvm's own calling
// convention already tolerates a mismatch by padding missing arguments
// with 0 (see refvm.paramAt) — exactly the permissiveness real B's
// untyped calling convention has. No ArityMismatch type is defined; this
// is a deliberate non-implementation of an explicitly optional check, not
// an oversight.
