package refvm

import "fmt"

// RuntimeError is raised by the VM itself (division by zero, calling a
// non-function word, an out-of-bounds memory access, a missing entry
// point).
type RuntimeError struct {
	Message string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: %s", e.Message)
}

func newRuntimeError(format string, args ...any) RuntimeError {
	return RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// DeveloperError marks a Builder invariant violation — the emitter calling
// refvm out of the sequence ir.Builder's contract promises (e.g. passing a
// Value that is not a refvm register, or an unknown operator). These
// indicate a bug in the emitter, never in the B source being compiled.
type DeveloperError struct {
	Message string
}

func (e DeveloperError) Error() string {
	return fmt.Sprintf("🤖 DeveloperError: %s", e.Message)
}

func newDeveloperError(format string, args ...any) DeveloperError {
	return DeveloperError{Message: fmt.Sprintf(format, args...)}
}
