package typeset

import (
	"errors"
	"fmt"
)

// Sentinel errors for common layout failure conditions.
var (
	ErrConfig = errors.New("typeset: invalid layout configuration")
	ErrNoFont = errors.New("typeset: no usable font")
)

// LayoutError represents an error that occurred during a specific layout
// operation. It wraps an underlying error and includes the operation name for
// context.
type LayoutError struct {
	Op  string // operation name, e.g. "Layout", "ResolveFont"
	Err error  // underlying error
}

func (e *LayoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("typeset.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("typeset.%s: unknown error", e.Op)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

// newLayoutError creates a new LayoutError wrapping the given error with
// operation context.
func newLayoutError(op string, err error) *LayoutError {
	return &LayoutError{Op: op, Err: err}
}
