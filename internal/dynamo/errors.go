package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and headless runs.
var (
	// ErrInvalidState indicates a ball position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")
)

// RunError wraps an error with the frame at which a headless run stopped.
type RunError struct {
	Frame   int
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
