package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a run configuration that cannot be stepped.
	ErrInvalidConfig = errors.New("sim: invalid configuration")

	// ErrUnstable indicates a frame holding NaN or Inf with ValidateState on.
	ErrUnstable = errors.New("sim: simulation unstable (non-finite grid values)")
)

// SimulationError wraps an error with the frame it occurred at.
type SimulationError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d (t=%.3f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
