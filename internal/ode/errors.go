package ode

import (
	"errors"
	"fmt"
)

// Error taxonomy. RHS and monitor errors are never wrapped in these; they
// propagate to the caller unchanged.
var (
	// ErrInvalidConfig indicates an invalid option combination detected
	// at Init; the run never starts.
	ErrInvalidConfig = errors.New("ode: invalid configuration")

	// ErrConvergence indicates the internal step cap or the rejection
	// bound was exceeded before reaching an output boundary.
	ErrConvergence = errors.New("ode: convergence failure")

	// ErrNumericalAnomaly indicates a candidate state with NaN or Inf
	// entries. Recovered internally by shrink-and-retry; surfaces only
	// when retries are exhausted.
	ErrNumericalAnomaly = errors.New("ode: non-finite candidate state")

	// ErrNotInitialized indicates Run was called before Init.
	ErrNotInitialized = errors.New("ode: solver not initialized")
)

// StepError wraps an error with the internal step context it occurred in.
// The last accepted state remains intact and inspectable on the solver.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
