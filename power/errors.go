package power

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCount is returned when Options.Count is outside [1, N].
	ErrInvalidCount = errors.New("power: component count out of range")

	// ErrInvalidOptions is returned for a non-positive tolerance, a
	// non-positive iteration cap, or a negative timeout/symmetry tolerance.
	ErrInvalidOptions = errors.New("power: invalid options")

	// ErrSingularVector is returned when an iterate has zero, NaN or Inf norm
	// and cannot be normalized.
	ErrSingularVector = errors.New("power: vector cannot be normalized")

	// ErrNotConverged marks a component that hit Options.MaxIterations.
	// It is reported through Result.Warnings, never as a hard error.
	ErrNotConverged = errors.New("power: iteration did not converge")
)

// NonConvergenceError describes one component that stopped at the iteration cap.
type NonConvergenceError struct {
	Component  int // zero-based component index
	Iterations int // products performed
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("power: component %d did not converge after %d iterations",
		e.Component, e.Iterations)
}

// Is reports ErrNotConverged as the sentinel behind e.
func (e *NonConvergenceError) Is(target error) bool { return target == ErrNotConverged }

// powerErrorf wraps err with an operation tag, preserving it for errors.Is.
func powerErrorf(op string, err error) error {
	return fmt.Errorf("power.%s: %w", op, err)
}
