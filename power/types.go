package power

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Defaults used by DefaultOptions.
const (
	// DefaultCount is the number of principal components extracted.
	DefaultCount = 10

	// DefaultTolerance bounds the mean squared change between iterates.
	DefaultTolerance = 1e-16

	// DefaultMaxIterations caps matrix-vector products per component.
	DefaultMaxIterations = 100000

	// DefaultSymmetryTolerance is the absolute |a_ij - a_ji| accepted on input.
	DefaultSymmetryTolerance = 1e-9
)

// ctxPollInterval is how many products run between context checks.
const ctxPollInterval = 1024

// Options configures Iterate and TopComponents.
type Options struct {
	// Count is the number of components TopComponents extracts (1..N).
	Count int

	// Tolerance is the convergence threshold on mean((b_new - b_old)²).
	Tolerance float64

	// MaxIterations caps the products per component. Reaching it is a soft failure.
	MaxIterations int

	// Seed feeds the default RandomInitializer. 0 selects a fixed default seed.
	Seed int64

	// Initializer supplies the first start vector. nil means RandomInitializer(Seed).
	Initializer Initializer

	// SymmetryTolerance is passed to matrix.ValidateSymmetric.
	SymmetryTolerance float64

	// Timeout bounds the whole extraction when > 0.
	Timeout time.Duration

	// Logger receives Debug lines per converged component and Warn lines per
	// non-converged one.
	Logger zerolog.Logger

	// Observer, when non-nil, is told about every extracted component.
	Observer Observer
}

// DefaultOptions returns the reference configuration: ten components,
// tolerance 1e-16, at most 100000 products each, seed 0, silent logger.
func DefaultOptions() Options {
	return Options{
		Count:             DefaultCount,
		Tolerance:         DefaultTolerance,
		MaxIterations:     DefaultMaxIterations,
		SymmetryTolerance: DefaultSymmetryTolerance,
		Logger:            zerolog.Nop(),
	}
}

// Observer is notified once per extracted component with the wall time it took.
type Observer interface {
	ObserveComponent(c Component, elapsed time.Duration)
}

// Status reports how a single Iterate call ended.
type Status struct {
	Iterations int     // products performed
	Converged  bool    // Delta dropped below Tolerance
	Delta      float64 // last mean squared change
}

// Component is one extracted eigenpair.
type Component struct {
	// Vector is the unit-norm eigenvector (length N). Its sign is arbitrary.
	Vector []float64

	// Eigenvalue is the Rayleigh quotient bᵀ·psi·b against the deflated matrix
	// the component was extracted from.
	Eigenvalue float64

	Iterations int
	Converged  bool
}

// Result holds components in extraction order (decreasing eigenvalue).
type Result struct {
	Components []Component
}

// Converged reports whether every component converged.
func (r *Result) Converged() bool {
	for i := range r.Components {
		if !r.Components[i].Converged {
			return false
		}
	}

	return true
}

// Warnings joins one *NonConvergenceError per non-converged component, or
// returns nil. Each joined error matches errors.Is(err, ErrNotConverged).
func (r *Result) Warnings() error {
	var errs []error
	for i, c := range r.Components {
		if !c.Converged {
			errs = append(errs, &NonConvergenceError{Component: i, Iterations: c.Iterations})
		}
	}

	return errors.Join(errs...)
}

// Vectors returns the eigenvectors in order. The slices are shared with r.
func (r *Result) Vectors() [][]float64 {
	out := make([][]float64, len(r.Components))
	for i := range r.Components {
		out[i] = r.Components[i].Vector
	}

	return out
}

// Eigenvalues returns the eigenvalues in order.
func (r *Result) Eigenvalues() []float64 {
	out := make([]float64, len(r.Components))
	for i := range r.Components {
		out[i] = r.Components[i].Eigenvalue
	}

	return out
}

// PC returns the i-th principal component (1-based, PC(1) is the leading one).
func (r *Result) PC(i int) ([]float64, error) {
	if i < 1 || i > len(r.Components) {
		return nil, fmt.Errorf("power: PC(%d) of %d components: %w", i, len(r.Components), ErrInvalidCount)
	}

	return r.Components[i-1].Vector, nil
}
