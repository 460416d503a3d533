package power

import (
	"math"

	"github.com/katalvlaran/genopca/matrix"
)

// validateOptionsStandalone checks Options fields that do not depend on psi.
func validateOptionsStandalone(opts Options) error {
	if !(opts.Tolerance > 0) || math.IsInf(opts.Tolerance, 0) {
		return ErrInvalidOptions
	}
	if opts.MaxIterations < 1 {
		return ErrInvalidOptions
	}
	if opts.SymmetryTolerance < 0 || math.IsNaN(opts.SymmetryTolerance) {
		return ErrInvalidOptions
	}
	if opts.Timeout < 0 {
		return ErrInvalidOptions
	}

	return nil
}

// validatePsi verifies psi is non-nil, square, finite and symmetric, and that
// Count fits its order. It returns N.
//
// Complexity: O(N²).
func validatePsi(psi matrix.Matrix, opts Options) (int, error) {
	if err := matrix.ValidateSquare(psi); err != nil {
		return 0, err
	}
	if err := matrix.ValidateFinite(psi); err != nil {
		return 0, err
	}
	if err := matrix.ValidateSymmetric(psi, opts.SymmetryTolerance); err != nil {
		return 0, err
	}
	n := psi.Rows()
	if opts.Count < 1 || opts.Count > n {
		return 0, ErrInvalidCount
	}

	return n, nil
}
