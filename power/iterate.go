package power

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/genopca/matrix"
)

const opIterate = "Iterate"

// Iterate runs power iteration on psi from b0 and returns the final unit vector.
//
// Implementation:
//   - Stage 1: validate options, psi (non-nil, square) and len(b0) == N.
//   - Stage 2: b ← b0/‖b0‖.
//   - Stage 3: repeat b_new ← psi·b/‖psi·b‖ until mean((b_new-b)²) < Tolerance
//     or MaxIterations products were done. ctx is polled every 1024 products.
//
// Reaching the cap is not an error: the current vector is returned with
// Status.Converged=false. b0 is not modified.
//
// Errors:
//   - ErrInvalidOptions; matrix validation sentinels.
//   - ErrSingularVector when b0 or any product has zero, NaN or Inf norm.
//   - ctx.Err() on cancellation.
//
// Complexity: Time O(iterations · N²), Space O(N).
func Iterate(ctx context.Context, psi matrix.Matrix, b0 []float64, opts Options) ([]float64, Status, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateOptionsStandalone(opts); err != nil {
		return nil, Status{}, powerErrorf(opIterate, err)
	}
	if err := matrix.ValidateSquare(psi); err != nil {
		return nil, Status{}, powerErrorf(opIterate, err)
	}
	if err := matrix.ValidateVecLen(b0, psi.Rows()); err != nil {
		return nil, Status{}, powerErrorf(opIterate, err)
	}

	b := make([]float64, len(b0))
	if err := normalizeTo(b, b0); err != nil {
		return nil, Status{}, powerErrorf(opIterate, err)
	}
	b, st, err := iterate(ctx, psi, b, opts)
	if err != nil {
		return nil, st, powerErrorf(opIterate, err)
	}

	return b, st, nil
}

// iterate is the loop behind Iterate. b must already be a unit vector of
// length psi.Rows(); it is used as scratch and the returned slice may alias it.
func iterate(ctx context.Context, psi matrix.Matrix, b []float64, opts Options) ([]float64, Status, error) {
	n := len(b)
	next := make([]float64, n)
	st := Status{Delta: math.Inf(1)}

	for st.Iterations < opts.MaxIterations {
		if st.Iterations%ctxPollInterval == 0 {
			if err := ctx.Err(); err != nil {
				return b, st, err
			}
		}
		if err := matrix.MatVecTo(next, psi, b); err != nil {
			return b, st, err
		}
		if err := normalizeTo(next, next); err != nil {
			return b, st, err
		}
		st.Iterations++

		d := floats.Distance(next, b, 2)
		st.Delta = d * d / float64(n)
		b, next = next, b
		if st.Delta < opts.Tolerance {
			st.Converged = true
			break
		}
	}

	return b, st, nil
}

// normalizeTo writes src/‖src‖ into dst. dst and src may be the same slice.
func normalizeTo(dst, src []float64) error {
	norm := floats.Norm(src, 2)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return ErrSingularVector
	}
	floats.ScaleTo(dst, 1/norm, src)

	return nil
}
