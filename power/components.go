package power

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/genopca/matrix"
)

const opTopComponents = "TopComponents"

// TopComponents extracts opts.Count leading eigenpairs of psi with a
// background context. See TopComponentsContext.
func TopComponents(psi matrix.Matrix, opts Options) (*Result, error) {
	return TopComponentsContext(context.Background(), psi, opts)
}

// TopComponentsContext extracts opts.Count leading eigenpairs of psi by power
// iteration with deflation.
//
// Implementation:
//   - Stage 1: validate options and psi; copy psi into an owned *Dense.
//   - Stage 2: for each component, start from the initializer (first component)
//     or the previous eigenvector (later ones) and Iterate.
//   - Stage 3: λ = bᵀ·W·b; W ← W − λ·b·bᵀ via matrix.RankOneUpdate.
//
// A warm start that the deflated matrix maps to the zero vector is retried
// once from the initializer; a second failure returns ErrSingularVector
// (psi has fewer than Count non-null directions).
//
// Errors:
//   - ErrInvalidOptions, ErrInvalidCount, ErrSingularVector.
//   - matrix.ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNaNInf.
//   - context.Canceled / context.DeadlineExceeded (wrapped), including
//     expiry of opts.Timeout.
//
// Non-converged components are returned normally; see Result.Warnings.
func TopComponentsContext(ctx context.Context, psi matrix.Matrix, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateOptionsStandalone(opts); err != nil {
		return nil, powerErrorf(opTopComponents, err)
	}
	n, err := validatePsi(psi, opts)
	if err != nil {
		return nil, powerErrorf(opTopComponents, err)
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	work, err := matrix.AsDense(psi)
	if err != nil {
		return nil, powerErrorf(opTopComponents, err)
	}
	init := opts.Initializer
	if init == nil {
		init = NewRandomInitializer(opts.Seed)
	}

	res := &Result{Components: make([]Component, 0, opts.Count)}
	y := make([]float64, n)
	var (
		b  []float64
		st Status
	)
	for k := 0; k < opts.Count; k++ {
		started := time.Now()
		if k == 0 {
			if b, err = startVector(init, n); err != nil {
				return nil, componentErr(k, err)
			}
		}

		b, st, err = iterate(ctx, work, b, opts)
		if k > 0 && errors.Is(err, ErrSingularVector) {
			if b, err = startVector(init, n); err != nil {
				return nil, componentErr(k, err)
			}
			b, st, err = iterate(ctx, work, b, opts)
		}
		if err != nil {
			return nil, componentErr(k, err)
		}

		if err = matrix.MatVecTo(y, work, b); err != nil {
			return nil, componentErr(k, err)
		}
		lambda := floats.Dot(b, y)
		if err = matrix.RankOneUpdate(work, -lambda, b, b); err != nil {
			return nil, componentErr(k, err)
		}

		c := Component{
			Vector:     append([]float64(nil), b...),
			Eigenvalue: lambda,
			Iterations: st.Iterations,
			Converged:  st.Converged,
		}
		res.Components = append(res.Components, c)
		elapsed := time.Since(started)

		if c.Converged {
			opts.Logger.Debug().
				Int("component", k).
				Int("iterations", c.Iterations).
				Float64("eigenvalue", c.Eigenvalue).
				Dur("elapsed", elapsed).
				Msg("component converged")
		} else {
			opts.Logger.Warn().
				Int("component", k).
				Int("iterations", c.Iterations).
				Float64("delta", st.Delta).
				Msg("component hit iteration cap")
		}
		if opts.Observer != nil {
			opts.Observer.ObserveComponent(c, elapsed)
		}
	}

	return res, nil
}

// startVector draws a start vector and normalizes it.
func startVector(init Initializer, n int) ([]float64, error) {
	v, err := init.Init(n)
	if err != nil {
		return nil, err
	}
	if len(v) != n {
		return nil, matrix.ErrDimensionMismatch
	}
	if err = normalizeTo(v, v); err != nil {
		return nil, err
	}

	return v, nil
}

func componentErr(k int, err error) error {
	return powerErrorf(opTopComponents, fmt.Errorf("component %d: %w", k, err))
}
