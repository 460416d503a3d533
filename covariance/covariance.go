package covariance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/genopca/genotype"
	"github.com/katalvlaran/genopca/matrix"
)

const opBuild = "covariance.Build"

// Build returns psi = XᵀX / M' for the genotype matrix g together with the
// per-marker statistics that produced it.
//
// Errors:
//   - ErrNilGenotypes when g is nil.
//   - ErrInvalidPolicy for an unknown opts.MissingRows.
//   - ErrAllMissingMarker (wrapped with the marker index) under RejectMissingRows.
//   - ErrDegenerateInput when no polymorphic marker survives.
func Build(g *genotype.Matrix, opts Options) (*matrix.Dense, *Stats, error) {
	if g == nil {
		return nil, nil, fmt.Errorf("%s: %w", opBuild, ErrNilGenotypes)
	}
	switch opts.MissingRows {
	case RejectMissingRows, DropMissingRows, ZeroFillMissingRows:
	default:
		return nil, nil, fmt.Errorf("%s: %v: %w", opBuild, opts.MissingRows, ErrInvalidPolicy)
	}

	m, n := g.Markers(), g.Samples()
	stats := &Stats{
		Frequencies: make([]float64, m),
		StdDevs:     make([]float64, m),
	}

	var (
		rows        [][]float64 // rows of X, in marker order
		informative int         // kept rows that are not zero-filled
	)
	dosage, mask := make([]float64, n), make([]bool, n)
	for i := 0; i < m; i++ {
		sum, present, mono, err := g.RowStats(i)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", opBuild, err)
		}

		if present == 0 {
			stats.AllMissing++
			stats.Frequencies[i] = MissingFrequency
			stats.StdDevs[i] = math.NaN()
			switch opts.MissingRows {
			case RejectMissingRows:
				return nil, nil, fmt.Errorf("%s: marker %d: %w", opBuild, i, ErrAllMissingMarker)
			case ZeroFillMissingRows:
				rows = append(rows, make([]float64, n))
				stats.Kept = append(stats.Kept, i)
			}
			continue
		}

		p := sum / float64(present) / 2
		sd := math.Sqrt(2 * p * (1 - p))
		stats.Frequencies[i] = p
		stats.StdDevs[i] = sd
		if sd == 0 || mono {
			stats.Monomorphic++
			continue
		}

		if err = g.Row(i, dosage, mask); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", opBuild, err)
		}
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			if mask[j] {
				row[j] = (dosage[j] - 2*p) / sd
			} // missing stays 0 after normalization
		}
		rows = append(rows, row)
		stats.Kept = append(stats.Kept, i)
		informative++
	}

	if informative == 0 {
		return nil, nil, fmt.Errorf("%s: %d markers, %d monomorphic, %d all-missing: %w",
			opBuild, m, stats.Monomorphic, stats.AllMissing, ErrDegenerateInput)
	}

	psi, err := gram(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opBuild, err)
	}

	return psi, stats, nil
}

// gram returns XᵀX / len(rows) for the normalized rows of X.
func gram(rows [][]float64) (*matrix.Dense, error) {
	x, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, err
	}
	xt, err := matrix.Transpose(x)
	if err != nil {
		return nil, err
	}
	xtx, err := matrix.Mul(xt, x)
	if err != nil {
		return nil, err
	}
	scaled, err := matrix.Scale(xtx, 1/float64(len(rows)))
	if err != nil {
		return nil, err
	}
	if d, ok := scaled.(*matrix.Dense); ok {
		return d, nil
	}

	return matrix.AsDense(scaled)
}
