package genotype

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// genotypeErrorf attaches an operation tag and coordinates to a sentinel.
func genotypeErrorf(op string, row, col int, err error) error {
	return fmt.Errorf("genotype.%s(%d,%d): %w", op, row, col, err)
}

// validDosage reports whether d may be stored as a present call.
func validDosage(d float64) bool {
	return !math.IsNaN(d) && d >= MinDosage && d <= MaxDosage
}

// New returns a markers×samples matrix with every cell missing.
// Errors: ErrInvalidShape when either dimension is not positive.
func New(markers, samples int) (*Matrix, error) {
	if markers <= 0 || samples <= 0 {
		return nil, ErrInvalidShape
	}
	n := markers * samples

	return &Matrix{
		markers: markers,
		samples: samples,
		dosage:  make([]float64, n),
		present: make([]bool, n),
	}, nil
}

// FromCalls builds a matrix from rectangular rows of calls.
// Errors: ErrInvalidShape for empty or ragged input, ErrDosageOutOfRange for
// present calls outside [0,2].
func FromCalls(rows [][]Call) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidShape
	}
	g, err := New(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != g.samples {
			return nil, genotypeErrorf("FromCalls", i, len(row), ErrInvalidShape)
		}
		for j, c := range row {
			if err = g.Set(i, j, c); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// FromDosages builds a matrix from rectangular rows of dosages. Cells equal to
// missing, or NaN, become missing calls; every other value must lie in [0,2].
//
//	g, _ := FromDosages([][]float64{{0, 2, -9}}, -9) // third sample missing
func FromDosages(rows [][]float64, missing float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidShape
	}
	g, err := New(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != g.samples {
			return nil, genotypeErrorf("FromDosages", i, len(row), ErrInvalidShape)
		}
		for j, d := range row {
			if d == missing || math.IsNaN(d) {
				continue // New left the cell missing
			}
			if err = g.Set(i, j, Present(d)); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// Markers returns M, the number of rows.
func (g *Matrix) Markers() int { return g.markers }

// Samples returns N, the number of columns.
func (g *Matrix) Samples() int { return g.samples }

func (g *Matrix) offset(op string, i, j int) (int, error) {
	if i < 0 || i >= g.markers || j < 0 || j >= g.samples {
		return 0, genotypeErrorf(op, i, j, ErrOutOfRange)
	}

	return i*g.samples + j, nil
}

// At returns the call of marker i for sample j.
func (g *Matrix) At(i, j int) (Call, error) {
	off, err := g.offset("At", i, j)
	if err != nil {
		return Call{}, err
	}

	return Call{Dosage: g.dosage[off], Present: g.present[off]}, nil
}

// Set stores c at (i, j). A missing call clears the stored dosage.
// Errors: ErrOutOfRange, ErrDosageOutOfRange.
func (g *Matrix) Set(i, j int, c Call) error {
	off, err := g.offset("Set", i, j)
	if err != nil {
		return err
	}
	if !c.Present {
		g.dosage[off], g.present[off] = 0, false
		return nil
	}
	if !validDosage(c.Dosage) {
		return genotypeErrorf("Set", i, j, ErrDosageOutOfRange)
	}
	if c.Dosage == 0 {
		c.Dosage = 0 // fold -0 so Fingerprint sees one bit pattern
	}
	g.dosage[off], g.present[off] = c.Dosage, true

	return nil
}

// Clone returns an independent deep copy.
func (g *Matrix) Clone() *Matrix {
	out := &Matrix{
		markers: g.markers,
		samples: g.samples,
		dosage:  make([]float64, len(g.dosage)),
		present: make([]bool, len(g.present)),
	}
	copy(out.dosage, g.dosage)
	copy(out.present, g.present)

	return out
}

// RowStats summarizes marker i over its present calls: the dosage sum, the
// number of present calls and whether every present dosage is identical.
// A row with no present calls reports (0, 0, false).
func (g *Matrix) RowStats(i int) (sum float64, present int, monomorphic bool, err error) {
	if i < 0 || i >= g.markers {
		return 0, 0, false, genotypeErrorf("RowStats", i, 0, ErrOutOfRange)
	}

	base := i * g.samples
	first := 0.0
	monomorphic = true
	for j := 0; j < g.samples; j++ {
		if !g.present[base+j] {
			continue
		}
		d := g.dosage[base+j]
		if present == 0 {
			first = d
		} else if d != first {
			monomorphic = false
		}
		sum += d
		present++
	}
	if present == 0 {
		monomorphic = false
	}

	return sum, present, monomorphic, nil
}

// AlleleFrequency returns p = mean(present dosages)/2 for marker i.
// ok is false when the row has no present calls; p is then 0.
func (g *Matrix) AlleleFrequency(i int) (p float64, ok bool, err error) {
	sum, n, _, err := g.RowStats(i)
	if err != nil || n == 0 {
		return 0, false, err
	}

	return sum / float64(n) / 2, true, nil
}

// Row copies marker i into dst (dosages, 0 for missing) and mask (presence).
// Both slices must have length Samples().
func (g *Matrix) Row(i int, dst []float64, mask []bool) error {
	if i < 0 || i >= g.markers {
		return genotypeErrorf("Row", i, 0, ErrOutOfRange)
	}
	if len(dst) != g.samples || len(mask) != g.samples {
		return genotypeErrorf("Row", i, len(dst), ErrInvalidShape)
	}
	base := i * g.samples
	copy(dst, g.dosage[base:base+g.samples])
	copy(mask, g.present[base:base+g.samples])

	return nil
}

// Fingerprint hashes shape, mask and dosage bits with xxhash64. Equal
// matrices always produce equal fingerprints.
func (g *Matrix) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(g.markers))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(g.samples))
	_, _ = h.Write(buf[:])

	for k, d := range g.dosage {
		if !g.present[k] {
			_, _ = h.Write([]byte{0})
			continue
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(d))
		_, _ = h.Write([]byte{1})
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}
