// SPDX-License-Identifier: MIT

// Package matrix - row-major Dense storage.
//
// Layout:
//   - One flat buffer per matrix, cell (i,j) at offset i*cols + j.
//   - At/Set are bounds-checked and report errors, they never panic.
//   - Set rejects NaN/±Inf while the finite-only guard is on (the default).
//
// Cost: NewDense and Clone are O(r*c); At and Set are O(1).

package matrix

import (
	"fmt"
	"math"
)

const (
	// DefaultEpsilon is the symmetry tolerance used when callers pass none.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf is the finite-only guard given to new matrices.
	DefaultValidateNaNInf = true
)

const (
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxFromRow = "NewFromRows"
)

// denseErrorf tags err as "Dense.<method>(row,col)".
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major float64 matrix.
type Dense struct {
	r, c           int
	data           []float64 // len == r*c
	validateNaNInf bool      // Set refuses non-finite values when true
}

var _ Matrix = (*Dense)(nil)

// NewDense returns a zero rows×cols matrix.
// Errors: ErrInvalidDimensions unless both dimensions are positive.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewFromRows copies a rectangular [][]float64 into a new Dense.
//
// Errors:
//   - ErrInvalidDimensions for empty or ragged input.
//   - ErrNaNInf, tagged with the offending cell, for non-finite entries.
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])
	m, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		if len(row) != c {
			return nil, denseErrorf(ctxFromRow, i, len(row), ErrInvalidDimensions)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(ctxFromRow, i, j, ErrNaNInf)
			}
		}
		copy(m.data[i*c:(i+1)*c], row)
	}

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) offset(row, col int) (int, bool) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, false
	}

	return row*m.c + col, true
}

// At returns cell (row, col), or ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	off, ok := m.offset(row, col)
	if !ok {
		return 0, denseErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return m.data[off], nil
}

// Set writes v to cell (row, col).
// Errors: ErrOutOfRange, or ErrNaNInf when the finite-only guard is on.
func (m *Dense) Set(row, col int, v float64) error {
	off, ok := m.offset(row, col)
	if !ok {
		return denseErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy with the same guard setting.
func (m *Dense) Clone() Matrix {
	return m.cloneDense()
}

func (m *Dense) cloneDense() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, validateNaNInf: m.validateNaNInf}
}

// Do calls f(i, j, v) for every cell in row-major order until f returns false.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	for idx, v := range m.data {
		if !f(idx/m.c, idx%m.c, v) {
			return
		}
	}
}
