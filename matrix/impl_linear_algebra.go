// SPDX-License-Identifier: MIT

// Package matrix - kernels over any Matrix.
//
// Every kernel validates its operands first and tags failures with its own
// name via matrixErrorf. *Dense operands take a flat-buffer path; any other
// Matrix goes through At/Set. Only RankOneUpdate writes to its input.

package matrix

import (
	"fmt"
	"math"
)

const (
	opMul           = "Mul"
	opTranspose     = "Transpose"
	opScale         = "Scale"
	opMatVec        = "MatVec"
	opRankOneUpdate = "RankOneUpdate"
)

// matrixErrorf prefixes a non-nil err with the kernel tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// cellErrorf records which accessor call failed inside a fallback loop.
func cellErrorf(tag, accessor string, i, j int, err error) error {
	return matrixErrorf(tag, fmt.Errorf("%s(%d,%d): %w", accessor, i, j, err))
}

// Mul returns a×b as a new Dense.
//
// For every output cell the products are summed over k in ascending order on
// both paths, so Mul(Transpose(x), x) comes out exactly symmetric.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*k*c) time, O(r*c) space.
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	da, okA := a.(*Dense)
	db, okB := b.(*Dense)
	if okA && okB {
		for i := 0; i < rows; i++ {
			out := res.data[i*cols : (i+1)*cols]
			for k, av := range da.data[i*inner : (i+1)*inner] {
				if av == 0 {
					continue
				}
				for j, bv := range db.data[k*cols : (k+1)*cols] {
					out[j] += av * bv
				}
			}
		}

		return res, nil
	}

	var av, bv float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum := 0.0
			for k := 0; k < inner; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, cellErrorf(opMul, "At", i, k, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, cellErrorf(opMul, "At", k, j, err)
				}
				sum += av * bv
			}
			res.data[i*cols+j] = sum
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a new Dense; m is left untouched.
// Errors: ErrNilMatrix.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	if dm, ok := m.(*Dense); ok {
		for idx, v := range dm.data {
			res.data[(idx%cols)*rows+idx/cols] = v
		}

		return res, nil
	}

	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, cellErrorf(opTranspose, "At", i, j, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns alpha·m as a new Dense.
// Errors: ErrNilMatrix, ErrNaNInf for a non-finite alpha.
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	res, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx := range res.data {
		res.data[idx] *= alpha
	}

	return res, nil
}

// MatVecTo writes m·x into dst without allocating. dst needs length
// m.Rows() and must not alias x; the power loop calls this once per step.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func MatVecTo(dst []float64, m Matrix, x []float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(dst, m.Rows()); err != nil {
		return matrixErrorf(opMatVec, err)
	}

	rows, cols := m.Rows(), m.Cols()
	if d, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			sum := 0.0
			for j, mv := range d.data[i*cols : (i+1)*cols] {
				if x[j] != 0 {
					sum += mv * x[j]
				}
			}
			dst[i] = sum
		}

		return nil
	}

	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			mv, err := m.At(i, j)
			if err != nil {
				return cellErrorf(opMatVec, "At", i, j, err)
			}
			sum += mv * x[j]
		}
		dst[i] = sum
	}

	return nil
}

// RankOneUpdate adds alpha·x·yᵀ to m in place. Deflation calls it with
// alpha = -λ and x = y = b on its working copy.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf for a non-finite alpha.
// Complexity: O(r*c) time, no allocation.
func RankOneUpdate(m *Dense, alpha float64, x, y []float64) error {
	if m == nil {
		return matrixErrorf(opRankOneUpdate, ErrNilMatrix)
	}
	if err := ValidateVecLen(x, m.r); err != nil {
		return matrixErrorf(opRankOneUpdate, err)
	}
	if err := ValidateVecLen(y, m.c); err != nil {
		return matrixErrorf(opRankOneUpdate, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return matrixErrorf(opRankOneUpdate, ErrNaNInf)
	}

	for i, xi := range x {
		ax := alpha * xi
		if ax == 0 {
			continue
		}
		row := m.data[i*m.c : (i+1)*m.c]
		for j, yj := range y {
			row[j] += ax * yj
		}
	}

	return nil
}

// AsDense returns a *Dense copy of m that the caller may mutate.
func AsDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		return d.cloneDense(), nil
	}

	rows, cols := m.Rows(), m.Cols()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*cols+j] = v
		}
	}

	return out, nil
}
