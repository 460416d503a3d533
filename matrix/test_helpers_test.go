// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic test fixtures and utilities for kernels.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/genopca/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the At/Set fallback paths of the kernels under test.
type hide struct{ matrix.Matrix }

// mustFromRows builds a *Dense from literal rows or fails the test.
func mustFromRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(tb, err)

	return m
}

// mustDense allocates an r×c zero *Dense or fails the test.
func mustDense(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(tb, err)

	return m
}

// fillDenseRand fills m with deterministic uniform values in [-1, 1).
func fillDenseRand(tb testing.TB, m *matrix.Dense, seed int64) {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			require.NoError(tb, m.Set(i, j, 2*rng.Float64()-1))
		}
	}
}

// requireSameMatrix asserts a and b have equal shape and element-wise values within tol.
func requireSameMatrix(tb testing.TB, a, b matrix.Matrix, tol float64) {
	tb.Helper()
	require.Equal(tb, a.Rows(), b.Rows(), "row count")
	require.Equal(tb, a.Cols(), b.Cols(), "col count")
	var i, j int
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			av, err := a.At(i, j)
			require.NoError(tb, err)
			bv, err := b.At(i, j)
			require.NoError(tb, err)
			require.InDeltaf(tb, av, bv, tol, "mismatch at (%d,%d)", i, j)
		}
	}
}
