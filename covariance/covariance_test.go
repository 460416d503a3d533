package covariance_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/genopca/covariance"
	"github.com/katalvlaran/genopca/genotype"
	"github.com/katalvlaran/genopca/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const (
	miss = -1 // missing marker used by fixtures
	tol  = 1e-12
)

func mustGenotypes(t *testing.T, rows [][]float64) *genotype.Matrix {
	t.Helper()
	g, err := genotype.FromDosages(rows, miss)
	require.NoError(t, err)

	return g
}

func requireMatrix(t *testing.T, want [][]float64, got matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), got.Rows())
	require.Equal(t, len(want[0]), got.Cols())
	for i := range want {
		for j := range want[i] {
			v, err := got.At(i, j)
			require.NoError(t, err)
			assert.InDeltaf(t, want[i][j], v, tol, "psi[%d][%d]", i, j)
		}
	}
}

// TestBuild_MonomorphicRowDropped: rows [0,2,0,2] and [1,1,1,1]; only the first contributes.
func TestBuild_MonomorphicRowDropped(t *testing.T) {
	g := mustGenotypes(t, [][]float64{
		{0, 2, 0, 2},
		{1, 1, 1, 1},
	})

	psi, stats, err := covariance.Build(g, covariance.DefaultOptions())
	require.NoError(t, err)

	// X row 0 = [-√2, √2, -√2, √2]; psi = xᵀx / 1.
	requireMatrix(t, [][]float64{
		{2, -2, 2, -2},
		{-2, 2, -2, 2},
		{2, -2, 2, -2},
		{-2, 2, -2, 2},
	}, psi)
	assert.Equal(t, []int{0}, stats.Kept)
	assert.Equal(t, 1, stats.Divisor())
	assert.Equal(t, 1, stats.Monomorphic)
	assert.Equal(t, []float64{0.5, 0.5}, stats.Frequencies)
}

// TestBuild_AllIdentical covers inputs where every marker has zero variance.
func TestBuild_AllIdentical(t *testing.T) {
	for _, d := range []float64{0, 1, 2} {
		g := mustGenotypes(t, [][]float64{
			{d, d, d},
			{d, d, d},
		})
		_, _, err := covariance.Build(g, covariance.DefaultOptions())
		assert.ErrorIsf(t, err, covariance.ErrDegenerateInput, "dosage %v", d)
	}
}

// TestBuild_MissingCellsMeanImputed checks missing cells contribute zero deviation.
func TestBuild_MissingCellsMeanImputed(t *testing.T) {
	g := mustGenotypes(t, [][]float64{{0, miss, 2, 2}})

	psi, stats, err := covariance.Build(g, covariance.DefaultOptions())
	require.NoError(t, err)

	// p = 2/3, SD = 2/3, X = [-2, 0, 1, 1].
	assert.InDelta(t, 2.0/3.0, stats.Frequencies[0], tol)
	assert.InDelta(t, 2.0/3.0, stats.StdDevs[0], tol)
	requireMatrix(t, [][]float64{
		{4, 0, -2, -2},
		{0, 0, 0, 0},
		{-2, 0, 1, 1},
		{-2, 0, 1, 1},
	}, psi)
}

// TestBuild_MonomorphicAmongPresent drops rows whose present calls all agree.
func TestBuild_MonomorphicAmongPresent(t *testing.T) {
	g := mustGenotypes(t, [][]float64{
		{1, miss, 1, 1},
		{0, 1, 2, 1},
	})

	_, stats, err := covariance.Build(g, covariance.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, stats.Kept)
	assert.Equal(t, 1, stats.Monomorphic)
}

func TestBuild_MissingRowPolicies(t *testing.T) {
	rows := [][]float64{
		{0, 2, 0, 2},
		{miss, miss, miss, miss},
	}

	t.Run("reject", func(t *testing.T) {
		_, _, err := covariance.Build(mustGenotypes(t, rows), covariance.Options{MissingRows: covariance.RejectMissingRows})
		require.ErrorIs(t, err, covariance.ErrAllMissingMarker)
		assert.Contains(t, err.Error(), "marker 1")
	})

	t.Run("drop", func(t *testing.T) {
		psi, stats, err := covariance.Build(mustGenotypes(t, rows), covariance.Options{MissingRows: covariance.DropMissingRows})
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Divisor())
		assert.Equal(t, 1, stats.AllMissing)
		assert.Equal(t, covariance.MissingFrequency, stats.Frequencies[1])
		assert.True(t, math.IsNaN(stats.StdDevs[1]))
		v, _ := psi.At(0, 0)
		assert.InDelta(t, 2.0, v, tol)
	})

	t.Run("zero-fill", func(t *testing.T) {
		psi, stats, err := covariance.Build(mustGenotypes(t, rows), covariance.Options{MissingRows: covariance.ZeroFillMissingRows})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, stats.Kept)
		v, _ := psi.At(0, 0)
		assert.InDelta(t, 1.0, v, tol, "zero row counts in the divisor")
	})

	t.Run("zero-fill only", func(t *testing.T) {
		g := mustGenotypes(t, [][]float64{{miss, miss}})
		_, _, err := covariance.Build(g, covariance.Options{MissingRows: covariance.ZeroFillMissingRows})
		assert.ErrorIs(t, err, covariance.ErrDegenerateInput)
	})
}

func TestBuild_InvalidInput(t *testing.T) {
	_, _, err := covariance.Build(nil, covariance.DefaultOptions())
	assert.ErrorIs(t, err, covariance.ErrNilGenotypes)

	g := mustGenotypes(t, [][]float64{{0, 2}})
	_, _, err = covariance.Build(g, covariance.Options{MissingRows: covariance.MissingRowPolicy(9)})
	assert.ErrorIs(t, err, covariance.ErrInvalidPolicy)
	assert.Contains(t, err.Error(), "MissingRowPolicy(9)")
}

// TestBuild_MatchesReference compares against a direct gonum computation on
// random complete genotypes, and checks the input is left untouched.
func TestBuild_MatchesReference(t *testing.T) {
	const markers, samples = 40, 9
	rng := rand.New(rand.NewSource(5))
	rows := make([][]float64, markers)
	for i := range rows {
		rows[i] = make([]float64, samples)
		for j := range rows[i] {
			rows[i][j] = float64(rng.Intn(3))
		}
	}
	g := mustGenotypes(t, rows)
	before := g.Fingerprint()

	psi, stats, err := covariance.Build(g, covariance.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, before, g.Fingerprint())
	require.NoError(t, matrix.ValidateSymmetric(psi, 0))

	x := mat.NewDense(len(stats.Kept), samples, nil)
	for r, i := range stats.Kept {
		p := stats.Frequencies[i]
		sd := math.Sqrt(2 * p * (1 - p))
		for j := 0; j < samples; j++ {
			x.Set(r, j, (rows[i][j]-2*p)/sd)
		}
	}
	var want mat.Dense
	want.Mul(x.T(), x)
	want.Scale(1/float64(len(stats.Kept)), &want)

	for i := 0; i < samples; i++ {
		v, _ := psi.At(i, i)
		assert.GreaterOrEqual(t, v, 0.0, "diagonal of a Gram matrix")
		for j := 0; j < samples; j++ {
			v, _ = psi.At(i, j)
			assert.InDelta(t, want.At(i, j), v, 1e-9)
		}
	}
}

func TestMissingRowPolicy_String(t *testing.T) {
	assert.Equal(t, "reject", covariance.RejectMissingRows.String())
	assert.Equal(t, "drop", covariance.DropMissingRows.String())
	assert.Equal(t, "zero-fill", covariance.ZeroFillMissingRows.String())
}
