package power_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/genopca/matrix"
	"github.com/katalvlaran/genopca/power"
)

// spectrumMatrix builds the symmetric matrix Q·diag(lambda)·Q with a
// Householder reflector Q drawn from seed. Columns of Q are the eigenvectors.
func spectrumMatrix(tb testing.TB, lambda []float64, seed int64) *matrix.Dense {
	tb.Helper()
	n := len(lambda)
	rng := rand.New(rand.NewSource(seed))
	v := make([]float64, n)
	var vv float64
	for i := range v {
		v[i] = rng.Float64() - 0.5
		vv += v[i] * v[i]
	}
	q := make([][]float64, n)
	for i := range q {
		q[i] = make([]float64, n)
		for j := range q[i] {
			q[i][j] = -2 * v[i] * v[j] / vv
		}
		q[i][i]++
	}

	a, err := matrix.NewDense(n, n)
	require.NoError(tb, err)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var s float64
			for k := 0; k < n; k++ {
				s += q[i][k] * lambda[k] * q[j][k]
			}
			require.NoError(tb, a.Set(i, j, s))
			require.NoError(tb, a.Set(j, i, s))
		}
	}

	return a
}

// powersOfTwo returns 2^(n-1), ..., 2, 1.
func powersOfTwo(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Ldexp(1, n-1-i)
	}

	return out
}

func mustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(tb, err)

	return m
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

// sequenceInitializer hands out its vectors in order, then repeats the last one.
type sequenceInitializer struct {
	vectors [][]float64
	calls   int
}

func (s *sequenceInitializer) Init(n int) ([]float64, error) {
	i := s.calls
	if i >= len(s.vectors) {
		i = len(s.vectors) - 1
	}
	s.calls++

	return power.FixedInitializer(s.vectors[i]).Init(n)
}

// slowInitializer sleeps before delegating, so a short Timeout expires first.
type slowInitializer struct {
	delay time.Duration
	next  power.Initializer
}

func (s slowInitializer) Init(n int) ([]float64, error) {
	time.Sleep(s.delay)

	return s.next.Init(n)
}

type recordingObserver struct {
	components []power.Component
	elapsed    []time.Duration
}

func (r *recordingObserver) ObserveComponent(c power.Component, d time.Duration) {
	r.components = append(r.components, c)
	r.elapsed = append(r.elapsed, d)
}
