// Package power - start-vector sources.
//
// Determinism:
//   - seed==0 maps to defaultRNGSeed; any other seed is used verbatim.
//   - No time-based sources anywhere: equal seeds give equal vectors.
//
// Concurrency:
//   - RandomInitializer wraps a *rand.Rand and is NOT goroutine-safe;
//     Fork hands each run its own stream restarted from the same seed.
package power

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/genopca/matrix"
)

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// Initializer produces a start vector of length n. The vector need not be
// normalized; the solver normalizes it.
type Initializer interface {
	Init(n int) ([]float64, error)
}

// Forker is implemented by stateful initializers. Fork returns an
// independent initializer in the state the receiver was created in.
type Forker interface {
	Fork() Initializer
}

// RandomInitializer draws each coordinate uniformly from [0, 1).
// Successive Init calls continue the same stream.
type RandomInitializer struct {
	seed int64
	rng  *rand.Rand
}

// NewRandomInitializer returns an initializer seeded with seed (0 ⇒ default seed).
func NewRandomInitializer(seed int64) *RandomInitializer {
	return &RandomInitializer{seed: seed, rng: rngFromSeed(seed)}
}

// Fork implements Forker: a fresh stream from the same seed.
func (r *RandomInitializer) Fork() Initializer {
	return NewRandomInitializer(r.seed)
}

// Init implements Initializer.
func (r *RandomInitializer) Init(n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("power: Init(%d): %w", n, matrix.ErrInvalidDimensions)
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = r.rng.Float64()
	}

	return v, nil
}

// FixedInitializer always returns a copy of the same vector.
type FixedInitializer []float64

// Init implements Initializer.
func (f FixedInitializer) Init(n int) ([]float64, error) {
	if len(f) != n {
		return nil, fmt.Errorf("power: Init(%d) from fixed vector of length %d: %w",
			n, len(f), matrix.ErrDimensionMismatch)
	}
	v := make([]float64, n)
	copy(v, f)

	return v, nil
}
