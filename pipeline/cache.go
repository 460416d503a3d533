package pipeline

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/genopca/covariance"
	"github.com/katalvlaran/genopca/matrix"
)

type cacheKey struct {
	fingerprint      uint64
	markers, samples int
	policy           covariance.MissingRowPolicy
}

type cacheEntry struct {
	psi   *matrix.Dense
	stats *covariance.Stats
}

// psiCache is a fixed-size LRU of covariance builds. A nil *psiCache never hits.
type psiCache struct {
	lru *lru.Cache[cacheKey, cacheEntry]
}

func newPsiCache(size int) (*psiCache, error) {
	if size == 0 {
		return nil, nil
	}
	c, err := lru.New[cacheKey, cacheEntry](size)
	if err != nil {
		return nil, err
	}

	return &psiCache{lru: c}, nil
}

// get returns private copies of a cached build.
func (c *psiCache) get(k cacheKey) (*matrix.Dense, *covariance.Stats, bool) {
	if c == nil {
		return nil, nil, false
	}
	e, ok := c.lru.Get(k)
	if !ok {
		return nil, nil, false
	}
	psi, err := matrix.AsDense(e.psi)
	if err != nil {
		return nil, nil, false
	}

	return psi, cloneStats(e.stats), true
}

// add stores private copies of a build.
func (c *psiCache) add(k cacheKey, psi *matrix.Dense, stats *covariance.Stats) error {
	if c == nil {
		return nil
	}
	cp, err := matrix.AsDense(psi)
	if err != nil {
		return err
	}
	c.lru.Add(k, cacheEntry{psi: cp, stats: cloneStats(stats)})

	return nil
}

func (c *psiCache) len() int {
	if c == nil {
		return 0
	}

	return c.lru.Len()
}

func cloneStats(s *covariance.Stats) *covariance.Stats {
	return &covariance.Stats{
		Frequencies: append([]float64(nil), s.Frequencies...),
		StdDevs:     append([]float64(nil), s.StdDevs...),
		Kept:        append([]int(nil), s.Kept...),
		Monomorphic: s.Monomorphic,
		AllMissing:  s.AllMissing,
	}
}
