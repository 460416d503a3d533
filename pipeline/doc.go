// Package pipeline wires the numeric packages into one analysis:
//
//	genotype.Matrix → covariance.Build → power.TopComponentsContext → cluster.Score
//
// An Analyzer adds what the numeric packages leave out: structured logging
// with zerolog, Prometheus metrics through metrics.Recorder, and an LRU cache
// of covariance matrices keyed by genotype fingerprint, so repeated analyses
// of the same genotypes (for example with different seeds) skip the O(M·N²) build.
//
// An Analyzer is safe for concurrent use.
package pipeline
