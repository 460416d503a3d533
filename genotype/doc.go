// Package genotype holds a markers × samples genotype matrix with an explicit
// per-cell missingness mask.
//
// Each cell is a Call: a minor-allele dosage in [0,2] plus a Present flag.
// Missing cells are never encoded as numeric sentinels, and every reduction
// in this package (row sums, allele frequencies, monomorphism checks) skips
// them explicitly.
//
// Usage:
//
//	g, err := genotype.FromDosages([][]float64{
//		{0, 1, 2, -1},
//		{2, 2, 1, 0},
//	}, -1) // -1 marks a missing call
//	p, ok, err := g.AlleleFrequency(0) // p = (0+1+2)/3/2 = 0.5, ok = true
//
// Matrices are not safe for concurrent mutation; read-only sharing is fine.
package genotype
