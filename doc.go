// Package genopca computes principal components of a genotype matrix by
// power iteration with deflation, and scores how well sample groups separate
// along the first two of them.
//
// 🧬 What is inside?
//
//	A small, deterministic numeric stack:
//		• Genotypes: masked dosage matrix with explicit per-cell missingness
//		• Covariance: allele-frequency normalization and psi = XᵀX / M'
//		• Power iteration: top-k eigenpairs with warm-started deflation
//		• Cluster scoring: inter-/intra-cluster distance ratio on PC1/PC2
//		• Pipeline: logging, Prometheus metrics and a covariance cache
//
// ✨ Guarantees
//
//   - Deterministic – equal seeds give bit-identical components
//   - Fail-fast – sentinel errors for every undefined result, no NaN downstream
//   - Non-mutating – inputs are never modified; solvers own their working copies
//
// Packages:
//
//	genotype/:   Matrix, Call, allele frequencies, fingerprints
//	matrix/:     row-major Dense, Mul/Transpose/Scale/MatVecTo, RankOneUpdate, validators
//	covariance/: Build(genotypes) → psi, Stats
//	power/:      Iterate, TopComponents, initializers
//	cluster/:    SeparationRatio, Score
//	metrics/:    Prometheus Recorder
//	pipeline/:   Analyzer facade
//
// Quick example:
//
//	g, _ := genotype.FromDosages(rows, -1)
//	a, _ := pipeline.New(pipeline.WithComponents(10), pipeline.WithSeed(1))
//	res, _ := a.Analyze(ctx, g)
//	report, _ := a.Separation(res, 3, 20) // report.Ratios per group
//
//	go get github.com/katalvlaran/genopca
package genopca
