// Package matrix offers the dense linear-algebra primitives used by the
// genopca pipeline.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Kernels that allocate their result (Mul, Transpose, Scale) and
//     two that write into caller memory (MatVecTo, RankOneUpdate) for
//     power-iteration and deflation loops.
//   - Validators (ValidateNotNil, ValidateSquare, ValidateSymmetric,
//     ValidateFinite, ...) returning package sentinels.
//
// All loops run in a fixed i→j order, so a given input always produces
// bit-identical output.
package matrix
