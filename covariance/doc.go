// Package covariance builds the normalized genetic relationship matrix psi
// from a masked genotype matrix.
//
// Algorithm (M markers × N samples in, N×N out):
//
//  1. p[i]  = mean of the present dosages of marker i, divided by 2.
//  2. SD[i] = sqrt(2·p·(1−p)) (Hardy–Weinberg).
//  3. X[i,j] = (G[i,j] − 2p[i]) / SD[i]; missing cells become 0 after
//     normalizing, i.e. they are mean-imputed.
//  4. Monomorphic markers (SD == 0, or all present dosages equal) are dropped.
//  5. psi = XᵀX / M', where M' counts the surviving rows.
//
// Markers with no present call at all are handled per MissingRowPolicy.
// Build is a pure function: the input is never mutated.
//
// Complexity: O(M·N) normalization plus O(M'·N²) for XᵀX.
package covariance
