// Package power extracts the leading eigenpairs of a symmetric positive
// semi-definite matrix by power iteration with deflation.
//
// Each component is found by repeatedly forming b ← psi·b / ‖psi·b‖ until the
// mean squared change between iterates drops below Options.Tolerance. The
// Rayleigh quotient bᵀ·psi·b gives the eigenvalue, and the pair is removed
// from a private working copy with the rank-one update psi ← psi − λ·b·bᵀ
// before the next component starts from the previous vector.
//
// Contract:
//   - psi is square, finite and symmetric within Options.SymmetryTolerance.
//   - 1 ≤ Options.Count ≤ N.
//   - The caller's matrix is never mutated.
//
// Failure modes:
//   - Non-convergence is soft: the component is returned with Converged=false
//     and Result.Warnings reports it as a *NonConvergenceError.
//   - Everything else (invalid input, a vector that normalizes to zero/NaN,
//     cancellation) is a hard error.
//
// Determinism:
//   - With the default random initializer, equal Options.Seed values give
//     bit-identical results. Seed 0 maps to a fixed default seed; no
//     time-based randomness is used anywhere.
//
// Complexity:
//   - Time O(Count · iterations · N²), Space O(N²) for the working copy.
package power
