// Package matrix offers the small dense linear-algebra core used by the
// Newton solvers in lvsolve.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Central validators (nil, square, vector length, finiteness).
//   - LUP, a partial-pivot LU factorization, and Solve, which uses it to
//     compute x in A·x = b. Singular systems surface ErrSingular.
//   - MatVec and the vector norms Norm2 / NormInf used for residual tests.
//
// Matrices here are small (the dimension of a nonlinear system), so every
// kernel favors determinism and clear errors over blocking or SIMD tricks.
//
// See example_test.go for usage patterns.
package matrix
