// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels behind Newton updates:
// matrix-vector product, partial-pivot LU factorization, linear solve and
// vector norms. All functions perform strict fail-fast validation and return
// clear errors on dimension mismatches, non-finite data and singular systems.
//
// Notes:
//   - All kernels use the central validators and wrap sentinels via matrixErrorf.
//   - *Dense operands hit a flat-slice fast path; other Matrix implementations
//     are ingested once through At in fixed i→j order.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMatVec = "MatVec"
	opLUP    = "LUP"
	opSolve  = "Solve"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
//
// AI-Hints:
//   - Handy to verify a Solve result: MatVec(A, x) ≈ b.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows) // allocate exactly rows outputs

	// Fast-path: *Dense allows flat, row-major dot-products.
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	// Fallback: interface-based dot-products via At.
	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// LUFactors holds a partial-pivot factorization P·A = L·U of an n×n matrix.
// L (unit lower) and U (upper) share one flat row-major buffer; the unit
// diagonal of L is implicit. perm[i] is the row of A that landed in row i.
type LUFactors struct {
	n    int
	lu   []float64
	perm []int
	sign float64 // +1/-1 parity of the row permutation
}

// ingest copies m into a fresh flat buffer (fast path for *Dense).
func ingest(m Matrix) ([]float64, error) {
	n := m.Rows()
	buf := make([]float64, n*m.Cols())
	if d, ok := m.(*Dense); ok {
		copy(buf, d.data)

		return buf, nil
	}
	var i, j int
	var v float64
	var err error
	for i = 0; i < n; i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			buf[i*m.Cols()+j] = v
		}
	}

	return buf, nil
}

// LUP computes the Doolittle factorization P·A = L·U with partial (row) pivoting.
// Implementation:
//   - Stage 1: Validate m (not nil, square, finite); ingest into a flat buffer.
//   - Stage 2: For k=0..n-1 pick the row with the largest |A[i,k]| (i ≥ k),
//     swap it into place, then eliminate below the pivot storing multipliers in L.
//
// Behavior highlights:
//   - Deterministic: ties in the pivot search keep the lowest row index.
//   - A column whose best pivot satisfies |p| <= eps·max|A| is singular.
//
// Inputs:
//   - m: square Matrix (n×n).
//   - opts: WithEpsilon sets the relative pivot tolerance (default DefaultEpsilon).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - Factor once and call (*LUFactors).Solve for many right-hand sides.
func LUP(m Matrix, opts ...Option) (*LUFactors, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opLUP, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opLUP, err)
	}
	o := gatherOptions(opts...)

	n := m.Rows()
	lu, err := ingest(m)
	if err != nil {
		return nil, matrixErrorf(opLUP, err)
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	// Scale of A for the relative pivot tolerance.
	scale := NormZero
	for _, v := range lu {
		scale = math.Max(scale, math.Abs(v))
	}
	if scale == NormZero {
		return nil, matrixErrorf(opLUP, ErrSingular)
	}
	tol := o.eps * scale

	var (
		i, j, k, p int
		best, l    float64
		sign       = 1.0
	)
	for k = 0; k < n; k++ {
		// Pivot search in column k.
		p, best = k, math.Abs(lu[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(lu[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best <= tol {
			return nil, matrixErrorf(opLUP, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				lu[k*n+j], lu[p*n+j] = lu[p*n+j], lu[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
			sign = -sign
		}

		// Eliminate below the pivot.
		for i = k + 1; i < n; i++ {
			l = lu[i*n+k] / lu[k*n+k]
			lu[i*n+k] = l
			if l == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				lu[i*n+j] -= l * lu[k*n+j]
			}
		}
	}

	return &LUFactors{n: n, lu: lu, perm: perm, sign: sign}, nil
}

// Solve returns x with A·x = b using the stored factors.
// Implementation:
//   - Stage 1: forward substitution L·y = P·b.
//   - Stage 2: backward substitution U·x = y.
//
// Errors:
//   - ErrNilMatrix / ErrDimensionMismatch for a bad b, ErrNaNInf for a
//     non-finite b or a solution that overflowed.
//
// Complexity: Time O(n^2), Space O(n).
func (f *LUFactors) Solve(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateFiniteVec(b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := f.n
	x := make([]float64, n)

	var i, k int
	var sum float64
	for i = 0; i < n; i++ {
		sum = b[f.perm[i]]
		for k = 0; k < i; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum
	}
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for k = i + 1; k < n; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum / f.lu[i*n+i]
	}
	if err := ValidateFiniteVec(x); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return x, nil
}

// Det returns det(A) = sign(P) · Π U[i,i].
// Complexity: O(n).
func (f *LUFactors) Det() float64 {
	det := f.sign
	for i := 0; i < f.n; i++ {
		det *= f.lu[i*f.n+i]
	}

	return det
}

// Solve computes x in A·x = b through LUP. Neither A nor b is mutated.
// Errors are those of LUP and (*LUFactors).Solve, wrapped with "Solve".
// Complexity: O(n^3).
func Solve(a Matrix, b []float64, opts ...Option) ([]float64, error) {
	f, err := LUP(a, opts...)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return f.Solve(b)
}

// Norm2 returns the Euclidean norm of x, scaled to avoid overflow.
// For len(x) == 1 it is exactly |x[0]|.
// Complexity: O(n).
func Norm2(x []float64) float64 {
	scale := NormInf(x)
	if scale == NormZero || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return scale
	}
	if len(x) == 1 {
		return scale
	}
	sum := ZeroSum
	for _, v := range x {
		r := v / scale
		sum += r * r
	}

	return scale * math.Sqrt(sum)
}

// NormInf returns max_i |x[i]| (NaN if any entry is NaN).
// Complexity: O(n).
func NormInf(x []float64) float64 {
	m := NormZero
	for _, v := range x {
		if math.IsNaN(v) {
			return math.NaN()
		}
		m = math.Max(m, math.Abs(v))
	}

	return m
}
