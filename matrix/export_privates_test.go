// SPDX-License-Identifier: MIT

package matrix

// Test-Bridge (White-Box) for the options snapshot.
//
// Purpose:
//   - Expose the resolved internal Options to matrix_test without widening the prod API.
//
// Risks & Maintenance:
//   - Keep OptionsSnapshot in sync with internal Options fields.

// OptionsSnapshot is a read-only view of the resolved Options.
type OptionsSnapshot struct {
	Eps            float64
	ValidateNaNInf bool
}

// Panic message exports to avoid "magic strings" in tests.
const PanicEpsilonInvalid_TestOnly = panicEpsilonInvalid

// GatherOptionsSnapshot_TestOnly resolves opts over the defaults.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	o := gatherOptions(opts...)

	return OptionsSnapshot{Eps: o.eps, ValidateNaNInf: o.validateNaNInf}
}

// PermOf_TestOnly exposes the row permutation of an LU factorization.
func PermOf_TestOnly(f *LUFactors) []int {
	out := make([]int, len(f.perm))
	copy(out, f.perm)

	return out
}
