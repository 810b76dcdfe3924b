// Package rootfind solves f(x) = 0 for scalar functions of one variable and
// for square nonlinear systems F(x) = 0.
//
// 🚀 What is inside?
//
//	Five classic iterative methods sharing one shape: iterate until a
//	stopping predicate holds or an iteration budget is spent.
//	  • Bisect       : halves a sign-changing bracket [a,b]
//	  • Secant       : derivative-free two-point interpolation
//	  • RegulaFalsi  : secant interpolation on a kept bracket
//	  • Newton       : x ← x − J(x)⁻¹F(x), scalar or multivariate
//	  • GuardedNewton: Newton with step halving until ‖F‖ decreases
//
// ✨ Key features:
//   - Explicit linear update: ScalarDivide(df) for 1-D, MatrixSolve(jac)
//     for systems (partial-pivot LU from lvsolve/matrix). No runtime type
//     sniffing of the derivative.
//   - Every result carries a Status (converged, exact root, budget exhausted,
//     stalled) and the final residual, so a spent budget never looks like success.
//   - Iteration traces Xs/FVals with FVals[i] == f(Xs[i]) exactly; switch them
//     off with WithTrace(false).
//   - Diagnostics go to an injected Reporter (NewZapReporter adapts zap);
//     reporting never changes control flow or results.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lvsolve/rootfind"
//
//	res, err := rootfind.Bisect(func(x float64) float64 { return x*x - 2 }, 0, 2, 1e-6)
//	if err != nil {
//	  // errors.Is(err, rootfind.ErrInvalidBracket) ...
//	}
//	fmt.Println(res.X, res.Status)
//
// Errors:
//   - ErrInvalidBracket  : endpoints do not straddle a root.
//   - ErrSingularUpdate  : zero denominator / derivative, singular Jacobian.
//   - ErrNonFinite       : an oracle produced NaN or ±Inf.
//   - ErrBadTolerance, ErrNilFunc, ErrDimensionMismatch: invalid input.
//
// Concurrency: every call is self-contained; concurrent calls are safe as long
// as the supplied oracles are.
package rootfind
