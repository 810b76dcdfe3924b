// Package lvsolve is a small numerical toolkit for solving f(x) = 0, from
// one-dimensional brackets to square nonlinear systems.
//
// 🚀 What is lvsolve?
//
//	A pure-Go library plus a command-line front end that brings together:
//		• Bracketing methods: Bisection, Regula Falsi
//		• Open methods: Secant, Newton (scalar and multivariate)
//		• Globalized Newton: step halving until the residual norm decreases
//		• Linear algebra: dense matrices, partial-pivot LU, Solve, vector norms
//
// ✨ Why choose lvsolve?
//
//   - Honest results – every call reports a Status and the final residual,
//     so an exhausted budget never passes for convergence
//   - Explicit derivatives – ScalarDivide(df) or MatrixSolve(jac), chosen by you
//   - Traceable – iterates and function values are recorded by default
//   - Observable – plug any Reporter in, or log through zap
//
// Under the hood, everything is organized under these packages:
//
//	rootfind/         : Bisect, Secant, RegulaFalsi, Newton, GuardedNewton
//	matrix/           : Dense, validators, LUP / Solve, Norm2 / NormInf
//	cmd/rootfind/     : CLI: expressions in, roots and trace tables out
//	internal/oracle/  : compiles CLI expressions into rootfind oracles
//	internal/log/     : zap logger setup for the CLI
//
// Quick example:
//
//	res, err := rootfind.Secant(func(x float64) float64 { return x*x - 2 }, 1, 2, 1e-10)
//	// res.X ≈ 1.4142135624, res.Status == rootfind.StatusConverged
//
//	go get github.com/katalvlaran/lvsolve/rootfind
package lvsolve
