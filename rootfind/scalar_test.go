package rootfind_test

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvsolve/rootfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sq2 is x² − 2, root √2.
func sq2(x float64) float64 { return x*x - 2 }

// assertTraceConsistent checks FVals[i] == f(Xs[i]) for every recorded point.
func assertTraceConsistent(t *testing.T, f rootfind.Func, res *rootfind.Result) {
	t.Helper()
	require.Len(t, res.FVals, len(res.Xs), "Xs and FVals must have equal length")
	for i, x := range res.Xs {
		assert.Equal(t, f(x), res.FVals[i], "FVals[%d] must equal f(Xs[%d])", i, i)
	}
}

// TestBisect_Sqrt2 finds √2 on [0,2] and checks the bracket width and trace.
func TestBisect_Sqrt2(t *testing.T) {
	res, err := rootfind.Bisect(sq2, 0, 2, 1e-6)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, res.X, 1e-6, "root estimate")
	assert.Equal(t, rootfind.StatusConverged, res.Status)
	assert.True(t, res.Converged())
	assert.LessOrEqual(t, res.Width, 1e-6, "final bracket width")
	assert.Equal(t, 21, res.Iterations, "2/2^21 is the first width <= 1e-6")
	assert.Len(t, res.Xs, res.Iterations+1, "trace holds a plus every midpoint")
	assert.Equal(t, 0.0, res.Xs[0], "trace starts at a")
	assert.InDelta(t, math.Abs(sq2(res.X)), res.Residual, 0, "residual is |f(X)|")
	assertTraceConsistent(t, sq2, res)
}

// TestBisect_InvalidBracket expects a BracketError when f(a), f(b) share a sign.
func TestBisect_InvalidBracket(t *testing.T) {
	f := func(x float64) float64 { return x + 1 } // f(0)=1, f(2)=3
	res, err := rootfind.Bisect(f, 0, 2, 1e-6)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, rootfind.ErrInvalidBracket)

	var be rootfind.BracketError
	require.True(t, errors.As(err, &be), "error must carry the bracket")
	assert.Equal(t, 0.0, be.A)
	assert.Equal(t, 2.0, be.B)
	assert.Equal(t, 1.0, be.FA)
	assert.Equal(t, 3.0, be.FB)
}

// TestBisect_ExactEndpoint returns an endpoint root immediately with a singleton trace.
func TestBisect_ExactEndpoint(t *testing.T) {
	f := func(x float64) float64 { return x - 2 }
	res, err := rootfind.Bisect(f, 0, 2, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.X)
	assert.Equal(t, rootfind.StatusExactRoot, res.Status)
	assert.Equal(t, []float64{2}, res.Xs)
	assert.Equal(t, []float64{0}, res.FVals)
	assert.Zero(t, res.Iterations)

	res, err = rootfind.Bisect(func(x float64) float64 { return x }, 0, 5, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.X)
	assert.Equal(t, rootfind.StatusExactRoot, res.Status)
}

// TestBisect_ExactMidpoint stops as soon as a midpoint is an exact root.
func TestBisect_ExactMidpoint(t *testing.T) {
	f := func(x float64) float64 { return x - 1 }
	res, err := rootfind.Bisect(f, 0, 2, 1e-12)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.X)
	assert.Equal(t, rootfind.StatusExactRoot, res.Status)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, []float64{0, 1}, res.Xs)
}

// TestBisect_Budget stops early and says so.
func TestBisect_Budget(t *testing.T) {
	res, err := rootfind.Bisect(sq2, 0, 2, 1e-12, rootfind.WithMaxIter(5))
	require.NoError(t, err)
	assert.Equal(t, rootfind.StatusBudgetExhausted, res.Status)
	assert.False(t, res.Converged())
	assert.Equal(t, 5, res.Iterations)
	assert.InDelta(t, 2.0/32, res.Width, 1e-15)
}

// TestBisect_Stalled hits the adjacent-float floor before a tiny eps is met.
func TestBisect_Stalled(t *testing.T) {
	res, err := rootfind.Bisect(sq2, 1, 2, 1e-300)
	require.NoError(t, err)
	assert.Equal(t, rootfind.StatusStalled, res.Status)
	assert.InDelta(t, math.Sqrt2, res.X, 1e-15)
	assert.Less(t, res.Iterations, 64, "a float64 bracket collapses in ~52 halvings")
}

// TestBisect_NonFinite rejects NaN oracle values and inputs.
func TestBisect_NonFinite(t *testing.T) {
	_, err := rootfind.Bisect(func(float64) float64 { return math.NaN() }, 0, 1, 1e-6)
	assert.ErrorIs(t, err, rootfind.ErrNonFinite)

	_, err = rootfind.Bisect(sq2, math.Inf(-1), 2, 1e-6)
	assert.ErrorIs(t, err, rootfind.ErrNonFinite)

	// Pole inside the bracket: 1/(x-1) changes sign across x=1 and blows up there.
	_, err = rootfind.Bisect(func(x float64) float64 { return 1 / (x - 1) }, 0, 2, 1e-6)
	assert.ErrorIs(t, err, rootfind.ErrNonFinite)
}

// TestSecant_Sqrt2 reaches |f| < 1e-10 from x0=1, x1=2.
func TestSecant_Sqrt2(t *testing.T) {
	res, err := rootfind.Secant(sq2, 1, 2, 1e-10)
	require.NoError(t, err)
	assert.InDelta(t, 1.4142135624, res.X, 1e-10)
	assert.Less(t, res.Residual, 1e-10)
	assert.Equal(t, rootfind.StatusConverged, res.Status)
	assert.Equal(t, []float64{1, 2}, res.Xs[:2], "trace starts with both guesses")
	assert.Len(t, res.Xs, res.Iterations+2)
	assertTraceConsistent(t, sq2, res)
}

// TestSecant_EqualGuesses fails with ErrSingularUpdate on x0 == x1.
func TestSecant_EqualGuesses(t *testing.T) {
	res, err := rootfind.Secant(sq2, 1, 1, 1e-10)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, rootfind.ErrSingularUpdate)

	// Symmetric points of an even function give f(x0) == f(x1) too.
	_, err = rootfind.Secant(sq2, -1, 1, 1e-10)
	assert.ErrorIs(t, err, rootfind.ErrSingularUpdate)
}

// TestSecant_ExactGuess returns at once when x1 is an exact root.
func TestSecant_ExactGuess(t *testing.T) {
	f := func(x float64) float64 { return x - 3 }
	res, err := rootfind.Secant(f, 0, 3, 1e-10)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.X)
	assert.Equal(t, rootfind.StatusExactRoot, res.Status)
	assert.Zero(t, res.Iterations)
}

// TestSecant_ExactFirstGuess returns x0 untouched instead of stepping away from it.
func TestSecant_ExactFirstGuess(t *testing.T) {
	f := func(x float64) float64 { return x - 0.1 }
	res, err := rootfind.Secant(f, 0.1, 0.7, 1e-30)
	require.NoError(t, err)
	assert.Equal(t, 0.1, res.X)
	assert.Equal(t, rootfind.StatusExactRoot, res.Status)
	assert.Zero(t, res.Iterations)
	assert.Equal(t, []float64{0.1}, res.Xs)
	assert.Equal(t, []float64{0}, res.FVals)

	off, err := rootfind.Secant(f, 0.1, 0.7, 1e-30, rootfind.WithTrace(false))
	require.NoError(t, err)
	assert.Equal(t, 0.1, off.X)
	assert.Nil(t, off.Xs)
}

// TestSecant_BudgetExhausted is not an error; Residual tells the story.
func TestSecant_BudgetExhausted(t *testing.T) {
	res, err := rootfind.Secant(sq2, 1, 2, 1e-10, rootfind.WithMaxIter(2))
	require.NoError(t, err)
	assert.Equal(t, rootfind.StatusBudgetExhausted, res.Status)
	assert.Equal(t, 2, res.Iterations)
	assert.GreaterOrEqual(t, res.Residual, 1e-10)
	assert.Len(t, res.Xs, 4)
}

// TestRegulaFalsi_Sqrt2 converges or stalls next to √2, never leaving the bracket.
func TestRegulaFalsi_Sqrt2(t *testing.T) {
	res, err := rootfind.RegulaFalsi(sq2, 0, 2, 1e-9)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, res.X, 1e-9)
	assert.Contains(t, []rootfind.Status{rootfind.StatusConverged, rootfind.StatusStalled}, res.Status)
	for _, x := range res.Xs {
		assert.True(t, x >= 0 && x <= 2, "iterate %g left the bracket", x)
	}
	assertTraceConsistent(t, sq2, res)
}

// TestRegulaFalsi_OneSidedStall ends on a convex function whose far endpoint never moves.
func TestRegulaFalsi_OneSidedStall(t *testing.T) {
	f := func(x float64) float64 { return math.Exp(x) - 2 }
	res, err := rootfind.RegulaFalsi(f, 0, 10, 1e-12)
	require.NoError(t, err)
	assert.Contains(t, []rootfind.Status{rootfind.StatusStalled, rootfind.StatusBudgetExhausted}, res.Status)
	assert.False(t, res.Converged())
	assert.Greater(t, res.Width, 1e-12, "the far endpoint keeps the bracket wide")
	assert.InDelta(t, math.Ln2, res.X, 1e-9)
}

// TestBracket_ResidualAndWidth sweeps monotone functions and brackets: the
// estimate never does worse than the endpoints, and a converged run ends with
// a bracket narrower than eps.
func TestBracket_ResidualAndWidth(t *testing.T) {
	cubic := func(x float64) float64 { return x*x*x - 2*x - 5 }
	tests := []struct {
		name string
		f    rootfind.Func
		a, b float64
	}{
		{"sqrt2", sq2, 0, 2},
		{"sqrt2-reversed", sq2, 3, 1},
		{"cubic", cubic, 1, 3},
		{"cos", math.Cos, 0, 3},
		{"exp", func(x float64) float64 { return math.Exp(x) - 2 }, -1, 3},
		{"atan-shifted", func(x float64) float64 { return math.Atan(x - 0.3) }, -5, 7},
		{"linear-third", func(x float64) float64 { return x - 1.0/3 }, -1, 1},
	}

	// Seeded brackets around the single real root of the cubic (≈ 2.0946),
	// kept where the cubic is increasing.
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		a := 0.9 + rng.Float64()*1.1
		b := 2.2 + rng.Float64()*3.8
		tests = append(tests, struct {
			name string
			f    rootfind.Func
			a, b float64
		}{fmt.Sprintf("cubic-seeded-%d", i), cubic, a, b})
	}

	const eps = 1e-9
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bound := math.Max(math.Abs(tc.f(tc.a)), math.Abs(tc.f(tc.b)))
			lo, hi := math.Min(tc.a, tc.b), math.Max(tc.a, tc.b)

			bis, err := rootfind.Bisect(tc.f, tc.a, tc.b, eps)
			require.NoError(t, err)
			assert.True(t, bis.Converged(), "bisect status %v", bis.Status)
			assert.LessOrEqual(t, math.Abs(tc.f(bis.X)), bound)
			assert.Less(t, bis.Width, eps)
			assert.True(t, bis.X >= lo && bis.X <= hi, "bisect estimate %g left [%g, %g]", bis.X, lo, hi)

			rf, err := rootfind.RegulaFalsi(tc.f, tc.a, tc.b, eps)
			require.NoError(t, err)
			assert.LessOrEqual(t, math.Abs(tc.f(rf.X)), bound)
			assert.Less(t, rf.Residual, 1e-6, "regfalsi status %v", rf.Status)
			assert.True(t, rf.X >= lo && rf.X <= hi, "regfalsi estimate %g left [%g, %g]", rf.X, lo, hi)
			if rf.Status == rootfind.StatusConverged {
				assert.LessOrEqual(t, rf.Width, eps)
			}
		})
	}
}

// TestRegulaFalsi_Errors covers the bracket checks shared with Bisect.
func TestRegulaFalsi_Errors(t *testing.T) {
	_, err := rootfind.RegulaFalsi(sq2, 2, 3, 1e-9)
	assert.ErrorIs(t, err, rootfind.ErrInvalidBracket)

	res, err := rootfind.RegulaFalsi(func(x float64) float64 { return x + 1 }, -1, 4, 1e-9)
	require.NoError(t, err)
	assert.Equal(t, -1.0, res.X)
	assert.Equal(t, rootfind.StatusExactRoot, res.Status)
	assert.Equal(t, []float64{-1}, res.Xs)
}

// TestRegulaFalsi_NarrowBracket returns the better endpoint without iterating.
func TestRegulaFalsi_NarrowBracket(t *testing.T) {
	res, err := rootfind.RegulaFalsi(sq2, 1.4, 1.5, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.4, res.X, "|f(1.4)| < |f(1.5)|")
	assert.Zero(t, res.Iterations)
	assert.Equal(t, rootfind.StatusConverged, res.Status)
}

// TestScalar_InvalidInputs runs the shared entry checks for every scalar method.
func TestScalar_InvalidInputs(t *testing.T) {
	type solver func(f rootfind.Func, u, v, eps float64, opts ...rootfind.Option) (*rootfind.Result, error)
	solvers := map[string]solver{
		"bisect":   rootfind.Bisect,
		"secant":   rootfind.Secant,
		"regfalsi": rootfind.RegulaFalsi,
	}
	for name, solve := range solvers {
		t.Run(name, func(t *testing.T) {
			for _, eps := range []float64{0, -1, math.NaN(), math.Inf(1)} {
				_, err := solve(sq2, 0, 2, eps)
				assert.ErrorIs(t, err, rootfind.ErrBadTolerance, "eps=%g", eps)
			}
			_, err := solve(nil, 0, 2, 1e-6)
			assert.ErrorIs(t, err, rootfind.ErrNilFunc)

			_, err = solve(sq2, math.NaN(), 2, 1e-6)
			assert.ErrorIs(t, err, rootfind.ErrNonFinite)
		})
	}
}

// TestScalar_TraceOff yields identical results with no trace slices.
func TestScalar_TraceOff(t *testing.T) {
	on, err := rootfind.Bisect(sq2, 0, 2, 1e-8)
	require.NoError(t, err)
	off, err := rootfind.Bisect(sq2, 0, 2, 1e-8, rootfind.WithTrace(false))
	require.NoError(t, err)

	assert.Nil(t, off.Xs)
	assert.Nil(t, off.FVals)
	assert.Equal(t, on.X, off.X)
	assert.Equal(t, on.Iterations, off.Iterations)
	assert.Equal(t, on.Status, off.Status)

	sOn, err := rootfind.Secant(sq2, 1, 2, 1e-10)
	require.NoError(t, err)
	sOff, err := rootfind.Secant(sq2, 1, 2, 1e-10, rootfind.WithTrace(false))
	require.NoError(t, err)
	assert.Nil(t, sOff.Xs)
	assert.Equal(t, sOn.X, sOff.X)

	rOn, err := rootfind.RegulaFalsi(sq2, 0, 2, 1e-9)
	require.NoError(t, err)
	rOff, err := rootfind.RegulaFalsi(sq2, 0, 2, 1e-9, rootfind.WithTrace(false))
	require.NoError(t, err)
	assert.Nil(t, rOff.Xs)
	assert.Nil(t, rOff.FVals)
	assert.Equal(t, rOn.X, rOff.X)
	assert.Equal(t, rOn.Iterations, rOff.Iterations)
	assert.Equal(t, rOn.Status, rOff.Status)
	assert.Equal(t, rOn.Width, rOff.Width)
}

// TestOptions_Panics guards the option constructors against programmer error.
func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { rootfind.WithMaxIter(0) })
	assert.Panics(t, func() { rootfind.WithMaxIter(-3) })
	assert.Panics(t, func() { rootfind.WithNorm(nil) })
	assert.NotPanics(t, func() { rootfind.WithReporter(nil) })
}

// TestStatus_String names every status.
func TestStatus_String(t *testing.T) {
	assert.Equal(t, "converged", rootfind.StatusConverged.String())
	assert.Equal(t, "exact root", rootfind.StatusExactRoot.String())
	assert.Equal(t, "budget exhausted", rootfind.StatusBudgetExhausted.String())
	assert.Equal(t, "stalled", rootfind.StatusStalled.String())
	assert.Equal(t, "unknown", rootfind.Status(42).String())
}
