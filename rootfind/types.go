package rootfind

// Func is a scalar oracle x ↦ f(x). It must be free of side effects that
// influence its result; it may be called any number of times.
type Func func(x float64) float64

// VecFunc is a residual oracle x ↦ F(x) for a square system. The returned
// slice must have len(x) entries. It is copied before being stored, so the
// oracle may reuse a buffer between calls.
type VecFunc func(x []float64) []float64

// JacobianFunc returns the n×n Jacobian of F at x as row slices.
type JacobianFunc func(x []float64) [][]float64

// Method names a solver. It doubles as the tag on wrapped errors and events.
type Method string

const (
	MethodBisect        Method = "bisect"
	MethodSecant        Method = "secant"
	MethodRegulaFalsi   Method = "regfalsi"
	MethodNewton        Method = "newton"
	MethodGuardedNewton Method = "gnewton"
)

// Status tells how an iteration ended.
type Status int

const (
	// StatusConverged: the tolerance test was met.
	StatusConverged Status = iota
	// StatusExactRoot: a visited point had f(x) == 0 exactly.
	StatusExactRoot
	// StatusBudgetExhausted: the iteration budget ran out first. The result
	// is a best-effort iterate; inspect Residual before trusting it.
	StatusBudgetExhausted
	// StatusStalled: the next iterate would not change the state in float64
	// (adjacent-float bracket, repeated regula falsi point, zero step scale).
	StatusStalled
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusExactRoot:
		return "exact root"
	case StatusBudgetExhausted:
		return "budget exhausted"
	case StatusStalled:
		return "stalled"
	default:
		return "unknown"
	}
}

// Result is the outcome of a scalar method.
type Result struct {
	// X is the root estimate.
	X float64

	// Xs is the trace of visited points and FVals[i] == f(Xs[i]).
	// Both are nil when tracing is disabled.
	Xs    []float64
	FVals []float64

	// Residual is |f(X)|.
	Residual float64

	// Width is the final bracket width |b-a| (bracketing methods only).
	Width float64

	// Iterations counts function-evaluating iterations performed.
	Iterations int

	Status Status
}

// Converged reports whether the tolerance was met or an exact root was hit.
// Stalled and budget-exhausted runs report false.
func (r *Result) Converged() bool {
	return r.Status == StatusConverged || r.Status == StatusExactRoot
}

// SystemResult is the outcome of Newton and GuardedNewton.
type SystemResult struct {
	X []float64

	// Xs and FVals are the iterates and their residuals, FVals[i] == F(Xs[i]).
	Xs    [][]float64
	FVals [][]float64

	// Scales[i] is the step scale accepted to go from Xs[i] to Xs[i+1]
	// (always 1 for plain Newton).
	Scales []float64

	// Residual is norm(F(X)) under the configured norm.
	Residual float64

	// Iterations counts outer iterations plus, for GuardedNewton, halvings.
	Iterations int

	Status Status
}

// Converged reports whether the tolerance was met or an exact root was hit.
func (r *SystemResult) Converged() bool {
	return r.Status == StatusConverged || r.Status == StatusExactRoot
}
