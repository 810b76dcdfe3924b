package rootfind

import "fmt"

// Newton applies Newton's method to the square system F(x) = 0:
//
//	d = J(x)⁻¹·F(x)   (via upd: ScalarDivide or MatrixSolve)
//	x ← x − d
//
// It stops when norm(F(x)) < eps or when the budget (default
// DefaultNewtonMaxIter) is spent. Classical Newton may diverge; that is not
// an error, the last iterate comes back with StatusBudgetExhausted. Numeric
// breakdowns (singular J, NaN/Inf residuals) end the call with an error.
//
// The norm is Euclidean unless WithNorm overrides it; in one dimension it is |F(x)|.
func Newton(f VecFunc, upd LinearUpdate, x0 []float64, eps float64, opts ...Option) (*SystemResult, error) {
	o := gatherOptions(DefaultNewtonMaxIter, opts...)
	if err := checkSystemInputs(MethodNewton, f, upd, x0, eps); err != nil {
		return nil, err
	}

	x := cloneVec(x0)
	fx, err := residual(MethodNewton, f, x, 0)
	if err != nil {
		return nil, err
	}
	nf := o.norm(fx)
	tr := vecTrace{on: o.trace}
	tr.start(x, fx)

	iter := 0
	for nf >= eps && iter < o.maxIter {
		if o.reporting() {
			o.report(Event{Method: MethodNewton, Kind: EventIterate, Iter: iter,
				X: cloneVec(x), FX: cloneVec(fx), Residual: nf})
		}
		d, err := newtonStep(MethodNewton, upd, x, fx, iter)
		if err != nil {
			return nil, err
		}
		xn := stepFrom(x, d, 1)
		if !allFinite(xn) {
			return nil, iterErrorf(MethodNewton, iter, ErrNonFinite)
		}
		iter++
		if fx, err = residual(MethodNewton, f, xn, iter); err != nil {
			return nil, err
		}
		x, nf = xn, o.norm(fx)
		tr.add(x, fx, 1)
	}

	return &SystemResult{
		X:          cloneVec(x),
		Xs:         tr.xs,
		FVals:      tr.fvals,
		Scales:     tr.scales,
		Residual:   nf,
		Iterations: iter,
		Status:     systemStatus(nf, eps),
	}, nil
}

// NewtonScalar is Newton for one unknown with derivative df.
func NewtonScalar(f, df Func, x0, eps float64, opts ...Option) (*Result, error) {
	if f == nil {
		return nil, rootfindErrorf(MethodNewton, ErrNilFunc)
	}
	res, err := Newton(liftScalar(f), ScalarDivide(df), []float64{x0}, eps, opts...)
	if err != nil {
		return nil, err
	}

	return flattenSystem(res), nil
}

// checkSystemInputs is the shared entry guard of the Newton variants.
func checkSystemInputs(m Method, f VecFunc, upd LinearUpdate, x0 []float64, eps float64) error {
	if f == nil || upd == nil {
		return rootfindErrorf(m, ErrNilFunc)
	}
	if err := checkTolerance(m, eps); err != nil {
		return err
	}
	if len(x0) == 0 {
		return rootfindErrorf(m, ErrDimensionMismatch)
	}
	if dim := upd.Dim(); dim != 0 && dim != len(x0) {
		return rootfindErrorf(m, fmt.Errorf("update dimension %d, len(x0)=%d: %w", dim, len(x0), ErrDimensionMismatch))
	}
	if !allFinite(x0) {
		return rootfindErrorf(m, ErrNonFinite)
	}

	return nil
}

// residual evaluates F(x), checks its shape and finiteness and returns a copy
// the caller owns.
func residual(m Method, f VecFunc, x []float64, iter int) ([]float64, error) {
	fx := f(x)
	if len(fx) != len(x) {
		return nil, iterErrorf(m, iter, fmt.Errorf("len(F(x))=%d, len(x)=%d: %w", len(fx), len(x), ErrDimensionMismatch))
	}
	if !allFinite(fx) {
		return nil, iterErrorf(m, iter, ErrNonFinite)
	}

	return cloneVec(fx), nil
}

// newtonStep asks upd for the raw step and checks what comes back.
func newtonStep(m Method, upd LinearUpdate, x, fx []float64, iter int) ([]float64, error) {
	d, err := upd.Step(x, fx)
	if err != nil {
		return nil, iterErrorf(m, iter, err)
	}
	if len(d) != len(x) {
		return nil, iterErrorf(m, iter, fmt.Errorf("len(step)=%d, len(x)=%d: %w", len(d), len(x), ErrDimensionMismatch))
	}
	if !allFinite(d) {
		return nil, iterErrorf(m, iter, ErrSingularUpdate)
	}

	return d, nil
}

// systemStatus classifies the end of a Newton run from its final residual norm.
func systemStatus(nf, eps float64) Status {
	switch {
	case nf == 0:
		return StatusExactRoot
	case nf < eps:
		return StatusConverged
	default:
		return StatusBudgetExhausted
	}
}

// liftScalar wraps a scalar oracle as a one-dimensional VecFunc.
func liftScalar(f Func) VecFunc {
	return func(x []float64) []float64 { return []float64{f(x[0])} }
}

// flattenSystem converts a one-dimensional SystemResult into a Result.
func flattenSystem(res *SystemResult) *Result {
	out := &Result{
		X:          res.X[0],
		Residual:   res.Residual,
		Iterations: res.Iterations,
		Status:     res.Status,
	}
	if res.Xs != nil {
		out.Xs = make([]float64, len(res.Xs))
		out.FVals = make([]float64, len(res.FVals))
		for i := range res.Xs {
			out.Xs[i] = res.Xs[i][0]
			out.FVals[i] = res.FVals[i][0]
		}
	}

	return out
}
