package rootfind

import "math"

// Secant applies the secant method from the two starting points x0, x1:
//
//	x_new = x1 − f(x1)·(x1 − x0) / (f(x1) − f(x0))
//
// It stops when |f(x1)| < eps (StatusConverged, or StatusExactRoot when
// f(x1) == 0) or when the budget is spent (StatusBudgetExhausted). Running
// out of budget is not an error: the last iterate is returned and Residual
// tells how good it is.
//
// An exact zero at x0 returns x0 at once with the trace [x0].
//
// f(x1) == f(x0), including x0 == x1, makes the update undefined and yields
// ErrSingularUpdate; so does an update that overflows.
//
// The trace is [x0, x1, x2, ...] with FVals[i] == f(Xs[i]).
func Secant(f Func, x0, x1, eps float64, opts ...Option) (*Result, error) {
	o := gatherOptions(DefaultMaxIter, opts...)
	if err := checkScalarInputs(MethodSecant, f, eps, x0, x1); err != nil {
		return nil, err
	}

	f0, f1 := f(x0), f(x1)
	if !isFinite(f0) || !isFinite(f1) {
		return nil, rootfindErrorf(MethodSecant, ErrNonFinite)
	}
	if f0 == 0 {
		return exactEndpoint(x0, &o), nil
	}
	tr := scalarTrace{on: o.trace}
	tr.add(x0, f0)
	tr.add(x1, f1)

	var (
		iter   int
		xn, fn float64
	)
	for math.Abs(f1) >= eps && iter < o.maxIter {
		if o.reporting() {
			o.report(Event{Method: MethodSecant, Kind: EventIterate, Iter: iter,
				X: []float64{x0, x1}, FX: []float64{f0, f1}, Residual: math.Abs(f1)})
		}
		den := f1 - f0
		if den == 0 {
			return nil, iterErrorf(MethodSecant, iter, ErrSingularUpdate)
		}
		xn = x1 - f1*(x1-x0)/den
		if !isFinite(xn) {
			return nil, iterErrorf(MethodSecant, iter, ErrSingularUpdate)
		}
		fn = f(xn)
		if !isFinite(fn) {
			return nil, iterErrorf(MethodSecant, iter, ErrNonFinite)
		}
		tr.add(xn, fn)
		x0, f0 = x1, f1
		x1, f1 = xn, fn
		iter++
	}

	status := StatusBudgetExhausted
	switch {
	case f1 == 0:
		status = StatusExactRoot
	case math.Abs(f1) < eps:
		status = StatusConverged
	}

	return &Result{
		X:          x1,
		Xs:         tr.xs,
		FVals:      tr.fvals,
		Residual:   math.Abs(f1),
		Iterations: iter,
		Status:     status,
	}, nil
}
