package rootfind

import "math"

// Bisect finds a root of f in the bracket [a, b] by repeated halving.
//
// Algorithm Outline:
//  1. fa = f(a), fb = f(b). An exact zero at an endpoint is returned at once
//     (StatusExactRoot, trace = [root]).
//  2. fa and fb of the same sign → BracketError (ErrInvalidBracket).
//  3. While |b−a| > eps: c = a + (b−a)/2; an exact zero at c is returned;
//     otherwise c replaces the endpoint whose value shares the sign of f(c).
//  4. X is the midpoint of the final bracket.
//
// The bracket keeps a sign change throughout, so for a continuous f the root
// stays inside it. The trace is [a, c1, c2, ...] with their function values.
//
// Budget: WithMaxIter (default DefaultMaxIter). If the midpoint of two
// adjacent floats equals an endpoint the bracket can no longer shrink and
// the call ends with StatusStalled.
//
// Complexity: O(log2(|b−a|/eps)) evaluations of f.
func Bisect(f Func, a, b, eps float64, opts ...Option) (*Result, error) {
	o := gatherOptions(DefaultMaxIter, opts...)
	if err := checkScalarInputs(MethodBisect, f, eps, a, b); err != nil {
		return nil, err
	}

	fa, fb := f(a), f(b)
	if !isFinite(fa) || !isFinite(fb) {
		return nil, rootfindErrorf(MethodBisect, ErrNonFinite)
	}
	if fa == 0 {
		return exactEndpoint(a, &o), nil
	}
	if fb == 0 {
		return exactEndpoint(b, &o), nil
	}
	if sameSign(fa, fb) {
		return nil, rootfindErrorf(MethodBisect, BracketError{A: a, B: b, FA: fa, FB: fb})
	}

	tr := scalarTrace{on: o.trace}
	tr.add(a, fa)

	var (
		c, fc  float64
		iter   int
		status = StatusConverged
	)
	for math.Abs(b-a) > eps {
		if iter >= o.maxIter {
			status = StatusBudgetExhausted
			break
		}
		if o.reporting() {
			o.report(Event{Method: MethodBisect, Kind: EventBracket, Iter: iter, A: a, FA: fa, B: b, FB: fb})
		}
		c = a + 0.5*(b-a)
		if c == a || c == b {
			status = StatusStalled
			break
		}
		fc = f(c)
		if !isFinite(fc) {
			return nil, iterErrorf(MethodBisect, iter, ErrNonFinite)
		}
		iter++
		tr.add(c, fc)
		if fc == 0 {
			return &Result{
				X: c, Xs: tr.xs, FVals: tr.fvals,
				Width: math.Abs(b - a), Iterations: iter, Status: StatusExactRoot,
			}, nil
		}
		if sameSign(fa, fc) {
			a, fa = c, fc // new interval is [c,b]
		} else {
			b, fb = c, fc // new interval is [a,c]
		}
	}

	x := a + 0.5*(b-a)
	fx := f(x)
	if !isFinite(fx) {
		return nil, iterErrorf(MethodBisect, iter, ErrNonFinite)
	}

	return &Result{
		X:          x,
		Xs:         tr.xs,
		FVals:      tr.fvals,
		Residual:   math.Abs(fx),
		Width:      math.Abs(b - a),
		Iterations: iter,
		Status:     status,
	}, nil
}

// exactEndpoint is the short-circuit result for f(endpoint) == 0.
func exactEndpoint(x float64, o *options) *Result {
	tr := scalarTrace{on: o.trace}
	tr.add(x, 0)

	return &Result{X: x, Xs: tr.xs, FVals: tr.fvals, Status: StatusExactRoot}
}
