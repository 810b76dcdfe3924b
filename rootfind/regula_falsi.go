package rootfind

import "math"

// RegulaFalsi is the method of false position on the bracket [a, b].
//
// Algorithm Outline:
//  1. Same endpoint handling as Bisect: exact zeros return at once, a
//     same-sign bracket is a BracketError.
//  2. While |a−b| > eps: c = a − (a−b)·f(a)/(f(a)−f(b)), the secant through
//     the current bracket endpoints (not the last two iterates).
//  3. An exact zero at c is returned; otherwise c replaces the endpoint whose
//     value shares the sign of f(c), so the bracket always changes sign.
//  4. X is the last c.
//
// Notes:
//   - On a convex or concave stretch one endpoint never moves and the width
//     stays bounded away from zero; the iteration then ends when c reproduces
//     the endpoint it would replace (StatusStalled), or when the budget
//     (default DefaultMaxIter) is spent. Check Residual in both cases.
//   - If the initial width is already ≤ eps, X is the endpoint with the
//     smaller |f|.
func RegulaFalsi(f Func, a, b, eps float64, opts ...Option) (*Result, error) {
	o := gatherOptions(DefaultMaxIter, opts...)
	if err := checkScalarInputs(MethodRegulaFalsi, f, eps, a, b); err != nil {
		return nil, err
	}

	fa, fb := f(a), f(b)
	if !isFinite(fa) || !isFinite(fb) {
		return nil, rootfindErrorf(MethodRegulaFalsi, ErrNonFinite)
	}
	if fa == 0 {
		return exactEndpoint(a, &o), nil
	}
	if fb == 0 {
		return exactEndpoint(b, &o), nil
	}
	if sameSign(fa, fb) {
		return nil, rootfindErrorf(MethodRegulaFalsi, BracketError{A: a, B: b, FA: fa, FB: fb})
	}

	tr := scalarTrace{on: o.trace}
	tr.add(a, fa)

	c, fc := a, fa
	if math.Abs(fb) < math.Abs(fa) {
		c, fc = b, fb
	}
	var (
		iter   int
		status = StatusConverged
	)
	for math.Abs(a-b) > eps {
		if iter >= o.maxIter {
			status = StatusBudgetExhausted
			break
		}
		if o.reporting() {
			o.report(Event{Method: MethodRegulaFalsi, Kind: EventBracket, Iter: iter, A: a, FA: fa, B: b, FB: fb})
		}
		// fa and fb have strictly opposite signs, so fa-fb != 0.
		c = a - (a-b)*fa/(fa-fb)
		if !isFinite(c) {
			return nil, iterErrorf(MethodRegulaFalsi, iter, ErrSingularUpdate)
		}
		fc = f(c)
		if !isFinite(fc) {
			return nil, iterErrorf(MethodRegulaFalsi, iter, ErrNonFinite)
		}
		iter++
		tr.add(c, fc)
		if fc == 0 {
			return &Result{
				X: c, Xs: tr.xs, FVals: tr.fvals,
				Width: math.Abs(a - b), Iterations: iter, Status: StatusExactRoot,
			}, nil
		}
		if sameSign(fa, fc) {
			if c == a {
				status = StatusStalled
				break
			}
			a, fa = c, fc
		} else {
			if c == b {
				status = StatusStalled
				break
			}
			b, fb = c, fc
		}
	}

	return &Result{
		X:          c,
		Xs:         tr.xs,
		FVals:      tr.fvals,
		Residual:   math.Abs(fc),
		Width:      math.Abs(a - b),
		Iterations: iter,
		Status:     status,
	}, nil
}
