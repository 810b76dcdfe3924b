package rootfind

import (
	"fmt"
	"math"
)

// GuardedNewton is Newton's method with step halving. From the raw Newton
// step d it tries x − s·d for s = 1, 1/2, 1/4, ... and accepts the first s with
//
//	norm(F(x − s·d)) <= (1 − s/2) · norm(F(x))
//
// so every accepted step cuts the residual norm by at least the factor
// (1 − s/2). Trial points whose residual is NaN/Inf count as "no decrease".
//
// Budget: each outer iteration and each halving consumes one unit of the
// shared budget (default DefaultNewtonMaxIter); there is no separate cap on
// halvings, so a hard problem may spend the whole budget inside one step.
// Accepting a step also consumes a unit, so Iterations never exceeds the
// budget. When no unit is left for the acceptance the pending step is NOT
// accepted and the current iterate returns with StatusBudgetExhausted. A trial point that no longer differs
// from x in float64 ends the call with StatusStalled.
//
// Scales[i] holds the s accepted between Xs[i] and Xs[i+1]; the accepted point
// and its residual are exactly the trial values, so FVals[i] == F(Xs[i]).
func GuardedNewton(f VecFunc, upd LinearUpdate, x0 []float64, eps float64, opts ...Option) (*SystemResult, error) {
	o := gatherOptions(DefaultNewtonMaxIter, opts...)
	if err := checkSystemInputs(MethodGuardedNewton, f, upd, x0, eps); err != nil {
		return nil, err
	}

	x := cloneVec(x0)
	fx, err := residual(MethodGuardedNewton, f, x, 0)
	if err != nil {
		return nil, err
	}
	nf := o.norm(fx)
	tr := vecTrace{on: o.trace}
	tr.start(x, fx)

	var (
		iter   int
		status = systemStatus(nf, eps)
		done   bool
	)
	for nf >= eps && iter < o.maxIter {
		if o.reporting() {
			o.report(Event{Method: MethodGuardedNewton, Kind: EventIterate, Iter: iter,
				X: cloneVec(x), FX: cloneVec(fx), Residual: nf})
		}
		d, err := newtonStep(MethodGuardedNewton, upd, x, fx, iter)
		if err != nil {
			return nil, err
		}

		s := 1.0
		xt := stepFrom(x, d, s)
		if equalVec(xt, x) {
			status, done = StatusStalled, true
			break
		}
		ft, nt, err := trialResidual(f, xt, &o, iter)
		if err != nil {
			return nil, err
		}
		for !decreased(nt, nf, s) && iter < o.maxIter {
			if o.reporting() {
				o.report(Event{Method: MethodGuardedNewton, Kind: EventHalving, Iter: iter,
					X: cloneVec(xt), Residual: nt, Scale: s})
			}
			s /= 2
			iter++
			xt = stepFrom(x, d, s)
			if s == 0 || equalVec(xt, x) {
				status, done = StatusStalled, true
				break
			}
			if ft, nt, err = trialResidual(f, xt, &o, iter); err != nil {
				return nil, err
			}
		}
		if done {
			break
		}
		if !decreased(nt, nf, s) || iter >= o.maxIter {
			// Budget ran out while halving; keep the current iterate.
			status, done = StatusBudgetExhausted, true
			break
		}

		x, fx, nf = xt, ft, nt
		iter++
		tr.add(x, fx, s)
		if o.reporting() {
			o.report(Event{Method: MethodGuardedNewton, Kind: EventAccept, Iter: iter,
				X: cloneVec(x), FX: cloneVec(fx), Residual: nf, Scale: s})
		}
	}
	if !done {
		status = systemStatus(nf, eps)
	}

	return &SystemResult{
		X:          cloneVec(x),
		Xs:         tr.xs,
		FVals:      tr.fvals,
		Scales:     tr.scales,
		Residual:   nf,
		Iterations: iter,
		Status:     status,
	}, nil
}

// GuardedNewtonScalar is GuardedNewton for one unknown with derivative df.
func GuardedNewtonScalar(f, df Func, x0, eps float64, opts ...Option) (*Result, error) {
	if f == nil {
		return nil, rootfindErrorf(MethodGuardedNewton, ErrNilFunc)
	}
	res, err := GuardedNewton(liftScalar(f), ScalarDivide(df), []float64{x0}, eps, opts...)
	if err != nil {
		return nil, err
	}

	return flattenSystem(res), nil
}

// decreased is the acceptance test norm(F(x−s·d)) <= (1 − s/2)·norm(F(x)).
// A NaN trial norm never passes.
func decreased(trial, current, s float64) bool {
	return trial <= (1-s/2)*current
}

// trialResidual evaluates F at a trial point. Non-finite residuals are not an
// error here: they report an infinite norm so the step gets halved. A wrongly
// sized residual still is.
func trialResidual(f VecFunc, xt []float64, o *options, iter int) ([]float64, float64, error) {
	if !allFinite(xt) {
		return nil, math.Inf(1), nil
	}
	ft := f(xt)
	if len(ft) != len(xt) {
		return nil, 0, iterErrorf(MethodGuardedNewton, iter,
			fmt.Errorf("len(F(x))=%d, len(x)=%d: %w", len(ft), len(xt), ErrDimensionMismatch))
	}
	if !allFinite(ft) {
		return nil, math.Inf(1), nil
	}
	nt := o.norm(ft)
	if math.IsNaN(nt) {
		nt = math.Inf(1)
	}

	return cloneVec(ft), nt, nil
}
