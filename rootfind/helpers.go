package rootfind

import "math"

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// allFinite reports whether every entry of x is finite.
func allFinite(x []float64) bool {
	for _, v := range x {
		if !isFinite(v) {
			return false
		}
	}

	return true
}

// sameSign reports whether u and v are both strictly positive or both
// strictly negative. Zero shares a sign with nothing.
func sameSign(u, v float64) bool {
	return (u > 0 && v > 0) || (u < 0 && v < 0)
}

// checkTolerance rejects eps <= 0, NaN and ±Inf.
func checkTolerance(m Method, eps float64) error {
	if !isFinite(eps) || eps <= 0 {
		return rootfindErrorf(m, ErrBadTolerance)
	}

	return nil
}

// checkScalarInputs is the shared entry guard of the scalar methods.
func checkScalarInputs(m Method, f Func, eps float64, u, v float64) error {
	if f == nil {
		return rootfindErrorf(m, ErrNilFunc)
	}
	if err := checkTolerance(m, eps); err != nil {
		return err
	}
	if !isFinite(u) || !isFinite(v) {
		return rootfindErrorf(m, ErrNonFinite)
	}

	return nil
}

// cloneVec returns an independent copy of x.
func cloneVec(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	return out
}

// stepFrom returns x − s·d in a fresh slice.
func stepFrom(x, d []float64, s float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] - s*d[i]
	}

	return out
}

// equalVec reports whether x and y are identical element by element.
func equalVec(x, y []float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}

	return true
}

// scalarTrace collects (x, f(x)) pairs when enabled.
type scalarTrace struct {
	on    bool
	xs    []float64
	fvals []float64
}

func (t *scalarTrace) add(x, fx float64) {
	if !t.on {
		return
	}
	t.xs = append(t.xs, x)
	t.fvals = append(t.fvals, fx)
}

// vecTrace collects (x, F(x), accepted scale) triples when enabled. The
// caller hands over slices it will not mutate afterwards.
type vecTrace struct {
	on     bool
	xs     [][]float64
	fvals  [][]float64
	scales []float64
}

func (t *vecTrace) start(x, fx []float64) {
	if !t.on {
		return
	}
	t.xs = append(t.xs, x)
	t.fvals = append(t.fvals, fx)
}

func (t *vecTrace) add(x, fx []float64, scale float64) {
	if !t.on {
		return
	}
	t.xs = append(t.xs, x)
	t.fvals = append(t.fvals, fx)
	t.scales = append(t.scales, scale)
}
