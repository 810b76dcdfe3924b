package rootfind

import "github.com/katalvlaran/lvsolve/matrix"

// Budget defaults per method family.
const (
	// DefaultMaxIter bounds Bisect, Secant and RegulaFalsi.
	DefaultMaxIter = 100000

	// DefaultNewtonMaxIter bounds Newton and GuardedNewton (halvings included).
	DefaultNewtonMaxIter = 10000

	// DefaultTrace keeps Xs/FVals collection on.
	DefaultTrace = true
)

const (
	panicMaxIterInvalid = "rootfind: WithMaxIter: n must be > 0"
	panicNormNil        = "rootfind: WithNorm: norm must not be nil"
)

// Option configures a solver call. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*options)

type options struct {
	maxIter  int // 0 until resolved against the method default
	trace    bool
	reporter Reporter
	norm     func([]float64) float64
}

// WithMaxIter sets the iteration budget. For GuardedNewton every halving
// attempt also consumes one unit.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *options) { o.maxIter = n }
}

// WithTrace turns collection of Xs/FVals on or off. Results are identical
// either way; only the trace slices are affected.
func WithTrace(on bool) Option {
	return func(o *options) { o.trace = on }
}

// WithReporter installs a diagnostics sink. A nil Reporter silences output.
func WithReporter(r Reporter) Option {
	return func(o *options) { o.reporter = r }
}

// WithNorm replaces the residual norm used by Newton and GuardedNewton.
// The default is the Euclidean norm, which is |x| in one dimension.
func WithNorm(norm func([]float64) float64) Option {
	if norm == nil {
		panic(panicNormNil)
	}

	return func(o *options) { o.norm = norm }
}

// gatherOptions applies setters over defaults in call order (last wins).
func gatherOptions(defaultMaxIter int, opts ...Option) options {
	o := options{
		maxIter: defaultMaxIter,
		trace:   DefaultTrace,
		norm:    matrix.Norm2,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// report forwards ev to the sink when one is installed.
func (o *options) report(ev Event) {
	if o.reporter != nil {
		o.reporter.Report(ev)
	}
}

// reporting tells callers whether building an Event is worth the allocation.
func (o *options) reporting() bool { return o.reporter != nil }
