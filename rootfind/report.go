package rootfind

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventKind classifies a diagnostic Event.
type EventKind int

const (
	// EventBracket: current bracket of Bisect / RegulaFalsi (A, FA, B, FB set).
	EventBracket EventKind = iota
	// EventIterate: current iterate of Secant / Newton / GuardedNewton (X, FX, Residual set).
	EventIterate
	// EventHalving: GuardedNewton rejected a trial step (Scale, X, Residual of the trial).
	EventHalving
	// EventAccept: GuardedNewton accepted a step (Scale, X, FX, Residual of the new point).
	EventAccept
)

func (k EventKind) String() string {
	switch k {
	case EventBracket:
		return "bracket"
	case EventIterate:
		return "iterate"
	case EventHalving:
		return "halving"
	case EventAccept:
		return "accept"
	default:
		return "unknown"
	}
}

// Event is one diagnostic record. Fields not relevant to Kind are zero.
type Event struct {
	Method Method
	Kind   EventKind
	Iter   int

	A, FA float64
	B, FB float64

	X        []float64
	FX       []float64
	Residual float64
	Scale    float64
}

// Reporter receives diagnostic events. Each Event owns its X/FX slices, so a
// Reporter may keep them.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(Event)

// Report calls f(ev).
func (f ReporterFunc) Report(ev Event) { f(ev) }

// NewZapReporter logs every event at debug level on l with structured fields.
// A nil logger yields a no-op reporter.
func NewZapReporter(l *zap.Logger) Reporter {
	if l == nil {
		l = zap.NewNop()
	}

	return ReporterFunc(func(ev Event) {
		if ce := l.Check(zapcore.DebugLevel, "rootfind "+ev.Kind.String()); ce != nil {
			ce.Write(eventFields(ev)...)
		}
	})
}

// eventFields flattens ev into zap fields, emitting only what Kind carries.
func eventFields(ev Event) []zap.Field {
	fields := []zap.Field{
		zap.String("method", string(ev.Method)),
		zap.Int("iter", ev.Iter),
	}
	switch ev.Kind {
	case EventBracket:
		fields = append(fields,
			zap.Float64("a", ev.A), zap.Float64("fa", ev.FA),
			zap.Float64("b", ev.B), zap.Float64("fb", ev.FB))
	case EventHalving:
		fields = append(fields,
			zap.Float64("scale", ev.Scale),
			zap.Float64s("x", ev.X),
			zap.Float64("residual", ev.Residual))
	case EventAccept:
		fields = append(fields,
			zap.Float64("scale", ev.Scale),
			zap.Float64s("x", ev.X),
			zap.Float64s("fx", ev.FX),
			zap.Float64("residual", ev.Residual))
	default:
		fields = append(fields,
			zap.Float64s("x", ev.X),
			zap.Float64s("fx", ev.FX),
			zap.Float64("residual", ev.Residual))
	}

	return fields
}
