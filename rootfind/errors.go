package rootfind

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every message is prefixed with "rootfind:"; callers match
// them with errors.Is after any amount of wrapping.
var (
	// ErrInvalidBracket indicates f(a) and f(b) share a sign and neither is zero.
	ErrInvalidBracket = errors.New("rootfind: f(a) and f(b) must have opposite signs")

	// ErrSingularUpdate indicates the update divides by zero: f(x1) == f(x0) in
	// the secant step, df(x) == 0, or a singular Jacobian.
	ErrSingularUpdate = errors.New("rootfind: singular update")

	// ErrNonFinite indicates an input or an oracle value is NaN or ±Inf.
	ErrNonFinite = errors.New("rootfind: NaN or Inf encountered")

	// ErrBadTolerance indicates eps is not a finite positive number.
	ErrBadTolerance = errors.New("rootfind: tolerance must be finite and > 0")

	// ErrNilFunc indicates a nil oracle or a nil LinearUpdate.
	ErrNilFunc = errors.New("rootfind: nil function")

	// ErrDimensionMismatch indicates disagreeing sizes between x, F(x), the
	// Jacobian or the LinearUpdate, or an empty starting vector.
	ErrDimensionMismatch = errors.New("rootfind: dimension mismatch")
)

// BracketError is returned when a bracketing method gets endpoints whose
// function values share a sign. It unwraps to ErrInvalidBracket.
type BracketError struct {
	A, B   float64
	FA, FB float64
}

func (e BracketError) Error() string {
	return fmt.Sprintf("rootfind: invalid bracket [%g, %g]: f(a)=%g, f(b)=%g have the same sign", e.A, e.B, e.FA, e.FB)
}

// Unwrap lets errors.Is(err, ErrInvalidBracket) match.
func (e BracketError) Unwrap() error { return ErrInvalidBracket }

// rootfindErrorf tags err with the method name, preserving it for errors.Is.
func rootfindErrorf(m Method, err error) error {
	return fmt.Errorf("%s: %w", m, err)
}

// iterErrorf tags err with the method name and the iteration it surfaced at.
func iterErrorf(m Method, iter int, err error) error {
	return fmt.Errorf("%s: iteration %d: %w", m, iter, err)
}
