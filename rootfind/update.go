package rootfind

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvsolve/matrix"
)

// LinearUpdate turns derivative information into a Newton step: given the
// point x and the residual r = F(x) it returns d with J(x)·d = r, so the
// Newton iterate is x − d.
//
// The variant is chosen once by the caller:
//   - ScalarDivide(df)  : one unknown, d = r / df(x).
//   - MatrixSolve(jac)  : n unknowns, d solves the linear system with the
//     Jacobian through a partial-pivot LU factorization.
type LinearUpdate interface {
	// Dim is the dimension the update works in; 0 means any.
	Dim() int

	// Step returns d with J(x)·d = r. It fails with ErrSingularUpdate when
	// J(x) cannot be inverted and ErrNonFinite when the oracle misbehaves.
	Step(x, r []float64) ([]float64, error)
}

// ScalarDivide is the one-dimensional LinearUpdate: d = r / df(x).
func ScalarDivide(df Func) LinearUpdate { return scalarDivide{df: df} }

type scalarDivide struct{ df Func }

func (s scalarDivide) Dim() int { return 1 }

func (s scalarDivide) Step(x, r []float64) ([]float64, error) {
	if s.df == nil {
		return nil, ErrNilFunc
	}
	if len(x) != 1 || len(r) != 1 {
		return nil, ErrDimensionMismatch
	}
	dv := s.df(x[0])
	if !isFinite(dv) {
		return nil, fmt.Errorf("df(%g)=%g: %w", x[0], dv, ErrNonFinite)
	}
	if dv == 0 {
		return nil, fmt.Errorf("df(%g)=0: %w", x[0], ErrSingularUpdate)
	}
	d := r[0] / dv
	if !isFinite(d) {
		return nil, fmt.Errorf("step overflow at x=%g: %w", x[0], ErrSingularUpdate)
	}

	return []float64{d}, nil
}

// MatrixSolve is the n-dimensional LinearUpdate: d solves jac(x)·d = r.
// opts tune the solve (e.g. matrix.WithEpsilon for the pivot tolerance).
func MatrixSolve(jac JacobianFunc, opts ...matrix.Option) LinearUpdate {
	return matrixSolve{jac: jac, opts: opts}
}

type matrixSolve struct {
	jac  JacobianFunc
	opts []matrix.Option
}

func (m matrixSolve) Dim() int { return 0 }

func (m matrixSolve) Step(x, r []float64) ([]float64, error) {
	if m.jac == nil {
		return nil, ErrNilFunc
	}
	if len(r) != len(x) {
		return nil, ErrDimensionMismatch
	}
	j, err := matrix.NewDenseFromRows(m.jac(x))
	if err != nil {
		return nil, classifyMatrixErr(err, ErrNonFinite)
	}
	if j.Rows() != len(x) || j.Cols() != len(x) {
		return nil, fmt.Errorf("jacobian %dx%d for %d unknowns: %w", j.Rows(), j.Cols(), len(x), ErrDimensionMismatch)
	}
	// The Jacobian is finite here, so a non-finite solution means overflow.
	d, err := matrix.Solve(j, r, m.opts...)
	if err != nil {
		return nil, classifyMatrixErr(err, ErrSingularUpdate)
	}

	return d, nil
}

// classifyMatrixErr maps matrix sentinels onto the rootfind taxonomy while
// keeping the original in the chain. nanAs decides what matrix.ErrNaNInf means
// at the call site.
func classifyMatrixErr(err error, nanAs error) error {
	switch {
	case errors.Is(err, matrix.ErrSingular):
		return fmt.Errorf("%w: %w", ErrSingularUpdate, err)
	case errors.Is(err, matrix.ErrNaNInf):
		return fmt.Errorf("%w: %w", nanAs, err)
	case errors.Is(err, matrix.ErrInvalidDimensions), errors.Is(err, matrix.ErrDimensionMismatch):
		return fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	default:
		return err
	}
}
