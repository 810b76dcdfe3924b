// Package oracle compiles user-supplied expressions into rootfind oracles.
//
// Scalar expressions see a float64 variable x; system expressions see x as a
// []float64 and return an array literal (residual) or an array of row arrays
// (Jacobian). Besides the expr-lang builtins the environment provides
// sin, cos, tan, atan, exp, log, sqrt, pow and the constant pi.
//
// An expression that fails at run time evaluates to NaN, which every solver
// rejects with rootfind.ErrNonFinite; the failure itself is kept and exposed
// through Err so callers can report what went wrong.
package oracle

import (
	"math"
	"reflect"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/juju/errors"

	"github.com/katalvlaran/lvsolve/rootfind"
)

// functions available to every expression.
var functions = map[string]any{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"atan": math.Atan,
	"exp":  math.Exp,
	"log":  math.Log,
	"sqrt": math.Sqrt,
	"pow":  math.Pow,
	"pi":   math.Pi,
}

// env returns a fresh evaluation environment binding x.
func env(x any) map[string]any {
	m := make(map[string]any, len(functions)+1)
	for k, v := range functions {
		m[k] = v
	}
	m["x"] = x

	return m
}

// Oracle is a compiled expression. It is safe for concurrent use.
type Oracle struct {
	src     string
	program *vm.Program

	mu      sync.Mutex
	lastErr error
}

// Source returns the expression the oracle was compiled from.
func (o *Oracle) Source() string { return o.src }

// Err returns the most recent evaluation failure, or nil.
func (o *Oracle) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.lastErr
}

func (o *Oracle) fail(err error) {
	o.mu.Lock()
	o.lastErr = err
	o.mu.Unlock()
}

// CompileScalar compiles a scalar expression in x, e.g. "x**2 - 2".
func CompileScalar(src string) (*Oracle, error) {
	program, err := expr.Compile(src, expr.Env(env(0.0)), expr.AsFloat64())
	if err != nil {
		return nil, errors.Annotatef(err, "compile %q", src)
	}

	return &Oracle{src: src, program: program}, nil
}

// CompileVector compiles an array-valued expression in the vector x, e.g.
// "[x[0]**2 + x[1]**2 - 1, x[0] - x[1]]". Residuals and Jacobians both
// compile through here.
func CompileVector(src string) (*Oracle, error) {
	program, err := expr.Compile(src, expr.Env(env([]float64{})))
	if err != nil {
		return nil, errors.Annotatef(err, "compile %q", src)
	}
	if t := program.Node().Type(); t != nil {
		switch t.Kind() {
		case reflect.Slice, reflect.Array, reflect.Interface:
		default:
			return nil, errors.Errorf("expression %q must return an array", src)
		}
	}

	return &Oracle{src: src, program: program}, nil
}

// Func adapts a scalar oracle to rootfind.Func.
func (o *Oracle) Func() rootfind.Func {
	return func(x float64) float64 {
		out, err := expr.Run(o.program, env(x))
		if err != nil {
			o.fail(errors.Annotatef(err, "evaluate %q at x=%g", o.src, x))

			return math.NaN()
		}
		v, ok := toFloat(out)
		if !ok {
			o.fail(errors.Errorf("expression %q returned %T, want a number", o.src, out))

			return math.NaN()
		}

		return v
	}
}

// VecFunc adapts a vector oracle to rootfind.VecFunc. A result of the wrong
// length is returned as is; the solvers report the mismatch.
func (o *Oracle) VecFunc() rootfind.VecFunc {
	return func(x []float64) []float64 {
		vals, err := o.evalArray(x)
		if err != nil {
			o.fail(err)

			return nanVec(len(x))
		}
		out := make([]float64, len(vals))
		for i, item := range vals {
			v, ok := toFloat(item)
			if !ok {
				o.fail(errors.Errorf("expression %q: element %d is %T, want a number", o.src, i, item))

				return nanVec(len(x))
			}
			out[i] = v
		}

		return out
	}
}

// JacobianFunc adapts a vector oracle returning rows to rootfind.JacobianFunc.
func (o *Oracle) JacobianFunc() rootfind.JacobianFunc {
	return func(x []float64) [][]float64 {
		rows, err := o.evalArray(x)
		if err != nil {
			o.fail(err)

			return nanMatrix(len(x))
		}
		out := make([][]float64, len(rows))
		for i, row := range rows {
			cells, ok := toSlice(row)
			if !ok {
				o.fail(errors.Errorf("expression %q: row %d is %T, want an array", o.src, i, row))

				return nanMatrix(len(x))
			}
			out[i] = make([]float64, len(cells))
			for j, cell := range cells {
				v, ok := toFloat(cell)
				if !ok {
					o.fail(errors.Errorf("expression %q: entry (%d,%d) is %T, want a number", o.src, i, j, cell))

					return nanMatrix(len(x))
				}
				out[i][j] = v
			}
		}

		return out
	}
}

// evalArray runs the program on x and unpacks an array result.
func (o *Oracle) evalArray(x []float64) ([]any, error) {
	xs := make([]float64, len(x))
	copy(xs, x)
	out, err := expr.Run(o.program, env(xs))
	if err != nil {
		return nil, errors.Annotatef(err, "evaluate %q at x=%v", o.src, x)
	}
	vals, ok := toSlice(out)
	if !ok {
		return nil, errors.Errorf("expression %q returned %T, want an array", o.src, out)
	}

	return vals, nil
}

// ParseVector evaluates a constant array literal such as "[1, 0.5]".
func ParseVector(src string) ([]float64, error) {
	out, err := expr.Eval(src, functions)
	if err != nil {
		return nil, errors.Annotatef(err, "parse vector %q", src)
	}
	vals, ok := toSlice(out)
	if !ok {
		if v, ok := toFloat(out); ok {
			return []float64{v}, nil
		}

		return nil, errors.Errorf("parse vector %q: got %T", src, out)
	}
	vec := make([]float64, len(vals))
	for i, item := range vals {
		v, ok := toFloat(item)
		if !ok {
			return nil, errors.Errorf("parse vector %q: element %d is %T", src, i, item)
		}
		vec[i] = v
	}

	return vec, nil
}

// toFloat converts any numeric expr value to float64.
func toFloat(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	default:
		return 0, false
	}
}

// toSlice unpacks the array shapes expr produces.
func toSlice(v any) ([]any, bool) {
	switch typed := v.(type) {
	case []any:
		return typed, true
	case []float64:
		out := make([]any, len(typed))
		for i, f := range typed {
			out[i] = f
		}

		return out, true
	default:
		return nil, false
	}
}

func nanVec(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

func nanMatrix(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = nanVec(n)
	}

	return out
}
