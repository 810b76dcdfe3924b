package oracle_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvsolve/internal/oracle"
	"github.com/katalvlaran/lvsolve/rootfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileScalar(t *testing.T) {
	o, err := oracle.CompileScalar("x**2 - 2")
	require.NoError(t, err)
	f := o.Func()
	assert.Equal(t, 2.0, f(2))
	assert.Equal(t, -2.0, f(0))
	assert.NoError(t, o.Err())
	assert.Equal(t, "x**2 - 2", o.Source())

	o, err = oracle.CompileScalar("sin(x) + pow(x, 2) + pi")
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, o.Func()(0), 1e-15)

	o, err = oracle.CompileScalar("3")
	require.NoError(t, err)
	assert.Equal(t, 3.0, o.Func()(10), "integer results are converted")
}

func TestCompileScalar_Errors(t *testing.T) {
	_, err := oracle.CompileScalar("x +")
	assert.Error(t, err)

	_, err = oracle.CompileScalar("y * 2")
	assert.Error(t, err, "unknown variable")

	_, err = oracle.CompileScalar(`"text"`)
	assert.Error(t, err, "non-numeric result")
}

func TestCompileVector(t *testing.T) {
	o, err := oracle.CompileVector("[x[0]**2 + x[1]**2 - 1, x[0] - x[1]]")
	require.NoError(t, err)
	f := o.VecFunc()
	assert.Equal(t, []float64{1, 0}, f([]float64{1, 1}))
	assert.Equal(t, []float64{0, 1}, f([]float64{1, 0}))
	assert.NoError(t, o.Err())

	_, err = oracle.CompileVector("x[0] + 1")
	assert.Error(t, err, "a scalar is not a residual vector")
}

func TestVecFunc_RuntimeFailureIsNaN(t *testing.T) {
	o, err := oracle.CompileVector("[x[0], x[5]]")
	require.NoError(t, err)
	out := o.VecFunc()([]float64{1, 2})
	require.Len(t, out, 2)
	assert.True(t, math.IsNaN(out[0]))
	assert.Error(t, o.Err(), "index error is recorded")
}

func TestJacobianFunc(t *testing.T) {
	o, err := oracle.CompileVector("[[2*x[0], 2*x[1]], [1, -1]]")
	require.NoError(t, err)
	j := o.JacobianFunc()([]float64{3, 4})
	assert.Equal(t, [][]float64{{6, 8}, {1, -1}}, j)

	o, err = oracle.CompileVector("[1, 2]")
	require.NoError(t, err)
	j = o.JacobianFunc()([]float64{0, 0})
	assert.True(t, math.IsNaN(j[0][0]), "rows must be arrays")
	assert.Error(t, o.Err())
}

func TestParseVector(t *testing.T) {
	v, err := oracle.ParseVector("[1, -0.5, 2000]")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -0.5, 2000}, v)

	v, err = oracle.ParseVector("[sqrt(4), pi]")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, math.Pi}, v)

	v, err = oracle.ParseVector("1.5")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5}, v)

	_, err = oracle.ParseVector(`["a"]`)
	assert.Error(t, err)

	_, err = oracle.ParseVector("[1,")
	assert.Error(t, err)
}

// TestOracle_EndToEnd drives the guarded Newton solver with compiled oracles.
func TestOracle_EndToEnd(t *testing.T) {
	f, err := oracle.CompileVector("[x[0]**2 + x[1]**2 - 1, x[0] - x[1]]")
	require.NoError(t, err)
	jac, err := oracle.CompileVector("[[2*x[0], 2*x[1]], [1, -1]]")
	require.NoError(t, err)

	res, err := rootfind.GuardedNewton(f.VecFunc(), rootfind.MatrixSolve(jac.JacobianFunc()), []float64{3, -2}, 1e-10)
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.InDelta(t, math.Sqrt2/2, res.X[0], 1e-9)

	bad, err := oracle.CompileScalar("log(x)")
	require.NoError(t, err)
	_, err = rootfind.Bisect(bad.Func(), -1, 2, 1e-6)
	assert.ErrorIs(t, err, rootfind.ErrNonFinite)
}
