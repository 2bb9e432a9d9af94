package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradkit-ml/gradkit/internal/autodiff"
	"github.com/gradkit-ml/gradkit/internal/optim"
)

// TestMinimize_ConvexQuadratic minimizes (x-1)² + (y-2)², whose unique
// minimum is (1, 2).
func TestMinimize_ConvexQuadratic(t *testing.T) {
	x := autodiff.Unbound()
	y := autodiff.Unbound()
	cost := x.SubConst(1).PowConst(2).Add(y.SubConst(2).PowConst(2))
	params := []*autodiff.Node{x, y}

	res, err := optim.Minimize(cost, params, []float64{-3, 7}, optim.Config{})
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.LessOrEqual(t, res.Step, 1e-8)
	assert.Less(t, res.Iterations, 100)

	// Results are read back from the leaves.
	xv, err := x.Value()
	require.NoError(t, err)
	yv, err := y.Value()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, xv, 1e-6)
	assert.InDelta(t, 2.0, yv, 1e-6)

	// Gradient is near zero at the minimizer.
	g, err := cost.Grad(params)
	require.NoError(t, err)
	for i, gi := range g {
		assert.InDelta(t, 0.0, gi, 1e-6, "gradient component %d", i)
	}
}

// TestMinimize_IllConditionedQuadratic checks that the inverse-Hessian
// approximation copes with badly scaled curvature: 100·x² + y².
func TestMinimize_IllConditionedQuadratic(t *testing.T) {
	x := autodiff.Unbound()
	y := autodiff.Unbound()
	cost := x.PowConst(2).MulConst(100).Add(y.PowConst(2))

	res, err := optim.Minimize(cost, []*autodiff.Node{x, y}, []float64{1, 1}, optim.Config{})
	require.NoError(t, err)
	assert.True(t, res.Found)

	xv, _ := x.Value()
	yv, _ := y.Value()
	assert.InDelta(t, 0.0, xv, 1e-5)
	assert.InDelta(t, 0.0, yv, 1e-5)
}

// TestMinimize_Rosenbrock runs the classic banana valley from the
// standard (-1.2, 1) start.
func TestMinimize_Rosenbrock(t *testing.T) {
	x := autodiff.Unbound()
	y := autodiff.Unbound()
	// 100·(y - x²)² + (1 - x)²
	cost := y.Sub(x.PowConst(2)).PowConst(2).MulConst(100).
		Add(autodiff.ConstSub(1, x).PowConst(2))

	res, err := optim.Minimize(cost, []*autodiff.Node{x, y}, []float64{-1.2, 1}, optim.Config{
		Tol:     1e-10,
		MaxIter: 5000,
	})
	require.NoError(t, err)
	assert.True(t, res.Found)

	xv, _ := x.Value()
	yv, _ := y.Value()
	assert.InDelta(t, 1.0, xv, 1e-5)
	assert.InDelta(t, 1.0, yv, 1e-5)
}

func TestMinimize_Univariate(t *testing.T) {
	x := autodiff.Unbound()
	// exp(x) - x has its minimum at x = 0.
	cost := autodiff.Exp(x).Sub(x)

	res, err := optim.Minimize(cost, []*autodiff.Node{x}, []float64{2.5}, optim.Config{})
	require.NoError(t, err)
	assert.True(t, res.Found)

	xv, _ := x.Value()
	assert.InDelta(t, 0.0, xv, 1e-6)
}

// TestMinimize_StartAtMinimum must converge immediately: zero gradient
// gives a zero step on the first iteration.
func TestMinimize_StartAtMinimum(t *testing.T) {
	x := autodiff.Unbound()
	cost := x.PowConst(2)

	res, err := optim.Minimize(cost, []*autodiff.Node{x}, []float64{0}, optim.Config{})
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, 0.0, res.Step)
}

func TestMinimize_IterationCap(t *testing.T) {
	x := autodiff.Unbound()
	y := autodiff.Unbound()
	cost := y.Sub(x.PowConst(2)).PowConst(2).MulConst(100).
		Add(autodiff.ConstSub(1, x).PowConst(2))

	res, err := optim.Minimize(cost, []*autodiff.Node{x, y}, []float64{-1.2, 1}, optim.Config{
		MaxIter: 3,
	})
	require.NoError(t, err)

	// Hitting the cap is not an error; it is reported in the result.
	assert.False(t, res.Found)
	assert.Equal(t, 3, res.Iterations)
	assert.Greater(t, res.Step, 0.0)

	// The leaves hold whatever point the run reached.
	_, err = x.Value()
	require.NoError(t, err)
}

// TestMinimize_LineSearchFailure drives the backtracking search into a
// kink. The cost |x| (spelled sqrt(x²)) has slope exactly 1 at
// x = 1e-12, but every candidate step — the smallest backtracked step is
// still around 2e-9 — overshoots the kink to a point of higher cost, so
// no step satisfies the sufficient-decrease test.
func TestMinimize_LineSearchFailure(t *testing.T) {
	x := autodiff.Unbound()
	cost := autodiff.Sqrt(x.Mul(x))

	res, err := optim.Minimize(cost, []*autodiff.Node{x}, []float64{1e-12}, optim.Config{})
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.Equal(t, 0.0, res.Step)
	assert.Equal(t, 1, res.Iterations)

	// The parameter is left at the point the search started from.
	xv, err := x.Value()
	require.NoError(t, err)
	assert.Equal(t, 1e-12, xv)
}

func TestMinimize_InputValidation(t *testing.T) {
	x := autodiff.Unbound()
	cost := x.PowConst(2)

	_, err := optim.Minimize(cost, nil, nil, optim.Config{})
	assert.Error(t, err)

	_, err = optim.Minimize(cost, []*autodiff.Node{x}, []float64{1, 2}, optim.Config{})
	assert.Error(t, err)
}

// TestMinimize_DomainViolationIsFatal probes an objective that is
// ill-defined at the start point; the error propagates out instead of
// being swallowed into the result.
func TestMinimize_DomainViolationIsFatal(t *testing.T) {
	x := autodiff.Unbound()
	cost := autodiff.Log(x)

	_, err := optim.Minimize(cost, []*autodiff.Node{x}, []float64{-1}, optim.Config{})
	require.Error(t, err)

	var de *autodiff.DomainError
	assert.ErrorAs(t, err, &de)
}

// TestMinimize_UnboundVariableIsFatal covers a cost depending on a leaf
// outside the parameter set.
func TestMinimize_UnboundVariableIsFatal(t *testing.T) {
	x := autodiff.Unbound()
	stray := autodiff.Unbound()
	cost := x.PowConst(2).Add(stray)

	_, err := optim.Minimize(cost, []*autodiff.Node{x}, []float64{1}, optim.Config{})
	require.ErrorIs(t, err, autodiff.ErrUnboundVariable)
}

// TestMinimize_LogBarrier exercises curvature far from quadratic:
// f = x - log(x), minimum at x = 1, domain x > 0.
func TestMinimize_LogBarrier(t *testing.T) {
	x := autodiff.Unbound()
	cost := x.Sub(autodiff.Log(x))

	res, err := optim.Minimize(cost, []*autodiff.Node{x}, []float64{0.5}, optim.Config{})
	require.NoError(t, err)
	assert.True(t, res.Found)

	xv, _ := x.Value()
	assert.InDelta(t, 1.0, xv, 1e-6)
}

func TestMinimize_DefaultsApplied(t *testing.T) {
	x := autodiff.Unbound()
	cost := x.SubConst(3).PowConst(2)

	// Zero config: defaults must still produce a convergent run.
	res, err := optim.Minimize(cost, []*autodiff.Node{x}, []float64{10}, optim.Config{})
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.True(t, math.Abs(res.Step) <= 1e-8)
}
