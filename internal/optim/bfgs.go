// Package optim implements gradient-based minimization driven by the
// autodiff graph.
//
// The minimizer is BFGS, a quasi-Newton method: it never forms second
// derivatives, instead maintaining a running approximation of the inverse
// Hessian from gradient differences and refining it with a rank-two
// update each iteration. Gradients come from the differentiation graph,
// exact to floating point.
//
// Example usage:
//
//	x := autodiff.Unbound()
//	y := autodiff.Unbound()
//	// cost = (x-1)² + (y-2)²
//	cost := x.SubConst(1).PowConst(2).Add(y.SubConst(2).PowConst(2))
//
//	res, err := optim.Minimize(cost, []*autodiff.Node{x, y}, []float64{0, 0}, optim.Config{})
//	// res.Found == true; x, y are left bound at the minimizer.
package optim

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gradkit-ml/gradkit/internal/autodiff"
)

// Config holds the minimizer settings. The zero value is usable; zero
// fields fall back to defaults.
type Config struct {
	// Tol is the convergence tolerance on the 2-norm of the step
	// (default 1e-8).
	Tol float64

	// MaxIter caps the number of iterations (default 1000).
	MaxIter int

	// Logger, when set, receives per-iteration progress at debug level.
	// The minimizer never writes anywhere else.
	Logger *slog.Logger
}

// Result reports the outcome of one minimization run.
type Result struct {
	Step       float64 // 2-norm of the final step
	Iterations int     // Iterations performed
	Found      bool    // Whether the step fell below Tol before MaxIter
}

const (
	defaultTol     = 1e-8
	defaultMaxIter = 1000

	// Armijo sufficient-decrease condition: accept α when
	// f(x+αp) ≤ f(x) + c1·α·gᵀp, halving α up to maxBacktracks times.
	armijoC1        = 1e-4
	backtrackFactor = 0.5
	maxBacktracks   = 30

	// The rank-two update is skipped when yᵀs is not sufficiently
	// positive relative to ‖s‖·‖y‖; updating through near-zero curvature
	// would destroy positive definiteness of the approximation.
	curvatureTol = 1e-10
)

// Minimize runs BFGS on the scalar node cost as a function of the
// variable leaves params, starting from the values x0.
//
// On return the params are left bound to the final point; callers read
// the solution by reading the leaf values. Degenerate line searches and
// the iteration cap are reported through Result.Found, never as errors.
// An error means the objective itself failed at a probed point: a domain
// violation or an unbound variable the params do not cover.
func Minimize(cost *autodiff.Node, params []*autodiff.Node, x0 []float64, cfg Config) (Result, error) {
	n := len(params)
	if n == 0 {
		return Result{}, fmt.Errorf("optim: no parameters to minimize over")
	}
	if len(x0) != n {
		return Result{}, fmt.Errorf("optim: %d initial values for %d parameters", len(x0), n)
	}
	if cfg.Tol == 0 {
		cfg.Tol = defaultTol
	}
	if cfg.MaxIter == 0 {
		cfg.MaxIter = defaultMaxIter
	}

	x := mat.NewVecDense(n, nil)
	for i, v := range x0 {
		x.SetVec(i, v)
	}
	bind(params, x)

	hinv := identity(n)
	g, err := gradVec(cost, params)
	if err != nil {
		return Result{}, err
	}

	p := mat.NewVecDense(n, nil)
	xNext := mat.NewVecDense(n, nil)
	s := mat.NewVecDense(n, nil)
	y := mat.NewVecDense(n, nil)

	step := math.Inf(1)
	for iter := 1; iter <= cfg.MaxIter; iter++ {
		// Search direction p = -H·g.
		p.MulVec(hinv, g)
		p.ScaleVec(-1, p)

		f, err := cost.Value()
		if err != nil {
			return Result{}, err
		}

		alpha, fNext, ok, err := lineSearch(cost, params, x, p, f, mat.Dot(g, p), xNext)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			// No sufficient decrease within the backtracking budget:
			// degenerate step, leave params at the current point.
			bind(params, x)
			return Result{Step: 0, Iterations: iter, Found: false}, nil
		}

		s.ScaleVec(alpha, p)
		step = mat.Norm(s, 2)

		gNext, err := gradVec(cost, params)
		if err != nil {
			return Result{}, err
		}
		y.SubVec(gNext, g)

		if cfg.Logger != nil {
			cfg.Logger.Debug("bfgs iteration",
				"iter", iter, "cost", fNext, "step", step, "alpha", alpha)
		}

		updateHinv(hinv, s, y)
		x.CopyVec(xNext)
		g = gNext

		if step <= cfg.Tol {
			return Result{Step: step, Iterations: iter, Found: true}, nil
		}
	}

	return Result{Step: step, Iterations: cfg.MaxIter, Found: false}, nil
}

// lineSearch backtracks along p from x until the Armijo condition holds.
// gp is the directional derivative gᵀp at x. On success the params are
// left bound at the accepted point, which is written into xNext.
func lineSearch(cost *autodiff.Node, params []*autodiff.Node, x, p *mat.VecDense, f, gp float64, xNext *mat.VecDense) (alpha, fNext float64, ok bool, err error) {
	alpha = 1.0
	for i := 0; i < maxBacktracks; i++ {
		xNext.AddScaledVec(x, alpha, p)
		bind(params, xNext)
		fNext, err = cost.Value()
		if err != nil {
			return 0, 0, false, err
		}
		if fNext <= f+armijoC1*alpha*gp {
			return alpha, fNext, true, nil
		}
		alpha *= backtrackFactor
	}
	return 0, 0, false, nil
}

// updateHinv applies the BFGS rank-two update
//
//	H ← (I - ρsyᵀ)·H·(I - ρysᵀ) + ρssᵀ,  ρ = 1/(yᵀs)
//
// in place, skipping it when the curvature yᵀs is too small. The update
// preserves symmetry by construction; skipping keeps the previous (still
// symmetric positive-definite) approximation instead of corrupting it.
func updateHinv(hinv *mat.Dense, s, y *mat.VecDense) {
	sy := mat.Dot(y, s)
	if sy <= curvatureTol*mat.Norm(s, 2)*mat.Norm(y, 2) {
		return
	}
	rho := 1 / sy

	n := s.Len()
	left := identity(n)
	var outer mat.Dense
	outer.Outer(rho, s, y)
	left.Sub(left, &outer)

	var tmp, next mat.Dense
	tmp.Mul(left, hinv)
	next.Mul(&tmp, left.T())

	outer.Outer(rho, s, s)
	next.Add(&next, &outer)
	hinv.Copy(&next)
}

// gradVec queries the graph for the gradient of cost at the current
// parameter bindings.
func gradVec(cost *autodiff.Node, params []*autodiff.Node) (*mat.VecDense, error) {
	g, err := cost.Grad(params)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(len(g), g), nil
}

// bind rebinds the parameter leaves to the components of x.
func bind(params []*autodiff.Node, x *mat.VecDense) {
	for i, p := range params {
		p.SetValue(x.AtVec(i))
	}
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
