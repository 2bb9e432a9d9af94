package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gradkit-ml/gradkit/autodiff"
)

// objectiveBuilder assembles a scalar cost node over the given parameter
// leaves.
type objectiveBuilder func(params []*autodiff.Node) (*autodiff.Node, error)

var objectives = map[string]objectiveBuilder{
	"quadratic":  buildQuadratic,
	"rosenbrock": buildRosenbrock,
	"expwell":    buildExpWell,
	"logwell":    buildLogisticWell,
}

func objectiveNames() string {
	names := make([]string, 0, len(objectives))
	for name := range objectives {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// buildQuadratic builds Σ (x_i - i)², a convex bowl with its minimum at
// x_i = i.
func buildQuadratic(params []*autodiff.Node) (*autodiff.Node, error) {
	cost := autodiff.Const(0)
	for i, p := range params {
		cost = cost.Add(p.SubConst(float64(i)).PowConst(2))
	}
	return cost, nil
}

// buildRosenbrock builds the Rosenbrock valley
// Σ 100·(x_{i+1} - x_i²)² + (1 - x_i)², minimum at (1, ..., 1).
func buildRosenbrock(params []*autodiff.Node) (*autodiff.Node, error) {
	if len(params) < 2 {
		return nil, fmt.Errorf("rosenbrock needs at least 2 parameters, got %d", len(params))
	}
	cost := autodiff.Const(0)
	for i := 0; i < len(params)-1; i++ {
		a := params[i+1].Sub(params[i].PowConst(2)).PowConst(2).MulConst(100)
		b := autodiff.ConstSub(1, params[i]).PowConst(2)
		cost = cost.Add(a).Add(b)
	}
	return cost, nil
}

// buildExpWell builds Σ (exp(x_i) - x_i), a smooth convex well with its
// minimum at the origin. Exercises the transcendental part of the graph.
func buildExpWell(params []*autodiff.Node) (*autodiff.Node, error) {
	cost := autodiff.Const(0)
	for _, p := range params {
		cost = cost.Add(autodiff.Exp(p).Sub(p))
	}
	return cost, nil
}

// buildLogisticWell builds Σ (L(x_i) - 1)² over the logistic curve
// L with midpoint 0, supremum 2 and unit steepness, i.e. Σ tanh²(x_i/2).
// A smooth well with its minimum at the origin that flattens toward ±∞.
func buildLogisticWell(params []*autodiff.Node) (*autodiff.Node, error) {
	cost := autodiff.Const(0)
	for _, p := range params {
		c := autodiff.GeneralizedLogistic(p, 0, 2, 1).SubConst(1)
		cost = cost.Add(c.PowConst(2))
	}
	return cost, nil
}
