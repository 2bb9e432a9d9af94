// Copyright 2025 GradKit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based minimization driven by the
// autodiff graph.
//
// Example:
//
//	import (
//	    "github.com/gradkit-ml/gradkit/autodiff"
//	    "github.com/gradkit-ml/gradkit/optim"
//	)
//
//	func main() {
//	    x := autodiff.Unbound()
//	    y := autodiff.Unbound()
//	    cost := x.SubConst(1).PowConst(2).Add(y.SubConst(2).PowConst(2))
//
//	    res, _ := optim.Minimize(cost, []*autodiff.Node{x, y}, []float64{0, 0}, optim.Config{})
//	    // res.Found == true; read the solution from x.Value(), y.Value().
//	}
package optim

import (
	"github.com/gradkit-ml/gradkit/internal/autodiff"
	"github.com/gradkit-ml/gradkit/internal/optim"
)

// Config holds the minimizer settings. The zero value uses defaults.
type Config = optim.Config

// Result reports the outcome of one minimization run.
type Result = optim.Result

// Minimize runs BFGS on the scalar node cost as a function of the
// variable leaves params, starting from the values x0. On return the
// params are left bound to the final point.
func Minimize(cost *autodiff.Node, params []*autodiff.Node, x0 []float64, cfg Config) (Result, error) {
	return optim.Minimize(cost, params, x0, cfg)
}
