// Copyright 2025 GradKit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff_test

import (
	"fmt"

	"github.com/gradkit-ml/gradkit/autodiff"
)

func Example() {
	x := autodiff.Var(3)
	f := x.PowConst(2).MulConst(3).AddConst(5) // f = 3x² + 5

	v, _ := f.Value()
	d, _ := f.Der(x)
	fmt.Println(v, d)
	// Output: 32 18
}

func Example_jacobian() {
	x := autodiff.Var(2)
	y := autodiff.Var(5)
	vec := autodiff.NewArray(x.Mul(y), x.Add(y))

	jac, _ := vec.Grad([]*autodiff.Node{x, y})
	fmt.Println(jac)
	// Output: [[5 2] [1 1]]
}
