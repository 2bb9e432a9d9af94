// Copyright 2025 GradKit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides forward-mode automatic differentiation.
//
// Expressions are built from independent variables and constants using
// arithmetic constructors and an elementary function library. Every node
// tracks value and partial-derivative information, exact to floating
// point, through arbitrary compositions including shared sub-expressions.
//
// Example:
//
//	import "github.com/gradkit-ml/gradkit/autodiff"
//
//	func main() {
//	    x := autodiff.Var(3.0)
//	    f := autodiff.Sin(x.Mul(x)) // f = sin(x²)
//
//	    v, _ := f.Value()           // sin(9)
//	    d, _ := f.Der(x)            // cos(9)·6
//	}
package autodiff

import (
	"github.com/gradkit-ml/gradkit/internal/autodiff"
)

// Node is one element of the differentiation graph: a variable, a
// constant, or the result of an elementary operation on other nodes.
type Node = autodiff.Node

// Array is an ordered collection of nodes representing a vector-valued
// function, with aggregate value, derivative, and Jacobian queries.
type Array = autodiff.Array

// DomainError reports an elementary function evaluated outside its valid
// domain.
type DomainError = autodiff.DomainError

// ErrUnboundVariable is returned when a query reaches a variable that has
// not been given a value yet.
var ErrUnboundVariable = autodiff.ErrUnboundVariable

// Var creates an independent variable bound to value.
func Var(value float64) *Node { return autodiff.Var(value) }

// Unbound creates an independent variable with no value; bind it later
// with SetValue.
func Unbound() *Node { return autodiff.Unbound() }

// Const creates a constant node.
func Const(value float64) *Node { return autodiff.Const(value) }

// NewArray builds an Array over the given component nodes.
func NewArray(components ...*Node) *Array { return autodiff.NewArray(components...) }

// Arithmetic constructors. Each is also available as a method on *Node.

// Add returns a node computing x + y.
func Add(x, y *Node) *Node { return autodiff.Add(x, y) }

// Sub returns a node computing x - y.
func Sub(x, y *Node) *Node { return autodiff.Sub(x, y) }

// Mul returns a node computing x · y.
func Mul(x, y *Node) *Node { return autodiff.Mul(x, y) }

// Div returns a node computing x / y.
func Div(x, y *Node) *Node { return autodiff.Div(x, y) }

// Pow returns a node computing x raised to y.
func Pow(x, y *Node) *Node { return autodiff.Pow(x, y) }

// Neg returns a node computing -x.
func Neg(x *Node) *Node { return autodiff.Neg(x) }

// ConstSub returns a node computing c - x.
func ConstSub(c float64, x *Node) *Node { return autodiff.ConstSub(c, x) }

// ConstDiv returns a node computing c / x.
func ConstDiv(c float64, x *Node) *Node { return autodiff.ConstDiv(c, x) }

// ConstPow returns a node computing c raised to x.
func ConstPow(c float64, x *Node) *Node { return autodiff.ConstPow(c, x) }

// Elementary function library.

// Sin returns a node computing sin(x).
func Sin(x *Node) *Node { return autodiff.Sin(x) }

// Cos returns a node computing cos(x).
func Cos(x *Node) *Node { return autodiff.Cos(x) }

// Tan returns a node computing tan(x).
func Tan(x *Node) *Node { return autodiff.Tan(x) }

// Asin returns a node computing arcsin(x).
func Asin(x *Node) *Node { return autodiff.Asin(x) }

// Acos returns a node computing arccos(x).
func Acos(x *Node) *Node { return autodiff.Acos(x) }

// Atan returns a node computing arctan(x).
func Atan(x *Node) *Node { return autodiff.Atan(x) }

// Sinh returns a node computing sinh(x).
func Sinh(x *Node) *Node { return autodiff.Sinh(x) }

// Cosh returns a node computing cosh(x).
func Cosh(x *Node) *Node { return autodiff.Cosh(x) }

// Tanh returns a node computing tanh(x).
func Tanh(x *Node) *Node { return autodiff.Tanh(x) }

// Exp returns a node computing e raised to x.
func Exp(x *Node) *Node { return autodiff.Exp(x) }

// Log returns a node computing the natural logarithm of x.
func Log(x *Node) *Node { return autodiff.Log(x) }

// LogBase returns a node computing the logarithm of x in the given base,
// which may itself be differentiated.
func LogBase(x, base *Node) *Node { return autodiff.LogBase(x, base) }

// Sqrt returns a node computing the square root of x.
func Sqrt(x *Node) *Node { return autodiff.Sqrt(x) }

// Logistic returns a node computing the standard logistic (sigmoid)
// function of x.
func Logistic(x *Node) *Node { return autodiff.Logistic(x) }

// GeneralizedLogistic returns a node computing the logistic curve
// l/(1+exp(-k·(x-x0))) with midpoint x0, supremum l and steepness k.
func GeneralizedLogistic(x *Node, x0, l, k float64) *Node {
	return autodiff.GeneralizedLogistic(x, x0, l, k)
}
