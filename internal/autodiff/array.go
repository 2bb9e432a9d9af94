package autodiff

import "fmt"

// Array is an ordered collection of nodes representing the components of
// a vector-valued function. It is a thin aggregator: the Array itself
// carries no identifier and is not part of the dependency graph.
type Array struct {
	ops []*Node
}

// NewArray builds an Array over the given component nodes.
func NewArray(components ...*Node) *Array {
	ops := make([]*Node, len(components))
	copy(ops, components)
	return &Array{ops: ops}
}

// Len returns the number of components.
func (a *Array) Len() int {
	return len(a.ops)
}

// At returns the i-th component node.
func (a *Array) At(i int) *Node {
	return a.ops[i]
}

// Set replaces the i-th component with a new node. The replaced node is
// untouched; any other expression referencing it still sees it.
func (a *Array) Set(i int, n *Node) {
	if n == nil {
		panic(fmt.Sprintf("autodiff: Array.Set(%d) with nil node", i))
	}
	a.ops[i] = n
}

// SetConst replaces the i-th component with a constant node wrapping v.
func (a *Array) SetConst(i int, v float64) {
	a.ops[i] = Const(v)
}

// Value returns the ordered component values. The value memo is shared
// across the components, so a sub-expression common to several of them
// is evaluated once.
func (a *Array) Value() ([]float64, error) {
	vals := make(map[uint64]float64)
	out := make([]float64, len(a.ops))
	for i, op := range a.ops {
		v, err := op.value(vals)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Der returns the ordered component-wise partials with respect to wrt.
func (a *Array) Der(wrt *Node) ([]float64, error) {
	st := newDerState()
	out := make([]float64, len(a.ops))
	for i, op := range a.ops {
		d, err := op.der(wrt, st)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// Grad returns the Jacobian with respect to the ordered variables wrt:
// row i column j holds ∂(component i)/∂(wrt[j]). The memo state is
// shared across the whole matrix, so sub-expressions common to several
// components are differentiated once.
func (a *Array) Grad(wrt []*Node) ([][]float64, error) {
	st := newDerState()
	out := make([][]float64, len(a.ops))
	for i, op := range a.ops {
		row := make([]float64, len(wrt))
		for j, w := range wrt {
			d, err := op.der(w, st)
			if err != nil {
				return nil, err
			}
			row[j] = d
		}
		out[i] = row
	}
	return out, nil
}
