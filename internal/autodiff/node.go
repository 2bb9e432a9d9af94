// Package autodiff implements forward-mode automatic differentiation over
// scalar expression graphs.
//
// Expressions are built from independent variables (Var, Unbound) and
// constants (Const) using arithmetic constructors and elementary
// functions. The result is a DAG: a sub-expression may be shared by any
// number of parents. Every node can report its current value and its
// exact partial derivative with respect to any other node.
//
// Architecture:
//   - Tagged variant: one Node struct over a closed kind set
//     (variable, constant, unary op, binary op); evaluation and
//     local-derivative rules are selected by kind, not dynamic dispatch
//   - Forward accumulation: Der walks the DAG toward the leaves,
//     combining operand partials with the chain rule
//   - Per-call memoization: derivative results are cached by
//     (node ID, wrt ID) and operand values by node ID for the duration
//     of one Value/Der/Grad call, so shared sub-expressions are
//     evaluated and differentiated once instead of exponentially
//
// Usage:
//
//	x := autodiff.Var(3.0)
//	f := autodiff.Sin(x.Mul(x)) // f = sin(x²)
//	v, _ := f.Value()
//	d, _ := f.Der(x)            // cos(x²)·2x
package autodiff

// nodeKind is the closed set of graph node shapes.
type nodeKind uint8

const (
	kindVariable nodeKind = iota
	kindConstant
	kindUnary
	kindBinary
)

// Node is one element of the differentiation graph.
//
// A Node is immutable after construction except for the value of a
// variable leaf, which may be rebound with SetValue. Values are always
// recomputed from the current leaf bindings on query; nothing is cached
// across a rebind.
type Node struct {
	id   uint64
	kind nodeKind

	un  unaryOp  // valid when kind == kindUnary
	bin binaryOp // valid when kind == kindBinary
	x   *Node    // first operand (unary and binary)
	y   *Node    // second operand (binary only)

	val   float64 // constant value, or current variable binding
	bound bool    // variables: whether val is set
}

// Var creates an independent variable bound to value.
func Var(value float64) *Node {
	return &Node{id: nextID(), kind: kindVariable, val: value, bound: true}
}

// Unbound creates an independent variable with no value yet. Querying any
// node that depends on it fails with ErrUnboundVariable until SetValue is
// called.
func Unbound() *Node {
	return &Node{id: nextID(), kind: kindVariable}
}

// Const creates a constant node. Its derivative with respect to anything
// is zero.
func Const(value float64) *Node {
	return &Node{id: nextID(), kind: kindConstant, val: value}
}

// ID returns the node's unique identifier, assigned at creation.
func (n *Node) ID() uint64 {
	return n.id
}

// SetValue rebinds a variable to a new value. Every composite node
// depending on it reflects the new binding on its next Value or Der
// query.
//
// Panics if n is not a variable; rebinding a constant or a composite
// node is programmer error.
func (n *Node) SetValue(value float64) {
	if n.kind != kindVariable {
		panic("autodiff: SetValue on a non-variable node")
	}
	n.val = value
	n.bound = true
}

// Value evaluates the node against the current bindings of all variables
// it transitively depends on.
func (n *Node) Value() (float64, error) {
	return n.value(make(map[uint64]float64))
}

// value is the recursive evaluation walk. Composite results are memoized
// by node ID in vals, which lives for exactly one exported call: a DAG
// with shared sub-expressions is walked in linear time, and nothing
// survives across calls, so a rebind is never served a stale value.
func (n *Node) value(vals map[uint64]float64) (float64, error) {
	switch n.kind {
	case kindVariable:
		if !n.bound {
			return 0, ErrUnboundVariable
		}
		return n.val, nil
	case kindConstant:
		return n.val, nil
	}

	if v, ok := vals[n.id]; ok {
		return v, nil
	}

	u, err := n.x.value(vals)
	if err != nil {
		return 0, err
	}
	var v float64
	if n.kind == kindUnary {
		v, err = n.un.eval(u)
	} else {
		var w float64
		w, err = n.y.value(vals)
		if err != nil {
			return 0, err
		}
		v, err = n.bin.eval(u, w)
	}
	if err != nil {
		return 0, err
	}
	vals[n.id] = v
	return v, nil
}

// derKey identifies one memoized partial: ∂(node)/∂(wrt).
type derKey struct {
	node, wrt uint64
}

// derState carries the two memo tables of one derivative call: partials
// keyed by (node, wrt) and operand values keyed by node. The product,
// quotient and chain rules all consult operand values, so both tables
// are needed to keep a shared-sub-expression DAG linear.
type derState struct {
	ders map[derKey]float64
	vals map[uint64]float64
}

func newDerState() *derState {
	return &derState{
		ders: make(map[derKey]float64),
		vals: make(map[uint64]float64),
	}
}

// Der computes the partial derivative ∂n/∂wrt by forward accumulation of
// the chain rule. The result is exact to floating point; wrt is normally
// a variable leaf, but any node is accepted (a composite wrt simply never
// matches a leaf, giving zero).
func (n *Node) Der(wrt *Node) (float64, error) {
	return n.der(wrt, newDerState())
}

// Grad returns the ordered partials [∂n/∂w for w in wrt]. One memo state
// is shared across the whole batch, so sub-expression work common to
// several components is done once.
func (n *Node) Grad(wrt []*Node) ([]float64, error) {
	st := newDerState()
	out := make([]float64, len(wrt))
	for i, w := range wrt {
		d, err := n.der(w, st)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// der recursively applies the operation-specific differentiation rule,
// memoizing per (node, wrt) pair. Without the memo a DAG with shared
// sub-expressions costs exponential time; with it, each (node, wrt) pair
// is visited once per call.
func (n *Node) der(wrt *Node, st *derState) (float64, error) {
	switch n.kind {
	case kindVariable:
		// Leaf rule: der(x, x) = 1, der(x, y) = 0. A leaf never depends
		// on another node, so the binding is not consulted here.
		if n.id == wrt.id {
			return 1, nil
		}
		return 0, nil
	case kindConstant:
		return 0, nil
	}

	key := derKey{node: n.id, wrt: wrt.id}
	if d, ok := st.ders[key]; ok {
		return d, nil
	}

	var d float64
	var err error
	if n.kind == kindUnary {
		d, err = n.un.der(n.x, wrt, st)
	} else {
		d, err = n.bin.der(n.x, n.y, wrt, st)
	}
	if err != nil {
		return 0, err
	}
	st.ders[key] = d
	return d, nil
}

// Comparison helpers compare current values, never symbolic structure,
// and do not participate in the graph. They fail like Value does when an
// operand depends on an unbound variable.

// Eq reports whether the two nodes currently evaluate to the same value.
func (n *Node) Eq(other *Node) (bool, error) {
	a, b, err := pairValues(n, other)
	if err != nil {
		return false, err
	}
	return a == b, nil
}

// Ne reports whether the two nodes currently evaluate to different values.
func (n *Node) Ne(other *Node) (bool, error) {
	a, b, err := pairValues(n, other)
	if err != nil {
		return false, err
	}
	return a != b, nil
}

// Lt reports whether n currently evaluates below other.
func (n *Node) Lt(other *Node) (bool, error) {
	a, b, err := pairValues(n, other)
	if err != nil {
		return false, err
	}
	return a < b, nil
}

// Gt reports whether n currently evaluates above other.
func (n *Node) Gt(other *Node) (bool, error) {
	a, b, err := pairValues(n, other)
	if err != nil {
		return false, err
	}
	return a > b, nil
}

// Le reports whether n currently evaluates at or below other.
func (n *Node) Le(other *Node) (bool, error) {
	a, b, err := pairValues(n, other)
	if err != nil {
		return false, err
	}
	return a <= b, nil
}

// Ge reports whether n currently evaluates at or above other.
func (n *Node) Ge(other *Node) (bool, error) {
	a, b, err := pairValues(n, other)
	if err != nil {
		return false, err
	}
	return a >= b, nil
}

func pairValues(a, b *Node) (float64, float64, error) {
	vals := make(map[uint64]float64)
	av, err := a.value(vals)
	if err != nil {
		return 0, 0, err
	}
	bv, err := b.value(vals)
	if err != nil {
		return 0, 0, err
	}
	return av, bv, nil
}
