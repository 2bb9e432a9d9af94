package autodiff

import "math"

// binaryOp enumerates the elementary binary operations.
type binaryOp uint8

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
	opPow
)

// eval applies the operation to already-evaluated operand values.
func (op binaryOp) eval(u, v float64) (float64, error) {
	switch op {
	case opAdd:
		return u + v, nil
	case opSub:
		return u - v, nil
	case opMul:
		return u * v, nil
	case opDiv:
		if v == 0 {
			return 0, &DomainError{Op: "div", Arg: v}
		}
		return u / v, nil
	default: // opPow
		return math.Pow(u, v), nil
	}
}

// der combines operand partials per the operation's differentiation rule.
// Operand values come from the call's value memo so a shared sub-tree is
// evaluated once, not once per parent.
func (op binaryOp) der(x, y, wrt *Node, st *derState) (float64, error) {
	du, err := x.der(wrt, st)
	if err != nil {
		return 0, err
	}
	dv, err := y.der(wrt, st)
	if err != nil {
		return 0, err
	}

	switch op {
	case opAdd:
		return du + dv, nil
	case opSub:
		return du - dv, nil
	case opMul:
		// Product rule: d(uv) = v·u' + u·v'.
		u, v, err := operandValues(x, y, st)
		if err != nil {
			return 0, err
		}
		return v*du + u*dv, nil
	case opDiv:
		// Quotient rule: d(u/v) = (u'·v - u·v')/v².
		u, v, err := operandValues(x, y, st)
		if err != nil {
			return 0, err
		}
		if v == 0 {
			return 0, &DomainError{Op: "div", Arg: v}
		}
		return (du*v - u*dv) / (v * v), nil
	default: // opPow
		// d(u^v) = v·u^(v-1)·u' + u^v·ln(u)·v'. The second term only
		// exists for a variable exponent and requires u > 0.
		u, v, err := operandValues(x, y, st)
		if err != nil {
			return 0, err
		}
		d := v * math.Pow(u, v-1) * du
		if dv != 0 {
			if u <= 0 {
				return 0, &DomainError{Op: "pow", Arg: u}
			}
			d += math.Pow(u, v) * math.Log(u) * dv
		}
		return d, nil
	}
}

func operandValues(x, y *Node, st *derState) (float64, float64, error) {
	u, err := x.value(st.vals)
	if err != nil {
		return 0, 0, err
	}
	v, err := y.value(st.vals)
	if err != nil {
		return 0, 0, err
	}
	return u, v, nil
}

func binary(op binaryOp, x, y *Node) *Node {
	return &Node{id: nextID(), kind: kindBinary, bin: op, x: x, y: y}
}

// Add returns a node computing x + y.
func Add(x, y *Node) *Node { return binary(opAdd, x, y) }

// Sub returns a node computing x - y.
func Sub(x, y *Node) *Node { return binary(opSub, x, y) }

// Mul returns a node computing x · y.
func Mul(x, y *Node) *Node { return binary(opMul, x, y) }

// Div returns a node computing x / y. Evaluation fails with a DomainError
// if the denominator is exactly zero.
func Div(x, y *Node) *Node { return binary(opDiv, x, y) }

// Pow returns a node computing x raised to y. With a variable exponent,
// differentiation requires x > 0.
func Pow(x, y *Node) *Node { return binary(opPow, x, y) }

// Neg returns a node computing -x.
func Neg(x *Node) *Node { return unary(opNeg, x) }

// Method forms, for fluent expression building.

// Add returns a node computing n + other.
func (n *Node) Add(other *Node) *Node { return Add(n, other) }

// Sub returns a node computing n - other.
func (n *Node) Sub(other *Node) *Node { return Sub(n, other) }

// Mul returns a node computing n · other.
func (n *Node) Mul(other *Node) *Node { return Mul(n, other) }

// Div returns a node computing n / other.
func (n *Node) Div(other *Node) *Node { return Div(n, other) }

// Pow returns a node computing n raised to other.
func (n *Node) Pow(other *Node) *Node { return Pow(n, other) }

// Neg returns a node computing -n.
func (n *Node) Neg() *Node { return Neg(n) }

// Scalar forms lift a raw number to a constant operand, standing in for
// the mixed node/number arithmetic of the expression surface. Reversed
// variants cover the operand orders where order matters.

// AddConst returns a node computing n + c.
func (n *Node) AddConst(c float64) *Node { return Add(n, Const(c)) }

// SubConst returns a node computing n - c.
func (n *Node) SubConst(c float64) *Node { return Sub(n, Const(c)) }

// MulConst returns a node computing n · c.
func (n *Node) MulConst(c float64) *Node { return Mul(n, Const(c)) }

// DivConst returns a node computing n / c.
func (n *Node) DivConst(c float64) *Node { return Div(n, Const(c)) }

// PowConst returns a node computing n raised to the constant c.
func (n *Node) PowConst(c float64) *Node { return Pow(n, Const(c)) }

// ConstSub returns a node computing c - x.
func ConstSub(c float64, x *Node) *Node { return Sub(Const(c), x) }

// ConstDiv returns a node computing c / x.
func ConstDiv(c float64, x *Node) *Node { return Div(Const(c), x) }

// ConstPow returns a node computing c raised to x.
func ConstPow(c float64, x *Node) *Node { return Pow(Const(c), x) }
