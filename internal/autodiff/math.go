package autodiff

import "math"

// unaryOp enumerates negation and the elementary function library.
type unaryOp uint8

const (
	opNeg unaryOp = iota
	opSin
	opCos
	opTan
	opAsin
	opAcos
	opAtan
	opSinh
	opCosh
	opTanh
	opExp
	opLog
	opSqrt
	opLogistic
)

// eval applies the function to an already-evaluated operand value,
// enforcing the function's domain.
func (op unaryOp) eval(u float64) (float64, error) {
	switch op {
	case opNeg:
		return -u, nil
	case opSin:
		return math.Sin(u), nil
	case opCos:
		return math.Cos(u), nil
	case opTan:
		return math.Tan(u), nil
	case opAsin:
		if u < -1 || u > 1 {
			return 0, &DomainError{Op: "asin", Arg: u}
		}
		return math.Asin(u), nil
	case opAcos:
		if u < -1 || u > 1 {
			return 0, &DomainError{Op: "acos", Arg: u}
		}
		return math.Acos(u), nil
	case opAtan:
		return math.Atan(u), nil
	case opSinh:
		return math.Sinh(u), nil
	case opCosh:
		return math.Cosh(u), nil
	case opTanh:
		return math.Tanh(u), nil
	case opExp:
		return math.Exp(u), nil
	case opLog:
		if u <= 0 {
			return 0, &DomainError{Op: "log", Arg: u}
		}
		return math.Log(u), nil
	case opSqrt:
		if u < 0 {
			return 0, &DomainError{Op: "sqrt", Arg: u}
		}
		return math.Sqrt(u), nil
	default: // opLogistic
		return logistic(u), nil
	}
}

// der applies the chain rule: the function's closed-form derivative at
// the operand value, times the operand's partial.
//
// A few derivatives are narrower than their functions: d(sqrt u) blows up
// at u = 0 and d(asin u), d(acos u) at |u| = 1, so those points are
// DomainErrors here even though the value itself is defined.
func (op unaryOp) der(x, wrt *Node, st *derState) (float64, error) {
	du, err := x.der(wrt, st)
	if err != nil {
		return 0, err
	}
	if op == opNeg {
		return -du, nil
	}

	u, err := x.value(st.vals)
	if err != nil {
		return 0, err
	}

	switch op {
	case opSin:
		return math.Cos(u) * du, nil
	case opCos:
		return -math.Sin(u) * du, nil
	case opTan:
		c := math.Cos(u)
		return du / (c * c), nil
	case opAsin:
		if u <= -1 || u >= 1 {
			return 0, &DomainError{Op: "asin", Arg: u}
		}
		return du / math.Sqrt(1-u*u), nil
	case opAcos:
		if u <= -1 || u >= 1 {
			return 0, &DomainError{Op: "acos", Arg: u}
		}
		return -du / math.Sqrt(1-u*u), nil
	case opAtan:
		return du / (1 + u*u), nil
	case opSinh:
		return math.Cosh(u) * du, nil
	case opCosh:
		return math.Sinh(u) * du, nil
	case opTanh:
		t := math.Tanh(u)
		return (1 - t*t) * du, nil
	case opExp:
		return math.Exp(u) * du, nil
	case opLog:
		if u <= 0 {
			return 0, &DomainError{Op: "log", Arg: u}
		}
		return du / u, nil
	case opSqrt:
		if u <= 0 {
			return 0, &DomainError{Op: "sqrt", Arg: u}
		}
		return du / (2 * math.Sqrt(u)), nil
	default: // opLogistic
		s := logistic(u)
		return s * (1 - s) * du, nil
	}
}

func logistic(u float64) float64 {
	return 1 / (1 + math.Exp(-u))
}

func unary(op unaryOp, x *Node) *Node {
	return &Node{id: nextID(), kind: kindUnary, un: op, x: x}
}

// Sin returns a node computing sin(x).
func Sin(x *Node) *Node { return unary(opSin, x) }

// Cos returns a node computing cos(x).
func Cos(x *Node) *Node { return unary(opCos, x) }

// Tan returns a node computing tan(x).
func Tan(x *Node) *Node { return unary(opTan, x) }

// Asin returns a node computing arcsin(x). The argument must evaluate
// inside [-1, 1].
func Asin(x *Node) *Node { return unary(opAsin, x) }

// Acos returns a node computing arccos(x). The argument must evaluate
// inside [-1, 1].
func Acos(x *Node) *Node { return unary(opAcos, x) }

// Atan returns a node computing arctan(x).
func Atan(x *Node) *Node { return unary(opAtan, x) }

// Sinh returns a node computing sinh(x).
func Sinh(x *Node) *Node { return unary(opSinh, x) }

// Cosh returns a node computing cosh(x).
func Cosh(x *Node) *Node { return unary(opCosh, x) }

// Tanh returns a node computing tanh(x).
func Tanh(x *Node) *Node { return unary(opTanh, x) }

// Exp returns a node computing e raised to x.
func Exp(x *Node) *Node { return unary(opExp, x) }

// Log returns a node computing the natural logarithm of x. The argument
// must evaluate to a strictly positive number.
func Log(x *Node) *Node { return unary(opLog, x) }

// LogBase returns a node computing the logarithm of x in the given base,
// via the change-of-base identity ln(x)/ln(base). The base is a graph
// node and may itself be differentiated. Both operands must evaluate
// strictly positive, and a base of exactly 1 fails with a DomainError
// from the division.
func LogBase(x, base *Node) *Node { return Div(Log(x), Log(base)) }

// Sqrt returns a node computing the square root of x. The argument must
// evaluate to a non-negative number; differentiation additionally
// requires it to be strictly positive.
func Sqrt(x *Node) *Node { return unary(opSqrt, x) }

// Logistic returns a node computing the standard logistic (sigmoid)
// function 1/(1+exp(-x)).
func Logistic(x *Node) *Node { return unary(opLogistic, x) }

// GeneralizedLogistic returns a node computing the logistic curve
// l/(1+exp(-k·(x-x0))) with midpoint x0, supremum l and steepness k.
// GeneralizedLogistic(x, 0, 1, 1) is the standard logistic.
func GeneralizedLogistic(x *Node, x0, l, k float64) *Node {
	return ConstDiv(l, Exp(x.SubConst(x0).MulConst(-k)).AddConst(1))
}
