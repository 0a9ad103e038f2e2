package formula

import (
	"slices"
	"strconv"
)

// Op identifies an operation in a formula.
type Op int8

const (
	OpNone Op = iota

	OpNum // literal or constant
	OpAns // the answer passed to Eval

	// Binary operations.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpRoot  // root(n, x) is x^(1/n)
	OpLog   // log(x, b) is the base-b logarithm of x
	OpILog  // ilog(n, b) is the iterated base-b logarithm of n
	OpAtan2 // atan2(y, x)
	OpAnd
	OpOr
	OpShl
	OpShr

	// Unary operations.
	OpNeg
	OpAbs
	OpFloor
	OpCeil
	OpRound
	OpTrunc
	OpSign
	OpSqrt
	OpLn
	OpLb
	OpExp
	OpExp2
	OpFact
	OpLambertW
	OpSin
	OpCos
	OpTan
	OpSinh
	OpCosh
	OpTanh
	OpAsin
	OpAcos
	OpAtan
	OpAsinh
	OpAcosh
	OpAtanh

	// Variadic operations.
	OpMin
	OpMax
	OpAvg
	OpMed
	OpGcd
	OpLcm

	opLen
)

var opnames = [opLen]string{
	OpNone:     "none",
	OpNum:      "num",
	OpAns:      "@",
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpDiv:      "/",
	OpMod:      "%",
	OpPow:      "^",
	OpRoot:     "root",
	OpLog:      "log",
	OpILog:     "ilog",
	OpAtan2:    "atan2",
	OpAnd:      "&",
	OpOr:       "|",
	OpShl:      "<<",
	OpShr:      ">>",
	OpNeg:      "neg",
	OpAbs:      "abs",
	OpFloor:    "floor",
	OpCeil:     "ceil",
	OpRound:    "round",
	OpTrunc:    "trunc",
	OpSign:     "sign",
	OpSqrt:     "sqrt",
	OpLn:       "ln",
	OpLb:       "lb",
	OpExp:      "exp",
	OpExp2:     "exp2",
	OpFact:     "!",
	OpLambertW: "lambert_w",
	OpSin:      "sin",
	OpCos:      "cos",
	OpTan:      "tan",
	OpSinh:     "sinh",
	OpCosh:     "cosh",
	OpTanh:     "tanh",
	OpAsin:     "asin",
	OpAcos:     "acos",
	OpAtan:     "atan",
	OpAsinh:    "asinh",
	OpAcosh:    "acosh",
	OpAtanh:    "atanh",
	OpMin:      "min",
	OpMax:      "max",
	OpAvg:      "avg",
	OpMed:      "med",
	OpGcd:      "gcd",
	OpLcm:      "lcm",
}

// String returns the operator symbol or function name of op.
func (op Op) String() string {
	if op < 0 || op >= opLen {
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
	return opnames[op]
}

// Arity returns the number of operands op takes: 0 for leaves, 1 or 2 for
// unary and binary operations, and -1 for variadic ones.
func (op Op) Arity() int {
	switch {
	case op >= OpAdd && op <= OpShr:
		return 2
	case op >= OpNeg && op <= OpAtanh:
		return 1
	case op >= OpMin && op <= OpLcm:
		return -1
	default:
		return 0
	}
}

// infix reports whether op is written between its operands.
func (op Op) infix() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow, OpAnd, OpOr, OpShl, OpShr:
		return true
	}
	return false
}

// Const identifies a named constant.
type Const int8

const (
	ConstPi Const = iota
	ConstE
	// ConstDegree is the number of radians in one degree, used by °.
	ConstDegree
	// ConstRadian is the number of degrees in one radian, used by rad.
	ConstRadian
)

// Numeric is an arithmetic over values of type T. The parser consults it to
// convert literals and to reject operations the arithmetic does not define,
// and the evaluator calls it for every operation.
//
// Implementations must be safe for concurrent use and should return a
// *DomainError for arguments outside an operation's domain. Neither the
// parser nor the evaluator calls a method with an op for which Supports
// returns false.
type Numeric[T any] interface {
	// Literal converts the text of a numeric literal. The text is a decimal
	// number, possibly followed by i to denote an imaginary literal, or i
	// alone for the imaginary unit.
	Literal(text string) (T, error)
	// Const returns the value of a named constant. The second result is false
	// if the arithmetic has no such constant.
	Const(c Const) (T, bool)
	// Supports reports whether the arithmetic defines op.
	Supports(op Op) bool
	// Unary applies a unary operation.
	Unary(op Op, x T) (T, error)
	// Binary applies a binary operation.
	Binary(op Op, x, y T) (T, error)
	// Variadic applies a variadic operation. xs may be empty only for OpAvg,
	// in which case the result is zero. Variadic must not modify xs.
	Variadic(op Op, xs []T) (T, error)
}

// extremum finds the least or greatest of xs. Ties go to the later argument.
func extremum[T any](op Op, xs []T, cmp func(x, y T) (int, error)) (T, error) {
	r := xs[0]
	for _, x := range xs[1:] {
		c, err := cmp(x, r)
		if err != nil {
			return r, err
		}
		if op == OpMax && c >= 0 || op == OpMin && c <= 0 {
			r = x
		}
	}
	return r, nil
}

// median sorts a copy of xs and returns its middle element, or mid of the two
// middle elements if there are an even number.
func median[T any](xs []T, cmp func(x, y T) (int, error), mid func(x, y T) (T, error)) (T, error) {
	s := slices.Clone(xs)
	var err error
	slices.SortStableFunc(s, func(x, y T) int {
		c, e := cmp(x, y)
		if e != nil && err == nil {
			err = e
		}
		return c
	})
	if err != nil {
		var zero T
		return zero, err
	}
	k := len(s) / 2
	if len(s)%2 != 0 {
		return s[k], nil
	}
	return mid(s[k-1], s[k])
}
