package formula

import (
	"math"
	"math/cmplx"
	"strings"
)

// Complex128 is the arithmetic of complex128 values. Literals followed by i
// are imaginary, and i alone is the imaginary unit. Every operation is
// defined on the whole complex plane, so sqrt(-4) is 2i. Operations that need
// an ordering, rounding, and integer functions are not supported.
type Complex128 struct{}

var _ Numeric[complex128] = Complex128{}

func (Complex128) Literal(text string) (complex128, error) {
	im, ok := strings.CutSuffix(text, "i")
	if !ok {
		f, err := parsefloat(text)
		return complex(f, 0), err
	}
	if im == "" {
		return 1i, nil
	}
	f, err := parsefloat(im)
	return complex(0, f), err
}

func (Complex128) Const(c Const) (complex128, bool) {
	return complex(floatconst(c), 0), true
}

func (Complex128) Supports(op Op) bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpPow, OpRoot, OpLog:
	case OpNeg, OpAbs, OpSqrt, OpLn, OpLb, OpExp, OpExp2:
	case OpSin, OpCos, OpTan, OpSinh, OpCosh, OpTanh:
	case OpAsin, OpAcos, OpAtan, OpAsinh, OpAcosh, OpAtanh:
	case OpAvg:
	default:
		return false
	}
	return true
}

func (Complex128) Unary(op Op, x complex128) (complex128, error) {
	switch op {
	case OpNeg:
		// 0-x keeps a zero imaginary part positive, so sqrt(-4) is 2i.
		return 0 - x, nil
	case OpAbs:
		return complex(cmplx.Abs(x), 0), nil
	case OpSqrt:
		return cmplx.Sqrt(x), nil
	case OpLn:
		return cmplx.Log(x), nil
	case OpLb:
		return cmplx.Log(x) / math.Ln2, nil
	case OpExp:
		return cmplx.Exp(x), nil
	case OpExp2:
		return cmplx.Pow(2, x), nil
	case OpSin:
		return cmplx.Sin(x), nil
	case OpCos:
		return cmplx.Cos(x), nil
	case OpTan:
		return cmplx.Tan(x), nil
	case OpSinh:
		return cmplx.Sinh(x), nil
	case OpCosh:
		return cmplx.Cosh(x), nil
	case OpTanh:
		return cmplx.Tanh(x), nil
	case OpAsin:
		return cmplx.Asin(x), nil
	case OpAcos:
		return cmplx.Acos(x), nil
	case OpAtan:
		return cmplx.Atan(x), nil
	case OpAsinh:
		return cmplx.Asinh(x), nil
	case OpAcosh:
		return cmplx.Acosh(x), nil
	case OpAtanh:
		return cmplx.Atanh(x), nil
	default:
		panic("formula: not a complex unary operation: " + op.String())
	}
}

func (Complex128) Binary(op Op, x, y complex128) (complex128, error) {
	switch op {
	case OpAdd:
		return x + y, nil
	case OpSub:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpDiv:
		return x / y, nil
	case OpPow:
		return cmplx.Pow(x, y), nil
	case OpRoot:
		return cmplx.Pow(y, 1/x), nil
	case OpLog:
		return cmplx.Log(x) / cmplx.Log(y), nil
	default:
		panic("formula: not a complex binary operation: " + op.String())
	}
}

func (Complex128) Variadic(op Op, xs []complex128) (complex128, error) {
	if op != OpAvg {
		panic("formula: not a complex variadic operation: " + op.String())
	}
	if len(xs) == 0 {
		return 0, nil
	}
	var s complex128
	for _, x := range xs {
		s += x
	}
	return s / complex(float64(len(xs)), 0), nil
}
