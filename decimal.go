package formula

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal is the arithmetic of arbitrary-precision decimal numbers. Addition,
// subtraction, multiplication, and integral powers are exact. Division rounds
// to Precision decimal places, or decimal.DivisionPrecision if Precision is
// zero. Trigonometric functions other than the inverses use the decimal
// series; other transcendental functions round-trip through float64.
//
// Division by zero, square roots of negative numbers, and results which are
// not finite are domain errors.
type Decimal struct {
	Precision int32
}

var _ Numeric[decimal.Decimal] = Decimal{}

const (
	decimalPi = "3.14159265358979323846264338327950288419716939937510582097494459"
	decimalE  = "2.71828182845904523536028747135266249775724709369995957496696763"
)

// maxDecimalPow is the largest integral exponent computed exactly.
const maxDecimalPow = 1 << 16

var decimalHalf = decimal.New(5, -1)

func (d Decimal) prec() int32 {
	if d.Precision <= 0 {
		return int32(decimal.DivisionPrecision)
	}
	return d.Precision
}

func (Decimal) Literal(text string) (decimal.Decimal, error) {
	if strings.HasSuffix(text, "i") {
		return decimal.Zero, errImaginary
	}
	return decimal.NewFromString(text)
}

func (d Decimal) Const(c Const) (decimal.Decimal, bool) {
	pi := decimal.RequireFromString(decimalPi)
	switch c {
	case ConstPi:
		return pi, true
	case ConstE:
		return decimal.RequireFromString(decimalE), true
	case ConstDegree:
		return pi.DivRound(decimal.NewFromInt(180), d.prec()), true
	case ConstRadian:
		return decimal.NewFromInt(180).DivRound(pi, d.prec()), true
	default:
		return decimal.Zero, false
	}
}

func (Decimal) Supports(op Op) bool {
	return realSupports(op)
}

func (d Decimal) Unary(op Op, x decimal.Decimal) (r decimal.Decimal, err error) {
	defer recoverDecimal(op, &err)
	switch op {
	case OpNeg:
		return x.Neg(), nil
	case OpAbs:
		return x.Abs(), nil
	case OpFloor:
		return x.Floor(), nil
	case OpCeil:
		return x.Ceil(), nil
	case OpRound:
		// Round halves away from zero.
		return x.Round(0), nil
	case OpTrunc:
		return x.Truncate(0), nil
	case OpSign:
		return decimal.NewFromInt(int64(x.Sign())), nil
	case OpSqrt:
		if x.Sign() < 0 {
			return decimal.Zero, domain(op, 1, x, "negative argument")
		}
	case OpFact:
		if x.IsInteger() {
			if x.Sign() < 0 {
				return decimal.Zero, domain(op, 1, x, "negative integer")
			}
			if x.LessThan(decimal.NewFromInt(int64(len(factorials)))) {
				r := decimal.NewFromInt(1)
				for k := int64(2); k <= x.IntPart(); k++ {
					r = r.Mul(decimal.NewFromInt(k))
				}
				return r, nil
			}
		}
	case OpSin:
		return x.Sin(), nil
	case OpCos:
		return x.Cos(), nil
	case OpTan:
		return x.Tan(), nil
	case OpAtan:
		return x.Atan(), nil
	}
	f, err := realUnary(op, x.InexactFloat64())
	if err != nil {
		return decimal.Zero, err
	}
	return fromFloat(op, x, f)
}

func (d Decimal) Binary(op Op, x, y decimal.Decimal) (r decimal.Decimal, err error) {
	defer recoverDecimal(op, &err)
	switch op {
	case OpAdd:
		return x.Add(y), nil
	case OpSub:
		return x.Sub(y), nil
	case OpMul:
		return x.Mul(y), nil
	case OpDiv:
		if y.IsZero() {
			return decimal.Zero, domain(op, 2, y, "division by zero")
		}
		return x.DivRound(y, d.prec()), nil
	case OpMod:
		if y.IsZero() {
			return decimal.Zero, domain(op, 2, y, "division by zero")
		}
		return x.Mod(y), nil
	case OpPow:
		if y.IsInteger() && y.Abs().LessThanOrEqual(decimal.NewFromInt(maxDecimalPow)) {
			n := y.IntPart()
			if n < 0 && x.IsZero() {
				return decimal.Zero, domain(op, 1, x, "division by zero")
			}
			r := decpow(x, n)
			if n < 0 {
				r = decimal.NewFromInt(1).DivRound(r, d.prec())
			}
			return r, nil
		}
	case OpILog:
		k, err := ilog(x.InexactFloat64(), y.InexactFloat64())
		return decimal.NewFromInt(k), err
	}
	f, err := realBinary(op, x.InexactFloat64(), y.InexactFloat64())
	if err != nil {
		return decimal.Zero, err
	}
	return fromFloat(op, x, f)
}

func (d Decimal) Variadic(op Op, xs []decimal.Decimal) (decimal.Decimal, error) {
	switch op {
	case OpMin, OpMax:
		return extremum(op, xs, deccmp)
	case OpAvg:
		if len(xs) == 0 {
			return decimal.Zero, nil
		}
		s := decimal.Sum(xs[0], xs[1:]...)
		return s.DivRound(decimal.NewFromInt(int64(len(xs))), d.prec()), nil
	case OpMed:
		return median(xs, deccmp, func(x, y decimal.Decimal) (decimal.Decimal, error) {
			return x.Add(y).Mul(decimalHalf), nil
		})
	default:
		panic("formula: not a decimal variadic operation: " + op.String())
	}
}

func deccmp(x, y decimal.Decimal) (int, error) {
	return x.Cmp(y), nil
}

// decpow computes x^|n| by squaring.
func decpow(x decimal.Decimal, n int64) decimal.Decimal {
	if n < 0 {
		n = -n
	}
	r := decimal.NewFromInt(1)
	for n > 0 {
		if n&1 != 0 {
			r = r.Mul(x)
		}
		n >>= 1
		if n > 0 {
			x = x.Mul(x)
		}
	}
	return r
}

// fromFloat converts the float64 result of op on x back to a decimal. Results
// which are not finite have no decimal representation.
func fromFloat(op Op, x decimal.Decimal, f float64) (decimal.Decimal, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, domain(op, 1, x, fmt.Sprintf("result %v is not a decimal", f))
	}
	return decimal.NewFromFloat(f), nil
}

// recoverDecimal converts a panic in the decimal package into a domain error.
func recoverDecimal(op Op, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = &DomainError{X: "?", Func: op, Reason: fmt.Sprint(r)}
}
