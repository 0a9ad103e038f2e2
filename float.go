package formula

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Float64 is the arithmetic of float64 values. Results which are undefined
// follow IEEE-754, except that square roots of negative numbers, factorials
// of negative integers, and the Lambert W function below -1/e are domain
// errors. Bitwise operations, gcd, and lcm are not supported.
type Float64 struct{}

var _ Numeric[float64] = Float64{}

func (Float64) Literal(text string) (float64, error) {
	if strings.HasSuffix(text, "i") {
		return 0, errImaginary
	}
	return parsefloat(text)
}

func (Float64) Const(c Const) (float64, bool) {
	return floatconst(c), true
}

func (Float64) Supports(op Op) bool {
	return realSupports(op)
}

func (Float64) Unary(op Op, x float64) (float64, error) {
	return realUnary(op, x)
}

func (Float64) Binary(op Op, x, y float64) (float64, error) {
	return realBinary(op, x, y)
}

func (Float64) Variadic(op Op, xs []float64) (float64, error) {
	switch op {
	case OpMin, OpMax:
		return extremum(op, xs, floatcmp(op))
	case OpAvg:
		return mean(xs), nil
	case OpMed:
		return median(xs, floatcmp(op), func(x, y float64) (float64, error) { return (x + y) / 2, nil })
	default:
		panic("formula: not a variadic operation: " + op.String())
	}
}

var (
	errImaginary = errors.New("imaginary numbers are not supported")
	errFraction  = errors.New("fractional numbers are not supported")
)

// parsefloat parses a decimal literal. Literals too large for a float64 are
// infinite rather than errors.
func parsefloat(text string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return f, nil
}

func floatconst(c Const) float64 {
	switch c {
	case ConstPi:
		return math.Pi
	case ConstE:
		return math.E
	case ConstDegree:
		return math.Pi / 180
	case ConstRadian:
		return 180 / math.Pi
	default:
		panic("formula: unknown constant " + strconv.Itoa(int(c)))
	}
}

// mean is the arithmetic mean of xs, or zero if there are none.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}
