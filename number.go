package formula

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/JohnCGriffin/overflow"
)

// Number is a number that is either an exact integer or a float. The zero
// value is the integer 0.
type Number struct {
	i     int64
	f     float64
	float bool
}

// Int returns the integer x as a Number.
func Int(x int64) Number {
	return Number{i: x}
}

// Float returns the float x as a Number.
func Float(x float64) Number {
	return Number{f: x, float: true}
}

// IsInt reports whether x is an integer. A float with an integral value is
// not an integer.
func (x Number) IsInt() bool {
	return !x.float
}

// Int64 returns the value of x and true if x is an integer, or 0 and false
// if it is a float.
func (x Number) Int64() (int64, bool) {
	return x.i, !x.float
}

// Float64 returns the value of x as a float64, rounding integers as needed.
func (x Number) Float64() float64 {
	if x.float {
		return x.f
	}
	return float64(x.i)
}

func (x Number) String() string {
	if x.float {
		return strconv.FormatFloat(x.f, 'g', -1, 64)
	}
	return strconv.FormatInt(x.i, 10)
}

// Format implements fmt.Formatter. Integers formatted with floating-point
// verbs are converted to float64; all other verbs format the underlying
// int64 or float64.
func (x Number) Format(s fmt.State, verb rune) {
	var v any
	switch {
	case verb == 's', verb == 'q':
		v = x.String()
	case x.float:
		v = x.f
	case strings.ContainsRune("eEfFgG", verb):
		v = float64(x.i)
	default:
		v = x.i
	}
	fmt.Fprintf(s, fmt.FormatString(s, verb), v)
}

// Evaluate parses and evaluates a formula using Dynamic arithmetic, with ans
// as the value of @.
func Evaluate(src string, ans Number, opts ...ParseOption) (Number, error) {
	return Eval[Number](Dynamic{}, src, ans, opts...)
}

// Dynamic is the arithmetic of Numbers. Operations on integers produce exact
// integers whenever the result is an integer that fits in an int64, and
// floats otherwise. Operations involving a float, and all transcendental
// functions, produce floats. Bitwise operations are not supported.
type Dynamic struct{}

var _ Numeric[Number] = Dynamic{}

// Literal converts literals with a decimal point to floats and literals
// without one to integers, unless they are too large.
func (Dynamic) Literal(text string) (Number, error) {
	if strings.HasSuffix(text, "i") {
		return Number{}, errImaginary
	}
	if !strings.ContainsRune(text, '.') {
		i, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return Int(i), nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return Number{}, err
		}
	}
	f, err := parsefloat(text)
	return Float(f), err
}

func (Dynamic) Const(c Const) (Number, bool) {
	return Float(floatconst(c)), true
}

func (Dynamic) Supports(op Op) bool {
	return realSupports(op) || op == OpGcd || op == OpLcm
}

func (Dynamic) Unary(op Op, x Number) (Number, error) {
	if !x.float {
		switch op {
		case OpNeg:
			if x.i == math.MinInt64 {
				return Float(-float64(x.i)), nil
			}
			return Int(-x.i), nil
		case OpAbs:
			if x.i >= 0 {
				return x, nil
			}
			if x.i == math.MinInt64 {
				return Float(-float64(x.i)), nil
			}
			return Int(-x.i), nil
		case OpFloor, OpCeil, OpRound, OpTrunc:
			return x, nil
		case OpSign:
			return Int(int64(sign(float64(x.i)))), nil
		case OpFact:
			if x.i < 0 {
				return Number{}, domain(OpFact, 1, x, "negative integer")
			}
			if x.i < int64(len(intFactorials)) {
				return Int(intFactorials[x.i]), nil
			}
		}
	}
	r, err := realUnary(op, x.Float64())
	if err != nil {
		return Number{}, err
	}
	switch op {
	case OpFloor, OpCeil, OpRound, OpTrunc:
		return retag(r), nil
	case OpSign:
		if r != r {
			return Float(r), nil
		}
		return Int(int64(r)), nil
	}
	return Float(r), nil
}

func (Dynamic) Binary(op Op, x, y Number) (Number, error) {
	if !x.float && !y.float {
		a, b := x.i, y.i
		switch op {
		case OpAdd:
			if r, ok := overflow.Add64(a, b); ok {
				return Int(r), nil
			}
		case OpSub:
			if r, ok := overflow.Sub64(a, b); ok {
				return Int(r), nil
			}
		case OpMul:
			if r, ok := overflow.Mul64(a, b); ok {
				return Int(r), nil
			}
		case OpDiv:
			if b != 0 {
				if q, ok := overflow.Div64(a, b); ok && a%b == 0 {
					return Int(q), nil
				}
			}
		case OpMod:
			if b == 0 {
				return Float(math.NaN()), nil
			}
			if b == -1 {
				return Int(0), nil
			}
			return Int(a % b), nil
		case OpPow:
			if b >= 0 && b <= math.MaxUint32 {
				if r, ok := ipow(a, b); ok {
					return Int(r), nil
				}
			}
		}
	}
	if op == OpILog {
		r, err := ilog(x.Float64(), y.Float64())
		return Int(r), err
	}
	r, err := realBinary(op, x.Float64(), y.Float64())
	if err != nil {
		return Number{}, err
	}
	return Float(r), nil
}

func (Dynamic) Variadic(op Op, xs []Number) (Number, error) {
	switch op {
	case OpMin, OpMax:
		return extremum(op, xs, numcmp(op))
	case OpAvg:
		var s float64
		for _, x := range xs {
			s += x.Float64()
		}
		if len(xs) == 0 {
			return Float(0), nil
		}
		return Float(s / float64(len(xs))), nil
	case OpMed:
		return median(xs, numcmp(op), func(x, y Number) (Number, error) {
			return Float((x.Float64() + y.Float64()) / 2), nil
		})
	case OpGcd, OpLcm:
		return gcdlcm(op, xs)
	default:
		panic("formula: not a variadic operation: " + op.String())
	}
}

// numcmp compares Numbers, exactly if both are integers.
func numcmp(op Op) func(x, y Number) (int, error) {
	fc := floatcmp(op)
	return func(x, y Number) (int, error) {
		if !x.float && !y.float {
			switch {
			case x.i < y.i:
				return -1, nil
			case x.i > y.i:
				return 1, nil
			}
			return 0, nil
		}
		return fc(x.Float64(), y.Float64())
	}
}

// retag converts an integral float to an integer if it fits.
func retag(f float64) Number {
	if f >= -(1<<63) && f < 1<<63 {
		return Int(int64(f))
	}
	return Float(f)
}

// intFactorials holds n! for every n whose factorial fits in an int64.
var intFactorials = func() (f [21]int64) {
	f[0] = 1
	for i := 1; i < len(f); i++ {
		f[i] = f[i-1] * int64(i)
	}
	return f
}()

// ipow computes a^b for b >= 0 by squaring. The second result is false on
// overflow.
func ipow(a, b int64) (int64, bool) {
	r := int64(1)
	var ok bool
	for b > 0 {
		if b&1 != 0 {
			if r, ok = overflow.Mul64(r, a); !ok {
				return 0, false
			}
		}
		b >>= 1
		if b > 0 {
			if a, ok = overflow.Mul64(a, a); !ok {
				return 0, false
			}
		}
	}
	return r, true
}

// gcdlcm computes the gcd or lcm of integer Numbers.
func gcdlcm(op Op, xs []Number) (Number, error) {
	var r uint64
	for k, x := range xs {
		if x.float {
			return Number{}, domain(op, k+1, x, "not an integer")
		}
		a := absu(x.i)
		switch {
		case k == 0:
			r = a
		case op == OpGcd:
			r = gcd(r, a)
		case r == 0 || a == 0:
			r = 0
		default:
			hi, lo := bits.Mul64(r/gcd(r, a), a)
			if hi != 0 || lo > math.MaxInt64 {
				return Number{}, domain(op, k+1, x, "overflow")
			}
			r = lo
		}
	}
	if r > math.MaxInt64 {
		// gcd(MinInt64) alone.
		return Float(float64(r)), nil
	}
	return Int(int64(r)), nil
}

// absu is the absolute value of x as a uint64, which is always exact.
func absu(x int64) uint64 {
	if x < 0 {
		return uint64(-(x + 1)) + 1
	}
	return uint64(x)
}
