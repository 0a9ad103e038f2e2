package formula

import (
	"math"
	"strconv"
	"strings"

	"github.com/JohnCGriffin/overflow"
)

// Int64 is the arithmetic of int64 values. Division truncates, and overflow
// and division by zero are domain errors. Besides arithmetic, it supports the
// bitwise operators & | << >>, gcd, lcm, ilog, and integer square roots. It
// has no constants and no transcendental functions.
type Int64 struct{}

var _ Numeric[int64] = Int64{}

func (Int64) Literal(text string) (int64, error) {
	switch {
	case strings.HasSuffix(text, "i"):
		return 0, errImaginary
	case strings.ContainsRune(text, '.'):
		return 0, errFraction
	}
	return strconv.ParseInt(text, 10, 64)
}

func (Int64) Const(c Const) (int64, bool) {
	return 0, false
}

func (Int64) Supports(op Op) bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow, OpILog, OpAnd, OpOr, OpShl, OpShr:
	case OpNeg, OpAbs, OpFloor, OpCeil, OpRound, OpTrunc, OpSign, OpSqrt, OpFact:
	case OpMin, OpMax, OpAvg, OpMed, OpGcd, OpLcm:
	default:
		return false
	}
	return true
}

func (Int64) Unary(op Op, x int64) (int64, error) {
	switch op {
	case OpNeg:
		if x == math.MinInt64 {
			return 0, domain(op, 1, x, "overflow")
		}
		return -x, nil
	case OpAbs:
		if x == math.MinInt64 {
			return 0, domain(op, 1, x, "overflow")
		}
		if x < 0 {
			return -x, nil
		}
		return x, nil
	case OpFloor, OpCeil, OpRound, OpTrunc:
		return x, nil
	case OpSign:
		return int64(sign(float64(x))), nil
	case OpSqrt:
		if x < 0 {
			return 0, domain(op, 1, x, "negative argument")
		}
		return isqrt(x), nil
	case OpFact:
		if x < 0 {
			return 0, domain(op, 1, x, "negative integer")
		}
		if x >= int64(len(intFactorials)) {
			return 0, domain(op, 1, x, "overflow")
		}
		return intFactorials[x], nil
	default:
		panic("formula: not an integer unary operation: " + op.String())
	}
}

func (Int64) Binary(op Op, x, y int64) (int64, error) {
	var r int64
	ok := true
	switch op {
	case OpAdd:
		r, ok = overflow.Add64(x, y)
	case OpSub:
		r, ok = overflow.Sub64(x, y)
	case OpMul:
		r, ok = overflow.Mul64(x, y)
	case OpDiv, OpMod:
		if y == 0 {
			return 0, domain(op, 2, y, "division by zero")
		}
		if y == -1 {
			// Avoid MinInt64 / -1.
			if op == OpMod {
				return 0, nil
			}
			r, ok = overflow.Sub64(0, x)
			break
		}
		if op == OpMod {
			return x % y, nil
		}
		return x / y, nil
	case OpPow:
		if y < 0 {
			return 0, domain(op, 2, y, "negative exponent")
		}
		r, ok = ipow(x, y)
	case OpILog:
		return ilog(float64(x), float64(y))
	case OpAnd:
		return x & y, nil
	case OpOr:
		return x | y, nil
	case OpShl:
		if y < 0 {
			return 0, domain(op, 2, y, "negative shift")
		}
		if y >= 64 {
			r, ok = 0, x == 0
			break
		}
		r = x << y
		ok = r>>y == x
	case OpShr:
		if y < 0 {
			return 0, domain(op, 2, y, "negative shift")
		}
		return x >> y, nil
	default:
		panic("formula: not an integer binary operation: " + op.String())
	}
	if !ok {
		return 0, &DomainError{X: strconv.FormatInt(x, 10) + " " + op.String() + " " + strconv.FormatInt(y, 10), Func: op, Reason: "overflow"}
	}
	return r, nil
}

func (Int64) Variadic(op Op, xs []int64) (int64, error) {
	switch op {
	case OpMin, OpMax:
		return extremum(op, xs, intcmp)
	case OpAvg:
		if len(xs) == 0 {
			return 0, nil
		}
		var s int64
		for k, x := range xs {
			var ok bool
			if s, ok = overflow.Add64(s, x); !ok {
				return 0, domain(op, k+1, x, "overflow")
			}
		}
		return s / int64(len(xs)), nil
	case OpMed:
		return median(xs, intcmp, func(x, y int64) (int64, error) {
			if s, ok := overflow.Add64(x, y); ok {
				return s / 2, nil
			}
			// Only same-signed values overflow, so halving each is exact
			// up to the shared remainder.
			return x/2 + y/2 + (x%2+y%2)/2, nil
		})
	case OpGcd, OpLcm:
		v := make([]Number, len(xs))
		for k, x := range xs {
			v[k] = Int(x)
		}
		r, err := gcdlcm(op, v)
		if err != nil {
			return 0, err
		}
		if r.float {
			return 0, domain(op, 1, xs[0], "overflow")
		}
		return r.i, nil
	default:
		panic("formula: not a variadic operation: " + op.String())
	}
}

func intcmp(x, y int64) (int, error) {
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	}
	return 0, nil
}

// isqrt computes the floor of the square root of a non-negative x.
func isqrt(x int64) int64 {
	r := int64(math.Sqrt(float64(x)))
	// Correct for rounding in the float conversion.
	for r*r > x {
		r--
	}
	for (r+1)*(r+1) <= x && (r+1)*(r+1) > 0 {
		r++
	}
	return r
}
