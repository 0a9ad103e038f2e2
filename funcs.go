package formula

import (
	"math"
	"math/big"
)

// factorials holds n! for every n whose factorial is finite as a float64,
// each rounded once from the exact product.
var factorials = func() (f [171]float64) {
	x := big.NewInt(1)
	f[0] = 1
	for i := 1; i < len(f); i++ {
		x.Mul(x, big.NewInt(int64(i)))
		f[i], _ = new(big.Float).SetInt(x).Float64()
	}
	return f
}()

// lanczos holds the coefficients of the gamma approximation.
var lanczos = [...]float64{
	1.0514237858172197,
	-3.4568709722201625,
	4.512277094668948,
	-2.9828522532357664,
	1.056397115771267,
	-1.9542877319164587e-1,
	1.709705434044412e-2,
	-5.719261174043057e-4,
	4.633994733599057e-6,
	-2.7199490848860772e-9,
}

const (
	lanczosS = 2.4857408913875355e-5
	lanczosG = 10.400511
	lanczosK = 1.8603827342052657 // 2*sqrt(e/pi)
)

// gamma computes Γ(a) by Lanczos approximation, using the reflection formula
// below 1/2.
func gamma(a float64) float64 {
	if a < 0.5 {
		return math.Pi / (math.Sin(math.Pi*a) * gamma(1-a))
	}
	s := lanczosS
	for k, c := range lanczos {
		s += c / (a + float64(k))
	}
	return s * lanczosK * math.Pow((a+lanczosG)/math.E, a-0.5)
}

// factorial computes x!, exactly for integers where the result is finite and
// as Γ(x+1) otherwise. Negative integers are outside the domain.
func factorial(x float64) (float64, error) {
	if x != math.Trunc(x) {
		return gamma(x + 1), nil
	}
	if x < 0 {
		return 0, domain(OpFact, 1, x, "negative integer")
	}
	if x < float64(len(factorials)) {
		return factorials[int(x)], nil
	}
	return math.Inf(1), nil
}

// lambertW computes the principal branch of the Lambert W function by Halley
// iteration from zero.
func lambertW(x float64) (float64, error) {
	if x < -1/math.E {
		return 0, domain(OpLambertW, 1, x, "less than -1/e")
	}
	if math.IsInf(x, 1) || math.IsNaN(x) {
		return x, nil
	}
	iters := 4
	if x > 1 {
		if n := int(math.Ceil(math.Log10(x) / 3)); n > iters {
			iters = n
		}
	}
	var w float64
	for i := 0; i < iters; i++ {
		ew := math.Exp(w)
		f := w*ew - x
		w -= f / (ew*(w+1) - (w+2)*f/(2*w+2))
	}
	return w, nil
}

// maxILog is the number of iterations after which ilog gives up.
const maxILog = 1024

// ilog counts how many times the floored base-b logarithm must be applied to
// n to reach 1 or less.
func ilog(n, b float64) (int64, error) {
	if !(b > 0) || b == 1 {
		return 0, domain(OpILog, 2, b, "base must be positive and not 1")
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, domain(OpILog, 1, n, "not finite")
	}
	var x int64
	lb := math.Log10(b)
	for n > 1 {
		x++
		if x > maxILog {
			return 0, domain(OpILog, 2, b, "does not converge")
		}
		n = math.Floor(math.Log10(n) / lb)
	}
	return x, nil
}

// sign returns 1, 0, or -1 according to the sign of x, or NaN for NaN.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	case x == 0:
		return 0
	default:
		return x
	}
}

// realUnary applies a unary operation to a float64.
func realUnary(op Op, x float64) (float64, error) {
	switch op {
	case OpNeg:
		return -x, nil
	case OpAbs:
		return math.Abs(x), nil
	case OpFloor:
		return math.Floor(x), nil
	case OpCeil:
		return math.Ceil(x), nil
	case OpRound:
		return math.Round(x), nil
	case OpTrunc:
		return math.Trunc(x), nil
	case OpSign:
		return sign(x), nil
	case OpSqrt:
		if x < 0 {
			return 0, domain(OpSqrt, 1, x, "negative argument")
		}
		return math.Sqrt(x), nil
	case OpLn:
		return math.Log(x), nil
	case OpLb:
		return math.Log2(x), nil
	case OpExp:
		return math.Exp(x), nil
	case OpExp2:
		return math.Exp2(x), nil
	case OpFact:
		return factorial(x)
	case OpLambertW:
		return lambertW(x)
	case OpSin:
		return math.Sin(x), nil
	case OpCos:
		return math.Cos(x), nil
	case OpTan:
		return math.Tan(x), nil
	case OpSinh:
		return math.Sinh(x), nil
	case OpCosh:
		return math.Cosh(x), nil
	case OpTanh:
		return math.Tanh(x), nil
	case OpAsin:
		return math.Asin(x), nil
	case OpAcos:
		return math.Acos(x), nil
	case OpAtan:
		return math.Atan(x), nil
	case OpAsinh:
		return math.Asinh(x), nil
	case OpAcosh:
		return math.Acosh(x), nil
	case OpAtanh:
		return math.Atanh(x), nil
	default:
		panic("formula: not a real unary operation: " + op.String())
	}
}

// realBinary applies a binary operation to float64s. Bitwise operations are
// not defined.
func realBinary(op Op, x, y float64) (float64, error) {
	switch op {
	case OpAdd:
		return x + y, nil
	case OpSub:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpDiv:
		return x / y, nil
	case OpMod:
		return math.Mod(x, y), nil
	case OpPow:
		return math.Pow(x, y), nil
	case OpRoot:
		return math.Pow(y, 1/x), nil
	case OpLog:
		return math.Log(x) / math.Log(y), nil
	case OpILog:
		r, err := ilog(x, y)
		return float64(r), err
	case OpAtan2:
		return math.Atan2(x, y), nil
	default:
		panic("formula: not a real binary operation: " + op.String())
	}
}

// realSupports reports whether realUnary or realBinary defines op.
func realSupports(op Op) bool {
	switch op {
	case OpAnd, OpOr, OpShl, OpShr, OpGcd, OpLcm:
		return false
	}
	return op.Arity() != 0
}

// floatcmp compares float64s, treating NaN as an error for op.
func floatcmp(op Op) func(x, y float64) (int, error) {
	return func(x, y float64) (int, error) {
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		case x == y:
			return 0, nil
		}
		if x != x {
			return 0, domain(op, 0, x, "unordered")
		}
		return 0, domain(op, 0, y, "unordered")
	}
}

// gcd computes the greatest common divisor of a and b.
func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
