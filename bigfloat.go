package formula

import (
	"errors"
	"math"
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// BigFloat is the arithmetic of *big.Float values with Prec bits of
// mantissa, or 64 if Prec is zero. Exponentials, logarithms, and powers are
// computed to full precision. Other transcendental functions round-trip
// through float64.
//
// Operations never modify their operands. Results which big.Float cannot
// represent, such as 0/0 or ∞-∞, are domain errors.
type BigFloat struct {
	Prec uint
}

var _ Numeric[*big.Float] = BigFloat{}

// maxBigPow is the largest integral exponent computed by repeated squaring.
const maxBigPow = 1 << 16

func (b BigFloat) new() *big.Float {
	if b.Prec == 0 {
		return new(big.Float).SetPrec(64)
	}
	return new(big.Float).SetPrec(b.Prec)
}

func (b BigFloat) Literal(text string) (*big.Float, error) {
	if strings.HasSuffix(text, "i") {
		return nil, errImaginary
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	r, _, err := b.new().Parse(text, 10)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		return b.new().SetInf(false), nil
	default:
		return nil, err
	}
	return r, nil
}

func (b BigFloat) Const(c Const) (*big.Float, bool) {
	switch c {
	case ConstPi:
		return bigfloat.Pi(b.new()), true
	case ConstE:
		return bigfloat.Exp(b.new(), big.NewFloat(1)), true
	case ConstDegree:
		pi := bigfloat.Pi(b.new())
		return pi.Quo(pi, big.NewFloat(180)), true
	case ConstRadian:
		pi := bigfloat.Pi(b.new())
		return pi.Quo(big.NewFloat(180), pi), true
	default:
		return nil, false
	}
}

func (BigFloat) Supports(op Op) bool {
	return realSupports(op)
}

func (b BigFloat) Unary(op Op, x *big.Float) (r *big.Float, err error) {
	defer recoverNaN(op, x, &err)
	switch op {
	case OpNeg:
		return b.new().Neg(x), nil
	case OpAbs:
		return b.new().Abs(x), nil
	case OpFloor, OpCeil, OpRound, OpTrunc:
		return b.round(op, x), nil
	case OpSign:
		return b.new().SetInt64(int64(x.Sign())), nil
	case OpSqrt:
		if x.Sign() < 0 {
			return nil, domain(op, 1, x, "negative argument")
		}
		return b.new().Sqrt(x), nil
	case OpLn:
		if x.Sign() < 0 {
			return nil, domain(op, 1, x, "negative argument")
		}
		return bigfloat.Log(b.new(), x), nil
	case OpLb:
		if x.Sign() < 0 {
			return nil, domain(op, 1, x, "negative argument")
		}
		r := bigfloat.Log(b.new(), x)
		return r.Quo(r, bigfloat.Log(b.new(), big.NewFloat(2))), nil
	case OpExp:
		return bigfloat.Exp(b.new(), x), nil
	case OpExp2:
		return b.pow(op, big.NewFloat(2), x)
	case OpFact:
		if x.IsInt() && !x.IsInf() {
			if x.Sign() < 0 {
				return nil, domain(op, 1, x, "negative integer")
			}
			if n, acc := x.Int64(); acc == big.Exact && n <= maxBigPow {
				var f big.Int
				return b.new().SetInt(f.MulRange(1, n)), nil
			}
			return b.new().SetInf(false), nil
		}
	}
	f, _ := x.Float64()
	f, err = realUnary(op, f)
	if err != nil {
		return nil, err
	}
	return b.fromFloat(op, x, f)
}

func (b BigFloat) Binary(op Op, x, y *big.Float) (r *big.Float, err error) {
	defer recoverNaN(op, x, &err)
	switch op {
	case OpAdd:
		return b.new().Add(x, y), nil
	case OpSub:
		return b.new().Sub(x, y), nil
	case OpMul:
		return b.new().Mul(x, y), nil
	case OpDiv:
		return b.new().Quo(x, y), nil
	case OpMod:
		return b.mod(op, x, y)
	case OpPow:
		return b.pow(op, x, y)
	case OpRoot:
		if x.Sign() == 0 {
			return nil, domain(op, 1, x, "zeroth root")
		}
		e := b.new().Quo(big.NewFloat(1), x)
		return b.pow(op, y, e)
	case OpLog:
		if x.Sign() < 0 {
			return nil, domain(op, 1, x, "negative argument")
		}
		if y.Sign() <= 0 {
			return nil, domain(op, 2, y, "non-positive base")
		}
		r := bigfloat.Log(b.new(), x)
		return r.Quo(r, bigfloat.Log(b.new(), y)), nil
	case OpILog:
		n, _ := x.Float64()
		base, _ := y.Float64()
		k, err := ilog(n, base)
		if err != nil {
			return nil, err
		}
		return b.new().SetInt64(k), nil
	}
	fx, _ := x.Float64()
	fy, _ := y.Float64()
	f, err := realBinary(op, fx, fy)
	if err != nil {
		return nil, err
	}
	return b.fromFloat(op, x, f)
}

func (b BigFloat) Variadic(op Op, xs []*big.Float) (r *big.Float, err error) {
	defer recoverNaN(op, nil, &err)
	switch op {
	case OpMin, OpMax:
		return extremum(op, xs, bigcmp)
	case OpAvg:
		r := b.new()
		if len(xs) == 0 {
			return r, nil
		}
		for _, x := range xs {
			r.Add(r, x)
		}
		return r.Quo(r, big.NewFloat(float64(len(xs)))), nil
	case OpMed:
		return median(xs, bigcmp, func(x, y *big.Float) (*big.Float, error) {
			r := b.new().Add(x, y)
			return r.Quo(r, big.NewFloat(2)), nil
		})
	default:
		panic("formula: not a big variadic operation: " + op.String())
	}
}

func bigcmp(x, y *big.Float) (int, error) {
	return x.Cmp(y), nil
}

// round applies a rounding operation. Rounding is half away from zero.
func (b BigFloat) round(op Op, x *big.Float) *big.Float {
	r := b.new()
	if x.IsInf() || x.IsInt() {
		return r.Set(x)
	}
	i, _ := x.Int(nil)
	r.SetInt(i)
	// x-r is exact because r is the integral part of x.
	frac := new(big.Float).SetPrec(x.Prec()).Sub(x, r)
	var adj int64
	switch op {
	case OpFloor:
		if frac.Sign() < 0 {
			adj = -1
		}
	case OpCeil:
		if frac.Sign() > 0 {
			adj = 1
		}
	case OpRound:
		if frac.Abs(frac).Cmp(big.NewFloat(0.5)) >= 0 {
			adj = int64(x.Sign())
		}
	}
	if adj != 0 {
		r.Add(r, big.NewFloat(float64(adj)))
	}
	return r
}

// mod computes the remainder of x/y truncated toward zero, like math.Mod.
func (b BigFloat) mod(op Op, x, y *big.Float) (*big.Float, error) {
	switch {
	case y.Sign() == 0:
		return nil, domain(op, 2, y, "division by zero")
	case x.IsInf():
		return nil, domain(op, 1, x, "infinite dividend")
	case y.IsInf():
		return b.new().Set(x), nil
	}
	q := new(big.Float).SetPrec(x.Prec() + y.Prec() + 64).Quo(x, y)
	i, _ := q.Int(nil)
	q.SetInt(i)
	q.Mul(q, y)
	return b.new().Sub(x, q), nil
}

// pow computes x^y, exactly by squaring when y is a small integer.
func (b BigFloat) pow(op Op, x, y *big.Float) (*big.Float, error) {
	if y.IsInt() && !y.IsInf() {
		if n, acc := y.Int64(); acc == big.Exact && n >= -maxBigPow && n <= maxBigPow {
			return b.ipow(x, n), nil
		}
	}
	switch x.Sign() {
	case -1:
		return nil, domain(op, 1, x, "negative base with fractional exponent")
	case 0:
		if y.Sign() < 0 {
			return b.new().SetInf(false), nil
		}
		return b.new(), nil
	}
	if x.IsInf() {
		if y.Sign() < 0 {
			return b.new(), nil
		}
		return b.new().SetInf(false), nil
	}
	return bigfloat.Pow(b.new(), x, y), nil
}

// ipow computes x^n by squaring.
func (b BigFloat) ipow(x *big.Float, n int64) *big.Float {
	neg := n < 0
	if neg {
		n = -n
	}
	// Carry extra bits through the products.
	prec := b.new().Prec() + 64
	r := new(big.Float).SetPrec(prec).SetInt64(1)
	p := new(big.Float).SetPrec(prec).Set(x)
	for n > 0 {
		if n&1 != 0 {
			r.Mul(r, p)
		}
		n >>= 1
		if n > 0 {
			p.Mul(p, p)
		}
	}
	if neg {
		r.Quo(big.NewFloat(1), r)
	}
	return b.new().Set(r)
}

func (b BigFloat) fromFloat(op Op, x *big.Float, f float64) (*big.Float, error) {
	if math.IsNaN(f) {
		return nil, domain(op, 1, x, "result is not a number")
	}
	return b.new().SetFloat64(f), nil
}

// recoverNaN converts a big.ErrNaN panic into a domain error. Other panics
// propagate.
func recoverNaN(op Op, x *big.Float, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	var nan big.ErrNaN
	if !ok || !errors.As(e, &nan) {
		panic(r)
	}
	d := &DomainError{X: "?", Func: op, Reason: nan.Error()}
	if x != nil {
		d.X = x.String()
	}
	*err = d
}
