package formula

import (
	"errors"
	"math"
	"testing"
)

func TestGamma(t *testing.T) {
	cases := []struct {
		x, want float64
	}{
		{1, 1},
		{2, 1},
		{5, 24},
		{0.5, math.Sqrt(math.Pi)},
		{1.5, math.Sqrt(math.Pi) / 2},
		{-0.5, -2 * math.Sqrt(math.Pi)},
		{0.1, 9.513507698668732},
		{10.5, 1133278.3889487855},
	}
	for _, c := range cases {
		got := gamma(c.x)
		if math.Abs(got-c.want) > 1e-12*math.Max(1, math.Abs(c.want)) {
			t.Errorf("Γ(%v): want %v, got %v", c.x, c.want, got)
		}
		if want := math.Gamma(c.x); math.Abs(got-want) > 1e-12*math.Max(1, math.Abs(want)) {
			t.Errorf("Γ(%v) disagrees with math.Gamma: %v vs %v", c.x, got, want)
		}
	}
}

func TestFactorial(t *testing.T) {
	for n := 0; n < len(factorials); n++ {
		got, err := factorial(float64(n))
		if err != nil {
			t.Fatalf("%d!: %v", n, err)
		}
		if got != factorials[n] {
			t.Errorf("%d!: want %v, got %v", n, factorials[n], got)
		}
	}
	exact := map[float64]float64{
		22: 1124000727777607680000,
		25: 15511210043330985984000000,
		30: 265252859812191058636308480000000,
	}
	for n, want := range exact {
		if got, _ := factorial(n); got != want {
			t.Errorf("%v!: want %v, got %v", n, want, got)
		}
	}
	for n := 21; n < len(factorials); n++ {
		got, _ := factorial(float64(n))
		if want := math.Gamma(float64(n + 1)); math.Abs(got-want) > 1e-12*want {
			t.Errorf("%d!: %v is far from Γ(%d) = %v", n, got, n+1, want)
		}
	}
	if got, _ := factorial(171); !math.IsInf(got, 1) {
		t.Errorf("171!: want +Inf, got %v", got)
	}
	_, err := factorial(-3)
	var d *DomainError
	if !errors.As(err, &d) || d.Func != OpFact {
		t.Errorf("(-3)!: want domain error, got %v", err)
	}
	for k := 1; k < len(intFactorials); k++ {
		if intFactorials[k] != intFactorials[k-1]*int64(k) {
			t.Errorf("wrong integer factorial of %d: %d", k, intFactorials[k])
		}
		if float64(intFactorials[k]) != factorials[k] {
			t.Errorf("integer and float factorials of %d disagree", k)
		}
	}
}

func TestLambertW(t *testing.T) {
	cases := []float64{0, 0.25, 1, math.E, 2, 5, -0.1, -0.3}
	for _, x := range cases {
		w, err := lambertW(x)
		if err != nil {
			t.Fatalf("W(%v): %v", x, err)
		}
		if got := w * math.Exp(w); math.Abs(got-x) > 1e-12 {
			t.Errorf("W(%v) = %v, but W e^W = %v", x, w, got)
		}
	}
	if w, _ := lambertW(math.Inf(1)); !math.IsInf(w, 1) {
		t.Errorf("W(+Inf): want +Inf, got %v", w)
	}
	_, err := lambertW(-1)
	var d *DomainError
	if !errors.As(err, &d) || d.Func != OpLambertW || d.Arg != 1 {
		t.Errorf("W(-1): want domain error, got %v", err)
	}
}

func TestILog(t *testing.T) {
	cases := []struct {
		n, b float64
		want int64
	}{
		{0, 2, 0},
		{1, 2, 0},
		{2, 2, 1},
		{4, 2, 2},
		{16, 2, 3},
		{65536, 2, 4},
		{100, 10, 2},
		{1e10, 10, 2},
		{math.MaxFloat64, 2, 4},
		{4, 0.5, 1},
		{100, 0.1, 1},
		{0.5, 0.5, 0},
	}
	for _, c := range cases {
		got, err := ilog(c.n, c.b)
		if err != nil {
			t.Errorf("ilog(%v, %v): %v", c.n, c.b, err)
			continue
		}
		if got != c.want {
			t.Errorf("ilog(%v, %v): want %d, got %d", c.n, c.b, c.want, got)
		}
	}
	bad := []struct {
		n, b float64
		arg  int
	}{
		{10, 1, 2},
		{10, 0, 2},
		{10, -2, 2},
		{10, math.Inf(-1), 2},
		{10, math.NaN(), 2},
		{math.Inf(1), 2, 1},
		{math.NaN(), 2, 1},
	}
	for _, c := range bad {
		_, err := ilog(c.n, c.b)
		var d *DomainError
		if !errors.As(err, &d) || d.Arg != c.arg {
			t.Errorf("ilog(%v, %v): want domain error in argument %d, got %v", c.n, c.b, c.arg, err)
		}
	}
}

func TestSign(t *testing.T) {
	cases := map[float64]float64{3: 1, -3: -1, 0: 0, math.Inf(-1): -1}
	for x, want := range cases {
		if got := sign(x); got != want {
			t.Errorf("sign(%v): want %v, got %v", x, want, got)
		}
	}
	if got := sign(math.NaN()); !math.IsNaN(got) {
		t.Errorf("sign(NaN): want NaN, got %v", got)
	}
}

func TestIPow(t *testing.T) {
	cases := []struct {
		a, b int64
		want int64
		ok   bool
	}{
		{2, 0, 1, true},
		{0, 0, 1, true},
		{2, 10, 1024, true},
		{-2, 63, math.MinInt64, true},
		{2, 63, 0, false},
		{-1, 1 << 40, 1, true},
		{3, 39, 4052555153018976267, true},
		{3, 40, 0, false},
	}
	for _, c := range cases {
		got, ok := ipow(c.a, c.b)
		if got != c.want || ok != c.ok {
			t.Errorf("%d^%d: want %d %t, got %d %t", c.a, c.b, c.want, c.ok, got, ok)
		}
	}
}

func TestISqrt(t *testing.T) {
	for _, x := range []int64{0, 1, 2, 3, 4, 15, 16, 17, 1 << 52, 1<<62 - 1, 1 << 62, math.MaxInt64} {
		r := isqrt(x)
		if r*r > x || (r+1)*(r+1) > 0 && (r+1)*(r+1) <= x {
			t.Errorf("isqrt(%d) = %d is wrong", x, r)
		}
	}
}

func TestAbsU(t *testing.T) {
	cases := map[int64]uint64{0: 0, 5: 5, -5: 5, math.MaxInt64: math.MaxInt64, math.MinInt64: 1 << 63}
	for x, want := range cases {
		if got := absu(x); got != want {
			t.Errorf("absu(%d): want %d, got %d", x, want, got)
		}
	}
}

func TestRetag(t *testing.T) {
	cases := []struct {
		f    float64
		want Number
	}{
		{0, Int(0)},
		{-3, Int(-3)},
		{-(1 << 63), Int(math.MinInt64)},
		{1 << 63, Float(1 << 63)},
		{math.Inf(1), Float(math.Inf(1))},
	}
	for _, c := range cases {
		if got := retag(c.f); got != c.want {
			t.Errorf("retag(%v): want %#v, got %#v", c.f, c.want, got)
		}
	}
}

func TestMedianDoesNotModify(t *testing.T) {
	xs := []int64{5, 2, 8, 9, 1}
	m, err := median(xs, intcmp, func(x, y int64) (int64, error) { return (x + y) / 2, nil })
	if err != nil {
		t.Fatal(err)
	}
	if m != 5 {
		t.Errorf("wrong median: want 5, got %d", m)
	}
	if xs[0] != 5 || xs[1] != 2 || xs[4] != 1 {
		t.Errorf("median modified its argument: %v", xs)
	}
}
