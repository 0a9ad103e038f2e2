package formula_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/formula"
)

func newCache(t *testing.T, size int) (*formula.Cache[formula.Number], *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	c, err := formula.NewCache[formula.Number](formula.Dynamic{}, size, log)
	if err != nil {
		t.Fatalf("couldn't create cache: %v", err)
	}
	return c, &buf
}

func TestCacheHit(t *testing.T) {
	c, buf := newCache(t, 4)
	a, err := c.Parse("1 + 2")
	assert.NoError(t, err)
	b, err := c.Parse("1+2")
	assert.NoError(t, err)
	if a != b {
		t.Errorf("formulas differing in whitespace were parsed twice")
	}
	d, err := c.Parse(" 1\t+ 2\n")
	assert.NoError(t, err)
	if a != d {
		t.Errorf("formulas differing in whitespace were parsed twice")
	}
	assert.Equal(t, 1, c.Len())
	logs := buf.String()
	assert.Equal(t, 1, strings.Count(logs, `"message":"miss"`), "logs:\n%s", logs)
	assert.Equal(t, 2, strings.Count(logs, `"message":"hit"`), "logs:\n%s", logs)
}

func TestCacheEvict(t *testing.T) {
	c, buf := newCache(t, 2)
	for _, src := range []string{"1", "2", "3"} {
		_, err := c.Parse(src)
		assert.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())
	logs := buf.String()
	assert.Contains(t, logs, `"formula":"1","message":"evicted"`)
	// The oldest entry is gone, so parsing it again misses.
	_, err := c.Parse("1")
	assert.NoError(t, err)
	assert.Equal(t, 2, strings.Count(buf.String(), `"formula":"1","message":"miss"`))
}

func TestCacheErrors(t *testing.T) {
	c, _ := newCache(t, 4)
	_, err := c.Parse("1+")
	var empty *formula.EmptyExpressionError
	assert.True(t, errors.As(err, &empty), "got %v", err)
	assert.Equal(t, 0, c.Len())

	_, err = c.Eval("sqrt(-1)", formula.Int(0))
	var dom *formula.DomainError
	assert.True(t, errors.As(err, &dom), "got %v", err)
	// The formula parsed, so it stays cached even though it failed.
	assert.Equal(t, 1, c.Len())
}

func TestCacheEval(t *testing.T) {
	c, _ := newCache(t, 8)
	srcs := []string{"3+2-1*5/4", "@*2", "med(5,2,8,9)", "9223372036854775807+1", "2.5!"}
	for _, src := range srcs {
		for i := 0; i < 2; i++ {
			got, err := c.Eval(src, formula.Int(21))
			assert.NoError(t, err)
			want, err := formula.Evaluate(src, formula.Int(21))
			assert.NoError(t, err)
			assert.Equal(t, want, got, "%q", src)
		}
	}
	assert.Equal(t, len(srcs), c.Len())
}

func TestCacheOptions(t *testing.T) {
	c, err := formula.NewCache[formula.Number](formula.Dynamic{}, 4, zerolog.Nop(), formula.AllowTrailing())
	assert.NoError(t, err)
	r, err := c.Eval("1+2)", formula.Int(0))
	assert.NoError(t, err)
	assert.Equal(t, formula.Int(3), r)

	c, err = formula.NewCache[formula.Number](formula.Dynamic{}, 4, zerolog.Nop(), formula.MaxDepth(2))
	assert.NoError(t, err)
	_, err = c.Parse("((1))")
	var depth *formula.DepthError
	assert.True(t, errors.As(err, &depth), "got %v", err)
}

func TestNewCacheSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := formula.NewCache[formula.Number](formula.Dynamic{}, size, zerolog.Nop())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), fmt.Sprintf("size %d", size))
	}
}

func ExampleCache() {
	log := zerolog.New(os.Stdout).Level(zerolog.DebugLevel)
	c, err := formula.NewCache[float64](formula.Float64{}, 16, log)
	if err != nil {
		panic(err)
	}
	ans := 1.0
	for i := 0; i < 3; i++ {
		if ans, err = c.Eval("@ * 2", ans); err != nil {
			panic(err)
		}
	}
	fmt.Println(ans)

	// Output:
	// {"level":"debug","formula":"@*2","message":"miss"}
	// {"level":"debug","formula":"@*2","message":"hit"}
	// {"level":"debug","formula":"@*2","message":"hit"}
	// 8
}
