package formula

import "strconv"

// DefaultMaxDepth is the nesting limit used when no MaxDepth option is given.
const DefaultMaxDepth = 1000

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	depthopt    int
	trailingopt bool
)

// parsectx holds the configuration for parsing. It is also a ParseOption.
type parsectx struct {
	// maxDepth limits the nesting depth of a formula. Zero means the
	// default.
	maxDepth int
	// trailing indicates that tokens following a complete formula are
	// ignored rather than rejected.
	trailing bool
}

// MaxDepth limits how deeply a formula may nest brackets, operators, and
// function calls. Formulas exceeding the limit fail to parse with a
// *DepthError. Panics if n is not positive.
func MaxDepth(n int) ParseOption {
	if n <= 0 {
		panic("formula: invalid max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxDepth = int(o)
	return p
}

// AllowTrailing tells the parser to stop at the end of the first complete
// formula and ignore anything after it, so that "1+2)" parses as "1+2". By
// default, trailing tokens are an error.
func AllowTrailing() ParseOption {
	return trailingopt(true)
}

func (o trailingopt) parseOption(p parsectx) parsectx {
	p.trailing = bool(o)
	return p
}

// ParsingPreset combines several parse options into one. A preset panics when
// it would change any option from the default, but it is safe to apply other
// options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p != (parsectx{}) {
		panic("formula: preset applied to non-default parse config")
	}
	return *o
}
