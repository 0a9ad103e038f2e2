package formula

import (
	"errors"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "10", kind: tokenNum, pos: 1}}, 0},
		{"1.5", []lexToken{{text: "1.5", kind: tokenNum, pos: 1}}, 0},
		{".5", []lexToken{{text: ".5", kind: tokenNum, pos: 1}}, 0},
		{"1.", []lexToken{{text: "1.", kind: tokenNum, pos: 1}}, 0},
		{"1.2.3", []lexToken{{text: "1.2", kind: tokenNum, pos: 1}, {text: ".3", kind: tokenNum, pos: 4}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 0},
		{"3i", []lexToken{{text: "3i", kind: tokenNum, pos: 1}}, 0},
		{"i", []lexToken{{text: "i", kind: tokenNum, pos: 1}}, 0},
		{"2²³", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "23", kind: tokenSup, pos: 2}}, 0},
		{"⁰¹⁴⁹", []lexToken{{text: "0149", kind: tokenSup, pos: 1}}, 0},
		{
			"2ilog(8,2)",
			[]lexToken{
				{text: "2", kind: tokenNum, pos: 1},
				{text: "ilog", kind: tokenFunc, op: OpILog, pos: 2},
				{text: "(", kind: tokenOpen, pos: 6},
				{text: "8", kind: tokenNum, pos: 7},
				{text: ",", kind: tokenSep, pos: 8},
				{text: "2", kind: tokenNum, pos: 9},
				{text: ")", kind: tokenClose, pos: 10},
			},
			0,
		},
		// operators
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1×0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "×", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1<<2", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "<<", kind: tokenOp, pos: 2}, {text: "2", kind: tokenNum, pos: 4}}, 0},
		{"1>>2", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: ">>", kind: tokenOp, pos: 2}, {text: "2", kind: tokenNum, pos: 4}}, 0},
		{"90°", []lexToken{{text: "90", kind: tokenNum, pos: 1}, {text: "°", kind: tokenOp, pos: 3}}, 0},
		{"1rad", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "rad", kind: tokenOp, pos: 2}}, 0},
		{"3!", []lexToken{{text: "3", kind: tokenNum, pos: 1}, {text: "!", kind: tokenOp, pos: 2}}, 0},
		{"|1|", []lexToken{{text: "|", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: "|", kind: tokenOp, pos: 3}}, 0},
		// brackets
		{"()", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: ")", kind: tokenClose, pos: 2}}, 0},
		{"⌊⌋", []lexToken{{text: "⌊", kind: tokenOpen, pos: 1}, {text: "⌋", kind: tokenClose, pos: 2}}, 0},
		{"⌈⌉", []lexToken{{text: "⌈", kind: tokenOpen, pos: 1}, {text: "⌉", kind: tokenClose, pos: 2}}, 0},
		// names
		{"e", []lexToken{{text: "e", kind: tokenConst, pos: 1}}, 0},
		{"pi", []lexToken{{text: "pi", kind: tokenConst, pos: 1}}, 0},
		{"π", []lexToken{{text: "π", kind: tokenConst, pos: 1}}, 0},
		{"@", []lexToken{{text: "@", kind: tokenAns, pos: 1}}, 0},
		{"exp(", []lexToken{{text: "exp", kind: tokenFunc, op: OpExp, pos: 1}, {text: "(", kind: tokenOpen, pos: 4}}, 0},
		{"exp2(", []lexToken{{text: "exp2", kind: tokenFunc, op: OpExp2, pos: 1}, {text: "(", kind: tokenOpen, pos: 5}}, 0},
		{"e(", []lexToken{{text: "e", kind: tokenConst, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}}, 0},
		{"sinh(", []lexToken{{text: "sinh", kind: tokenFunc, op: OpSinh, pos: 1}, {text: "(", kind: tokenOpen, pos: 5}}, 0},
		{"asinh(", []lexToken{{text: "asinh", kind: tokenFunc, op: OpAsinh, pos: 1}, {text: "(", kind: tokenOpen, pos: 6}}, 0},
		{"arsinh(", []lexToken{{text: "arsinh", kind: tokenFunc, op: OpAsinh, pos: 1}, {text: "(", kind: tokenOpen, pos: 7}}, 0},
		{"sgn(", []lexToken{{text: "sgn", kind: tokenFunc, op: OpSign, pos: 1}, {text: "(", kind: tokenOpen, pos: 4}}, 0},
		{"signum(", []lexToken{{text: "signum", kind: tokenFunc, op: OpSign, pos: 1}, {text: "(", kind: tokenOpen, pos: 7}}, 0},
		{"w(", []lexToken{{text: "w", kind: tokenFunc, op: OpLambertW, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}}, 0},
		{"median(", []lexToken{{text: "median", kind: tokenFunc, op: OpMed, pos: 1}, {text: "(", kind: tokenOpen, pos: 7}}, 0},
		{"a b s(", []lexToken{{text: "abs", kind: tokenFunc, op: OpAbs, pos: 1}, {text: "(", kind: tokenOpen, pos: 6}}, 0},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}}, 1},
		{"1$", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {pos: 2}}, 1},
		{"$1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}}, 2},
		{"1<2", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {pos: 2}}, 1},
		{"<", []lexToken{{pos: 1}}, 1},
		{"s1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 1},
		{"x", []lexToken{{pos: 1}}, 1},
	}

	for _, c := range cases {
		scan := lex(c.src)
		for _, want := range c.tokens {
			got, err := scan.next()
			if got.kind == tokenEOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if err != nil {
				if c.errs > 0 {
					c.errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		for got, err := scan.next(); got.kind != tokenEOF; got, err = scan.next() {
			if c.errs > 0 {
				c.errs--
			}
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if c.errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexEOF(t *testing.T) {
	scan := lex("1 ")
	scan.next()
	for i := 0; i < 3; i++ {
		tok, err := scan.next()
		if err != nil {
			t.Fatalf("unexpected error at end: %v", err)
		}
		if tok.kind != tokenEOF || tok.pos != 3 {
			t.Errorf("wrong EOF token: want EOF@3, got %v", tok)
		}
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  LexError
	}{
		{"char", "$", LexError{Text: "$", Kind: "", Col: 1}},
		{"keyword", "sqr(", LexError{Text: "s", Kind: "keyword", Col: 1}},
		{"shift", "<>", LexError{Text: "<>", Kind: "operator", Col: 1}},
		{"spaced", "  #", LexError{Text: "#", Kind: "", Col: 3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := lex(c.src).next()
			var got *LexError
			if !errors.As(err, &got) {
				t.Fatalf("%q gave %#v, not a *LexError", c.src, err)
			}
			if *got != c.err {
				t.Errorf("%q gave wrong error: want %+v, got %+v", c.src, c.err, *got)
			}
			if !errors.Is(err, ErrInvalidOperator) {
				t.Errorf("%v does not match ErrInvalidOperator", err)
			}
			if got.Pos() != c.err.Col {
				t.Errorf("wrong position: want %d, got %d", c.err.Col, got.Pos())
			}
		})
	}
}
