package formula

import (
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	// op is the function for tokenFunc.
	op  Op
	pos int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal literal, possibly imaginary.
	tokenNum
	// tokenSup is a run of superscript digits. Its text is the ASCII digits.
	tokenSup
	// tokenOp is an operator, including postfix ! ° and rad.
	tokenOp
	// tokenOpen is an open bracket: ( ⌊ ⌈.
	tokenOpen
	// tokenClose is a close bracket: ) ⌋ ⌉.
	tokenClose
	// tokenSep is the argument separator.
	tokenSep
	// tokenFunc is a function name. The following ( is not part of it.
	tokenFunc
	// tokenConst is π or e.
	tokenConst
	// tokenAns is @.
	tokenAns
)

var tokenKindNames = [...]string{"None", "EOF", "Num", "Sup", "Op", "Open", "Close", "Sep", "Func", "Const", "Ans"}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators contains the single-rune operators. The lexer also recognizes
// << and >> and the postfix conversion rad.
const Operators = "+-*/%^×÷!&|°"

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// The bracket in rune position k in OpenBrackets is matched with the bracket in
// rune position k in CloseBrackets.
const (
	OpenBrackets  = "(⌊⌈"
	CloseBrackets = ")⌋⌉"
)

const superscripts = "⁰¹²³⁴⁵⁶⁷⁸⁹"

// keyword is a function name following its leading rune. suffix includes the
// opening bracket, which the lexer requires but does not consume.
type keyword struct {
	suffix string
	op     Op
}

// keywords lists function names by leading rune. Each list is in the order
// the lexer tries them, longest first, so that e.g. sinh( is never lexed as
// sin followed by h.
var keywords = map[rune][]keyword{
	'a': {
		{"rsinh(", OpAsinh}, {"rcosh(", OpAcosh}, {"rtanh(", OpAtanh},
		{"tan2(", OpAtan2}, {"sinh(", OpAsinh}, {"cosh(", OpAcosh}, {"tanh(", OpAtanh},
		{"sin(", OpAsin}, {"cos(", OpAcos}, {"tan(", OpAtan},
		{"bs(", OpAbs}, {"vg(", OpAvg},
	},
	'c': {{"eil(", OpCeil}, {"osh(", OpCosh}, {"os(", OpCos}},
	'e': {{"xp2(", OpExp2}, {"xp(", OpExp}},
	'f': {{"loor(", OpFloor}},
	'g': {{"cd(", OpGcd}},
	'i': {{"log(", OpILog}},
	'l': {{"ambert_w(", OpLambertW}, {"og(", OpLog}, {"cm(", OpLcm}, {"n(", OpLn}, {"b(", OpLb}},
	'm': {{"edian(", OpMed}, {"in(", OpMin}, {"ax(", OpMax}, {"od(", OpMod}, {"ed(", OpMed}},
	'p': {{"ow(", OpPow}},
	'r': {{"ound(", OpRound}, {"oot(", OpRoot}},
	's': {{"ignum(", OpSign}, {"inh(", OpSinh}, {"qrt(", OpSqrt}, {"ign(", OpSign}, {"in(", OpSin}, {"gn(", OpSign}},
	't': {{"runcate(", OpTrunc}, {"runc(", OpTrunc}, {"anh(", OpTanh}, {"an(", OpTan}},
	'w': {{"(", OpLambertW}},
}

// lexer scans tokens from a formula with whitespace removed. Token positions
// refer to the original text.
type lexer struct {
	src []rune
	// cols holds the 1-based column in the original text of each rune in src.
	cols []int
	// k is the index of the next rune to scan.
	k int
	// end is the column just past the end of the original text.
	end int
}

func lex(src string) *lexer {
	l := lexer{src: make([]rune, 0, len(src)), cols: make([]int, 0, len(src))}
	col := 0
	for _, r := range src {
		col++
		if unicode.IsSpace(r) {
			continue
		}
		l.src = append(l.src, r)
		l.cols = append(l.cols, col)
	}
	l.end = col + 1
	return &l
}

// peek returns the rune n past the next one, or -1 if there is none.
func (l *lexer) peek(n int) rune {
	if l.k+n >= len(l.src) {
		return -1
	}
	return l.src[l.k+n]
}

// next scans the next token. At the end of the input, the result is an EOF
// token, as many times as next is called.
func (l *lexer) next() (lexToken, error) {
	if l.k >= len(l.src) {
		return lexToken{kind: tokenEOF, pos: l.end}, nil
	}
	tok := lexToken{pos: l.cols[l.k]}
	r := l.src[l.k]
	switch {
	case isdigit(r), r == '.' && isdigit(l.peek(1)):
		tok.text = l.scanNum()
		tok.kind = tokenNum
		return tok, nil
	case strings.ContainsRune(superscripts, r):
		tok.text = l.scanSup()
		tok.kind = tokenSup
		return tok, nil
	case r == '<', r == '>':
		if l.peek(1) != r {
			return tok, l.error(2, "operator")
		}
		l.k += 2
		tok.text = string([]rune{r, r})
		tok.kind = tokenOp
		return tok, nil
	case strings.ContainsRune(Operators, r):
		tok.kind = tokenOp
	case strings.ContainsRune(OpenBrackets, r):
		tok.kind = tokenOpen
	case strings.ContainsRune(CloseBrackets, r):
		tok.kind = tokenClose
	case r == ',':
		tok.kind = tokenSep
	case r == 'π':
		tok.kind = tokenConst
	case r == '@':
		tok.kind = tokenAns
	default:
		return l.scanKeyword(tok)
	}
	l.k++
	tok.text = string(r)
	return tok, nil
}

// scanKeyword scans a function name, a spelled constant, rad, or i.
func (l *lexer) scanKeyword(tok lexToken) (lexToken, error) {
	r := l.src[l.k]
	for _, kw := range keywords[r] {
		if !l.hasSuffix(kw.suffix) {
			continue
		}
		n := len([]rune(kw.suffix))
		tok.text = string(l.src[l.k:l.k+n])
		tok.kind = tokenFunc
		tok.op = kw.op
		l.k += n
		return tok, nil
	}
	switch {
	case r == 'e':
		tok.kind = tokenConst
		tok.text = "e"
		l.k++
	case r == 'i':
		tok.kind = tokenNum
		tok.text = "i"
		l.k++
	case r == 'p' && l.peek(1) == 'i':
		tok.kind = tokenConst
		tok.text = "pi"
		l.k += 2
	case r == 'r' && l.hasSuffix("ad"):
		tok.kind = tokenOp
		tok.text = "rad"
		l.k += 3
	default:
		if _, ok := keywords[r]; ok {
			return tok, l.error(1, "keyword")
		}
		return tok, l.error(1, "")
	}
	return tok, nil
}

// hasSuffix reports whether s follows the next rune.
func (l *lexer) hasSuffix(s string) bool {
	n := 1
	for _, r := range s {
		if l.peek(n) != r {
			return false
		}
		n++
	}
	return true
}

// scanNum scans digits with at most one decimal point and an optional
// imaginary suffix.
func (l *lexer) scanNum() string {
	start := l.k
	dot := false
	for l.k < len(l.src) {
		r := l.src[l.k]
		if r == '.' && !dot {
			dot = true
		} else if !isdigit(r) {
			break
		}
		l.k++
	}
	// A trailing i is imaginary unless it begins ilog.
	if l.peek(0) == 'i' && !l.hasSuffix("log(") {
		l.k++
	}
	return string(l.src[start:l.k])
}

// scanSup scans a run of superscript digits and returns them as ASCII digits.
func (l *lexer) scanSup() string {
	var b strings.Builder
	for l.k < len(l.src) {
		k := strings.IndexRune(superscripts, l.src[l.k])
		if k < 0 {
			break
		}
		// Superscript digits are not all the same width in UTF-8, so
		// count runes instead of using the byte index.
		b.WriteByte('0' + byte(len([]rune(superscripts[:k]))))
		l.k++
	}
	return b.String()
}

// error creates a LexError covering n runes from the next one and skips past
// them so that scanning can continue.
func (l *lexer) error(n int, kind string) error {
	col := l.cols[l.k]
	end := l.k + n
	if end > len(l.src) {
		end = len(l.src)
	}
	text := string(l.src[l.k:end])
	l.k = end
	return &LexError{Text: text, Kind: kind, Col: col}
}

func isdigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// LexError indicates an invalid token. It implements InputError and matches
// ErrInvalidOperator.
type LexError struct {
	// Text is the invalid text.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "keyword"
	// for a letter that begins a function name which did not follow,
	// "operator" for an incomplete shift, or the empty string.
	Kind string
	// Col is the position of the first invalid rune.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid character "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Is(target error) bool {
	return target == ErrInvalidOperator
}
