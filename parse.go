package formula

import "strconv"

// Expr = Term { binop Term | postfix }
// Term = Primary [ Implicit ]
// Primary = num | 'π' | 'pi' | 'e' | '@' | Call | '-' Expr | '+' Expr
//	| '(' Expr ')' | '⌊' Expr '⌋' | '⌈' Expr '⌉' | '|' Expr '|'
// Call = funcname '(' [ Expr { ',' Expr } ] ')'
// Implicit = Expr, when it begins with num, funcname, or an open bracket
// binop = '+' | '-' | '*' | '×' | '/' | '÷' | '%' | '^' | '&' | '|' | '<<' | '>>'
// postfix = '!' | '°' | 'rad' | superscript

// Expr is a parsed formula that can be evaluated with the arithmetic that
// parsed it. An Expr is immutable and safe to evaluate concurrently.
type Expr[T any] struct {
	// n is the root node of the expression.
	n *node[T]
	// num is the arithmetic that parsed the expression.
	num Numeric[T]
}

// Parse parses a formula for evaluation with num. The given options are
// applied in order.
func Parse[T any](num Numeric[T], src string, opts ...ParseOption) (*Expr[T], error) {
	var ctx parsectx
	for _, opt := range opts {
		ctx = opt.parseOption(ctx)
	}
	if ctx.maxDepth == 0 {
		ctx.maxDepth = DefaultMaxDepth
	}
	p := parser[T]{scan: lex(src), num: num, ctx: ctx}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF && !p.ctx.trailing {
		return nil, itShouldNotHaveEndedThisWay(p.tok, "")
	}
	return &Expr[T]{n: n, num: num}, nil
}

// String formats the parsed expression with every operation bracketed.
// Parsing the result with the same arithmetic produces the same expression.
func (e *Expr[T]) String() string {
	return e.n.String()
}

type parser[T any] struct {
	scan *lexer
	num  Numeric[T]
	ctx  parsectx
	// tok is the current token. The parser always holds one token that has
	// been scanned but not consumed.
	tok lexToken
	// depth is the current recursion depth of parseterm.
	depth int
	// inbar is whether the innermost open group is |x|, in which case | in
	// operator position closes the group.
	inbar bool
}

// advance scans the next token.
func (p *parser[T]) advance() error {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseterm parses an expression, continuing until it reaches an operator
// that binds no more tightly than until. The token that ends the expression
// is left as the current token.
func (p *parser[T]) parseterm(until operator) (*node[T], error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.ctx.maxDepth {
		return nil, &DepthError{Col: p.tok.pos, Max: p.ctx.maxDepth}
	}
	n, err := p.parselhs()
	if err != nil {
		return nil, err
	}
	for {
		op := binop(p.tok, p.inbar)
		if !op.moreBinding(until) {
			return n, nil
		}
		n, err = p.parseinfix(n, op)
		if err != nil {
			return nil, err
		}
	}
}

// parselhs parses a primary term, including any implicit multiplication that
// follows it.
func (p *parser[T]) parselhs() (*node[T], error) {
	tok := p.tok
	switch tok.kind {
	case tokenNum:
		n, err := p.literal(tok)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.implicitmul(n)
	case tokenConst:
		c := ConstE
		if tok.text != "e" {
			c = ConstPi
		}
		v, ok := p.num.Const(c)
		if !ok {
			return nil, &UnsupportedError{Col: tok.pos, Name: tok.text}
		}
		// Constants do not start implicit multiplication.
		return &node[T]{op: OpNum, val: v, text: tok.text}, p.advance()
	case tokenAns:
		return &node[T]{op: OpAns}, p.advance()
	case tokenFunc:
		n, err := p.parsecall()
		if err != nil {
			return nil, err
		}
		return p.implicitmul(n)
	case tokenOp:
		switch tok.text {
		case "-":
			if err := p.supports(OpNeg, tok); err != nil {
				return nil, err
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			rhs, err := p.parseterm(negprec)
			if err != nil {
				return nil, err
			}
			return &node[T]{op: OpNeg, left: rhs}, nil
		case "+":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return p.parseterm(negprec)
		case "|":
			return p.parsegroup(tok, "|", OpAbs)
		}
		return nil, &TermError{Col: tok.pos, Token: tok.text}
	case tokenOpen:
		switch tok.text {
		case "(":
			return p.parsegroup(tok, ")", OpNone)
		case "⌊":
			return p.parsegroup(tok, "⌋", OpFloor)
		case "⌈":
			return p.parsegroup(tok, "⌉", OpCeil)
		default:
			panic("formula: invalid bracket " + tok.String())
		}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	default:
		return nil, &TermError{Col: tok.pos, Token: tok.text}
	}
}

// parseinfix applies an infix or postfix operator to an already parsed left
// operand.
func (p *parser[T]) parseinfix(left *node[T], op operator) (*node[T], error) {
	tok := p.tok
	if op.op == OpNone {
		// A function name where an operator belongs.
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
	}
	if err := p.supports(op.op, tok); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch {
	case tok.kind == tokenSup:
		// x² -> x^2
		r, err := p.literal(tok)
		if err != nil {
			return nil, err
		}
		return &node[T]{op: OpPow, left: left, right: r}, nil
	case tok.text == "!":
		return p.implicitmul(&node[T]{op: OpFact, left: left})
	case tok.text == "°", tok.text == "rad":
		c := ConstDegree
		if tok.text == "rad" {
			c = ConstRadian
		}
		v, ok := p.num.Const(c)
		if !ok {
			return nil, &UnsupportedError{Col: tok.pos, Name: tok.text}
		}
		r := &node[T]{op: OpNum, val: v, text: tok.text}
		return &node[T]{op: OpMul, text: tok.text, left: left, right: r}, nil
	}
	rhs, err := p.parseterm(op)
	if err != nil {
		return nil, err
	}
	return &node[T]{op: op.op, left: left, right: rhs}, nil
}

// implicitmul multiplies n by the following term if the current token can
// begin one: (2)(3) -> (2) * (3), 2 sin(x) -> (2) * (sin(x)).
func (p *parser[T]) implicitmul(n *node[T]) (*node[T], error) {
	switch p.tok.kind {
	case tokenOpen, tokenFunc, tokenNum:
		// Adjacent factors are siblings, not nesting.
		p.depth--
		rhs, err := p.parseterm(mulprec)
		p.depth++
		if err != nil {
			return nil, err
		}
		return &node[T]{op: OpMul, left: n, right: rhs}, nil
	}
	return n, nil
}

// parsegroup parses a bracketed expression, applying op to it unless op is
// OpNone.
func (p *parser[T]) parsegroup(open lexToken, close string, op Op) (*node[T], error) {
	if op != OpNone {
		if err := p.supports(op, open); err != nil {
			return nil, err
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	bar := p.inbar
	p.inbar = close == "|"
	n, err := p.parseterm(exprprec)
	p.inbar = bar
	if err != nil {
		return nil, err
	}
	if p.tok.text != close || p.tok.kind != tokenClose && p.tok.kind != tokenOp {
		return nil, itShouldNotHaveEndedThisWay(p.tok, open.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if op != OpNone {
		n = &node[T]{op: op, left: n}
	}
	return p.implicitmul(n)
}

// parsecall parses a function call. The current token is the function name.
func (p *parser[T]) parsecall() (*node[T], error) {
	fn := p.tok
	if err := p.supports(fn.op, fn); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	open := p.tok
	if open.kind != tokenOpen || open.text != "(" {
		// The lexer only produces function names followed by (.
		panic("formula: function " + fn.String() + " followed by " + open.String())
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	bar := p.inbar
	p.inbar = false
	args, err := p.parsearglist(open)
	p.inbar = bar
	if err != nil {
		return nil, err
	}
	switch k := fn.op.Arity(); k {
	case 1:
		if len(args) == 1 {
			return &node[T]{op: fn.op, left: args[0]}, nil
		}
	case 2:
		if len(args) == 2 {
			return &node[T]{op: fn.op, left: args[0], right: args[1]}, nil
		}
	case -1:
		if len(args) > 0 {
			return &node[T]{op: fn.op, args: args}, nil
		}
		if fn.op == OpAvg {
			// avg() is zero.
			v, err := p.num.Variadic(OpAvg, nil)
			if err != nil {
				return nil, &LiteralError{Col: fn.pos, Text: "avg()", Err: err}
			}
			return &node[T]{op: OpNum, val: v, text: "avg()"}, nil
		}
	default:
		panic("formula: function " + fn.String() + " has arity " + strconv.Itoa(k))
	}
	return nil, &CallError{Col: open.pos, Func: fn.text, Len: len(args)}
}

// parsearglist parses a comma-separated list of zero or more arguments and
// the closing bracket that ends it. The opening bracket has been consumed.
func (p *parser[T]) parsearglist(open lexToken) ([]*node[T], error) {
	if p.tok.kind == tokenClose && p.tok.text == ")" {
		return nil, p.advance()
	}
	var args []*node[T]
	for {
		a, err := p.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		switch {
		case p.tok.kind == tokenSep:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.tok.kind == tokenClose && p.tok.text == ")":
			return args, p.advance()
		default:
			return nil, itShouldNotHaveEndedThisWay(p.tok, open.text)
		}
	}
}

// literal converts a numeric or superscript token.
func (p *parser[T]) literal(tok lexToken) (*node[T], error) {
	v, err := p.num.Literal(tok.text)
	if err != nil {
		return nil, &LiteralError{Col: tok.pos, Text: tok.text, Err: err}
	}
	return &node[T]{op: OpNum, val: v, text: tok.text}, nil
}

// supports returns an error if the arithmetic does not define op.
func (p *parser[T]) supports(op Op, tok lexToken) error {
	if p.num.Supports(op) {
		return nil
	}
	return &UnsupportedError{Col: tok.pos, Name: op.String()}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is the bracket that the
// expression should have closed, or the empty string if none.
func itShouldNotHaveEndedThisWay(tok lexToken, open string) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: open, Right: ""}
	case tokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: open, Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		return &OperatorError{Col: tok.pos, Operator: tok.text}
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// op is the operation to apply when this operator is selected. It is
	// OpNone for a function name in operator position.
	op Op
}

func (p operator) moreBinding(than operator) bool {
	return p.prec > than.prec
}

const (
	precNone int8 = iota
	precOr
	precAnd
	precShift
	precAdd
	precMul
	precPow
	precNeg
	precFunc
)

var (
	exprprec = operator{prec: precNone}
	mulprec  = operator{prec: precMul, op: OpMul}
	negprec  = operator{prec: precNeg, op: OpNeg}
)

// binop gets the operator for a token in operator position. Tokens which end
// an expression have precNone. inbar indicates that | closes a group rather
// than being an operator.
func binop(tok lexToken, inbar bool) operator {
	switch tok.kind {
	case tokenSup:
		return operator{precPow, OpPow}
	case tokenFunc:
		return operator{precFunc, OpNone}
	case tokenOp:
		// handled below
	default:
		return operator{}
	}
	switch tok.text {
	case "+":
		return operator{precAdd, OpAdd}
	case "-":
		return operator{precAdd, OpSub}
	case "*", "×", "°", "rad":
		return operator{precMul, OpMul}
	case "/", "÷":
		return operator{precMul, OpDiv}
	case "%":
		return operator{precMul, OpMod}
	case "^":
		return operator{precPow, OpPow}
	case "!":
		return operator{precFunc, OpFact}
	case "&":
		return operator{precAnd, OpAnd}
	case "|":
		if inbar {
			return operator{}
		}
		return operator{precOr, OpOr}
	case "<<":
		return operator{precShift, OpShl}
	case ">>":
		return operator{precShift, OpShr}
	default:
		return operator{}
	}
}
