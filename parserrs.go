package formula

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidOperator is the category of errors caused by characters,
	// operators, or delimiters that cannot appear where they do.
	ErrInvalidOperator = errors.New("invalid operator")
	// ErrUnableToParse is the category of errors caused by malformed terms,
	// argument lists, and by failures during evaluation.
	ErrUnableToParse = errors.New("unable to parse")
)

// OperatorError is an error indicating a token that is not valid as an
// operator in its position. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "expected an operator, got "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Is(target error) bool {
	return target == ErrInvalidOperator
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the offending token.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Is(target error) bool {
	return target == ErrInvalidOperator
}

// SeparatorError is an error indicating a comma outside an argument list or
// in place of a closing bracket. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

func (err *SeparatorError) Is(target error) bool {
	return target == ErrInvalidOperator
}

// UnsupportedError is an error indicating an operation that the arithmetic
// used for parsing does not define. It implements InputError.
type UnsupportedError struct {
	// Col is the position of the token that introduced the operation.
	Col int
	// Name is the operator, function, or constant.
	Name string
}

func (err *UnsupportedError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Name)+" is not supported by this arithmetic")
}

func (err *UnsupportedError) Pos() int {
	return err.Col
}

func (err *UnsupportedError) Is(target error) bool {
	return target == ErrInvalidOperator
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the opening bracket of the call.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Is(target error) bool {
	return target == ErrUnableToParse
}

// TermError is an error indicating a token which cannot begin a term where a
// term was expected. It implements InputError.
type TermError struct {
	// Col is the position of the token.
	Col int
	// Token is the offending token.
	Token string
}

func (err *TermError) Error() string {
	return errpos(err.Col, "expected a term, got "+strconv.Quote(err.Token))
}

func (err *TermError) Pos() int {
	return err.Col
}

func (err *TermError) Is(target error) bool {
	return target == ErrUnableToParse
}

// EmptyExpressionError is an error indicating that the input ended where a
// term was expected. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the end of the input.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	if err.Col <= 1 {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "no expression at end")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Is(target error) bool {
	return target == ErrUnableToParse
}

// LiteralError is an error indicating a numeric literal that the arithmetic
// could not represent. It implements InputError and unwraps to the error
// from the arithmetic. An imaginary literal in arithmetic without imaginary
// numbers is an invalid operator, like any other unsupported operation;
// other rejected literals are unparseable.
type LiteralError struct {
	// Col is the position of the literal.
	Col int
	// Text is the literal.
	Text string
	// Err is the reason the literal was rejected.
	Err error
}

func (err *LiteralError) Error() string {
	return errpos(err.Col, "bad literal "+strconv.Quote(err.Text)+": "+err.Err.Error())
}

func (err *LiteralError) Pos() int {
	return err.Col
}

func (err *LiteralError) Is(target error) bool {
	if errors.Is(err.Err, errImaginary) {
		return target == ErrInvalidOperator
	}
	return target == ErrUnableToParse
}

func (err *LiteralError) Unwrap() error {
	return err.Err
}

// DepthError is an error indicating that a formula nests more deeply than
// the parser allows. It implements InputError.
type DepthError struct {
	// Col is the position at which the limit was exceeded.
	Col int
	// Max is the limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "formula nested more than "+strconv.Itoa(err.Max)+" levels deep")
}

func (err *DepthError) Pos() int {
	return err.Col
}

func (err *DepthError) Is(target error) bool {
	return target == ErrUnableToParse
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return "col " + strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error, counting
	// whitespace.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*UnsupportedError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*TermError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LiteralError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*LexError)(nil)
)
