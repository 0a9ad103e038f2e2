package formula

import (
	"fmt"
	"strconv"
	"strings"
)

// Eval evaluates the expression with ans as the value of @. The expression
// may be evaluated any number of times. If an error occurs, e.g. an argument
// to a function is outside the function's domain, the result is the zero
// value of T and the error is an *EvalError.
func (e *Expr[T]) Eval(ans T) (T, error) {
	r, err := e.n.eval(e.num, ans)
	if err != nil {
		var zero T
		return zero, &EvalError{Err: err}
	}
	return r, nil
}

// Eval parses and evaluates a formula in one step, with ans as the value of
// @. Errors are either parse errors, which implement InputError, or
// *EvalError.
func Eval[T any](num Numeric[T], src string, ans T, opts ...ParseOption) (T, error) {
	e, err := Parse(num, src, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.Eval(ans)
}

// eval evaluates the subtree rooted at n. Operands are evaluated left to
// right, depth first.
func (n *node[T]) eval(num Numeric[T], ans T) (T, error) {
	switch n.op.Arity() {
	case 0:
		switch n.op {
		case OpNum:
			return n.val, nil
		case OpAns:
			return ans, nil
		}
	case 1:
		x, err := n.left.eval(num, ans)
		if err != nil {
			return x, err
		}
		return num.Unary(n.op, x)
	case 2:
		x, err := n.left.eval(num, ans)
		if err != nil {
			return x, err
		}
		y, err := n.right.eval(num, ans)
		if err != nil {
			return y, err
		}
		return num.Binary(n.op, x, y)
	case -1:
		xs := make([]T, len(n.args))
		for i, a := range n.args {
			x, err := a.eval(num, ans)
			if err != nil {
				return x, err
			}
			xs[i] = x
		}
		return num.Variadic(n.op, xs)
	}
	panic("formula: invalid node " + n.op.String())
}

// EvalError is an error that occurred while evaluating a parsed formula. It
// matches ErrUnableToParse and unwraps to its cause, which is usually a
// *DomainError.
type EvalError struct {
	Err error
}

func (err *EvalError) Error() string {
	return "unable to evaluate: " + err.Err.Error()
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

func (err *EvalError) Is(target error) bool {
	return target == ErrUnableToParse
}

// DomainError is an error returned when an operation is applied to arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument, formatted.
	X string
	// Arg is the 1-based index of the argument, or 0 if the operation as a
	// whole is undefined for its arguments, e.g. on overflow.
	Arg int
	// Func is the operation.
	Func Op
	// Reason describes the violation, if anything more than the domain.
	Reason string
}

func (err *DomainError) Error() string {
	var b strings.Builder
	b.WriteString(err.X)
	b.WriteString(" outside domain of ")
	b.WriteString(err.Func.String())
	if err.Arg > 0 {
		b.WriteString(" (argument " + strconv.Itoa(err.Arg) + ")")
	}
	if err.Reason != "" {
		b.WriteString(": " + err.Reason)
	}
	return b.String()
}

// domain creates a *DomainError for argument arg of op.
func domain(op Op, arg int, x any, reason string) *DomainError {
	return &DomainError{X: fmt.Sprint(x), Arg: arg, Func: op, Reason: reason}
}
