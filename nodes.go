package formula

import (
	"strings"
)

// node is a node in the abstract syntax tree of a formula. Nodes are never
// modified after parsing.
type node[T any] struct {
	op Op

	// val is the value of an OpNum leaf, converted when parsed.
	val T
	// text is the source text of a leaf. On an OpMul node produced by a
	// postfix conversion, it is the conversion's symbol.
	text string

	left  *node[T] // operand of unary ops, first operand of binary ops
	right *node[T] // second operand of binary ops
	args  []*node[T]
}

func (n *node[T]) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes n fully bracketed, such that parsing the result with the same
// arithmetic produces the same tree.
func (n *node[T]) fmt(b *strings.Builder) {
	switch n.op.Arity() {
	case 0:
		switch n.op {
		case OpNum:
			b.WriteString(n.text)
		case OpAns:
			b.WriteByte('@')
		default:
			// Invalid nodes use invalid characters.
			b.WriteString("$" + n.op.String() + "$")
		}
	case 1:
		switch n.op {
		case OpNeg:
			b.WriteString("(-")
			n.left.fmt(b)
			b.WriteByte(')')
		case OpFact:
			b.WriteByte('(')
			n.left.fmt(b)
			b.WriteString("!)")
		default:
			b.WriteString(n.op.String())
			b.WriteByte('(')
			n.left.fmt(b)
			b.WriteByte(')')
		}
	case 2:
		switch {
		case n.text != "":
			// Postfix conversion. The right operand is the conversion factor.
			b.WriteByte('(')
			n.left.fmt(b)
			b.WriteString(n.text)
			b.WriteByte(')')
		case n.op.infix():
			b.WriteByte('(')
			n.left.fmt(b)
			b.WriteString(n.op.String())
			n.right.fmt(b)
			b.WriteByte(')')
		default:
			b.WriteString(n.op.String())
			b.WriteByte('(')
			n.left.fmt(b)
			b.WriteString(", ")
			n.right.fmt(b)
			b.WriteByte(')')
		}
	case -1:
		b.WriteString(n.op.String())
		b.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b)
		}
		b.WriteByte(')')
	}
}
