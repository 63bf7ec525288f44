package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is the kind of a pattern tree node.
type Op uint8

// Node kinds.
const (
	OpNothing Op = iota // matches no string, written \#
	OpEmpty             // matches only the empty string, written \e
	OpChar
	OpDot
	OpDigitClass
	OpSpaceClass
	OpWordClass
	OpNumberedGroup
	OpNamedGroup
	OpNonCapturingGroup
	OpQMark
	OpStar
	OpPlus
	OpPower
	OpAtLeast
	OpAtMost
	OpRange
	OpConcat
	OpInterleave
	OpUnion
)

var opNames = [...]string{
	OpNothing:           "Nothing",
	OpEmpty:             "Empty",
	OpChar:              "Char",
	OpDot:               "Dot",
	OpDigitClass:        "DigitClass",
	OpSpaceClass:        "SpaceClass",
	OpWordClass:         "WordClass",
	OpNumberedGroup:     "NumberedGroup",
	OpNamedGroup:        "NamedGroup",
	OpNonCapturingGroup: "NonCapturingGroup",
	OpQMark:             "QMark",
	OpStar:              "Star",
	OpPlus:              "Plus",
	OpPower:             "Power",
	OpAtLeast:           "AtLeast",
	OpAtMost:            "AtMost",
	OpRange:             "Range",
	OpConcat:            "Concat",
	OpInterleave:        "Interleave",
	OpUnion:             "Union",
}

// String returns the name of the operation.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// Precedence returns the binding strength of op for serialization.
// Lower numbers bind tighter: atoms and groups 0, postfix quantifiers 1,
// concatenation 2, interleave 3, union 4.
func (op Op) Precedence() int {
	switch op {
	case OpQMark, OpStar, OpPlus, OpPower, OpAtLeast, OpAtMost, OpRange:
		return 1
	case OpConcat:
		return 2
	case OpInterleave:
		return 3
	case OpUnion:
		return 4
	default:
		return 0
	}
}

// Arity returns the number of children a node of this kind has.
func (op Op) Arity() int {
	switch op {
	case OpConcat, OpInterleave, OpUnion:
		return 2
	case OpNothing, OpEmpty, OpChar, OpDot, OpDigitClass, OpSpaceClass, OpWordClass:
		return 0
	default:
		return 1
	}
}

// Node is an immutable pattern tree node. Nodes are shared freely between
// patterns; nothing mutates a node after it is built.
type Node struct {
	op   Op
	c    byte   // OpChar
	name string // OpNamedGroup
	min  int    // OpPower, OpAtLeast, OpRange
	max  int    // OpPower, OpAtMost, OpRange
	sub  *Node  // unary child, or left operand
	sub2 *Node  // right operand

	group *Group // OpNumberedGroup, OpNamedGroup
}

// Op returns the node kind.
func (n *Node) Op() Op { return n.op }

// Byte returns the byte of an OpChar node.
func (n *Node) Byte() byte { return n.c }

// Name returns the name of an OpNamedGroup node.
func (n *Node) Name() string { return n.name }

// Group returns the handle of an OpNumberedGroup or OpNamedGroup node.
func (n *Node) Group() *Group { return n.group }

// Min returns the lower repetition bound of OpPower, OpAtLeast and OpRange.
func (n *Node) Min() int { return n.min }

// Max returns the upper repetition bound of OpPower, OpAtMost and OpRange.
func (n *Node) Max() int { return n.max }

// Sub returns the child of a unary node or the left operand of a binary one.
func (n *Node) Sub() *Node { return n.sub }

// Left returns the left operand of a binary node.
func (n *Node) Left() *Node { return n.sub }

// Right returns the right operand of a binary node.
func (n *Node) Right() *Node { return n.sub2 }

// Equal reports whether a and b are structurally identical trees. Group
// handles are not compared.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.op != b.op || a.c != b.c || a.name != b.name || a.min != b.min || a.max != b.max {
		return false
	}
	return Equal(a.sub, b.sub) && Equal(a.sub2, b.sub2)
}

// String renders the subtree in pattern syntax.
func (n *Node) String() string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	switch n.op {
	case OpNothing:
		b.WriteString(`\#`)
	case OpEmpty:
		b.WriteString(`\e`)
	case OpChar:
		writeByte(b, n.c)
	case OpDot:
		b.WriteByte('.')
	case OpDigitClass:
		b.WriteString(`\d`)
	case OpSpaceClass:
		b.WriteString(`\s`)
	case OpWordClass:
		b.WriteString(`\w`)
	case OpNumberedGroup:
		b.WriteByte('(')
		writeNode(b, n.sub)
		b.WriteByte(')')
	case OpNamedGroup:
		b.WriteString("(?P<")
		b.WriteString(n.name)
		b.WriteByte('>')
		writeNode(b, n.sub)
		b.WriteByte(')')
	case OpNonCapturingGroup:
		b.WriteString("(?:")
		writeNode(b, n.sub)
		b.WriteByte(')')
	case OpQMark, OpStar, OpPlus, OpPower, OpAtLeast, OpAtMost, OpRange:
		writeChild(b, n.sub, n.op, false)
		writeQuantifier(b, n)
	case OpConcat, OpInterleave, OpUnion:
		writeChild(b, n.sub, n.op, false)
		switch n.op {
		case OpInterleave:
			b.WriteByte('%')
		case OpUnion:
			b.WriteByte('|')
		}
		writeChild(b, n.sub2, n.op, true)
	}
}

// writeChild wraps child in a non-capturing group when it binds looser than
// parent. Right operands are also wrapped at equal precedence, because the
// parser folds binary operators to the left.
func writeChild(b *strings.Builder, child *Node, parent Op, right bool) {
	cp, pp := child.op.Precedence(), parent.Precedence()
	if cp > pp || (right && cp == pp && cp > 0) {
		b.WriteString("(?:")
		writeNode(b, child)
		b.WriteByte(')')
		return
	}
	writeNode(b, child)
}

func writeQuantifier(b *strings.Builder, n *Node) {
	switch n.op {
	case OpQMark:
		b.WriteByte('?')
	case OpStar:
		b.WriteByte('*')
	case OpPlus:
		b.WriteByte('+')
	case OpPower:
		b.WriteString("{" + strconv.Itoa(n.min) + "}")
	case OpAtLeast:
		b.WriteString("{" + strconv.Itoa(n.min) + ",}")
	case OpAtMost:
		b.WriteString("{," + strconv.Itoa(n.max) + "}")
	case OpRange:
		b.WriteString("{" + strconv.Itoa(n.min) + "," + strconv.Itoa(n.max) + "}")
	}
}

const hexDigits = "0123456789ABCDEF"

func writeByte(b *strings.Builder, c byte) {
	switch c {
	case '\\', '(', ')', '{', '}', '*', '+', '?', '|', '.', '%':
		b.WriteByte('\\')
		b.WriteByte(c)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\f':
		b.WriteString(`\f`)
	case '\t':
		b.WriteString(`\t`)
	default:
		if c < 0x20 || c >= 0x7f {
			b.WriteString(`\x`)
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0xf])
			return
		}
		b.WriteByte(c)
	}
}
