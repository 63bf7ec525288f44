package syntax

import (
	"errors"
)

// Parse parses a pattern into a Pattern.
//
// Parsing is a single pass with an operand stack and an operator stack.
// Binary operators fold to the left; postfix quantifiers apply to the
// operand on top of the stack as soon as they are read.
func Parse(pattern string) (*Pattern, error) {
	toks, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}
	p := &parser{pattern: pattern, toks: toks}
	res, err := p.parse()
	if err != nil {
		return nil, err
	}
	res.renumber()
	return res, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) *Pattern {
	p, err := Parse(pattern)
	if err != nil {
		panic(`syntax: Parse(` + quote(pattern) + `): ` + err.Error())
	}
	return p
}

// stackEntry is a pending binary operator or an open group.
type stackEntry struct {
	op   Op
	pos  int
	name string // OpNamedGroup

	// group entries remember the operand stack height at the paren so that
	// operators inside the group cannot consume operands from outside it
	group bool
	base  int
}

type parser struct {
	pattern  string
	toks     []token
	i        int
	operands []*Pattern
	stack    []stackEntry

	// concatOK is set when the previous token ended an operand, so an
	// operand that follows is implicitly concatenated.
	concatOK bool
}

func (p *parser) fail(code ErrorCode, pos int) error {
	return &Error{Code: code, Pattern: p.pattern, Pos: pos}
}

// endPos is the offset reported for errors detected at end of input.
func (p *parser) endPos() int {
	return len(p.pattern)
}

func (p *parser) peek(k int) (token, bool) {
	if p.i+k < len(p.toks) {
		return p.toks[p.i+k], true
	}
	return token{}, false
}

func (p *parser) parse() (*Pattern, error) {
	for p.i < len(p.toks) {
		t := p.toks[p.i]
		var err error
		switch t.kind {
		case tokLiteral, tokDigit:
			err = p.pushOperand(t, Char(t.b))
		case tokDot:
			err = p.pushOperand(t, Dot())
		case tokNothing:
			err = p.pushOperand(t, Nothing())
		case tokEmpty:
			err = p.pushOperand(t, Empty())
		case tokDigitClass:
			err = p.pushOperand(t, DigitClass())
		case tokSpaceClass:
			err = p.pushOperand(t, SpaceClass())
		case tokWordClass:
			err = p.pushOperand(t, WordClass())
		case tokLParen:
			err = p.openGroup(t)
		case tokRParen:
			err = p.closeGroup(t)
		case tokStar, tokPlus, tokQuestion:
			err = p.postfix(t)
		case tokLBrace:
			err = p.repetition(t)
		case tokRBrace:
			err = p.fail(ErrUnmatchedCloseBrace, t.pos)
		case tokPipe:
			err = p.pushBinary(OpUnion, t.pos)
			p.i++
		case tokPercent:
			err = p.pushBinary(OpInterleave, t.pos)
			p.i++
		default:
			err = p.fail(ErrInvalidEscape, t.pos)
		}
		if err != nil {
			return nil, err
		}
	}
	return p.finish()
}

func (p *parser) pushOperand(t token, operand *Pattern) error {
	if p.concatOK {
		if err := p.pushBinary(OpConcat, t.pos); err != nil {
			return err
		}
	}
	p.operands = append(p.operands, operand)
	p.concatOK = true
	p.i++
	return nil
}

// base returns the operand stack height of the innermost open group.
func (p *parser) base() int {
	for j := len(p.stack) - 1; j >= 0; j-- {
		if p.stack[j].group {
			return p.stack[j].base
		}
	}
	return 0
}

// pushBinary reduces every pending operator that binds at least as tightly
// as op, then pushes op.
func (p *parser) pushBinary(op Op, pos int) error {
	if err := p.reduce(op.Precedence()); err != nil {
		return err
	}
	p.stack = append(p.stack, stackEntry{op: op, pos: pos})
	p.concatOK = false
	return nil
}

// reduce applies stacked binary operators with precedence <= prec, stopping
// at the innermost open group.
func (p *parser) reduce(prec int) error {
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		if top.group || top.op.Precedence() > prec {
			return nil
		}
		p.stack = p.stack[:len(p.stack)-1]
		if err := p.apply(top); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) apply(e stackEntry) error {
	if len(p.operands)-p.base() < 2 {
		return p.fail(ErrTooFewOperands, e.pos)
	}
	n := len(p.operands)
	a, b := p.operands[n-2], p.operands[n-1]
	var (
		res *Pattern
		err error
	)
	switch e.op {
	case OpConcat:
		res, err = Concat(a, b)
	case OpInterleave:
		res, err = Interleave(a, b)
	default:
		res, err = Union(a, b)
	}
	if err != nil {
		return p.locate(err, e.pos)
	}
	p.operands = append(p.operands[:n-2], res)
	return nil
}

// locate attaches the pattern and an offset to a combinator error.
func (p *parser) locate(err error, pos int) error {
	var se *Error
	if errors.As(err, &se) {
		return &Error{Code: se.Code, Pattern: p.pattern, Pos: pos, Arg: se.Arg}
	}
	return err
}

func (p *parser) openGroup(t token) error {
	if p.concatOK {
		if err := p.pushBinary(OpConcat, t.pos); err != nil {
			return err
		}
	}
	e := stackEntry{op: OpNumberedGroup, pos: t.pos, group: true, base: len(p.operands)}
	p.i++

	if q, ok := p.peek(0); ok && q.kind == tokQuestion {
		p.i++
		next, ok := p.peek(0)
		switch {
		case !ok:
			return p.fail(ErrPrematureEndOfInput, p.endPos())
		case next.isLiteral(':'):
			e.op = OpNonCapturingGroup
			p.i++
		case next.isLiteral('P'):
			if lt, ok := p.peek(1); !ok || !lt.isLiteral('<') {
				return p.fail(ErrUnknownGroupExtension, q.pos)
			}
			p.i += 2
			name, err := p.groupName()
			if err != nil {
				return err
			}
			e.op, e.name = OpNamedGroup, name
		case next.isLiteral('<'):
			p.i++
			name, err := p.groupName()
			if err != nil {
				return err
			}
			e.op, e.name = OpNamedGroup, name
		default:
			return p.fail(ErrUnknownGroupExtension, q.pos)
		}
	}

	next, ok := p.peek(0)
	if !ok {
		return p.fail(ErrPrematureEndOfInput, p.endPos())
	}
	if next.kind == tokRParen {
		return p.fail(ErrEmptyGroup, t.pos)
	}
	p.stack = append(p.stack, e)
	p.concatOK = false
	return nil
}

// groupName reads name> after (?P< or (?<.
func (p *parser) groupName() (string, error) {
	start := p.i
	var name []byte
	for {
		t, ok := p.peek(0)
		if !ok {
			return "", p.fail(ErrUnterminatedGroupName, p.endPos())
		}
		if t.isLiteral('>') {
			p.i++
			break
		}
		if (t.kind != tokLiteral && t.kind != tokDigit) || t.esc {
			return "", p.fail(ErrUnterminatedGroupName, t.pos)
		}
		if !isNameByte(t.b) || (len(name) == 0 && !isNameStart(t.b)) {
			return "", p.fail(ErrBadGroupName, t.pos)
		}
		name = append(name, t.b)
		p.i++
	}
	if len(name) == 0 {
		pos := p.endPos()
		if start < len(p.toks) {
			pos = p.toks[start].pos
		}
		return "", p.fail(ErrBadGroupName, pos)
	}
	return string(name), nil
}

func (p *parser) closeGroup(t token) error {
	if err := p.reduce(OpUnion.Precedence()); err != nil {
		return err
	}
	if len(p.stack) == 0 {
		return p.fail(ErrUnmatchedCloseParen, t.pos)
	}
	e := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	switch n := len(p.operands) - e.base; {
	case n == 0:
		return p.fail(ErrTooFewOperands, t.pos)
	case n > 1:
		return p.fail(ErrTrailingOperand, t.pos)
	}

	inner := p.operands[len(p.operands)-1]
	var res *Pattern
	switch e.op {
	case OpNumberedGroup:
		res = NumberedGroup(inner)
	case OpNonCapturingGroup:
		res = NonCapturingGroup(inner)
	default:
		var err error
		if res, err = NamedGroup(inner, e.name); err != nil {
			return p.locate(err, e.pos)
		}
	}
	p.operands[len(p.operands)-1] = res
	p.concatOK = true
	p.i++
	return nil
}

func (p *parser) postfix(t token) error {
	if !p.concatOK {
		return p.fail(ErrTooFewOperands, t.pos)
	}
	top := p.operands[len(p.operands)-1]
	switch t.kind {
	case tokStar:
		top = Star(top)
	case tokPlus:
		top = Plus(top)
	default:
		top = QMark(top)
	}
	p.operands[len(p.operands)-1] = top
	p.i++
	return nil
}

// repetition parses {m}, {m,}, {,n} or {m,n} and applies it to the operand
// on top of the stack.
func (p *parser) repetition(t token) error {
	if !p.concatOK {
		return p.fail(ErrTooFewOperands, t.pos)
	}
	p.i++
	lo, hasMin, err := p.count()
	if err != nil {
		return err
	}
	comma := false
	hi, hasMax := 0, false
	if c, ok := p.peek(0); ok && c.isLiteral(',') {
		comma = true
		p.i++
		if hi, hasMax, err = p.count(); err != nil {
			return err
		}
	}
	end, ok := p.peek(0)
	if !ok || end.kind != tokRBrace {
		return p.fail(ErrUnclosedRange, t.pos)
	}
	if !hasMin && !hasMax {
		return p.fail(ErrBadRangeBounds, t.pos)
	}

	top := p.operands[len(p.operands)-1]
	var res *Pattern
	switch {
	case !comma:
		res, err = Power(top, lo)
	case !hasMax:
		res, err = AtLeast(top, lo)
	case !hasMin:
		res, err = AtMost(top, hi)
	default:
		res, err = Range(top, lo, hi)
	}
	if err != nil {
		return p.locate(err, t.pos)
	}
	p.operands[len(p.operands)-1] = res
	p.i++
	return nil
}

// count reads a run of digit tokens as a decimal number.
func (p *parser) count() (int, bool, error) {
	n, seen := 0, false
	for {
		t, ok := p.peek(0)
		if !ok || t.kind != tokDigit {
			return n, seen, nil
		}
		n = n*10 + int(t.b-'0')
		if n > maxRepeat {
			return 0, false, p.fail(ErrBadRangeBounds, t.pos)
		}
		seen = true
		p.i++
	}
}

func (p *parser) finish() (*Pattern, error) {
	if err := p.reduce(OpUnion.Precedence()); err != nil {
		return nil, err
	}
	if len(p.stack) > 0 {
		return nil, p.fail(ErrUnmatchedOpenParen, p.stack[len(p.stack)-1].pos)
	}
	switch len(p.operands) {
	case 0:
		return nil, p.fail(ErrTooFewOperands, p.endPos())
	case 1:
		return p.operands[0], nil
	default:
		return nil, p.fail(ErrTrailingOperand, p.endPos())
	}
}

func quote(s string) string {
	return "`" + s + "`"
}
