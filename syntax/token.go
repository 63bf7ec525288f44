package syntax

import "fmt"

type tokenKind uint8

const (
	tokLiteral tokenKind = iota
	tokDigit
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokStar
	tokPlus
	tokQuestion
	tokPipe
	tokPercent
	tokDot
	tokNothing
	tokEmpty
	tokDigitClass
	tokSpaceClass
	tokWordClass

	// Malformed escapes. The tokenizer turns these into errors and never
	// hands them to the parser.
	tokDanglingEscape
	tokShortHex
)

var tokenNames = [...]string{
	tokLiteral:        "literal",
	tokDigit:          "digit",
	tokLParen:         "(",
	tokRParen:         ")",
	tokLBrace:         "{",
	tokRBrace:         "}",
	tokStar:           "*",
	tokPlus:           "+",
	tokQuestion:       "?",
	tokPipe:           "|",
	tokPercent:        "%",
	tokDot:            ".",
	tokNothing:        `\#`,
	tokEmpty:          `\e`,
	tokDigitClass:     `\d`,
	tokSpaceClass:     `\s`,
	tokWordClass:      `\w`,
	tokDanglingEscape: "dangling escape",
	tokShortHex:       "short hex escape",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("tokenKind(%d)", k)
}

// token is one lexical unit of a pattern.
//
// For tokLiteral and tokDigit, b holds the byte. esc is set when the byte
// came from an escape sequence, which keeps `\?` or `\x3E` from being
// read as group syntax.
type token struct {
	kind tokenKind
	b    byte
	esc  bool
	pos  int
}

// isLiteral reports whether t is the unescaped byte c.
func (t token) isLiteral(c byte) bool {
	return t.kind == tokLiteral && !t.esc && t.b == c
}

// startsOperand reports whether t can begin an operand, i.e. whether an
// implicit concatenation may precede it.
func (t token) startsOperand() bool {
	switch t.kind {
	case tokLiteral, tokDigit, tokDot, tokNothing, tokEmpty,
		tokDigitClass, tokSpaceClass, tokWordClass, tokLParen:
		return true
	}
	return false
}
