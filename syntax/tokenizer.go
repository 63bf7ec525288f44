package syntax

import (
	"strconv"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/coregx/pyrex/internal/conv"
)

// simpleEscapes maps the byte after a backslash to the token it produces.
// Escaped metacharacters are literals; the rest are atoms.
var simpleEscapes = map[byte]token{
	'n':  {kind: tokLiteral, b: '\n', esc: true},
	'r':  {kind: tokLiteral, b: '\r', esc: true},
	'f':  {kind: tokLiteral, b: '\f', esc: true},
	't':  {kind: tokLiteral, b: '\t', esc: true},
	'\\': {kind: tokLiteral, b: '\\', esc: true},
	'(':  {kind: tokLiteral, b: '(', esc: true},
	')':  {kind: tokLiteral, b: ')', esc: true},
	'*':  {kind: tokLiteral, b: '*', esc: true},
	'+':  {kind: tokLiteral, b: '+', esc: true},
	'|':  {kind: tokLiteral, b: '|', esc: true},
	'?':  {kind: tokLiteral, b: '?', esc: true},
	'{':  {kind: tokLiteral, b: '{', esc: true},
	'}':  {kind: tokLiteral, b: '}', esc: true},
	'.':  {kind: tokLiteral, b: '.', esc: true},
	'%':  {kind: tokLiteral, b: '%', esc: true},
	'#':  {kind: tokNothing},
	'e':  {kind: tokEmpty},
	'd':  {kind: tokDigitClass},
	's':  {kind: tokSpaceClass},
	'w':  {kind: tokWordClass},
}

var metaTokens = map[byte]tokenKind{
	'(': tokLParen,
	')': tokRParen,
	'{': tokLBrace,
	'}': tokRBrace,
	'*': tokStar,
	'+': tokPlus,
	'?': tokQuestion,
	'|': tokPipe,
	'%': tokPercent,
	'.': tokDot,
}

var (
	lexerOnce    sync.Once
	patternLexer *lexmachine.Lexer
	lexerErr     error
)

// getLexer returns the shared pattern lexer, compiling its DFA on first use.
// The compiled lexer is read-only afterwards; each call to tokenize gets its
// own Scanner.
func getLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		patternLexer, lexerErr = newPatternLexer()
	})
	return patternLexer, lexerErr
}

func newPatternLexer() (*lexmachine.Lexer, error) {
	lx := lexmachine.NewLexer()

	for c, kind := range metaTokens {
		lx.Add([]byte("["+string(c)+"]"), emit(token{kind: kind}))
	}
	lx.Add([]byte(`[0-9]`), digitAction)

	for c, tok := range simpleEscapes {
		rule := `\\[` + string(c) + `]`
		if c == '\\' {
			rule = `\\\\`
		}
		lx.Add([]byte(rule), emit(tok))
	}
	lx.Add([]byte(`\\x[0-9A-Fa-f][0-9A-Fa-f]`), hexAction)
	lx.Add([]byte(`\\x[0-9A-Fa-f]`), emit(token{kind: tokShortHex}))
	lx.Add([]byte(`\\x`), emit(token{kind: tokShortHex}))

	// A lone backslash only wins when no escape rule matched a longer run.
	lx.Add([]byte(`\\`), emit(token{kind: tokDanglingEscape}))

	if err := lx.Compile(); err != nil {
		return nil, err
	}
	return lx, nil
}

func emit(tok token) lexmachine.Action {
	return func(_ *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		t := tok
		t.pos = m.TC
		return t, nil
	}
}

func digitAction(_ *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return token{kind: tokDigit, b: m.Bytes[0], pos: m.TC}, nil
}

func hexAction(_ *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	v, err := strconv.ParseUint(string(m.Bytes[2:4]), 16, 8)
	if err != nil {
		return nil, err
	}
	return token{kind: tokLiteral, b: conv.Uint64ToByte(v), esc: true, pos: m.TC}, nil
}

// tokenize splits pattern into tokens. Bytes that no lexer rule claims are
// plain literals.
func tokenize(pattern string) ([]token, error) {
	lx, err := getLexer()
	if err != nil {
		return nil, err
	}
	text := []byte(pattern)
	scanner, err := lx.Scanner(text)
	if err != nil {
		return nil, err
	}

	toks := make([]token, 0, len(text))
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if ui, is := err.(*machines.UnconsumedInput); is {
			toks = append(toks, token{kind: tokLiteral, b: text[ui.StartTC], pos: ui.StartTC})
			scanner.TC = ui.StartTC + 1
			continue
		} else if err != nil {
			return nil, err
		}

		t := tok.(token)
		switch t.kind {
		case tokDanglingEscape:
			if t.pos+1 >= len(text) {
				return nil, &Error{Code: ErrPrematureEndOfInput, Pattern: pattern, Pos: t.pos}
			}
			return nil, &Error{Code: ErrInvalidEscape, Pattern: pattern, Pos: t.pos, Arg: pattern[t.pos : t.pos+2]}
		case tokShortHex:
			end := scanner.TC
			if end >= len(text) {
				return nil, &Error{Code: ErrPrematureEndOfInput, Pattern: pattern, Pos: t.pos}
			}
			return nil, &Error{Code: ErrInvalidEscape, Pattern: pattern, Pos: t.pos, Arg: pattern[t.pos : end+1]}
		}
		toks = append(toks, t)
	}
	return toks, nil
}
