// Package script parses and runs check scripts for pyrexcheck.
//
// A script is a sequence of checks, one per line by convention:
//
//	# comment
//	fmatch `a*b` "aaab" want true
//	amatch `(\d+)-` "id 42-x" group 1
//	lmatch `(?P<k>\w+)=` "key=1" group k want true
//
// The mode is one of fmatch, lmatch, rmatch or amatch. Patterns are raw
// backquoted strings; texts are double-quoted with Go escapes.
package script

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed check script.
type File struct {
	Checks []*Check `parser:"@@*"`
}

// Check is one line of a script: a mode, a pattern, a text, and optionally
// a group whose submatches to print and an expected match result.
type Check struct {
	Pos lexer.Position

	Mode    string    `parser:"@('fmatch' | 'lmatch' | 'rmatch' | 'amatch')"`
	Pattern string    `parser:"@Pattern"`
	Text    string    `parser:"@String"`
	Group   *GroupRef `parser:"( 'group' @@ )?"`
	Want    *string   `parser:"( 'want' @('true' | 'false') )?"`
}

// GroupRef names a group by 1-based index or by name.
type GroupRef struct {
	Index *int    `parser:"  @Int"`
	Name  *string `parser:"| @Ident"`
}

var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Pattern", Pattern: "`[^`]*`"},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(scriptLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.Map(stripBackquotes, "Pattern"),
)

func stripBackquotes(t lexer.Token) (lexer.Token, error) {
	t.Value = t.Value[1 : len(t.Value)-1]
	return t, nil
}

// Parse parses a script. name is used in error positions.
func Parse(name, data string) (*File, error) {
	return parser.ParseString(name, data)
}
