// Package pyrex provides a regex-dialect engine for Go.
//
// Patterns are compiled into a nondeterministic finite automaton annotated
// with capture-group bookkeeping and simulated without backtracking, so the
// work per query is bounded by automaton size times text length.
//
// The dialect is byte-oriented ASCII:
//   - Atoms: literal bytes, `.` (any ASCII byte), `\d`, `\s`, `\w`,
//     `\e` (empty string), `\#` (matches nothing)
//   - Groups: `(r)`, `(?P<name>r)`, `(?<name>r)`, `(?:r)`
//   - Quantifiers: `?`, `*`, `+`, `{n}`, `{n,}`, `{,m}`, `{n,m}`
//   - Binary: concatenation, `r|s` (union), `r%s` (r separated by s)
//
// Basic usage:
//
//	re, err := pyrex.Compile(`(\d+)-(?P<word>\w+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	re.FMatchString("42-answer") // true
//	re.AMatchString("x 42-y z")  // true
//
//	g, _ := re.NamedGroup("word")
//	spans, ok := re.Submatches([]byte("42-ab"), pyrex.FMatch, g)
//	// spans = [{3 5}], ok = true
//
// Every query is one of four anchoring modes: FMatch (whole text), LMatch
// (a prefix), RMatch (a suffix) and AMatch (any substring).
package pyrex

import (
	"io"

	"github.com/coregx/pyrex/meta"
	"github.com/coregx/pyrex/nfa"
	"github.com/coregx/pyrex/syntax"
)

// Mode selects how a match is anchored to the text.
type Mode = nfa.Mode

// Anchoring modes.
const (
	FMatch = nfa.FMatch
	LMatch = nfa.LMatch
	RMatch = nfa.RMatch
	AMatch = nfa.AMatch
)

// Span is a half-open byte interval [Start, End) of a text.
type Span = nfa.Span

// Group is a capture group handle, valid for the pattern that issued it.
type Group = syntax.Group

// Pattern is a parsed, immutable pattern tree.
type Pattern = syntax.Pattern

// Config controls compilation limits and prefiltering.
type Config = meta.Config

// Regex represents a compiled pattern.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := pyrex.MustCompile(`hello`)
//	if re.AMatchString("say hello world") {
//	    println("matched!")
//	}
type Regex struct {
	engine *meta.Engine
}

// Parse parses a pattern without compiling it.
//
// Example:
//
//	p, err := pyrex.Parse(`a(b|c)*`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p.NumGroups()) // 1
func Parse(pattern string) (*Pattern, error) {
	return syntax.Parse(pattern)
}

// Compile parses and compiles a pattern.
//
// Returns a *syntax.Error for malformed patterns and a *nfa.CompileError
// when the automaton would exceed its state ceiling.
//
// Example:
//
//	re, err := pyrex.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var digits = pyrex.MustCompile(`\d+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("pyrex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := pyrex.DefaultConfig()
//	config.MaxStates = 1000
//	re, err := pyrex.CompileWithConfig("(a|b|c){500}", config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine}, nil
}

// CompilePattern compiles an already parsed pattern. Group handles taken
// from p remain valid for the returned Regex.
func CompilePattern(p *Pattern) (*Regex, error) {
	engine, err := meta.CompilePattern(p, DefaultConfig())
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a pattern that matches exactly the text s: every
// metacharacter is escaped, and the empty string becomes `\e`.
//
// Example:
//
//	escaped := pyrex.QuoteMeta("1+1=2?")
//	// escaped = `1\+1=2\?`
//	pyrex.MustCompile(escaped).FMatchString("1+1=2?") // true
func QuoteMeta(s string) string {
	const special = `\()*+|?{}.%`

	if s == "" {
		return `\e`
	}

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// Match reports whether text matches under mode.
func (r *Regex) Match(text []byte, mode Mode) bool {
	return r.engine.IsMatch(text, mode)
}

// MatchString is like Match but takes a string.
func (r *Regex) MatchString(text string, mode Mode) bool {
	return r.engine.IsMatch([]byte(text), mode)
}

// FMatch reports whether the whole text matches.
func (r *Regex) FMatch(text []byte) bool { return r.Match(text, FMatch) }

// LMatch reports whether some prefix of text matches.
func (r *Regex) LMatch(text []byte) bool { return r.Match(text, LMatch) }

// RMatch reports whether some suffix of text matches.
func (r *Regex) RMatch(text []byte) bool { return r.Match(text, RMatch) }

// AMatch reports whether some substring of text matches.
func (r *Regex) AMatch(text []byte) bool { return r.Match(text, AMatch) }

// FMatchString is like FMatch but takes a string.
func (r *Regex) FMatchString(text string) bool { return r.MatchString(text, FMatch) }

// LMatchString is like LMatch but takes a string.
func (r *Regex) LMatchString(text string) bool { return r.MatchString(text, LMatch) }

// RMatchString is like RMatch but takes a string.
func (r *Regex) RMatchString(text string) bool { return r.MatchString(text, RMatch) }

// AMatchString is like AMatch but takes a string.
func (r *Regex) AMatchString(text string) bool { return r.MatchString(text, AMatch) }

// Submatches returns every span group g can cover in a match of text under
// mode, sorted by start then end. The boolean is false when text does not
// match. A match in which g takes no part, or a g issued by another
// pattern, yields an empty result.
//
// Example:
//
//	re := pyrex.MustCompile(`(a)*`)
//	g, _ := re.Group(1)
//	re.Submatches([]byte("aaa"), pyrex.FMatch, g)
//	// [{0 1} {1 2} {2 3}], true
func (r *Regex) Submatches(text []byte, mode Mode, g *Group) ([]Span, bool) {
	return r.engine.Submatches(text, mode, g)
}

// SubmatchStrings is like Submatches but returns the covered substrings,
// one per distinct span.
func (r *Regex) SubmatchStrings(text string, mode Mode, g *Group) ([]string, bool) {
	spans, ok := r.engine.Submatches([]byte(text), mode, g)
	if !ok {
		return nil, false
	}
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = text[s.Start:s.End]
	}
	return out, true
}

// Group returns the numbered group with the given 1-based index.
func (r *Regex) Group(index int) (*Group, error) {
	return r.engine.Pattern().Group(index)
}

// NamedGroup returns the named group called name.
func (r *Regex) NamedGroup(name string) (*Group, error) {
	return r.engine.Pattern().GroupByName(name)
}

// NumGroups returns the number of numbered groups.
func (r *Regex) NumGroups() int {
	return r.engine.Pattern().NumGroups()
}

// GroupNames returns the names of the named groups, sorted.
func (r *Regex) GroupNames() []string {
	return r.engine.Pattern().GroupNames()
}

// Pattern returns the parsed pattern.
func (r *Regex) Pattern() *Pattern {
	return r.engine.Pattern()
}

// String returns the canonical form of the pattern. Parsing it again
// yields an equal tree.
func (r *Regex) String() string {
	return r.engine.Pattern().String()
}

// WriteDOT writes the compiled automaton in Graphviz DOT format.
func (r *Regex) WriteDOT(w io.Writer) error {
	return r.engine.NFA().WriteDOT(w)
}

// Strategy returns the execution strategy the engine selected.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}

// Stats returns execution statistics.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}
