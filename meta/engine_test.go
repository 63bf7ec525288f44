package meta

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/coregx/pyrex/nfa"
	"github.com/coregx/pyrex/syntax"
)

var allModes = []nfa.Mode{nfa.FMatch, nfa.LMatch, nfa.RMatch, nfa.AMatch}

func mustCompile(t testing.TB, pattern string, config Config) *Engine {
	t.Helper()
	e, err := CompileWithConfig(pattern, config)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", pattern, err)
	}
	return e
}

func noPrefilter() Config {
	c := DefaultConfig()
	c.EnablePrefilter = false
	return c
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		target  error
	}{
		{"simple literal", "hello", nil},
		{"digit class", `\d+`, nil},
		{"alternation", "foo|bar", nil},
		{"interleave", "a%b", nil},
		{"complex", `(foo|bar)\d+`, nil},
		{"unclosed group", "(a", syntax.ErrUnmatchedOpenParen},
		{"invalid escape", `\q`, syntax.ErrInvalidEscape},
		{"too large", "((a{1000}){1000})", nfa.ErrPatternTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := Compile(tt.pattern)
			if tt.target == nil {
				if err != nil || engine == nil {
					t.Fatalf("Compile() = %v, %v", engine, err)
				}
				return
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("Compile() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestStrategySelection(t *testing.T) {
	tests := []struct {
		pattern string
		config  Config
		want    Strategy
	}{
		{"hello", DefaultConfig(), UseLiteral},
		{"foo|bar|baz", DefaultConfig(), UseLiteral},
		{`\d`, DefaultConfig(), UseLiteral},
		{`foo\d+`, DefaultConfig(), UsePrefilter},
		{"(foo)", DefaultConfig(), UsePrefilter},
		{"(?P<x>ab)", DefaultConfig(), UsePrefilter},
		{"ab*", DefaultConfig(), UsePrefilter},
		{"a*b", DefaultConfig(), UseNFA},
		{".x", DefaultConfig(), UseNFA},
		{`\e`, DefaultConfig(), UseNFA},
		{`\#`, DefaultConfig(), UseNFA},
		{"hello", noPrefilter(), UseNFA},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			e := mustCompile(t, tt.pattern, tt.config)
			if got := e.Strategy(); got != tt.want {
				t.Errorf("Strategy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrategy_String(t *testing.T) {
	for s, want := range map[Strategy]string{
		UseNFA: "UseNFA", UsePrefilter: "UsePrefilter", UseLiteral: "UseLiteral", Strategy(42): "Unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

// TestEngine_PrefilterAgreesWithNFA compares every strategy against plain
// simulation on the same inputs.
func TestEngine_PrefilterAgreesWithNFA(t *testing.T) {
	patterns := []string{
		"hello", "foo|bar|baz", `\d`, `\s|x`, "abc|abd|b", `foo\d+`, "(foo)", "ab*", "ab+c",
		"a*b", "(?:ab|cd)e", "a?b", "a%b", "(a|b)%,", "a{2,3}", "(?:ab){2,}", `x|\e`, `\#|q`,
		"((ab?)|ba?bb)*abb",
	}
	texts := []string{
		"", "a", "b", "x", "ab", "abb", "abc", "abd", "aab", "hello", "say hello", "hello!",
		"foo", "foo1", "xfoo12", "bar", "bazbar", "7", "a7b", " ", "cde", "abe", "aba", "ababa",
		"a,b", "aa", "aaaa", "abab", "q", "babbabb", "ababb",
	}

	for _, pattern := range patterns {
		with := mustCompile(t, pattern, DefaultConfig())
		without := mustCompile(t, pattern, noPrefilter())
		for _, text := range texts {
			for _, mode := range allModes {
				got := with.IsMatch([]byte(text), mode)
				want := without.IsMatch([]byte(text), mode)
				if got != want {
					t.Errorf("%q (%v) on %q in %v: got %v, NFA says %v",
						pattern, with.Strategy(), text, mode, got, want)
				}
			}
		}
	}
}

func TestEngine_Submatches(t *testing.T) {
	for _, config := range []Config{DefaultConfig(), noPrefilter()} {
		e := mustCompile(t, `(foo)\d+`, config)
		g, err := e.Pattern().Group(1)
		if err != nil {
			t.Fatal(err)
		}

		got, ok := e.Submatches([]byte("xfoo12"), nfa.AMatch, g)
		if !ok || !reflect.DeepEqual(got, []nfa.Span{{Start: 1, End: 4}}) {
			t.Errorf("AMatch: got %v, %v", got, ok)
		}
		if got, ok := e.Submatches([]byte("bar12"), nfa.AMatch, g); ok || got != nil {
			t.Errorf("no match: got %v, %v; want nil, false", got, ok)
		}
		if got, ok := e.Submatches([]byte("xfoo12"), nfa.FMatch, g); ok || got != nil {
			t.Errorf("FMatch: got %v, %v; want nil, false", got, ok)
		}
	}
}

func TestEngine_SubmatchesOnLiteralStrategy(t *testing.T) {
	e := mustCompile(t, "foo|bar", DefaultConfig())
	if e.Strategy() != UseLiteral {
		t.Fatalf("Strategy() = %v, want UseLiteral", e.Strategy())
	}
	foreign, _ := syntax.MustParse("(x)").Group(1)
	got, ok := e.Submatches([]byte("bar"), nfa.FMatch, foreign)
	if !ok || got == nil || len(got) != 0 {
		t.Errorf("got %v, %v; want empty, true", got, ok)
	}
}

func TestEngine_Stats(t *testing.T) {
	e := mustCompile(t, `foo\d+`, DefaultConfig())
	e.IsMatch([]byte("nothing here"), nfa.AMatch)
	e.IsMatch([]byte("foo1"), nfa.FMatch)

	stats := e.Stats()
	if stats.PrefilterChecks != 2 || stats.PrefilterRejections != 1 || stats.NFASearches != 1 {
		t.Errorf("Stats() = %+v", stats)
	}

	e.ResetStats()
	if stats := e.Stats(); stats != (Stats{}) {
		t.Errorf("after ResetStats: %+v", stats)
	}

	lit := mustCompile(t, "foo", DefaultConfig())
	lit.IsMatch([]byte("foo"), nfa.FMatch)
	if stats := lit.Stats(); stats.LiteralHits != 1 || stats.NFASearches != 0 {
		t.Errorf("literal Stats() = %+v", stats)
	}
}

// TestEngine_IneffectivePrefilterIsSwitchedOff feeds texts that always pass
// the prefilter and checks that answers stay correct once it is disabled.
func TestEngine_IneffectivePrefilterIsSwitchedOff(t *testing.T) {
	e := mustCompile(t, `(a)\d`, DefaultConfig())
	if e.Strategy() != UsePrefilter {
		t.Fatalf("Strategy() = %v, want UsePrefilter", e.Strategy())
	}
	for i := 0; i < 1000; i++ {
		if !e.IsMatch([]byte("xa1"), nfa.AMatch) {
			t.Fatal("want match")
		}
	}
	stats := e.Stats()
	if stats.PrefilterChecks >= 1000 {
		t.Errorf("prefilter still consulted: %+v", stats)
	}
	if e.IsMatch([]byte("xb1"), nfa.AMatch) {
		t.Error("want no match after the prefilter is switched off")
	}
}

func TestEngine_Concurrent(t *testing.T) {
	e := mustCompile(t, "(ab|cd)+e", DefaultConfig())
	g, _ := e.Pattern().Group(1)
	text := []byte(strings.Repeat("abcd", 50) + "e")
	want, _ := nfa.NewPikeVM(e.NFA()).Submatches(text, nfa.FMatch, g)
	if len(want) == 0 {
		t.Fatal("reference run found no spans")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if !e.IsMatch(text, nfa.FMatch) {
					t.Error("IsMatch: want match")
					return
				}
				if spans, ok := e.Submatches(text, nfa.FMatch, g); !ok || !reflect.DeepEqual(spans, want) {
					t.Errorf("Submatches: got %d spans, %v; want %d", len(spans), ok, len(want))
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkEngine_IsMatch(b *testing.B) {
	text := []byte(strings.Repeat("lorem ipsum dolor sit amet ", 40) + "foo123")
	for _, config := range []struct {
		name   string
		config Config
	}{{"prefilter", DefaultConfig()}, {"nfa", noPrefilter()}} {
		b.Run(config.name, func(b *testing.B) {
			e := mustCompile(b, `foo\d+`, config.config)
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				e.IsMatch(text, nfa.AMatch)
			}
		})
	}
}
