package nfa

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/pyrex/syntax"
)

func mustCompile(t testing.TB, pattern string) *NFA {
	t.Helper()
	n, err := Compile(syntax.MustParse(pattern))
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", pattern, err)
	}
	return n
}

// TestNFA_Shape checks state and transition counts for small patterns
func TestNFA_Shape(t *testing.T) {
	tests := []struct {
		pattern     string
		states      int
		transitions int
		empty       bool
	}{
		{"a", 2, 1, false},
		{"abc", 4, 3, false},
		{"a|b", 3, 2, false},
		{`\e`, 1, 0, true},
		{`\#`, 1, 0, false},
		{"a*", 2, 2, true},
		{`\d`, 2, 10, false},
		{`\s`, 2, 6, false},
		{`\w`, 2, 63, false},
		{".", 2, 128, false},
		{"a{3}", 4, 3, false},
		{"a{,2}", 3, 3, true},
		{"a{0}", 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := mustCompile(t, tt.pattern)
			if n.States() != tt.states {
				t.Errorf("States() = %d, want %d\n%s", n.States(), tt.states, n)
			}
			if n.Transitions() != tt.transitions {
				t.Errorf("Transitions() = %d, want %d\n%s", n.Transitions(), tt.transitions, n)
			}
			if n.MatchesEmpty() != tt.empty {
				t.Errorf("MatchesEmpty() = %v, want %v", n.MatchesEmpty(), tt.empty)
			}
		})
	}
}

// TestNFA_StartHasNoIncomingTransitions guards the restart trick used by
// unanchored simulation
func TestNFA_StartHasNoIncomingTransitions(t *testing.T) {
	patterns := []string{
		"a*", "(a*)*", "(a+)+", "a%b", "(ab|c)*d", "a{2,5}", "(?:x|y){3,}",
		"((ab?)|ba?bb)*abb",
	}
	for _, pattern := range patterns {
		n := mustCompile(t, pattern)
		for id := 0; id < n.States(); id++ {
			for _, tr := range n.State(StateID(id)).Transitions() {
				if tr.Next == n.Start() {
					t.Errorf("%q: state %d has a transition into the start state", pattern, id)
				}
			}
		}
	}
}

// TestNFA_GroupTokens checks where a group's tokens are attached
func TestNFA_GroupTokens(t *testing.T) {
	p := syntax.MustParse("(a)")
	n, err := Compile(p)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := p.Group(1)

	start := n.State(n.Start())
	ts := start.On('a')
	if len(ts) != 1 {
		t.Fatalf("On('a') = %v, want one transition", ts)
	}
	if len(ts[0].Tokens) != 1 || ts[0].Tokens[0] != (Token{Group: g, Kind: Enter}) {
		t.Errorf("transition tokens = %v, want [ENTER(#1)]", ts[0].Tokens)
	}

	exit := n.State(ts[0].Next)
	if !exit.IsAccepting() {
		t.Fatal("exit state should accept")
	}
	if got := exit.AcceptTokens(); len(got) != 1 || got[0] != (Token{Group: g, Kind: Leave}) {
		t.Errorf("accept tokens = %v, want [LEAVE(#1)]", got)
	}
	if n.Pattern() != p {
		t.Error("Pattern() should return the compiled pattern")
	}
	if s := n.String(); !strings.Contains(s, "ENTER(#1)") || !strings.Contains(s, "LEAVE(#1)") {
		t.Errorf("String() missing tokens:\n%s", s)
	}
}

func TestNFA_GroupTokensOnEmptyMatch(t *testing.T) {
	p := syntax.MustParse("(?P<g>a*)")
	n, err := Compile(p)
	if err != nil {
		t.Fatal(err)
	}
	got := n.State(n.Start()).AcceptTokens()
	if len(got) != 2 || got[0].Kind != Enter || got[1].Kind != Leave || got[0].Group.Name() != "g" {
		t.Errorf("start accept tokens = %v, want [ENTER(g) LEAVE(g)]", got)
	}
}

func TestState_On(t *testing.T) {
	n := mustCompile(t, "a|ab|b")
	start := n.State(n.Start())
	if got := len(start.On('a')); got != 2 {
		t.Errorf("On('a') has %d transitions, want 2", got)
	}
	if got := len(start.On('b')); got != 1 {
		t.Errorf("On('b') has %d transitions, want 1", got)
	}
	if got := len(start.On('c')); got != 0 {
		t.Errorf("On('c') has %d transitions, want 0", got)
	}
	if n.State(StateID(n.States())) != nil {
		t.Error("State(out of range) should be nil")
	}
}

func TestCompile_PatternTooLarge(t *testing.T) {
	patterns := []string{
		"((a{1000}){1000})",
		"(?:a{400}){300,}",
		"(?:(?:ab){500}){101}",
		"(?:a{60000})%(?:b{60000})",
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			_, err := Compile(syntax.MustParse(pattern))
			if !errors.Is(err, ErrPatternTooLarge) {
				t.Fatalf("error = %v, want ErrPatternTooLarge", err)
			}
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("error is %T, want *CompileError", err)
			}
			if ce.Pattern == "" {
				t.Error("CompileError should carry the pattern")
			}
		})
	}
}

func TestCompiler_MaxStates(t *testing.T) {
	c := NewCompiler(CompilerConfig{MaxStates: 10})

	if _, err := c.Compile(syntax.MustParse("a{10}")); err != nil {
		t.Errorf("a{10} within a 10-state ceiling: %v", err)
	}
	if _, err := c.Compile(syntax.MustParse("a{11}")); !errors.Is(err, ErrPatternTooLarge) {
		t.Errorf("a{11}: error = %v, want ErrPatternTooLarge", err)
	}
	if _, err := c.Compile(syntax.MustParse("abcdefghijk")); !errors.Is(err, ErrPatternTooLarge) {
		t.Errorf("11-byte literal: error = %v, want ErrPatternTooLarge", err)
	}
}

func TestCompiler_MaxDepth(t *testing.T) {
	c := NewCompiler(CompilerConfig{MaxDepth: 3})
	if _, err := c.Compile(syntax.MustParse("((((a))))")); !errors.Is(err, ErrTooComplex) {
		t.Errorf("error = %v, want ErrTooComplex", err)
	}
	if _, err := c.Compile(syntax.MustParse("((a))")); err != nil {
		t.Errorf("shallow pattern: %v", err)
	}
}

func TestCompiler_LongFlatPatterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
	}{
		{"5000-byte literal", strings.Repeat("a", 5000), strings.Repeat("a", 5000)},
		{"2000-way union", strings.Repeat("ab|", 1999) + "cd", "cd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustCompile(t, tt.pattern)
			if !NewPikeVM(n).IsMatch([]byte(tt.text), FMatch) {
				t.Errorf("FMATCH %q = false, want true", tt.text)
			}
		})
	}

	// Operands of a chain share one nesting level; groups inside still count.
	c := NewCompiler(CompilerConfig{MaxDepth: 4})
	if _, err := c.Compile(syntax.MustParse(strings.Repeat("(a)", 500))); err != nil {
		t.Errorf("flat chain of groups: %v", err)
	}
	if _, err := c.Compile(syntax.MustParse("x((((a))))")); !errors.Is(err, ErrTooComplex) {
		t.Errorf("nested groups in a chain: error = %v, want ErrTooComplex", err)
	}
}

func TestCompiler_TransitionCeiling(t *testing.T) {
	// Every exit of a nullable copy links to the next copies, so transitions
	// grow with the square of the repeat count.
	_, err := Compile(syntax.MustParse("(?:.?){2000}"))
	if !errors.Is(err, ErrPatternTooLarge) {
		t.Fatalf("(?:.?){2000}: error = %v, want ErrPatternTooLarge", err)
	}
	if !strings.Contains(err.Error(), "transitions") {
		t.Errorf("error = %q, want it to name transitions", err)
	}

	n := mustCompile(t, "(?:.?){20}")
	if !NewPikeVM(n).IsMatch([]byte("abc"), FMatch) {
		t.Error("(?:.?){20} should match abc")
	}

	c := NewCompiler(CompilerConfig{MaxTransitions: 100})
	if _, err := c.Compile(syntax.MustParse(".")); !errors.Is(err, ErrPatternTooLarge) {
		t.Errorf(". under 100 transitions: error = %v, want ErrPatternTooLarge", err)
	}
	if _, err := c.Compile(syntax.MustParse(`\d\d`)); err != nil {
		t.Errorf(`\d\d under 100 transitions: %v`, err)
	}
	if _, err := c.Compile(syntax.MustParse(`\d{11}`)); !errors.Is(err, ErrPatternTooLarge) {
		t.Errorf(`\d{11} under 100 transitions: error = %v, want ErrPatternTooLarge`, err)
	}
}

func TestCompiler_CombinedPatternLabels(t *testing.T) {
	x := syntax.NumberedGroup(syntax.Char('a'))
	y := syntax.NumberedGroup(syntax.Char('b'))
	p, err := syntax.Concat(x, y)
	if err != nil {
		t.Fatal(err)
	}
	n, err := Compile(p)
	if err != nil {
		t.Fatal(err)
	}
	if s := n.String(); !strings.Contains(s, "ENTER(#2)") {
		t.Errorf("second group should be labelled #2:\n%s", s)
	}
}

func TestCompilerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  CompilerConfig
		wantErr bool
	}{
		{"default", DefaultCompilerConfig(), false},
		{"negative states", CompilerConfig{MaxStates: -1, MaxTransitions: 10, MaxDepth: 10}, true},
		{"zero depth", CompilerConfig{MaxStates: 10, MaxTransitions: 10}, true},
		{"zero transitions", CompilerConfig{MaxStates: 10, MaxDepth: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if _, err := NewCompiler(CompilerConfig{MaxStates: -5}).Compile(syntax.MustParse("a")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Compile with bad config: error = %v, want ErrInvalidConfig", err)
	}
}

func TestCompileError_Message(t *testing.T) {
	err := &CompileError{Pattern: "a{9}", Err: &sizeError{op: "repetition", want: 9, limit: 4}}
	want := `NFA compilation failed for pattern "a{9}": repetition needs 9 states, limit is 4`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrPatternTooLarge) {
		t.Error("CompileError should unwrap to ErrPatternTooLarge")
	}
	bare := &CompileError{Err: ErrTooComplex}
	if bare.Error() != "NFA compilation failed: pattern too complex" {
		t.Errorf("Error() = %q", bare.Error())
	}
}
