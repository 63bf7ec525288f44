package syntax

import (
	"errors"
	"strings"
	"testing"
)

func TestPattern_StringWrapsLooserChildren(t *testing.T) {
	m := must(t)
	a, b, c := Char('a'), Char('b'), Char('c')

	tests := []struct {
		name string
		p    *Pattern
		want string
	}{
		{"concat of union", m(Concat(a, m(Union(b, c)))), "a(?:b|c)"},
		{"star of concat", Star(m(Concat(a, b))), "(?:ab)*"},
		{"right-nested concat", m(Concat(a, m(Concat(b, c)))), "a(?:bc)"},
		{"left-nested union", m(Union(m(Union(a, b)), c)), "a|b|c"},
		{"power of union", m(Power(m(Union(a, b)), 2)), "(?:a|b){2}"},
		{"interleave in concat", m(Concat(m(Interleave(a, b)), c)), "(?:a%b)c"},
		{"group needs no wrap", Star(NumberedGroup(m(Union(a, b)))), "(a|b)*"},
		{"escaped literal", Literal("a.b*"), `a\.b\*`},
		{"control bytes", Literal("\x01\x7f\n"), `\x01\x7F\n`},
		{"empty literal", Literal(""), `\e`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPattern_StructuralStringReparses(t *testing.T) {
	m := must(t)
	p := m(Concat(Char('x'), m(Union(Star(m(Concat(Char('a'), Char('b')))), Empty()))))

	q, err := Parse(p.String())
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", p.String(), err)
	}
	if q.String() != p.String() {
		t.Errorf("reparsed pattern renders as %q, want %q", q.String(), p.String())
	}
}

func TestPattern_RegistriesMerge(t *testing.T) {
	m := must(t)
	left := NumberedGroup(Char('a'))
	right := NumberedGroup(NumberedGroup(Char('b')))

	p := m(Concat(left, right))
	if p.NumGroups() != 3 {
		t.Fatalf("NumGroups = %d, want 3", p.NumGroups())
	}
	for i, want := range []string{"a", "(b)", "b"} {
		g, err := p.Group(i + 1)
		if err != nil {
			t.Fatal(err)
		}
		if p.Index(g) != i+1 {
			t.Errorf("group %d has ordinal %d", i+1, p.Index(g))
		}
		sub, err := p.SubPattern(g)
		if err != nil {
			t.Fatal(err)
		}
		if sub.String() != want {
			t.Errorf("group %d body = %q, want %q", i+1, sub.String(), want)
		}
	}
}

func TestPattern_HandlesSurviveCombinators(t *testing.T) {
	m := must(t)
	x := NumberedGroup(Char('a'))
	y := NumberedGroup(Char('b'))
	gx, _ := x.Group(1)
	gy, _ := y.Group(1)

	p := m(Concat(x, y))
	if !p.Owns(gx) || !p.Owns(gy) {
		t.Fatal("combined pattern must own its components' handles")
	}
	if p.Index(gx) != 1 || p.Index(gy) != 2 {
		t.Errorf("ordinals = %d, %d; want 1, 2", p.Index(gx), p.Index(gy))
	}
	if g, _ := p.Group(2); g != gy {
		t.Errorf("Group(2) = %v, want the handle of y", g)
	}
	sub, err := p.SubPattern(gy)
	if err != nil || sub.String() != "b" {
		t.Errorf("SubPattern(gy) = %v, %v; want b", sub, err)
	}

	wrapped := NumberedGroup(p)
	if wrapped.Index(gx) != 2 || wrapped.Index(gy) != 3 {
		t.Errorf("wrapped ordinals = %d, %d; want 2, 3", wrapped.Index(gx), wrapped.Index(gy))
	}

	twice := m(Concat(x, x))
	if twice.NumGroups() != 1 || !twice.Owns(gx) {
		t.Errorf("repeated component: NumGroups = %d, owns = %v; want 1, true", twice.NumGroups(), twice.Owns(gx))
	}

	other, _ := MustParse("(a)").Group(1)
	if p.Owns(other) || p.Index(other) != 0 {
		t.Error("handle of an unrelated pattern must not belong to p")
	}
	if _, err := p.SubPattern(other); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("SubPattern(unrelated handle) error = %v, want ErrGroupNotFound", err)
	}
}

func TestPattern_SubPatternNil(t *testing.T) {
	_, err := MustParse("(a)").SubPattern(nil)
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("error = %v, want ErrGroupNotFound", err)
	}
	if !strings.Contains(err.Error(), "nil handle") {
		t.Errorf("error = %q, want it to mention the nil handle", err)
	}
}

func TestPattern_DuplicateGroupName(t *testing.T) {
	m := must(t)
	x := m(NamedGroup(Char('x'), "g"))

	if _, err := NamedGroup(x, "g"); !errors.Is(err, ErrDuplicateGroupName) {
		t.Errorf("NamedGroup over same name: error = %v, want ErrDuplicateGroupName", err)
	}
	if _, err := Concat(x, m(NamedGroup(Char('z'), "g"))); !errors.Is(err, ErrDuplicateGroupName) {
		t.Errorf("Concat: error = %v, want ErrDuplicateGroupName", err)
	}
	if xx, err := Concat(x, x); err != nil || len(xx.GroupNames()) != 1 {
		t.Errorf("Concat(x, x) = %v, %v; the shared handle is one group", xx, err)
	}
	if _, err := Union(x, m(NamedGroup(Char('y'), "g"))); !errors.Is(err, ErrDuplicateGroupName) {
		t.Errorf("Union: error = %v, want ErrDuplicateGroupName", err)
	}
	if _, err := Concat(x, m(NamedGroup(Char('y'), "h"))); err != nil {
		t.Errorf("distinct names should combine, got %v", err)
	}
}

func TestPattern_CombinatorValidation(t *testing.T) {
	a := Char('a')
	tests := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"negative power", second(Power(a, -1)), ErrBadRangeBounds},
		{"inverted range", second(Range(a, 3, 1)), ErrBadRangeBounds},
		{"huge at-least", second(AtLeast(a, maxRepeat+1)), ErrBadRangeBounds},
		{"negative at-most", second(AtMost(a, -2)), ErrBadRangeBounds},
		{"bad name", second(NamedGroup(a, "1x")), ErrBadGroupName},
		{"empty name", second(NamedGroup(a, "")), ErrBadGroupName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.code) {
				t.Errorf("error = %v, want %v", tt.err, tt.code)
			}
			var se *Error
			if errors.As(tt.err, &se) && se.Pos != -1 {
				t.Errorf("combinator error pos = %d, want -1", se.Pos)
			}
		})
	}
}

func second(_ *Pattern, err error) error { return err }

func TestOp_PrecedenceAndArity(t *testing.T) {
	tests := []struct {
		op    Op
		prec  int
		arity int
	}{
		{OpChar, 0, 0},
		{OpNamedGroup, 0, 1},
		{OpStar, 1, 1},
		{OpRange, 1, 1},
		{OpConcat, 2, 2},
		{OpInterleave, 3, 2},
		{OpUnion, 4, 2},
	}
	for _, tt := range tests {
		if got := tt.op.Precedence(); got != tt.prec {
			t.Errorf("%v.Precedence() = %d, want %d", tt.op, got, tt.prec)
		}
		if got := tt.op.Arity(); got != tt.arity {
			t.Errorf("%v.Arity() = %d, want %d", tt.op, got, tt.arity)
		}
	}
	if OpInterleave.String() != "Interleave" {
		t.Errorf("OpInterleave.String() = %q", OpInterleave.String())
	}
}

func TestError_Message(t *testing.T) {
	_, err := Parse("a)")
	want := `pyrex: unexpected closing parenthesis at offset 1 in "a)"`
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %s", err, want)
	}

	_, err = NamedGroup(Char('a'), "9")
	want = `pyrex: invalid group name "9"`
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %s", err, want)
	}
}
