package pyrex_test

import (
	"fmt"

	"github.com/coregx/pyrex"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := pyrex.Compile(`a*b`)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.FMatchString("aaab"))
	fmt.Println(re.FMatchString("aaa"))
	// Output:
	// true
	// false
}

// ExampleRegex_MatchString shows the four anchoring modes.
func ExampleRegex_MatchString() {
	re := pyrex.MustCompile(`ab`)
	for _, mode := range []pyrex.Mode{pyrex.FMatch, pyrex.LMatch, pyrex.RMatch, pyrex.AMatch} {
		fmt.Println(mode, re.MatchString("xaby", mode))
	}
	// Output:
	// FMATCH false
	// LMATCH false
	// RMATCH false
	// AMATCH true
}

// ExampleRegex_Submatches lists every span a starred group covers.
func ExampleRegex_Submatches() {
	re := pyrex.MustCompile(`(a)*`)
	g, _ := re.Group(1)
	spans, ok := re.Submatches([]byte("aaa"), pyrex.FMatch, g)
	fmt.Println(spans, ok)
	// Output: [{0 1} {1 2} {2 3}] true
}

// ExampleRegex_SubmatchStrings extracts a named group.
func ExampleRegex_SubmatchStrings() {
	re := pyrex.MustCompile(`(?P<key>\w+)=(?P<val>\d+)`)
	g, _ := re.NamedGroup("val")
	vals, ok := re.SubmatchStrings("width=42", pyrex.FMatch, g)
	fmt.Println(vals, ok)
	// Output: [42] true
}

// ExampleRegex_String shows the canonical form of a pattern.
func ExampleRegex_String() {
	re := pyrex.MustCompile(`(?<n>x)+|(?:ab)c`)
	fmt.Println(re.String())
	// Output: (?P<n>x)+|(?:ab)c
}

// ExampleQuoteMeta escapes metacharacters.
func ExampleQuoteMeta() {
	fmt.Println(pyrex.QuoteMeta("1+1=2?"))
	// Output: 1\+1=2\?
}

// ExampleParse inspects groups without compiling.
func ExampleParse() {
	p, err := pyrex.Parse(`((ab?)|ba?bb)*abb`)
	if err != nil {
		panic(err)
	}
	sub, _ := p.Group(2)
	body, _ := p.SubPattern(sub)
	fmt.Println(p.NumGroups(), body)
	// Output: 2 ab?
}
