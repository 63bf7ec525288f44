package literal_test

import (
	"fmt"

	"github.com/coregx/pyrex/literal"
	"github.com/coregx/pyrex/syntax"
)

func ExampleExtractor_ExtractPrefixes() {
	e := literal.New(literal.DefaultConfig())

	for _, pattern := range []string{"foo|bar", `(?:ab)+\d`, `a*b`} {
		seq := e.ExtractPrefixes(syntax.MustParse(pattern))
		fmt.Println(pattern, seq, seq.AllComplete())
	}
	// Output:
	// foo|bar ["bar" "foo"] true
	// (?:ab)+\d ["ab"…] false
	// a*b [""…] false
}

func ExampleSeq_Minimize() {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("foobar"), true),
	)
	seq.Minimize()
	fmt.Println(seq.Len())
	// Output: 1
}
