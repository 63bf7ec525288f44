package script

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coregx/pyrex"
)

var modes = map[string]pyrex.Mode{
	"fmatch": pyrex.FMatch,
	"lmatch": pyrex.LMatch,
	"rmatch": pyrex.RMatch,
	"amatch": pyrex.AMatch,
}

// Summary counts check outcomes.
type Summary struct {
	Total  int
	Passed int
	Failed int
	Errors int
}

// OK reports whether every check ran and met its expectation.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Errors == 0
}

func (s Summary) String() string {
	return fmt.Sprintf("%d checks, %d passed, %d failed, %d errors", s.Total, s.Passed, s.Failed, s.Errors)
}

// Runner executes checks and writes one result line per check to Out.
// Compiled patterns are cached across checks and files.
type Runner struct {
	Config pyrex.Config
	Out    io.Writer

	cache map[string]*pyrex.Regex
}

// NewRunner creates a Runner writing to out.
func NewRunner(config pyrex.Config, out io.Writer) *Runner {
	return &Runner{Config: config, Out: out, cache: make(map[string]*pyrex.Regex)}
}

// Run executes every check of f and adds the outcomes to sum.
func (r *Runner) Run(f *File, sum *Summary) {
	for _, c := range f.Checks {
		sum.Total++
		switch ok, err := r.run(c); {
		case err != nil:
			sum.Errors++
			fmt.Fprintf(r.Out, "%s: error: %v\n", c.Pos, err)
		case ok:
			sum.Passed++
		default:
			sum.Failed++
		}
	}
}

func (r *Runner) compile(pattern string) (*pyrex.Regex, error) {
	if re, ok := r.cache[pattern]; ok {
		return re, nil
	}
	re, err := pyrex.CompileWithConfig(pattern, r.Config)
	if err != nil {
		return nil, err
	}
	if r.cache == nil {
		r.cache = make(map[string]*pyrex.Regex)
	}
	r.cache[pattern] = re
	return re, nil
}

// run executes one check and reports whether it met its expectation.
func (r *Runner) run(c *Check) (bool, error) {
	re, err := r.compile(c.Pattern)
	if err != nil {
		return false, err
	}
	mode := modes[c.Mode]

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v `%s` %q", c.Pos, mode, c.Pattern, c.Text)

	var matched bool
	if c.Group == nil {
		matched = re.MatchString(c.Text, mode)
		fmt.Fprintf(&b, " -> %v", matched)
	} else {
		g, err := lookup(re, c.Group)
		if err != nil {
			return false, err
		}
		spans, ok := re.Submatches([]byte(c.Text), mode, g)
		matched = ok
		fmt.Fprintf(&b, " group %v -> %s", g, formatSpans(spans, ok))
	}

	pass := true
	if c.Want != nil {
		want, _ := strconv.ParseBool(*c.Want)
		if want != matched {
			pass = false
			fmt.Fprintf(&b, " FAIL (want %v)", want)
		}
	}
	fmt.Fprintln(r.Out, b.String())
	return pass, nil
}

func lookup(re *pyrex.Regex, ref *GroupRef) (*pyrex.Group, error) {
	if ref.Index != nil {
		return re.Group(*ref.Index)
	}
	return re.NamedGroup(*ref.Name)
}

func formatSpans(spans []pyrex.Span, ok bool) string {
	if !ok {
		return "no match"
	}
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = fmt.Sprintf("[%d,%d)", s.Start, s.End)
	}
	return "{" + strings.Join(parts, " ") + "}"
}
