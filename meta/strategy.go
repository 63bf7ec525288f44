package meta

import (
	"github.com/coregx/pyrex/literal"
	"github.com/coregx/pyrex/prefilter"
	"github.com/coregx/pyrex/syntax"
)

// Strategy represents the execution strategy for matching.
//
// Strategy selection is automatic based on pattern analysis.
type Strategy int

const (
	// UseNFA uses only the NFA (PikeVM) engine.
	// Selected for:
	//   - Patterns without usable prefix literals (e.g. `.*x`, `a?b*`)
	//   - When EnablePrefilter is false in config
	UseNFA Strategy = iota

	// UsePrefilter rejects texts with the prefilter, then runs the PikeVM.
	// Selected for:
	//   - Patterns with a finite prefix literal set (e.g. `foo\d+`)
	//   - Exact literal sets when the pattern has capture groups
	UsePrefilter

	// UseLiteral answers match queries from the literal set alone.
	// Selected for:
	//   - Patterns whose language is a finite set of literals (e.g. `foo|bar`)
	//   - No capture groups
	UseLiteral
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "UseNFA"
	case UsePrefilter:
		return "UsePrefilter"
	case UseLiteral:
		return "UseLiteral"
	default:
		return "Unknown"
	}
}

// SelectStrategy picks the strategy for p given its prefix literals and the
// prefilter built from them (nil if none).
//
// Decision tree:
//  1. Prefilter disabled or unavailable → UseNFA
//  2. Exact literal set, no groups → UseLiteral
//  3. Otherwise → UsePrefilter
func SelectStrategy(p *syntax.Pattern, seq *literal.Seq, pf prefilter.Prefilter, config Config) Strategy {
	if !config.EnablePrefilter || pf == nil {
		return UseNFA
	}
	if pf.IsComplete() && seq.AllComplete() && !hasGroups(p) {
		return UseLiteral
	}
	return UsePrefilter
}

func hasGroups(p *syntax.Pattern) bool {
	return p.NumGroups() > 0 || len(p.GroupNames()) > 0
}
