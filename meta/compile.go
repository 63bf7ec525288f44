package meta

import (
	"github.com/coregx/pyrex/literal"
	"github.com/coregx/pyrex/nfa"
	"github.com/coregx/pyrex/prefilter"
	"github.com/coregx/pyrex/syntax"
)

// Compile compiles a pattern string into an executable Engine with the
// default configuration.
//
// Steps:
//  1. Parse pattern
//  2. Compile to NFA
//  3. Extract prefix literals
//  4. Build prefilter (if literals exist)
//  5. Select strategy
//
// Returns a *syntax.Error for malformed patterns and a *nfa.CompileError
// when the automaton exceeds its limits.
//
// Example:
//
//	engine, err := meta.Compile(`foo\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	p, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return CompilePattern(p, config)
}

// CompilePattern builds an Engine for an already parsed pattern.
func CompilePattern(p *syntax.Pattern, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	compiler := nfa.NewCompiler(nfa.CompilerConfig{
		MaxStates: config.MaxStates,
		MaxDepth:  config.MaxRecursionDepth,
	})
	n, err := compiler.Compile(p)
	if err != nil {
		return nil, err
	}

	var (
		seq *literal.Seq
		pf  prefilter.Prefilter
	)
	if config.EnablePrefilter {
		extractor := literal.New(literal.ExtractorConfig{MaxLiterals: config.MaxLiterals})
		seq = extractor.ExtractPrefixes(p)
		pf = prefilter.New(seq)
	}

	strategy := SelectStrategy(p, seq, pf, config)
	vm := nfa.NewPikeVM(n)
	e := &Engine{
		pattern:   p,
		nfa:       n,
		pikevm:    vm,
		prefilter: pf,
		strategy:  strategy,
		config:    config,
		statePool: newSearchStatePool(vm),
	}

	switch strategy {
	case UseLiteral:
		e.literals = make(map[string]struct{}, seq.Len())
		for _, lit := range seq.Literals() {
			e.literals[string(lit.Bytes)] = struct{}{}
			e.suffixes = append(e.suffixes, lit.Bytes)
		}
	case UsePrefilter:
		e.tracker = prefilter.NewTracker(prefilter.DefaultTrackerConfig())
	}
	return e, nil
}
