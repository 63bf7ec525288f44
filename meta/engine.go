package meta

import (
	"sync/atomic"

	"github.com/coregx/pyrex/nfa"
	"github.com/coregx/pyrex/prefilter"
	"github.com/coregx/pyrex/syntax"
)

// Engine is the meta-engine that orchestrates execution of one pattern.
//
// The Engine:
//  1. Extracts prefix literals from the pattern
//  2. Builds a prefilter (if literals are available)
//  3. Selects the strategy (NFA, prefilter + NFA, or literal only)
//  4. Coordinates each query across them
//
// Thread safety: multiple goroutines can call IsMatch and Submatches on the
// same Engine concurrently. The NFA and prefilter are immutable; PikeVM
// scratch is pooled via sync.Pool.
//
// Example:
//
//	engine, err := meta.Compile(`(foo|bar)\d+`)
//	if err != nil {
//	    return err
//	}
//	engine.IsMatch([]byte("test foo123 end"), nfa.AMatch) // true
type Engine struct {
	// IMPORTANT: stats MUST be first field for proper 8-byte alignment on
	// 32-bit platforms, since its fields are updated atomically.
	stats Stats

	pattern   *syntax.Pattern
	nfa       *nfa.NFA
	pikevm    *nfa.PikeVM
	prefilter prefilter.Prefilter
	tracker   *prefilter.Tracker
	strategy  Strategy
	config    Config

	// literals and suffixes hold the exact literal set for UseLiteral.
	literals map[string]struct{}
	suffixes [][]byte

	statePool *searchStatePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// NFASearches counts PikeVM runs
	NFASearches uint64

	// PrefilterChecks counts texts examined by the prefilter
	PrefilterChecks uint64

	// PrefilterRejections counts texts the prefilter ruled out
	PrefilterRejections uint64

	// LiteralHits counts queries answered from the literal set alone
	LiteralHits uint64
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Pattern returns the compiled pattern.
func (e *Engine) Pattern() *syntax.Pattern {
	return e.pattern
}

// NFA returns the compiled automaton.
func (e *Engine) NFA() *nfa.NFA {
	return e.nfa
}

// Prefilter returns the prefilter, or nil if the engine has none.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// Stats returns a snapshot of the execution statistics.
//
// Example:
//
//	stats := engine.Stats()
//	println("NFA searches:", stats.NFASearches)
func (e *Engine) Stats() Stats {
	return Stats{
		NFASearches:         atomic.LoadUint64(&e.stats.NFASearches),
		PrefilterChecks:     atomic.LoadUint64(&e.stats.PrefilterChecks),
		PrefilterRejections: atomic.LoadUint64(&e.stats.PrefilterRejections),
		LiteralHits:         atomic.LoadUint64(&e.stats.LiteralHits),
	}
}

// ResetStats resets execution statistics to zero and reactivates a
// prefilter that was switched off for being ineffective.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.NFASearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterChecks, 0)
	atomic.StoreUint64(&e.stats.PrefilterRejections, 0)
	atomic.StoreUint64(&e.stats.LiteralHits, 0)
	if e.tracker != nil {
		e.tracker.Reset()
	}
}
