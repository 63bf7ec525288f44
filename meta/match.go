package meta

import (
	"bytes"
	"sync/atomic"

	"github.com/coregx/pyrex/nfa"
	"github.com/coregx/pyrex/syntax"
)

// IsMatch reports whether text matches under mode.
//
// Example:
//
//	engine, _ := meta.Compile("hello")
//	if engine.IsMatch([]byte("say hello world"), nfa.AMatch) {
//	    println("matches!")
//	}
func (e *Engine) IsMatch(text []byte, mode nfa.Mode) bool {
	switch e.strategy {
	case UseLiteral:
		return e.isMatchLiteral(text, mode)
	case UsePrefilter:
		return e.isMatchPrefilter(text, mode)
	default:
		return e.isMatchNFA(text, mode)
	}
}

// Submatches returns the spans group g can cover when text matches under
// mode, as nfa.PikeVM.Submatches does. Texts the prefilter rules out yield
// (nil, false) without running the automaton.
func (e *Engine) Submatches(text []byte, mode nfa.Mode, g *syntax.Group) ([]nfa.Span, bool) {
	if e.strategy != UseNFA {
		if _, ok := e.candidate(text, mode); !ok {
			return nil, false
		}
	}
	atomic.AddUint64(&e.stats.NFASearches, 1)
	state := e.statePool.get()
	defer e.statePool.put(state)
	return e.pikevm.SubmatchesWithState(text, mode, g, state)
}

// isMatchLiteral answers from the exact literal set.
func (e *Engine) isMatchLiteral(text []byte, mode nfa.Mode) bool {
	atomic.AddUint64(&e.stats.LiteralHits, 1)
	switch mode {
	case nfa.FMatch:
		_, ok := e.literals[string(text)]
		return ok
	case nfa.LMatch:
		return e.prefilter.HasPrefix(text)
	case nfa.RMatch:
		for _, lit := range e.suffixes {
			if bytes.HasSuffix(text, lit) {
				return true
			}
		}
		return false
	default:
		return e.prefilter.Find(text, 0) >= 0
	}
}

// isMatchPrefilter rejects with the prefilter, then confirms with the
// PikeVM. For unanchored-start modes the simulation begins at the first
// candidate, since no match can start before it.
func (e *Engine) isMatchPrefilter(text []byte, mode nfa.Mode) bool {
	at, ok := e.candidate(text, mode)
	if !ok {
		return false
	}
	return e.isMatchNFA(text[at:], mode)
}

// candidate runs the prefilter check for mode. It returns false when text
// cannot match, and otherwise the earliest position a match may start.
func (e *Engine) candidate(text []byte, mode nfa.Mode) (int, bool) {
	if e.tracker != nil && !e.tracker.Active() {
		return 0, true
	}
	atomic.AddUint64(&e.stats.PrefilterChecks, 1)

	at := 0
	var ok bool
	switch mode {
	case nfa.FMatch, nfa.LMatch:
		ok = e.prefilter.HasPrefix(text)
	default:
		at = e.prefilter.Find(text, 0)
		ok = at >= 0
	}
	if e.tracker != nil {
		e.tracker.Record(!ok)
	}
	if !ok {
		atomic.AddUint64(&e.stats.PrefilterRejections, 1)
		return 0, false
	}
	return at, true
}

func (e *Engine) isMatchNFA(text []byte, mode nfa.Mode) bool {
	atomic.AddUint64(&e.stats.NFASearches, 1)
	state := e.statePool.get()
	defer e.statePool.put(state)
	return e.pikevm.IsMatchWithState(text, mode, state)
}
