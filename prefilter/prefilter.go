// Package prefilter builds fast necessary-condition scans from literal sets.
//
// A Prefilter never rejects a text that could match: if some match of the
// pattern starts at position i, Find reports a candidate at or before i.
// When the literal set is exact (every literal complete), a candidate is
// itself a match.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/pyrex/literal"
	"github.com/coregx/pyrex/simd"
)

// Prefilter finds candidate match positions.
type Prefilter interface {
	// Find returns the first position at or after start where one of the
	// literals occurs, or -1.
	Find(haystack []byte, start int) int

	// HasPrefix reports whether haystack begins with one of the literals.
	HasPrefix(haystack []byte) bool

	// IsComplete reports whether the literals are exactly the pattern's
	// language, so that a literal occurrence is a match.
	IsComplete() bool

	// LiteralLen returns the length of the shortest literal.
	LiteralLen() int
}

// New selects a prefilter for seq, or returns nil when seq cannot reject
// anything: it is infinite, empty, or contains the empty literal.
//
// Selection:
//   - one single-byte literal        → Memchr
//   - two or three single-byte ones  → Memchr2/Memchr3
//   - one longer literal             → Memmem
//   - anything else                  → Aho-Corasick
func New(seq *literal.Seq) Prefilter {
	if seq == nil || !seq.IsFinite() || seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}
	complete := seq.AllComplete()
	work := seq.Clone()
	if !complete {
		work.Minimize()
	}

	base := literalSet{complete: complete, minLen: work.MinLen()}
	for _, lit := range work.Literals() {
		base.lits = append(base.lits, lit.Bytes)
	}

	if base.minLen == 1 && allSingleBytes(base.lits) && len(base.lits) <= 3 {
		set := make([]byte, len(base.lits))
		for i, l := range base.lits {
			set[i] = l[0]
		}
		return &byteSetPrefilter{literalSet: base, set: set}
	}
	if len(base.lits) == 1 {
		return &memmemPrefilter{literalSet: base, needle: base.lits[0]}
	}

	builder := ahocorasick.NewBuilder()
	for _, l := range base.lits {
		builder.AddPattern(l)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{literalSet: base, auto: auto}
}

func allSingleBytes(lits [][]byte) bool {
	for _, l := range lits {
		if len(l) != 1 {
			return false
		}
	}
	return true
}

// literalSet carries what every prefilter knows about its literals.
type literalSet struct {
	lits     [][]byte
	complete bool
	minLen   int
}

func (s literalSet) IsComplete() bool { return s.complete }

func (s literalSet) LiteralLen() int { return s.minLen }

func (s literalSet) HasPrefix(haystack []byte) bool {
	for _, l := range s.lits {
		if bytes.HasPrefix(haystack, l) {
			return true
		}
	}
	return false
}

// byteSetPrefilter scans for one to three distinct bytes.
type byteSetPrefilter struct {
	literalSet
	set []byte
}

func (p *byteSetPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	var i int
	switch rest := haystack[start:]; len(p.set) {
	case 1:
		i = simd.Memchr(rest, p.set[0])
	case 2:
		i = simd.Memchr2(rest, p.set[0], p.set[1])
	default:
		i = simd.Memchr3(rest, p.set[0], p.set[1], p.set[2])
	}
	if i < 0 {
		return -1
	}
	return start + i
}

// memmemPrefilter scans for a single literal.
type memmemPrefilter struct {
	literalSet
	needle []byte
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	i := simd.Memmem(haystack[start:], p.needle)
	if i < 0 {
		return -1
	}
	return start + i
}

// ahoCorasickPrefilter scans for many literals at once.
type ahoCorasickPrefilter struct {
	literalSet
	auto *ahocorasick.Automaton
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}
