// Package literal extracts literal byte strings from pattern trees so that
// texts which cannot match can be rejected before the automaton runs.
//
// A Seq is a finite set of literals with a guarantee: every string of the
// pattern's language begins with one of them. A literal marked Complete is
// additionally a member of the language, and when every literal of a Seq is
// complete, the Seq is exactly the language.
package literal

import (
	"bytes"
	"sort"
	"strconv"
	"strings"
)

// Literal is one extracted byte string.
//
// Example:
//   - Pattern `abc`      → Literal{"abc", Complete: true}
//   - Pattern `abc\d*`   → Literal{"abc", Complete: false}
type Literal struct {
	Bytes []byte

	// Complete reports whether Bytes is itself a whole match rather than
	// only a prefix of matches.
	Complete bool
}

// NewLiteral creates a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int { return len(l.Bytes) }

// String renders the literal quoted, with a trailing "…" when it is only a
// prefix.
func (l Literal) String() string {
	s := strconv.Quote(string(l.Bytes))
	if !l.Complete {
		s += "…"
	}
	return s
}

// Seq is a set of alternative literals, or the infinite set when nothing
// useful is known.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	literals []Literal
	infinite bool
}

// NewSeq creates a finite sequence from lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Infinite returns the sequence that constrains nothing.
func Infinite() *Seq {
	return &Seq{infinite: true}
}

// Len returns the number of literals; 0 for an infinite sequence.
func (s *Seq) Len() int { return len(s.literals) }

// Get returns the i-th literal. It panics if i is out of range.
func (s *Seq) Get(i int) Literal { return s.literals[i] }

// Literals returns the literals. The slice must not be modified.
func (s *Seq) Literals() []Literal { return s.literals }

// IsFinite reports whether the sequence is a finite set of literals.
func (s *Seq) IsFinite() bool { return !s.infinite }

// IsEmpty reports whether the sequence is finite with no literals, which
// means the language itself is empty.
func (s *Seq) IsEmpty() bool { return !s.infinite && len(s.literals) == 0 }

// AllComplete reports whether the sequence is finite and every literal in
// it is complete, in which case it spells out the whole language.
func (s *Seq) AllComplete() bool {
	if s.infinite {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// HasEmpty reports whether the empty literal is a member. Such a sequence
// rejects no text.
func (s *Seq) HasEmpty() bool {
	for _, lit := range s.literals {
		if len(lit.Bytes) == 0 {
			return true
		}
	}
	return false
}

// MinLen returns the length of the shortest literal, or 0 if there are none.
func (s *Seq) MinLen() int {
	if len(s.literals) == 0 {
		return 0
	}
	shortest := len(s.literals[0].Bytes)
	for _, lit := range s.literals[1:] {
		if len(lit.Bytes) < shortest {
			shortest = len(lit.Bytes)
		}
	}
	return shortest
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	out := &Seq{infinite: s.infinite}
	if s.literals != nil {
		out.literals = make([]Literal, len(s.literals))
		for i, lit := range s.literals {
			out.literals[i] = Literal{Bytes: bytes.Clone(lit.Bytes), Complete: lit.Complete}
		}
	}
	return out
}

// MakeInexact marks every literal as a prefix only.
func (s *Seq) MakeInexact() {
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}

// Dedup sorts the literals and drops duplicates. When the same bytes occur
// both complete and not, the surviving literal is inexact.
func (s *Seq) Dedup() {
	if len(s.literals) < 2 {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		return bytes.Compare(s.literals[i].Bytes, s.literals[j].Bytes) < 0
	})
	kept := s.literals[:1]
	for _, lit := range s.literals[1:] {
		last := &kept[len(kept)-1]
		if bytes.Equal(last.Bytes, lit.Bytes) {
			last.Complete = last.Complete && lit.Complete
			continue
		}
		kept = append(kept, lit)
	}
	s.literals = kept
}

// Minimize drops every literal that has a shorter member as a prefix. The
// result still rejects exactly the same texts, but completeness is lost, so
// every literal is marked inexact.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("foobar"), true),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 1
func (s *Seq) Minimize() {
	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})
	kept := make([]Literal, 0, len(s.literals))
	for _, lit := range s.literals {
		covered := false
		for _, k := range kept {
			if bytes.HasPrefix(lit.Bytes, k.Bytes) {
				covered = true
				break
			}
		}
		if !covered {
			kept = append(kept, Literal{Bytes: lit.Bytes})
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest prefix shared by every literal.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("hello"), true),
//	    literal.NewLiteral([]byte("help"), true),
//	)
//	fmt.Println(string(seq.LongestCommonPrefix())) // Output: hel
func (s *Seq) LongestCommonPrefix() []byte {
	if len(s.literals) == 0 {
		return nil
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		n := 0
		for n < len(prefix) && n < len(lit.Bytes) && prefix[n] == lit.Bytes[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return bytes.Clone(prefix)
}

// String renders the sequence, e.g. `["ab" "c"…]` or `inf`.
func (s *Seq) String() string {
	if s.infinite {
		return "inf"
	}
	parts := make([]string, len(s.literals))
	for i, lit := range s.literals {
		parts[i] = lit.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
