package nfa

import (
	"sort"

	"github.com/coregx/pyrex/internal/conv"
	"github.com/coregx/pyrex/syntax"
)

// fragState is a state of a fragment under construction.
//
// Transitions are stored as byte -> destinations. Tokens belong to the
// (state, destination) pair rather than to a single byte: every byte leading
// from this state to the same destination fires the same tokens.
type fragState struct {
	accepting bool
	marker    []Token

	edges  map[byte][]int
	dests  []int           // distinct destinations in insertion order
	tokens map[int][]Token // destination -> tokens
}

func (s *fragState) hasEdge(c byte, to int) bool {
	for _, d := range s.edges[c] {
		if d == to {
			return true
		}
	}
	return false
}

// degree counts the transitions leaving s.
func (s *fragState) degree() int {
	n := 0
	for _, dsts := range s.edges {
		n += len(dsts)
	}
	return n
}

// link adds the transition c -> to unless it exists, and reports whether it
// did. The first link to a destination fixes the tokens of that pair; later
// links reuse them.
func (s *fragState) link(c byte, to int, tokens []Token) bool {
	if s.hasEdge(c, to) {
		return false
	}
	if s.edges == nil {
		s.edges = make(map[byte][]int)
		s.tokens = make(map[int][]Token)
	}
	s.edges[c] = append(s.edges[c], to)
	if _, seen := s.tokens[to]; !seen {
		s.dests = append(s.dests, to)
		s.tokens[to] = tokens
	}
	return true
}

// copyShifted returns a deep copy of s with every destination moved by off.
func (s *fragState) copyShifted(off int) *fragState {
	out := &fragState{accepting: s.accepting, marker: s.marker}
	if s.edges == nil {
		return out
	}
	out.edges = make(map[byte][]int, len(s.edges))
	for c, dsts := range s.edges {
		moved := make([]int, len(dsts))
		for i, d := range dsts {
			moved[i] = d + off
		}
		out.edges[c] = moved
	}
	out.dests = make([]int, len(s.dests))
	out.tokens = make(map[int][]Token, len(s.tokens))
	for i, d := range s.dests {
		out.dests[i] = d + off
		out.tokens[d+off] = s.tokens[d]
	}
	return out
}

// joinTokens returns a fresh slice holding a followed by b. Token slices are
// shared between states and copies, so they are never appended in place.
func joinTokens(a []Token, b ...Token) []Token {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make([]Token, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// fragment is an automaton piece: an arena of states where index 0 is the
// start state, plus the lastpos set of states that may end the fragment.
//
// Every lastpos state is accepting. The start state is never in lastpos and
// no transition enters it; whether it accepts is tracked on the state.
type fragment struct {
	states []*fragState
	last   []int
	edges  int // transitions across all states
}

func newFragment() *fragment {
	return &fragment{states: []*fragState{{}}}
}

func (f *fragment) start() *fragState { return f.states[0] }

// size counts states other than the start state.
func (f *fragment) size() int { return len(f.states) - 1 }

func (f *fragment) clone() *fragment {
	out := &fragment{
		states: make([]*fragState, len(f.states)),
		last:   append([]int(nil), f.last...),
		edges:  f.edges,
	}
	for i, s := range f.states {
		out.states[i] = s.copyShifted(0)
	}
	return out
}

// absorb appends the non-start states of other, shifted past f's states,
// and returns the offset applied to other's indices.
func (f *fragment) absorb(other *fragment) int {
	off := f.size()
	for _, s := range other.states[1:] {
		f.states = append(f.states, s.copyShifted(off))
	}
	f.edges += other.edges - other.start().degree()
	return off
}

func shifted(idx []int, off int) []int {
	out := make([]int, len(idx))
	for i, v := range idx {
		out[i] = v + off
	}
	return out
}

var (
	dotBytes   = byteRange(0, 127)
	digitBytes = byteRange('0', '9')
	spaceBytes = []byte(" \n\t\r\f\v")
	wordBytes  = append(append(append([]byte{'_'}, digitBytes...), byteRange('a', 'z')...), byteRange('A', 'Z')...)
)

func byteRange(lo, hi byte) []byte {
	out := make([]byte, 0, int(hi)-int(lo)+1)
	for c := int(lo); c <= int(hi); c++ {
		out = append(out, conv.IntToByte(c))
	}
	return out
}

// builder composes fragments under a state ceiling and a transition
// ceiling.
type builder struct {
	limit     int
	edgeLimit int
}

func (b *builder) check(op string, want int) error {
	if want > b.limit {
		return &sizeError{op: op, want: want, limit: b.limit}
	}
	return nil
}

func (b *builder) checkEdges(op string, want int) error {
	if want > b.edgeLimit {
		return &sizeError{op: op, unit: "transitions", want: want, limit: b.edgeLimit}
	}
	return nil
}

// checkRepeat guards count copies of f before any copy is made.
func (b *builder) checkRepeat(op string, count int, f *fragment) error {
	if size := f.size(); size > 0 && count > b.limit/size {
		return &sizeError{op: op, want: count * size, limit: b.limit}
	}
	if f.edges > 0 && count > b.edgeLimit/f.edges {
		return &sizeError{op: op, unit: "transitions", want: count * f.edges, limit: b.edgeLimit}
	}
	return nil
}

// exits counts the states of f that a following fragment is linked from.
func (f *fragment) exits() int {
	n := len(f.last)
	if f.start().accepting {
		n++
	}
	return n
}

func nothingFragment() *fragment {
	return newFragment()
}

func emptyFragment() *fragment {
	f := newFragment()
	f.start().accepting = true
	return f
}

// classFragment consumes one byte from set and accepts.
func classFragment(set []byte) *fragment {
	f := newFragment()
	f.states = append(f.states, &fragState{accepting: true})
	for _, c := range set {
		if f.start().link(c, 1, nil) {
			f.edges++
		}
	}
	f.last = []int{1}
	return f
}

// group makes f report its matches as group g.
func (b *builder) group(f *fragment, g *syntax.Group) {
	st := f.start()
	if st.accepting {
		st.marker = joinTokens(st.marker, Token{g, Enter}, Token{g, Leave})
	}
	for _, d := range st.dests {
		st.tokens[d] = joinTokens(st.tokens[d], Token{g, Enter})
	}
	for _, l := range f.last {
		s := f.states[l]
		s.marker = joinTokens(s.marker, Token{g, Leave})
	}
}

// concat appends other to f. Tokens pending on an exit of f fire before
// the tokens other's start would fire.
func (b *builder) concat(f, other *fragment) error {
	if err := b.check("concatenation", f.size()+other.size()); err != nil {
		return err
	}
	os := other.start()
	if err := b.checkEdges("concatenation", f.edges+other.edges+f.exits()*os.degree()); err != nil {
		return err
	}
	off := f.absorb(other)

	connect := func(s *fragState) {
		for c, dsts := range os.edges {
			for _, d := range dsts {
				if s.link(c, d+off, joinTokens(s.marker, os.tokens[d]...)) {
					f.edges++
				}
			}
		}
		if os.accepting {
			s.marker = joinTokens(s.marker, os.marker...)
		} else {
			s.accepting = false
			s.marker = nil
		}
	}
	for _, l := range f.last {
		connect(f.states[l])
	}
	if f.start().accepting {
		connect(f.start())
	}

	if os.accepting {
		f.last = append(f.last, shifted(other.last, off)...)
	} else {
		f.last = shifted(other.last, off)
	}
	return nil
}

// union merges other's start state into f's.
func (b *builder) union(f, other *fragment) error {
	if err := b.check("union", f.size()+other.size()); err != nil {
		return err
	}
	if err := b.checkEdges("union", f.edges+other.edges); err != nil {
		return err
	}
	off := f.absorb(other)
	fs, os := f.start(), other.start()
	for c, dsts := range os.edges {
		for _, d := range dsts {
			if fs.link(c, d+off, os.tokens[d]) {
				f.edges++
			}
		}
	}
	if os.accepting {
		fs.marker = joinTokens(fs.marker, os.marker...)
		fs.accepting = true
	}
	f.last = append(f.last, shifted(other.last, off)...)
	return nil
}

// star lets every exit of f restart f. A lastpos state that already has a
// transition on the same byte to the same destination keeps it unchanged.
func (b *builder) star(f *fragment) error {
	st := f.start()
	if err := b.checkEdges("star", f.edges+len(f.last)*st.degree()); err != nil {
		return err
	}
	for _, l := range f.last {
		ls := f.states[l]
		for c, dsts := range st.edges {
			for _, d := range dsts {
				if ls.link(c, d, joinTokens(ls.marker, st.tokens[d]...)) {
					f.edges++
				}
			}
		}
	}
	st.accepting = true
	return nil
}

func (b *builder) qmark(f *fragment) {
	f.start().accepting = true
}

func (b *builder) plus(f *fragment) error {
	if err := b.checkRepeat("plus", 2, f); err != nil {
		return err
	}
	rest := f.clone()
	if err := b.star(rest); err != nil {
		return err
	}
	return b.concat(f, rest)
}

func (b *builder) atLeast(f *fragment, n int) error {
	if n == 0 {
		return b.star(f)
	}
	if err := b.checkRepeat("repetition", n+1, f); err != nil {
		return err
	}
	copies := make([]*fragment, n)
	for i := range copies {
		copies[i] = f.clone()
	}
	if err := b.star(copies[n-1]); err != nil {
		return err
	}
	for _, c := range copies {
		if err := b.concat(f, c); err != nil {
			return err
		}
	}
	return nil
}

// repeat implements f{lo,hi}: a chain of hi copies whose copies past the
// lo-th may be skipped.
func (b *builder) repeat(f *fragment, lo, hi int) error {
	if hi == 0 {
		*f = *emptyFragment()
		return nil
	}
	if lo == 0 {
		f.start().accepting = true
	}
	if hi == 1 {
		return nil
	}
	if err := b.checkRepeat("repetition", hi, f); err != nil {
		return err
	}

	copies := make([]*fragment, hi-1)
	for i := range copies {
		copies[i] = f.clone()
	}
	if !f.start().accepting {
		for i := lo - 1; i < hi-1; i++ {
			copies[i].start().accepting = true
		}
	}
	for _, c := range copies {
		if err := b.concat(f, c); err != nil {
			return err
		}
	}
	return nil
}

// interleave builds L(RL)*: one or more matches of f separated by matches
// of other.
func (b *builder) interleave(f, other *fragment) error {
	if err := b.check("interleave", 2*f.size()+other.size()); err != nil {
		return err
	}
	if err := b.checkEdges("interleave", 2*f.edges+other.edges); err != nil {
		return err
	}
	if err := b.concat(other, f.clone()); err != nil {
		return err
	}
	if err := b.star(other); err != nil {
		return err
	}
	return b.concat(f, other)
}

// finish freezes f into an NFA.
func finish(f *fragment, p *syntax.Pattern) *NFA {
	n := &NFA{
		states:  make([]State, len(f.states)),
		pattern: p,
	}
	for i, s := range f.states {
		st := &n.states[i]
		st.id = StateID(conv.IntToUint32(i))
		st.accepting = s.accepting
		st.marker = s.marker
		for c, dsts := range s.edges {
			for _, d := range dsts {
				st.transitions = append(st.transitions, Transition{
					Byte:   c,
					Next:   StateID(conv.IntToUint32(d)),
					Tokens: s.tokens[d],
				})
			}
		}
		sort.Slice(st.transitions, func(a, b int) bool {
			ta, tb := st.transitions[a], st.transitions[b]
			if ta.Byte != tb.Byte {
				return ta.Byte < tb.Byte
			}
			return ta.Next < tb.Next
		})
	}
	return n
}
