package nfa

import (
	"strconv"

	"github.com/coregx/pyrex/internal/conv"
	"github.com/coregx/pyrex/internal/sparse"
	"github.com/coregx/pyrex/syntax"
)

// Mode selects how a match is anchored to the text.
type Mode uint8

const (
	// FMatch requires the whole text to match.
	FMatch Mode = iota
	// LMatch requires some prefix of the text to match.
	LMatch
	// RMatch requires some suffix of the text to match.
	RMatch
	// AMatch requires some substring of the text to match.
	AMatch
)

var modeNames = [...]string{
	FMatch: "FMATCH",
	LMatch: "LMATCH",
	RMatch: "RMATCH",
	AMatch: "AMATCH",
}

// String returns the mode name, e.g. "FMATCH".
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// acceptsEarly reports whether the match may end before the end of text.
func (m Mode) acceptsEarly() bool { return m == LMatch || m == AMatch }

// restarts reports whether the match may begin after the start of text.
func (m Mode) restarts() bool { return m == RMatch || m == AMatch }

// Span is a half-open byte interval [Start, End) of the text.
type Span struct {
	Start int
	End   int
}

// PikeVM simulates an NFA over all live states in lockstep, without
// backtracking. Work per query is bounded by states × text length.
//
// Thread safety: PikeVM is immutable after creation. The convenience
// methods allocate fresh scratch per call; for pooled scratch use the
// *WithState methods with one PikeVMState per goroutine.
type PikeVM struct {
	nfa *NFA
}

// PikeVMState holds mutable per-search state for PikeVM.
// This struct should be pooled (via sync.Pool) for concurrent usage.
// Each goroutine must use its own PikeVMState instance.
type PikeVMState struct {
	// Live states before and after the current byte
	cur, next *sparse.SparseSet

	// Pawns indexed by state, valid only for members of cur/next
	curPawns, nextPawns []pawn
}

// NewPikeVM creates a new PikeVM for executing the given NFA
func NewPikeVM(n *NFA) *PikeVM {
	return &PikeVM{nfa: n}
}

// NFA returns the automaton the VM executes.
func (p *PikeVM) NFA() *NFA { return p.nfa }

// NewPikeVMState creates an empty state. It is sized lazily by the first
// search that uses it.
func NewPikeVMState() *PikeVMState {
	return &PikeVMState{}
}

// InitState sizes state for this VM's automaton. Search methods call it as
// needed, so a state may be reused across VMs.
func (p *PikeVM) InitState(state *PikeVMState) {
	n := len(p.nfa.states)
	if state.cur != nil && state.cur.Capacity() >= n {
		return
	}
	capacity := conv.IntToUint32(n)
	state.cur = sparse.NewSparseSet(capacity)
	state.next = sparse.NewSparseSet(capacity)
	state.curPawns = make([]pawn, n)
	state.nextPawns = make([]pawn, n)
}

func (s *PikeVMState) swap() {
	s.cur, s.next = s.next, s.cur
	s.curPawns, s.nextPawns = s.nextPawns, s.curPawns
}

// IsMatch reports whether text matches under mode.
func (p *PikeVM) IsMatch(text []byte, mode Mode) bool {
	return p.IsMatchWithState(text, mode, NewPikeVMState())
}

// IsMatchWithState is IsMatch using caller-provided scratch.
func (p *PikeVM) IsMatchWithState(text []byte, mode Mode, state *PikeVMState) bool {
	states := p.nfa.states
	start := &states[0]
	if len(text) == 0 {
		return start.accepting
	}
	if start.accepting && mode != FMatch {
		return true
	}

	p.InitState(state)
	state.cur.Clear()
	state.cur.Insert(0)
	early, restart := mode.acceptsEarly(), mode.restarts()

	for i, c := range text {
		state.next.Clear()
		for _, id := range state.cur.Values() {
			for _, t := range states[id].On(c) {
				state.next.Insert(uint32(t.Next))
			}
		}
		state.swap()

		if early || i == len(text)-1 {
			for _, id := range state.cur.Values() {
				if states[id].accepting {
					return true
				}
			}
		}
		if restart {
			state.cur.Insert(0)
		} else if state.cur.IsEmpty() {
			return false
		}
	}
	return false
}

// Submatches returns the spans group g can cover when text matches under
// mode. The boolean is false when text does not match; a match in which g
// never closes yields an empty, non-nil result.
//
// Spans are gathered at every point where the match may stop: each prefix
// position for LMatch and AMatch, the end of text for FMatch and RMatch.
// The result is sorted by start, then end, without duplicates.
func (p *PikeVM) Submatches(text []byte, mode Mode, g *syntax.Group) ([]Span, bool) {
	return p.SubmatchesWithState(text, mode, g, NewPikeVMState())
}

// SubmatchesWithState is Submatches using caller-provided scratch.
func (p *PikeVM) SubmatchesWithState(text []byte, mode Mode, g *syntax.Group, state *PikeVMState) ([]Span, bool) {
	states := p.nfa.states
	p.InitState(state)

	result := []Span{}
	accepted := false
	collect := func(pos int) {
		for _, id := range state.cur.Values() {
			st := &states[id]
			if !st.accepting {
				continue
			}
			accepted = true
			w := state.curPawns[id].apply(st.marker, g, pos)
			result = unionSpans(result, w.spans)
		}
	}

	state.cur.Clear()
	state.cur.Insert(0)
	state.curPawns[0] = pawn{}
	early, restart := mode.acceptsEarly(), mode.restarts()

	if early || len(text) == 0 {
		collect(0)
	}
	for i, c := range text {
		state.next.Clear()
		for _, id := range state.cur.Values() {
			w := state.curPawns[id]
			for _, t := range states[id].On(c) {
				moved := w.apply(t.Tokens, g, i)
				if state.next.Insert(uint32(t.Next)) {
					state.nextPawns[t.Next] = moved
				} else {
					state.nextPawns[t.Next] = state.nextPawns[t.Next].merge(moved)
				}
			}
		}
		if restart && state.next.Insert(0) {
			state.nextPawns[0] = pawn{}
		}
		state.swap()

		if early || i == len(text)-1 {
			collect(i + 1)
		}
		if state.cur.IsEmpty() {
			break
		}
	}

	if !accepted {
		return nil, false
	}
	return result, true
}

// pawn is the capture bookkeeping carried by one live state: positions
// where the target group is open, and the spans it has closed so far.
// Slices are never modified in place, so pawns may share them.
type pawn struct {
	open  []int
	spans []Span
}

// apply replays the tokens for g at pos. ENTER opens g at pos; LEAVE
// closes every open position at pos.
func (w pawn) apply(tokens []Token, g *syntax.Group, pos int) pawn {
	for _, t := range tokens {
		if t.Group != g {
			continue
		}
		if t.Kind == Enter {
			w.open = unionInts(w.open, []int{pos})
			continue
		}
		if len(w.open) == 0 {
			continue
		}
		closed := make([]Span, len(w.open))
		for i, s := range w.open {
			closed[i] = Span{Start: s, End: pos}
		}
		w.spans = unionSpans(w.spans, closed)
		w.open = nil
	}
	return w
}

func (w pawn) merge(o pawn) pawn {
	return pawn{
		open:  unionInts(w.open, o.open),
		spans: unionSpans(w.spans, o.spans),
	}
}

// unionInts merges two sorted, duplicate-free slices into a new one.
func unionInts(a, b []int) []int {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func spanLess(a, b Span) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

// unionSpans merges two sorted, duplicate-free span slices into a new one.
func unionSpans(a, b []Span) []Span {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	out := make([]Span, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case spanLess(a[i], b[j]):
			out = append(out, a[i])
			i++
		case spanLess(b[j], a[i]):
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
