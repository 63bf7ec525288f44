package nfa

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/pyrex/syntax"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// TokenKind says whether a token opens or closes a group.
type TokenKind uint8

const (
	// Enter marks the start of a group.
	Enter TokenKind = iota
	// Leave marks the end of a group.
	Leave
)

// String returns "ENTER" or "LEAVE".
func (k TokenKind) String() string {
	if k == Enter {
		return "ENTER"
	}
	return "LEAVE"
}

// Token is a group-boundary event fired when a transition is taken or when
// matching stops at an accepting state.
type Token struct {
	Group *syntax.Group
	Kind  TokenKind
}

// String renders the token as e.g. "ENTER(#1)".
func (t Token) String() string {
	return t.Kind.String() + "(" + t.Group.String() + ")"
}

// Transition consumes Byte and moves to Next, firing Tokens in order.
type Transition struct {
	Byte   byte
	Next   StateID
	Tokens []Token
}

// State is one automaton state.
type State struct {
	id          StateID
	transitions []Transition // sorted by (Byte, Next)
	accepting   bool
	marker      []Token // tokens fired when matching stops here
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Transitions returns all outgoing transitions, sorted by byte then target.
func (s *State) Transitions() []Transition { return s.transitions }

// IsAccepting reports whether matching may stop at this state.
func (s *State) IsAccepting() bool { return s.accepting }

// AcceptTokens returns the tokens fired when matching stops at this state.
func (s *State) AcceptTokens() []Token { return s.marker }

// On returns the transitions taken on byte b.
func (s *State) On(b byte) []Transition {
	ts := s.transitions
	lo := sort.Search(len(ts), func(i int) bool { return ts[i].Byte >= b })
	hi := lo
	for hi < len(ts) && ts[hi].Byte == b {
		hi++
	}
	return ts[lo:hi]
}

// NFA is a compiled automaton. It is immutable after compilation and safe
// for concurrent use.
//
// State 0 is the start state. No transition leads back into it, which lets
// unanchored simulation restart a match by re-adding it to the live set.
type NFA struct {
	states  []State
	pattern *syntax.Pattern
}

// Start returns the start state ID.
func (n *NFA) Start() StateID { return 0 }

// States returns the number of states, including the start state.
func (n *NFA) States() int { return len(n.states) }

// State returns the state with the given ID, or nil if out of range.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// Pattern returns the pattern the automaton was compiled from. Group
// handles from this pattern are the ones the automaton's tokens refer to.
func (n *NFA) Pattern() *syntax.Pattern { return n.pattern }

// Transitions returns the total number of transitions.
func (n *NFA) Transitions() int {
	total := 0
	for i := range n.states {
		total += len(n.states[i].transitions)
	}
	return total
}

// MatchesEmpty reports whether the start state accepts.
func (n *NFA) MatchesEmpty() bool { return n.states[0].accepting }

// String returns a human-readable listing of states and transitions.
func (n *NFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NFA{states=%d, transitions=%d}\n", len(n.states), n.Transitions())
	for i := range n.states {
		s := &n.states[i]
		fmt.Fprintf(&b, "  %d", s.id)
		if s.accepting {
			b.WriteString(" accept")
			if len(s.marker) > 0 {
				fmt.Fprintf(&b, " [%s]", n.tokenLabel(s.marker))
			}
		}
		b.WriteByte('\n')
		for _, t := range s.transitions {
			fmt.Fprintf(&b, "    %q -> %d", t.Byte, t.Next)
			if len(t.Tokens) > 0 {
				fmt.Fprintf(&b, " [%s]", n.tokenLabel(t.Tokens))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// tokenLabel renders tokens with numbered groups labelled by their ordinal in
// the compiled pattern, which may differ from the ordinal the handle was
// issued with.
func (n *NFA) tokenLabel(ts []Token) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		name := t.Group.String()
		if idx := n.pattern.Index(t.Group); idx > 0 {
			name = "#" + strconv.Itoa(idx)
		}
		parts[i] = t.Kind.String() + "(" + name + ")"
	}
	return strings.Join(parts, " ")
}
