package nfa

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteDOT writes the automaton in Graphviz DOT format. Transitions between
// the same pair of states are drawn as one edge labelled with their byte
// ranges; tokens follow the bytes after a slash. Accepting states are double
// circles, labelled with their acceptance tokens if any.
func (n *NFA) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph NFA {")
	fmt.Fprintln(bw, "    rankdir=LR;")

	for i := range n.states {
		s := &n.states[i]
		shape := "circle"
		if s.accepting {
			shape = "doublecircle"
		}
		label := fmt.Sprintf("%d", s.id)
		if len(s.marker) > 0 {
			label += "\\n" + n.tokenLabel(s.marker)
		}
		fmt.Fprintf(bw, "    s%d [shape=%s, label=\"%s\"];\n", s.id, shape, label)

		for _, e := range groupEdges(s.transitions) {
			label := byteRanges(e.bytes)
			if len(e.tokens) > 0 {
				label += " / " + n.tokenLabel(e.tokens)
			}
			fmt.Fprintf(bw, "    s%d -> s%d [label=\"%s\"];\n", s.id, e.next, label)
		}
	}
	fmt.Fprintf(bw, "    _start [shape=point]; _start -> s%d;\n", n.Start())
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

type dotEdge struct {
	next   StateID
	bytes  []byte
	tokens []Token
}

// groupEdges collects transitions by destination, in order of first
// appearance. Bytes come out ascending because transitions are sorted.
func groupEdges(ts []Transition) []dotEdge {
	var edges []dotEdge
	index := make(map[StateID]int)
	for _, t := range ts {
		i, ok := index[t.Next]
		if !ok {
			i = len(edges)
			index[t.Next] = i
			edges = append(edges, dotEdge{next: t.Next, tokens: t.Tokens})
		}
		edges[i].bytes = append(edges[i].bytes, t.Byte)
	}
	return edges
}

// byteRanges renders ascending bytes compactly, e.g. "0-9,_".
func byteRanges(bs []byte) string {
	var b strings.Builder
	for i := 0; i < len(bs); {
		j := i
		for j+1 < len(bs) && bs[j+1] == bs[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(dotByte(bs[i]))
		if j > i {
			b.WriteByte('-')
			b.WriteString(dotByte(bs[j]))
		}
		i = j + 1
	}
	return b.String()
}

func dotByte(c byte) string {
	switch {
	case c == '"':
		return `\"`
	case c == '\\':
		return `\\\\`
	case c == ',' || c == '-':
		return `\\` + string(rune(c))
	case c > ' ' && c < 0x7f:
		return string(rune(c))
	default:
		return fmt.Sprintf(`\\x%02X`, c)
	}
}

