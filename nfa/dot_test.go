package nfa

import (
	"bytes"
	"strings"
	"testing"
)

func TestNFA_WriteDOT(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"ab", []string{
			"digraph NFA {",
			`s0 [shape=circle, label="0"];`,
			`s0 -> s1 [label="a"];`,
			`s1 -> s2 [label="b"];`,
			`s2 [shape=doublecircle, label="2"];`,
			"_start -> s0;",
		}},
		{`\d`, []string{`s0 -> s1 [label="0-9"];`}},
		{`\w`, []string{`s0 -> s1 [label="0-9,A-Z,_,a-z"];`}},
		{`-|"`, []string{`s0 -> s1 [label="\\-"];`, `s0 -> s2 [label="\""];`}},
		{"(a)", []string{
			`s0 -> s1 [label="a / ENTER(#1)"];`,
			`s1 [shape=doublecircle, label="1\nLEAVE(#1)"];`,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := mustCompile(t, tt.pattern)
			var buf bytes.Buffer
			if err := n.WriteDOT(&buf); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			for _, line := range tt.want {
				if !strings.Contains(out, line) {
					t.Errorf("DOT output missing %q:\n%s", line, out)
				}
			}
			if !strings.HasSuffix(out, "}\n") {
				t.Errorf("DOT output not closed:\n%s", out)
			}
		})
	}
}

func TestNFA_WriteDOTCoversEveryState(t *testing.T) {
	n := mustCompile(t, "((ab?)|ba?bb)*abb")
	var buf bytes.Buffer
	if err := n.WriteDOT(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	nodes := strings.Count(out, "[shape=")
	if nodes != n.States()+1 { // +1 for the _start point
		t.Errorf("DOT has %d nodes, want %d", nodes, n.States()+1)
	}

	pairs := 0
	for id := 0; id < n.States(); id++ {
		pairs += len(groupEdges(n.State(StateID(id)).Transitions()))
	}
	if edges := strings.Count(out, " -> "); edges != pairs+1 {
		t.Errorf("DOT has %d edges, want %d", edges, pairs+1)
	}
}
