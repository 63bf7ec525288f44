package syntax

import (
	"sort"
	"strconv"
)

// maxRepeat bounds repetition counts; larger counts could never compile
// within the automaton state ceiling anyway.
const maxRepeat = 100000

// Group is an opaque handle for a capturing group. Handles compare by
// identity. A handle lives on its group node, so it stays valid for every
// Pattern built from that node by combinators and for any automaton
// compiled from such a Pattern.
type Group struct {
	index int // ordinal in the issuing pattern, 0 for named groups
	name  string
}

// Index returns the group's ordinal in the pattern that issued it, or 0 for
// a named group. Combined patterns may number it differently; see
// Pattern.Index.
func (g *Group) Index() int { return g.index }

// Name returns the group's name, or "" for a numbered group.
func (g *Group) Name() string { return g.name }

// String returns "#n" for numbered groups and the name for named ones.
func (g *Group) String() string {
	if g.name != "" {
		return g.name
	}
	return "#" + strconv.Itoa(g.index)
}

// Pattern is a parsed pattern: a tree plus its group registries.
//
// The numbered registry lists groups in order of their opening parenthesis.
// Named groups live only in the named registry and take no ordinal.
type Pattern struct {
	root     *Node
	numbered []*Group
	ordinal  map[*Group]int
	named    map[string]*Group
}

// Root returns the root node of the pattern tree.
func (p *Pattern) Root() *Node { return p.root }

// String re-serializes the pattern.
func (p *Pattern) String() string { return p.root.String() }

// NumGroups returns the number of numbered groups.
func (p *Pattern) NumGroups() int { return len(p.numbered) }

// Groups returns the numbered groups in ordinal order.
func (p *Pattern) Groups() []*Group {
	out := make([]*Group, len(p.numbered))
	copy(out, p.numbered)
	return out
}

// GroupNames returns the names of all named groups, sorted.
func (p *Pattern) GroupNames() []string {
	names := make([]string, 0, len(p.named))
	for name := range p.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Group returns the numbered group with the given 1-based ordinal.
func (p *Pattern) Group(index int) (*Group, error) {
	if index < 1 || index > len(p.numbered) {
		return nil, &GroupError{Index: index}
	}
	return p.numbered[index-1], nil
}

// GroupByName returns the named group called name.
func (p *Pattern) GroupByName(name string) (*Group, error) {
	if g, ok := p.named[name]; ok {
		return g, nil
	}
	return nil, &GroupError{Name: name}
}

// Index returns the ordinal of numbered group g within p, or 0 when g is
// named or not part of p.
func (p *Pattern) Index(g *Group) int {
	return p.ordinal[g]
}

// Owns reports whether g names a group of p.
func (p *Pattern) Owns(g *Group) bool {
	if g == nil {
		return false
	}
	if g.name != "" {
		return p.named[g.name] == g
	}
	_, ok := p.ordinal[g]
	return ok
}

// SubPattern returns the body of group g as a standalone Pattern. Groups
// nested in the body keep their handles.
func (p *Pattern) SubPattern(g *Group) (*Pattern, error) {
	if g == nil {
		return nil, &GroupError{Nil: true}
	}
	body := p.groupNode(g)
	if !p.Owns(g) || body == nil {
		return nil, &GroupError{Index: g.Index(), Name: g.Name()}
	}
	return fromNode(body.sub)
}

// groupNode finds the tree node that carries g.
func (p *Pattern) groupNode(g *Group) *Node {
	var found *Node
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		if n == nil {
			return false
		}
		if n.group == g {
			found = n
			return true
		}
		return walk(n.sub) || walk(n.sub2)
	}
	walk(p.root)
	return found
}

// register appends g to p's registries unless p already holds it.
func (p *Pattern) register(g *Group) error {
	if g.name != "" {
		if have, ok := p.named[g.name]; ok {
			if have == g {
				return nil
			}
			return combineError(ErrDuplicateGroupName, g.name)
		}
		if p.named == nil {
			p.named = make(map[string]*Group)
		}
		p.named[g.name] = g
		return nil
	}
	if _, ok := p.ordinal[g]; ok {
		return nil
	}
	if p.ordinal == nil {
		p.ordinal = make(map[*Group]int)
	}
	p.numbered = append(p.numbered, g)
	p.ordinal[g] = len(p.numbered)
	return nil
}

// fromNode builds a Pattern for an existing tree from the handles on its
// group nodes, in preorder.
func fromNode(root *Node) (*Pattern, error) {
	p := &Pattern{root: root}
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if n == nil {
			return nil
		}
		if n.group != nil {
			if err := p.register(n.group); err != nil {
				return err
			}
		}
		if err := walk(n.sub); err != nil {
			return err
		}
		return walk(n.sub2)
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return p, nil
}

// derive builds a Pattern over root whose registries are the ordered union
// of the inputs' registries, preceded by the group of root itself if it has
// one. Handles are carried over, not reissued.
func derive(root *Node, parts ...*Pattern) (*Pattern, error) {
	p := &Pattern{root: root}
	if root.group != nil {
		if err := p.register(root.group); err != nil {
			return nil, err
		}
	}
	for _, part := range parts {
		for _, g := range part.numbered {
			if err := p.register(g); err != nil {
				return nil, err
			}
		}
		for _, name := range part.GroupNames() {
			if err := p.register(part.named[name]); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// renumber makes every numbered handle of p report its ordinal in p. Only
// valid while p's handles have not been handed out.
func (p *Pattern) renumber() {
	for i, g := range p.numbered {
		g.index = i + 1
	}
}

func leaf(n *Node) *Pattern {
	return &Pattern{root: n}
}

// Nothing returns the pattern that matches no string.
func Nothing() *Pattern { return leaf(&Node{op: OpNothing}) }

// Empty returns the pattern that matches only the empty string.
func Empty() *Pattern { return leaf(&Node{op: OpEmpty}) }

// Char returns the pattern matching the single byte c.
func Char(c byte) *Pattern { return leaf(&Node{op: OpChar, c: c}) }

// Dot returns the pattern matching any byte in 0..127.
func Dot() *Pattern { return leaf(&Node{op: OpDot}) }

// DigitClass returns \d.
func DigitClass() *Pattern { return leaf(&Node{op: OpDigitClass}) }

// SpaceClass returns \s.
func SpaceClass() *Pattern { return leaf(&Node{op: OpSpaceClass}) }

// WordClass returns \w.
func WordClass() *Pattern { return leaf(&Node{op: OpWordClass}) }

// Literal returns the concatenation of the bytes of s, or Empty for "".
func Literal(s string) *Pattern {
	if s == "" {
		return Empty()
	}
	root := &Node{op: OpChar, c: s[0]}
	for i := 1; i < len(s); i++ {
		root = &Node{op: OpConcat, sub: root, sub2: &Node{op: OpChar, c: s[i]}}
	}
	return leaf(root)
}

func unary(op Op, p *Pattern) *Pattern {
	// Unary wrappers keep the child's registries unchanged.
	q, _ := derive(&Node{op: op, sub: p.root}, p)
	return q
}

// NumberedGroup wraps p in a capturing group. The new group takes ordinal 1
// and p's groups shift up by one.
func NumberedGroup(p *Pattern) *Pattern {
	g := &Group{index: 1}
	q, _ := derive(&Node{op: OpNumberedGroup, sub: p.root, group: g}, p)
	return q
}

// NamedGroup wraps p in a capturing group called name.
func NamedGroup(p *Pattern, name string) (*Pattern, error) {
	if !validGroupName(name) {
		return nil, combineError(ErrBadGroupName, name)
	}
	g := &Group{name: name}
	return derive(&Node{op: OpNamedGroup, name: name, sub: p.root, group: g}, p)
}

// NonCapturingGroup wraps p in (?:...).
func NonCapturingGroup(p *Pattern) *Pattern { return unary(OpNonCapturingGroup, p) }

// QMark returns p?.
func QMark(p *Pattern) *Pattern { return unary(OpQMark, p) }

// Star returns p*.
func Star(p *Pattern) *Pattern { return unary(OpStar, p) }

// Plus returns p+.
func Plus(p *Pattern) *Pattern { return unary(OpPlus, p) }

// Power returns p{n}.
func Power(p *Pattern, n int) (*Pattern, error) {
	if n < 0 || n > maxRepeat {
		return nil, combineError(ErrBadRangeBounds, strconv.Itoa(n))
	}
	return derive(&Node{op: OpPower, min: n, max: n, sub: p.root}, p)
}

// AtLeast returns p{n,}.
func AtLeast(p *Pattern, n int) (*Pattern, error) {
	if n < 0 || n > maxRepeat {
		return nil, combineError(ErrBadRangeBounds, strconv.Itoa(n))
	}
	return derive(&Node{op: OpAtLeast, min: n, sub: p.root}, p)
}

// AtMost returns p{,n}.
func AtMost(p *Pattern, n int) (*Pattern, error) {
	if n < 0 || n > maxRepeat {
		return nil, combineError(ErrBadRangeBounds, strconv.Itoa(n))
	}
	return derive(&Node{op: OpAtMost, max: n, sub: p.root}, p)
}

// Range returns p{lo,hi}.
func Range(p *Pattern, lo, hi int) (*Pattern, error) {
	if lo < 0 || hi > maxRepeat || lo > hi {
		return nil, combineError(ErrBadRangeBounds, strconv.Itoa(lo)+","+strconv.Itoa(hi))
	}
	return derive(&Node{op: OpRange, min: lo, max: hi, sub: p.root}, p)
}

func binary(op Op, a, b *Pattern) (*Pattern, error) {
	return derive(&Node{op: op, sub: a.root, sub2: b.root}, a, b)
}

// Concat returns ab.
func Concat(a, b *Pattern) (*Pattern, error) { return binary(OpConcat, a, b) }

// Union returns a|b.
func Union(a, b *Pattern) (*Pattern, error) { return binary(OpUnion, a, b) }

// Interleave returns a%b: one or more matches of a separated by matches of b.
func Interleave(a, b *Pattern) (*Pattern, error) { return binary(OpInterleave, a, b) }

func validGroupName(name string) bool {
	if name == "" || !isNameStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return false
		}
	}
	return true
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isNameStart(c) || ('0' <= c && c <= '9')
}
