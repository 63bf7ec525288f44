package nfa

import (
	"fmt"

	"github.com/coregx/pyrex/syntax"
)

// DefaultMaxStates is the default ceiling on non-start automaton states.
const DefaultMaxStates = 100000

// DefaultMaxTransitions is the default ceiling on automaton transitions.
const DefaultMaxTransitions = 4_000_000

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxStates bounds the number of states, excluding the start state.
	// Compilation fails with ErrPatternTooLarge before any operation that
	// would exceed it.
	// Default: 100000
	MaxStates int

	// MaxTransitions bounds the number of transitions. Nullable repetitions
	// link every exit to every later copy, so transitions can outgrow states
	// quadratically; exceeding this also fails with ErrPatternTooLarge.
	// Default: 4000000
	MaxTransitions int

	// MaxDepth limits recursion over the pattern tree to prevent stack overflow
	// Default: 1000
	MaxDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxStates:      DefaultMaxStates,
		MaxTransitions: DefaultMaxTransitions,
		MaxDepth:       1000,
	}
}

// Validate checks the configuration for out-of-range values.
func (c CompilerConfig) Validate() error {
	if c.MaxStates < 1 {
		return fmt.Errorf("%w: MaxStates must be positive, got %d", ErrInvalidConfig, c.MaxStates)
	}
	if c.MaxTransitions < 1 {
		return fmt.Errorf("%w: MaxTransitions must be positive, got %d", ErrInvalidConfig, c.MaxTransitions)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: MaxDepth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// Compiler compiles pattern trees into automata
type Compiler struct {
	config CompilerConfig
}

// NewCompiler creates a new NFA compiler with the given configuration.
// Zero fields take their defaults.
func NewCompiler(config CompilerConfig) *Compiler {
	def := DefaultCompilerConfig()
	if config.MaxStates == 0 {
		config.MaxStates = def.MaxStates
	}
	if config.MaxTransitions == 0 {
		config.MaxTransitions = def.MaxTransitions
	}
	if config.MaxDepth == 0 {
		config.MaxDepth = def.MaxDepth
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile builds the automaton for p with the default configuration.
func Compile(p *syntax.Pattern) (*NFA, error) {
	return NewDefaultCompiler().Compile(p)
}

// Compile builds the automaton for p. Tokens in the result refer to the
// group handles carried by p's group nodes.
func (c *Compiler) Compile(p *syntax.Pattern) (*NFA, error) {
	if err := c.config.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &CompileError{Err: fmt.Errorf("%w: nil pattern", ErrInvalidConfig)}
	}

	w := &walker{
		b:        &builder{limit: c.config.MaxStates, edgeLimit: c.config.MaxTransitions},
		maxDepth: c.config.MaxDepth,
	}
	f, err := w.compile(p.Root(), 0)
	if err != nil {
		return nil, &CompileError{Pattern: p.String(), Err: err}
	}
	return finish(f, p), nil
}

// walker compiles a tree bottom-up. Depth counts real nesting only: the
// operands of a chain of the same binary operator share one level, so a
// long literal or alternation does not look deep.
type walker struct {
	b        *builder
	maxDepth int
}

func (w *walker) compile(n *syntax.Node, depth int) (*fragment, error) {
	if depth > w.maxDepth {
		return nil, fmt.Errorf("%w: nesting exceeds %d", ErrTooComplex, w.maxDepth)
	}

	switch n.Op() {
	case syntax.OpNothing:
		return nothingFragment(), nil
	case syntax.OpEmpty:
		return emptyFragment(), nil
	case syntax.OpChar:
		return w.class([]byte{n.Byte()})
	case syntax.OpDot:
		return w.class(dotBytes)
	case syntax.OpDigitClass:
		return w.class(digitBytes)
	case syntax.OpSpaceClass:
		return w.class(spaceBytes)
	case syntax.OpWordClass:
		return w.class(wordBytes)

	case syntax.OpNumberedGroup, syntax.OpNamedGroup:
		g := n.Group()
		if g == nil {
			return nil, fmt.Errorf("%v node has no group handle", n.Op())
		}
		f, err := w.compile(n.Sub(), depth+1)
		if err != nil {
			return nil, err
		}
		w.b.group(f, g)
		return f, nil

	case syntax.OpNonCapturingGroup:
		return w.compile(n.Sub(), depth+1)

	case syntax.OpConcat, syntax.OpUnion, syntax.OpInterleave:
		return w.compileChain(n, depth)

	default:
		return w.compileRepeat(n, depth)
	}
}

func (w *walker) class(set []byte) (*fragment, error) {
	if err := w.b.checkEdges("class", len(set)); err != nil {
		return nil, err
	}
	return classFragment(set), nil
}

// operands returns the operands of the left-leaning chain of n.Op() rooted
// at n, leftmost first.
func operands(n *syntax.Node) []*syntax.Node {
	op := n.Op()
	var rights []*syntax.Node
	for n.Op() == op {
		rights = append(rights, n.Right())
		n = n.Left()
	}
	out := make([]*syntax.Node, 0, len(rights)+1)
	out = append(out, n)
	for i := len(rights) - 1; i >= 0; i-- {
		out = append(out, rights[i])
	}
	return out
}

// compileChain folds a chain of one binary operator from the left, in the
// order the parser associated it.
func (w *walker) compileChain(n *syntax.Node, depth int) (*fragment, error) {
	ops := operands(n)
	acc, err := w.compile(ops[0], depth+1)
	if err != nil {
		return nil, err
	}
	for _, sub := range ops[1:] {
		right, err := w.compile(sub, depth+1)
		if err != nil {
			return nil, err
		}
		switch n.Op() {
		case syntax.OpConcat:
			err = w.b.concat(acc, right)
		case syntax.OpUnion:
			err = w.b.union(acc, right)
		default:
			err = w.b.interleave(acc, right)
		}
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (w *walker) compileRepeat(n *syntax.Node, depth int) (*fragment, error) {
	f, err := w.compile(n.Sub(), depth+1)
	if err != nil {
		return nil, err
	}

	switch n.Op() {
	case syntax.OpQMark:
		w.b.qmark(f)
	case syntax.OpStar:
		err = w.b.star(f)
	case syntax.OpPlus:
		err = w.b.plus(f)
	case syntax.OpPower:
		err = w.b.repeat(f, n.Min(), n.Min())
	case syntax.OpAtLeast:
		err = w.b.atLeast(f, n.Min())
	case syntax.OpAtMost:
		err = w.b.repeat(f, 0, n.Max())
	case syntax.OpRange:
		err = w.b.repeat(f, n.Min(), n.Max())
	default:
		return nil, fmt.Errorf("unsupported operation %v", n.Op())
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
