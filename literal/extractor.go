package literal

import (
	"github.com/coregx/pyrex/internal/conv"
	"github.com/coregx/pyrex/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// Example:
//
//	config := literal.ExtractorConfig{
//	    MaxLiterals:   64,
//	    MaxLiteralLen: 64,
//	    MaxClassSize:  10,
//	}
//	extractor := literal.New(config)
type ExtractorConfig struct {
	// MaxLiterals bounds the size of any intermediate set. Alternations
	// and cross products beyond it degrade to inexact or infinite sets.
	// Default: 64.
	MaxLiterals int

	// MaxLiteralLen bounds literal length; longer literals are cut and
	// marked inexact.
	// Default: 64.
	MaxLiteralLen int

	// MaxClassSize is the largest class expanded into one literal per byte.
	// \d (10 bytes) and \s (6 bytes) fit the default; \w and . do not.
	// Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor computes prefix literal sets for patterns.
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor. Zero limits take their defaults.
func New(config ExtractorConfig) *Extractor {
	def := DefaultConfig()
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = def.MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = def.MaxLiteralLen
	}
	if config.MaxClassSize <= 0 {
		config.MaxClassSize = def.MaxClassSize
	}
	return &Extractor{config: config}
}

// ExtractPrefixes returns literals such that every string matched by p
// begins with one of them.
//
// Examples:
//
//	`hello`         → ["hello"]
//	`foo|bar`       → ["bar" "foo"]
//	`\d-x`          → ["0-x" "1-x" ... "9-x"]
//	`ab+c`          → ["ab"…]
//	`a*b`           → [""…]
//	`\w+`           → inf
//	`\#`            → []
func (e *Extractor) ExtractPrefixes(p *syntax.Pattern) *Seq {
	seq := e.prefixes(p.Root())
	seq.Dedup()
	return seq
}

func (e *Extractor) prefixes(n *syntax.Node) *Seq {
	switch n.Op() {
	case syntax.OpNothing:
		return NewSeq()
	case syntax.OpEmpty:
		return NewSeq(NewLiteral([]byte{}, true))
	case syntax.OpChar:
		return NewSeq(NewLiteral([]byte{n.Byte()}, true))
	case syntax.OpDot:
		return e.class(128, nil)
	case syntax.OpDigitClass:
		return e.class(10, func(c byte) bool { return c >= '0' && c <= '9' })
	case syntax.OpSpaceClass:
		return e.class(6, func(c byte) bool {
			return c == ' ' || c == '\n' || c == '\t' || c == '\r' || c == '\f' || c == '\v'
		})
	case syntax.OpWordClass:
		return e.class(63, nil)

	case syntax.OpNumberedGroup, syntax.OpNamedGroup, syntax.OpNonCapturingGroup:
		return e.prefixes(n.Sub())

	case syntax.OpQMark:
		seq := e.prefixes(n.Sub())
		return e.union(seq, NewSeq(NewLiteral([]byte{}, true)))
	case syntax.OpStar:
		return NewSeq(NewLiteral([]byte{}, false))
	case syntax.OpPlus:
		return inexact(e.prefixes(n.Sub()))
	case syntax.OpPower:
		if n.Min() == 0 {
			return NewSeq(NewLiteral([]byte{}, true))
		}
		return inexact(e.prefixes(n.Sub()))
	case syntax.OpAtLeast, syntax.OpAtMost, syntax.OpRange:
		if n.Min() == 0 {
			return NewSeq(NewLiteral([]byte{}, false))
		}
		return inexact(e.prefixes(n.Sub()))

	case syntax.OpConcat:
		return e.concat(e.prefixes(n.Left()), n.Right())
	case syntax.OpUnion:
		return e.union(e.prefixes(n.Left()), e.prefixes(n.Right()))
	case syntax.OpInterleave:
		return inexact(e.prefixes(n.Left()))
	}
	return Infinite()
}

// class expands a byte class of the given size, or gives up if it is too
// large. member is only consulted for classes small enough to expand.
func (e *Extractor) class(size int, member func(byte) bool) *Seq {
	if size > e.config.MaxClassSize || member == nil {
		return Infinite()
	}
	lits := make([]Literal, 0, size)
	for c := 0; c < 128; c++ {
		if b := conv.IntToByte(c); member(b) {
			lits = append(lits, NewLiteral([]byte{b}, true))
		}
	}
	return NewSeq(lits...)
}

// concat extends every complete literal of left with the prefixes of right.
// Right is only extracted when some literal can be extended.
func (e *Extractor) concat(left *Seq, right *syntax.Node) *Seq {
	if !left.IsFinite() {
		return left
	}
	extend := false
	for _, lit := range left.literals {
		if lit.Complete {
			extend = true
			break
		}
	}
	if !extend {
		return left
	}

	rs := e.prefixes(right)
	if !rs.IsFinite() || left.Len()*rs.Len() > e.config.MaxLiterals {
		return inexact(left)
	}

	out := make([]Literal, 0, left.Len()*rs.Len())
	for _, l := range left.literals {
		if !l.Complete {
			out = append(out, l)
			continue
		}
		for _, r := range rs.literals {
			joined := make([]byte, 0, len(l.Bytes)+len(r.Bytes))
			joined = append(append(joined, l.Bytes...), r.Bytes...)
			complete := r.Complete
			if len(joined) > e.config.MaxLiteralLen {
				joined = joined[:e.config.MaxLiteralLen]
				complete = false
			}
			out = append(out, NewLiteral(joined, complete))
		}
	}
	return NewSeq(out...)
}

func (e *Extractor) union(a, b *Seq) *Seq {
	if !a.IsFinite() || !b.IsFinite() || a.Len()+b.Len() > e.config.MaxLiterals {
		return Infinite()
	}
	lits := make([]Literal, 0, a.Len()+b.Len())
	lits = append(append(lits, a.literals...), b.literals...)
	return NewSeq(lits...)
}

func inexact(s *Seq) *Seq {
	s.MakeInexact()
	return s
}
