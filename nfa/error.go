// Package nfa compiles pattern trees into nondeterministic automata that
// carry capture-group bookkeeping, and simulates them against text.
//
// The automaton has no epsilon transitions. Each state may instead carry an
// acceptance marker meaning "matching may stop here". Group boundaries are
// recorded as ENTER/LEAVE tokens attached to transitions and to acceptance
// markers, and the PikeVM replays them during simulation to recover
// submatches.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrPatternTooLarge indicates the automaton would exceed the configured
	// state ceiling
	ErrPatternTooLarge = errors.New("pattern too large")

	// ErrTooComplex indicates the pattern tree nests deeper than the
	// compiler allows
	ErrTooComplex = errors.New("pattern too complex")

	// ErrInvalidConfig indicates invalid configuration was provided
	ErrInvalidConfig = errors.New("invalid NFA configuration")
)

// CompileError wraps compilation errors with additional context
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// sizeError reports the state or transition count an operation would have
// produced.
type sizeError struct {
	op    string
	unit  string // "states" when empty
	want  int
	limit int
}

func (e *sizeError) Error() string {
	unit := e.unit
	if unit == "" {
		unit = "states"
	}
	return fmt.Sprintf("%s needs %d %s, limit is %d", e.op, e.want, unit, e.limit)
}

func (e *sizeError) Unwrap() error {
	return ErrPatternTooLarge
}
