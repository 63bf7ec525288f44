package syntax

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of syntax error.
//
// An ErrorCode is itself an error, so callers can test for a kind with
// errors.Is(err, syntax.ErrEmptyGroup) without unpacking *Error.
type ErrorCode string

// Error implements the error interface.
func (c ErrorCode) Error() string {
	return string(c)
}

// Parse and construction error codes.
const (
	ErrEmptyGroup            ErrorCode = "empty group"
	ErrUnmatchedOpenParen    ErrorCode = "missing closing parenthesis"
	ErrUnmatchedCloseParen   ErrorCode = "unexpected closing parenthesis"
	ErrUnmatchedCloseBrace   ErrorCode = "unexpected closing brace"
	ErrUnclosedRange         ErrorCode = "unclosed repetition range"
	ErrBadRangeBounds        ErrorCode = "invalid repetition bounds"
	ErrInvalidEscape         ErrorCode = "invalid escape sequence"
	ErrPrematureEndOfInput   ErrorCode = "premature end of pattern"
	ErrBadGroupName          ErrorCode = "invalid group name"
	ErrUnterminatedGroupName ErrorCode = "unterminated group name"
	ErrUnknownGroupExtension ErrorCode = "unknown group extension"
	ErrDuplicateGroupName    ErrorCode = "duplicate group name"
	ErrTooFewOperands        ErrorCode = "missing operand"
	ErrTrailingOperand       ErrorCode = "missing operator"
)

// ErrGroupNotFound is wrapped by *GroupError when a group lookup fails.
var ErrGroupNotFound = errors.New("group not found")

// Error describes a failure to parse a pattern or to combine patterns.
//
// Pos is the byte offset in Pattern where the problem was detected, or -1
// when the error came from a combinator rather than the parser.
type Error struct {
	Code    ErrorCode
	Pattern string
	Pos     int

	// Arg carries the offending text for errors that have one,
	// e.g. the group name for ErrDuplicateGroupName.
	Arg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "pyrex: " + string(e.Code)
	if e.Arg != "" {
		msg += fmt.Sprintf(" %q", e.Arg)
	}
	if e.Pos >= 0 {
		msg += fmt.Sprintf(" at offset %d in %q", e.Pos, e.Pattern)
	}
	return msg
}

// Unwrap returns the error code.
func (e *Error) Unwrap() error {
	return e.Code
}

func combineError(code ErrorCode, arg string) *Error {
	return &Error{Code: code, Pos: -1, Arg: arg}
}

// GroupError reports a group lookup that did not resolve.
type GroupError struct {
	Index int
	Name  string
	Nil   bool // the handle itself was nil
}

// Error implements the error interface.
func (e *GroupError) Error() string {
	if e.Nil {
		return fmt.Sprintf("pyrex: %v: nil handle", ErrGroupNotFound)
	}
	if e.Name != "" {
		return fmt.Sprintf("pyrex: %v: name %q", ErrGroupNotFound, e.Name)
	}
	return fmt.Sprintf("pyrex: %v: index %d", ErrGroupNotFound, e.Index)
}

// Unwrap returns ErrGroupNotFound.
func (e *GroupError) Unwrap() error {
	return ErrGroupNotFound
}
