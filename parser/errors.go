package parser

import (
	"fmt"
	"strings"
)

// Position locates a point in the user-submitted source line currently
// being parsed (§4.1 "fails ... with a byte offset into the last
// user-submitted line buffer").
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Code is a parse-error code. Codes are grouped into contiguous ranges by
// category, matching §7's "range-coded by category" taxonomy and the
// source's result_* enumeration (see original_source/src/Justina.h).
type Code int

const (
	// Incomplete-expression errors.
	ErrStatementTooLong Code = 1000 + iota
	ErrTokenNotFound
	ErrMissingLeftParenthesis
	ErrMissingRightParenthesis
)

const (
	// Token-not-allowed errors (railroad-track violations, §4.1).
	ErrSeparatorNotAllowedHere Code = 1100 + iota
	ErrOperatorNotAllowedHere
	ErrPrefixOperatorNotAllowedHere
	ErrInvalidOperator
	ErrParenthesisNotAllowedHere
	ErrReservedWordNotAllowedHere
	ErrFunctionNotAllowedHere
	ErrVariableNotAllowedHere
	ErrAlphaConstNotAllowedHere
	ErrNumConstNotAllowedHere
	ErrAssignmentNotAllowedHere
	ErrCannotChangeConstantValue
	ErrIdentifierNotAllowedHere
)

const (
	// Memory-limit errors.
	ErrProgramMemoryFull Code = 1200 + iota
	ErrImmediateMemoryFull
	ErrTooManyProgramVariables
	ErrTooManyUserVariables
	ErrTooManyFunctions
)

const (
	// Identifier-rule errors.
	ErrIdentifierAlreadyDeclared Code = 1300 + iota
	ErrIdentifierNotDeclared
	ErrIdentifierWrongScope
	ErrCannotAssignToConstant
)

const (
	// Array-rule errors.
	ErrArrayDimCountInvalid Code = 1400 + iota
	ErrArraySubscriptCountMismatch
	ErrArrayValueTypeIsFixed
)

const (
	// Command-argument-rule errors.
	ErrCommandArgTypeMismatch Code = 1500 + iota
	ErrCommandTooFewArgs
	ErrCommandTooManyArgs
)

const (
	// Block-nesting-rule errors.
	ErrBlockNotOpen Code = 1600 + iota
	ErrBlockMismatchedEnd
	ErrBlockStillOpenAtEOF
)

const (
	// eval()/trace restriction errors.
	ErrEvalNestingTooDeep Code = 1700 + iota
	ErrTraceNotAllowedHere
)

const (
	// Breakpoint/line-range errors (§4.3, §8).
	ErrBPLineRangeTooLong Code = 1800 + iota
	ErrBPLineTableMemoryFull
	ErrBPStatementIsNonExecutable
	ErrBPCannotMoveIntoBlocks
	ErrBPTooManyBreakpoints
	ErrBPNoSuchBreakpoint
)

// String renders a human-readable category name for a code, used by the
// pretty-printed error banner (§7 "User-visible failure behavior").
func (c Code) String() string {
	switch {
	case c >= 1000 && c < 1100:
		return "incomplete expression"
	case c >= 1100 && c < 1200:
		return "token not allowed here"
	case c >= 1200 && c < 1300:
		return "memory limit exceeded"
	case c >= 1300 && c < 1400:
		return "identifier rule violation"
	case c >= 1400 && c < 1500:
		return "array rule violation"
	case c >= 1500 && c < 1600:
		return "command argument rule violation"
	case c >= 1600 && c < 1700:
		return "block nesting rule violation"
	case c >= 1700 && c < 1800:
		return "eval/trace restriction"
	case c >= 1800 && c < 1900:
		return "breakpoint error"
	default:
		return "parse error"
	}
}

// Error is a parse error with position information, mirroring the shape
// the teacher repo uses for its assembler errors (position + message +
// optional source context), generalized to Justina's category/code scheme.
type Error struct {
	Pos     Position
	Code    Code
	Message string
	Context string // the source line being parsed, for the caret display
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s (%d): %s\n", e.Pos, e.Code, int(e.Code), e.Message))
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("    %s\n", e.Context))
		if e.Pos.Column > 0 {
			sb.WriteString("    " + strings.Repeat(" ", e.Pos.Column-1) + "^\n")
		}
	}
	return sb.String()
}

// NewError creates a parse error without source context.
func NewError(pos Position, code Code, message string) *Error {
	return &Error{Pos: pos, Code: code, Message: message}
}

// NewErrorWithContext creates a parse error carrying the offending source
// line, for the caret-pointer display in §7.
func NewErrorWithContext(pos Position, code Code, message, context string) *Error {
	return &Error{Pos: pos, Code: code, Message: message, Context: context}
}

// ErrorList collects multiple parse errors (and, for compatibility with
// the preprocessing pass, nothing else — Justina has no separate warning
// channel).
type ErrorList struct {
	Errors []*Error
}

// AddError appends err to the list.
func (el *ErrorList) AddError(err *Error) { el.Errors = append(el.Errors, err) }

// HasErrors reports whether any error has been recorded.
func (el *ErrorList) HasErrors() bool { return len(el.Errors) > 0 }

// Error implements the error interface over the whole list.
func (el *ErrorList) Error() string {
	var sb strings.Builder
	for _, err := range el.Errors {
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// First returns the first recorded error, or nil.
func (el *ErrorList) First() *Error {
	if len(el.Errors) == 0 {
		return nil
	}
	return el.Errors[0]
}
