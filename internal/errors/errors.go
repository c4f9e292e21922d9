// Package errors formats the diagnostics the parser and checker produce.
// Grounded on the teacher's internal/errors package and its accumulate-
// then-print shape (FormatErrors), but without position/caret rendering:
// spec §9 states plainly that JAL's source "carries no location info in
// errors today," so unlike the teacher's CompilerError there is no
// lexer.Position here, just a message.
package errors

import (
	"fmt"
	"strings"
)

// ParseError is a single fatal parser diagnostic (spec §4.1: "on
// unexpected token the parser aborts with a message naming the expected
// and actual token type").
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// NewUnexpectedToken builds the standard "expected X, got Y" parse error.
func NewUnexpectedToken(expected, actual string) *ParseError {
	return &ParseError{Message: fmt.Sprintf("expected next token to be %s, got %s instead", expected, actual)}
}

// CheckError is one entry in the TypeChecker's accumulated error list
// (spec §4.2: "Errors are accumulated into an ordered list").
type CheckError struct {
	Message string
}

func (e *CheckError) Error() string { return e.Message }

// FormatErrors renders an ordered list of checker errors the way the CLI
// prints them: all of them, numbered (a single error is returned as its
// bare message), before exiting non-zero — mirroring
// the teacher's errors.FormatErrors for multiple CompilerErrors, minus the
// source-context block neither lexer nor checker can produce here.
func FormatErrors(errs []*CheckError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Message
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("type checking failed with %d error(s):\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[%d/%d] %s\n", i+1, len(errs), e.Message))
	}
	return sb.String()
}

// RuntimeError is a fatal error raised during evaluation (spec §7).
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }
