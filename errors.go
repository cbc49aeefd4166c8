package main

import (
	"fmt"
	"strings"
)

// CompileError is a single diagnostic with a source position.
type CompileError struct {
	Line    int
	Col     int
	Message string
}

func (e CompileError) String() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// ErrorList accumulates diagnostics. Both the parser and the compiler record
// errors here instead of raising them as control flow.
type ErrorList struct {
	errors []CompileError
}

// Add records a diagnostic at the given position. Line 0 means no position.
func (el *ErrorList) Add(line, col int, format string, args ...interface{}) {
	el.errors = append(el.errors, CompileError{
		Line:    line,
		Col:     col,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any diagnostic has been recorded.
func (el *ErrorList) HasErrors() bool {
	return len(el.errors) > 0
}

// Count returns the number of recorded diagnostics.
func (el *ErrorList) Count() int {
	return len(el.errors)
}

// All returns the recorded diagnostics in order.
func (el *ErrorList) All() []CompileError {
	return el.errors
}

// String renders all diagnostics, one per line.
func (el *ErrorList) String() string {
	var sb strings.Builder
	for i, err := range el.errors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.String())
	}
	return sb.String()
}
