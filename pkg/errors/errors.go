// Package errors provides structured error types for sankeyflow.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the pipeline, and the server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every failure of a render attempt is terminal and falls into one of three
// stage codes:
//   - DATA_LOAD: an input document is missing or cannot be decoded
//   - DIAGRAM_CONSTRUCTION: the adapted diagram has duplicate or dangling identities
//   - LAYOUT: the layout step cannot place the diagram (cycles, degenerate extent)
//
// Option and configuration problems use the INVALID_* codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDataLoad, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Pipeline stage errors
	ErrCodeDataLoad            Code = "DATA_LOAD"
	ErrCodeDiagramConstruction Code = "DIAGRAM_CONSTRUCTION"
	ErrCodeLayout              Code = "LAYOUT"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidVizType Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (and its cause) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// ConstructionError identifies the record that made a diagram unbuildable.
// Kind is "node" or "link"; Index is the record's position in its list.
type ConstructionError struct {
	Kind  string
	Index int
	Name  string
	Err   error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s %d (%q): %v", e.Kind, e.Index, e.Name, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ConstructionError) Unwrap() error { return e.Err }

// Construction wraps a record-level failure as a DIAGRAM_CONSTRUCTION error.
func Construction(kind string, index int, name string, cause error) *Error {
	return &Error{
		Code:    ErrCodeDiagramConstruction,
		Message: "invalid diagram",
		Cause:   &ConstructionError{Kind: kind, Index: index, Name: name, Err: cause},
	}
}
