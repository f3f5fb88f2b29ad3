// Package errors provides structured error types for cloudgraph.
//
// Every error raised by the graph model and the layout engine is an [*Error]
// carrying a machine-readable [Code]. Codes are grouped into a small
// [Category] taxonomy so callers can decide how to react without matching
// individual codes:
//
//   - validation: unknown node/edge/container reference, duplicate or malformed id
//   - structural: cyclic container parentage
//   - layout: invalid layout configuration (unknown algorithm, negative spacing)
//   - io: reading or decoding diagram files
//   - internal: anything unexpected
//
// Graph model errors are always returned at the point of the offending call and
// leave the model untouched.
//
// # Usage
//
//	err := d.Connect("api", "db", diagram.EdgeOptions{})
//	if errors.Is(err, errors.ErrCodeUnknownNode) {
//	    // endpoint missing, nothing was added
//	}
//	if errors.IsStructural(err) {
//	    // container forest would have become cyclic
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeDuplicateID      Code = "DUPLICATE_ID"
	ErrCodeUnknownNode      Code = "UNKNOWN_NODE"
	ErrCodeUnknownEdge      Code = "UNKNOWN_EDGE"
	ErrCodeUnknownContainer Code = "UNKNOWN_CONTAINER"

	// Structural errors
	ErrCodeCyclicContainment Code = "CYCLIC_CONTAINMENT"

	// Layout configuration errors
	ErrCodeInvalidLayout    Code = "INVALID_LAYOUT"
	ErrCodeUnknownAlgorithm Code = "UNKNOWN_ALGORITHM"

	// IO errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Category groups error codes by how callers should handle them.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryStructural Category = "structural"
	CategoryLayout     Category = "layout"
	CategoryIO         Category = "io"
	CategoryInternal   Category = "internal"
)

var categories = map[Code]Category{
	ErrCodeInvalidInput:      CategoryValidation,
	ErrCodeDuplicateID:       CategoryValidation,
	ErrCodeUnknownNode:       CategoryValidation,
	ErrCodeUnknownEdge:       CategoryValidation,
	ErrCodeUnknownContainer:  CategoryValidation,
	ErrCodeCyclicContainment: CategoryStructural,
	ErrCodeInvalidLayout:     CategoryLayout,
	ErrCodeUnknownAlgorithm:  CategoryLayout,
	ErrCodeInvalidFormat:     CategoryIO,
	ErrCodeFileNotFound:      CategoryIO,
}

// CategoryOf returns the category of a code. Unknown codes are internal.
func CategoryOf(code Code) Category {
	if c, ok := categories[code]; ok {
		return c
	}
	return CategoryInternal
}

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

// Category returns the category of the error's code.
func (e *Error) Category() Category {
	return CategoryOf(e.Code)
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

// GetCategory returns the category of err, or empty string if err is not an *Error.
func GetCategory(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category()
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return GetCategory(err) == CategoryValidation }

// IsStructural reports whether err is a structural error.
func IsStructural(err error) bool { return GetCategory(err) == CategoryStructural }

// IsLayout reports whether err is a layout configuration error.
func IsLayout(err error) bool { return GetCategory(err) == CategoryLayout }

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
