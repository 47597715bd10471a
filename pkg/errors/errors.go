// Package errors provides structured error types for the terraviz application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the core and the CLI adapter
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure taxonomy of the graph-assembly core:
//   - MALFORMED_RECORD: a discovered record is missing a required field
//   - DANGLING_REFERENCE: an edge references a node absent from the graph
//   - ALREADY_FINALIZED: mutation of a builder after Build
//   - UNRECOGNIZED_DOCUMENT: the top-level value matches no known shape
//   - INVALID_*: adapter-level input validation failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedRecord, "point record at %s: missing %q", loc, field)
//	if errors.Is(err, errors.ErrCodeMalformedRecord) {
//	    // Handle the malformed record
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidPath, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Core build failures
	ErrCodeMalformedRecord      Code = "MALFORMED_RECORD"
	ErrCodeDanglingReference    Code = "DANGLING_REFERENCE"
	ErrCodeAlreadyFinalized     Code = "ALREADY_FINALIZED"
	ErrCodeUnrecognizedDocument Code = "UNRECOGNIZED_DOCUMENT"

	// Adapter-level input validation errors
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidBackend Code = "INVALID_BACKEND"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
