// Package errors provides structured error types for the psplib toolkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the decoder, codec, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages that embed source location
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure taxonomy of PSPLIB decoding:
//   - UNSUPPORTED_OPERATION: the input requests a feature the decoder does not implement
//   - PARSE_ERROR: a line does not match its expected shape, or counts disagree
//   - CONVERSION_ERROR: a matched token could not be converted (e.g. malformed integer)
//   - VALIDATION_ERROR: a JSON encoding is missing required fields or carries unknown ones
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParse, "[%s:%d]: pattern did not match the current line", name, line)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // Handle parse failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConversion, origErr, "[%s:%d]: bad integer", name, line)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Decoding errors
	ErrCodeUnsupported Code = "UNSUPPORTED_OPERATION"
	ErrCodeParse       Code = "PARSE_ERROR"
	ErrCodeConversion  Code = "CONVERSION_ERROR"

	// JSON codec errors
	ErrCodeValidation Code = "VALIDATION_ERROR"

	// Input errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
