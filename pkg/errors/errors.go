// Package errors provides structured error types for the KVK client.
//
// Every operation of the registry client fails with a single kind of error:
// an [*Error] carrying [ErrCodeRegistryQuery], a human-readable message
// naming the operation, and the original failure as its cause. Other codes
// are used by the command-line front end for input and configuration
// problems.
//
// # Usage
//
//	companies, err := client.Search(ctx, "Test BV", nil)
//	if errors.Is(err, errors.ErrCodeRegistryQuery) {
//	    fmt.Println(errors.UserMessage(err))
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRegistryQuery, origErr, "failed to fetch base profile")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Returned by every registry client operation
	ErrCodeRegistryQuery Code = "REGISTRY_QUERY"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Configuration errors (config file, certificates)
	ErrCodeConfig Code = "CONFIG"

	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

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
// For *Error types, returns the message and the cause without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
