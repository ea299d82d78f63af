// Package errors provides kilib's structured error type. Every failure the
// engine can produce carries a stable ErrorCode so callers (and tests) can
// match on the category without string-scraping messages.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error category for stable matching.
type ErrorCode string

const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrUnsupported   ErrorCode = "UNSUPPORTED"

	// Parsing and document-shape errors
	ErrSyntax    ErrorCode = "SYNTAX_ERROR"
	ErrStructure ErrorCode = "STRUCTURE_ERROR"

	// Merge errors
	ErrConflict ErrorCode = "CONFLICT"

	// Filesystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
)

// Error is a structured error with a code, message and optional details.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches two Errors by code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error, preserving it for errors.Is/As chains.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail attaches a detail to the error and returns it for chaining.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode reports whether err (or anything it wraps) carries code.
func IsErrorCode(err error, code ErrorCode) bool {
	var kerr *Error
	if errors.As(err, &kerr) {
		return kerr.Code == code
	}
	return false
}

// GetErrorCode returns the code carried by err, or ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	var kerr *Error
	if errors.As(err, &kerr) {
		return kerr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details map from err, or nil.
func GetErrorDetails(err error) map[string]interface{} {
	var kerr *Error
	if errors.As(err, &kerr) {
		return kerr.Details
	}
	return nil
}

// Conflicts returns the sorted conflicting entry names carried by a
// CONFLICT error, or nil for any other error.
func Conflicts(err error) []string {
	var kerr *Error
	if !errors.As(err, &kerr) || kerr.Code != ErrConflict {
		return nil
	}
	names, _ := kerr.Details["conflicts"].([]string)
	return names
}
