// Package errors provides structured error types for the repolens application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map to the failure taxonomy of the discovery pipeline:
//   - INVALID_CRITERIA: search request underspecified or malformed
//   - UNAUTHORIZED: remote credential missing or rejected
//   - RATE_LIMITED: remote call budget exhausted
//   - NOT_FOUND: a specific remote resource does not exist
//   - NETWORK_ERROR: any other remote failure (5xx, timeouts, bad responses)
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCriteria, "empty search criteria")
//	if errors.Is(err, errors.ErrCodeInvalidCriteria) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidCriteria Code = "INVALID_CRITERIA"
	ErrCodeInvalidRepoRef  Code = "INVALID_REPO_REF"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Remote errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Authentication errors
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeForbidden    Code = "FORBIDDEN"

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
// RateLimitedError is recognized as ErrCodeRateLimited.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) && e.Code == code {
		return true
	}
	if code == ErrCodeRateLimited {
		var rl *RateLimitedError
		return errors.As(err, &rl)
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return ErrCodeRateLimited
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

// RateLimitedError reports an exhausted remote call budget. It carries the
// time at which the remote window resets so callers can decide whether to
// wait or truncate.
type RateLimitedError struct {
	ResetAt time.Time // When the rate-limit window resets (zero if unknown)
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if !e.ResetAt.IsZero() {
		return fmt.Sprintf("rate limited: window resets at %s", e.ResetAt.Format(time.RFC3339))
	}
	return "rate limited"
}

// RetryAfter returns the duration until the rate-limit window resets.
// Returns 0 if the reset time is unknown or already past.
func (e *RateLimitedError) RetryAfter() time.Duration {
	if e.ResetAt.IsZero() {
		return 0
	}
	d := time.Until(e.ResetAt)
	if d < 0 {
		return 0
	}
	return d
}
