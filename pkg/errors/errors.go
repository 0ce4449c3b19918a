// Package errors provides structured errors with stable machine-readable
// codes. Codes classify adapter and pipeline failures so callers can decide
// whether an error is actionable by the user (missing configuration), should
// be contained at the aggregation boundary (per-provider failures), or is an
// internal bug.
package errors

import (
	"errors"
	"fmt"
)

// Error codes as constants.
const (
	// ErrCodeConfigMissing indicates no credential configuration was found
	// and the command was not run in demo mode.
	ErrCodeConfigMissing = "CONFIG_MISSING"

	// ErrCodeAuth indicates a provider rejected the supplied API key.
	ErrCodeAuth = "AUTH_ERROR"

	// ErrCodeNetwork indicates a provider was unreachable or timed out.
	ErrCodeNetwork = "NETWORK_ERROR"

	// ErrCodeParse indicates a provider returned an unexpected response shape.
	ErrCodeParse = "PARSE_ERROR"

	// ErrCodeAllProvidersFailed indicates every configured provider failed.
	ErrCodeAllProvidersFailed = "ALL_PROVIDERS_FAILED"

	// ErrCodeInvalidRequest indicates a malformed API request.
	ErrCodeInvalidRequest = "INVALID_REQUEST"

	// ErrCodeMethodNotAllowed indicates an unsupported HTTP method.
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

	// ErrCodeRateLimitExceeded indicates the caller exceeded the server rate limit.
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"

	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal = "INTERNAL_ERROR"
)

// StructuredError is an error carrying a stable code alongside the message.
// It supports errors.Is/errors.As chains through Unwrap.
type StructuredError struct {
	Code    string
	Message string
	Err     error
}

func (e *StructuredError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StructuredError) Unwrap() error {
	return e.Err
}

// New creates a StructuredError with the given code and message.
func New(code, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// Newf creates a StructuredError with a formatted message.
func Newf(code, format string, args ...any) *StructuredError {
	return &StructuredError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a StructuredError wrapping an underlying cause.
func Wrap(code, message string, err error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the first StructuredError in err's chain,
// or ErrCodeInternal when the chain carries no structured error.
func CodeOf(err error) string {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err's chain contains a StructuredError with the
// given code.
func HasCode(err error, code string) bool {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
