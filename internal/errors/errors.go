// Package errors defines the typed errors returned by the field selector,
// the search indexer and the configuration layer.
package errors

import (
	"errors"
	"fmt"
)

// Error types
const (
	// ErrInvalidArgument is returned when a configuration value or request field is invalid
	ErrInvalidArgument = "invalid_argument"

	// ErrParse is returned when a column specification token cannot be parsed
	ErrParse = "parse"

	// ErrNotFound is returned when a file is missing or cannot be opened
	ErrNotFound = "not_found"

	// ErrRead is returned when reading a file fails part way through a scan
	ErrRead = "read"

	// ErrPattern is returned when a search pattern does not compile
	ErrPattern = "pattern"
)

// Error represents an error in the application
type Error struct {
	// Type is the error type
	Type string

	// Message is the error message
	Message string

	// Cause is the underlying error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error
func NewError(errorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message string, cause error) *Error {
	return NewError(ErrInvalidArgument, message, cause)
}

// NewParseError creates a new parse error
func NewParseError(message string, cause error) *Error {
	return NewError(ErrParse, message, cause)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *Error {
	return NewError(ErrNotFound, message, cause)
}

// NewReadError creates a new read error
func NewReadError(message string, cause error) *Error {
	return NewError(ErrRead, message, cause)
}

// NewPatternError creates a new pattern error
func NewPatternError(message string, cause error) *Error {
	return NewError(ErrPattern, message, cause)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return isType(err, ErrInvalidArgument)
}

// IsParse checks if the error is a parse error
func IsParse(err error) bool {
	return isType(err, ErrParse)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return isType(err, ErrNotFound)
}

// IsRead checks if the error is a read error
func IsRead(err error) bool {
	return isType(err, ErrRead)
}

// IsPattern checks if the error is a pattern error
func IsPattern(err error) bool {
	return isType(err, ErrPattern)
}

// isType walks the wrap chain so callers may add context with %w.
func isType(err error, errorType string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errorType
}
