// Package errors provides the error taxonomy for the nawah CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates malformed operator input (app name, API level, flags).
	ErrValidation = errors.New("validation error")

	// ErrTransport indicates a remote fetch failed.
	ErrTransport = errors.New("transport error")

	// ErrStepFailed indicates a provisioning step failed and a checkpoint was written.
	ErrStepFailed = errors.New("step failed")

	// ErrCorruptState indicates the checkpoint could not be read or is malformed.
	ErrCorruptState = errors.New("corrupt checkpoint")

	// ErrNotFound indicates a file, template, or workspace was not found.
	ErrNotFound = errors.New("not found")
)

// DetailError captures structured error information for operator-facing diagnostics.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path involved (optional).
	Location string

	// Field is the offending field or argument name (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, field, hint string) error {
	return &DetailError{
		Type:    "validation failed",
		Message: message,
		Field:   field,
		Hint:    hint,
		Cause:   ErrValidation,
	}
}

// NewTransportError creates a transport error for a failed fetch.
func NewTransportError(url string, cause error) error {
	return &DetailError{
		Type:    "download failed",
		Message: cause.Error(),
		Context: map[string]string{"URL": url},
		Hint:    "Check your network connection and the configured remote URLs, then re-run the same command.",
		Cause:   fmt.Errorf("%w: %w", ErrTransport, cause),
	}
}

// NewCorruptStateError creates an error for an unreadable or malformed checkpoint.
func NewCorruptStateError(location string, cause error) error {
	return &DetailError{
		Type:     "corrupt checkpoint",
		Message:  cause.Error(),
		Location: location,
		Hint:     "Fix or remove the checkpoint by hand. Removing it requires deleting the partially created app directory as well.",
		Cause:    fmt.Errorf("%w: %w", ErrCorruptState, cause),
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
