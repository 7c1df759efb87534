package dto

import (
	"errors"
	"fmt"
)

// ErrNotFound signals a lookup miss on a caller-supplied identifier.
var ErrNotFound = errors.New("record not found")

// UpstreamError reports that the AI data source failed or returned unusable
// output. The cycle for that data type is aborted; the caller may retry.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError wraps err as an UpstreamError for the named source.
func NewUpstreamError(source string, err error) error {
	return &UpstreamError{Source: source, Err: err}
}

// MalformedPayloadError reports a structurally invalid upstream response that
// could not be repaired. Raw carries the text for logging and quarantine.
type MalformedPayloadError struct {
	Raw string
}

func (e *MalformedPayloadError) Error() string {
	return "malformed upstream payload"
}

// ValidationError reports a caller-supplied request missing required fields.
// It is rejected before any mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
