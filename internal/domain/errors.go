package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrArchiveCorrupt    = errors.New("archive corrupt")
	ErrRecordMalformed   = errors.New("record malformed")
	ErrNoUsableEntries   = errors.New("no usable entries")
	ErrValidation        = errors.New("validation error")
)

// RecordError describes a single record that could not be parsed.
type RecordError struct {
	Index  int
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

func (e *RecordError) Unwrap() error { return ErrRecordMalformed }

// NewRecordError creates a RecordError for the record at index.
func NewRecordError(index int, reason string) *RecordError {
	return &RecordError{Index: index, Reason: reason}
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
