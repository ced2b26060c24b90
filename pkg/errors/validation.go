// Package errors carries the validation error type shared by option
// and configuration checking.
package errors

import (
	"errors"
	"fmt"
)

// ValidationError reports an option or configuration field that failed
// validation, carrying the field name and the rejected value alongside
// the reason.
type ValidationError struct {
	Value any    `json:"value"` // The value that failed validation.
	Field string `json:"field"` // The field that carried it.
	Err   error  `json:"error"` // Why it was rejected.
}

// NewValidationError creates a ValidationError for field with the
// rejected value and reason.
func NewValidationError(field string, value any, err error) *ValidationError {
	return &ValidationError{
		Err:   err,
		Field: field,
		Value: value,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s", e.Field)
}

// Unwrap exposes the underlying reason to errors.Is/As.
func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidationError checks if a given error is of type ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidationError attempts to extract a ValidationError from a given error.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
