package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock means a reservation asked for more than is
	// currently available. Callers must re-show availability, not retry.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransition means a status change was attempted from a
	// terminal or otherwise wrong state.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
