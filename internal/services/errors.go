package services

import (
	"errors"
	"fmt"
)

// ValidationError is rejected input: checked before any external call, so
// no compensation is ever needed for it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrDuplicateEmail rejects an invitation for an email that already has a
// client record. Checked as a precondition, before the identity step.
var ErrDuplicateEmail = errors.New("a client with this email already exists")

// ErrForbidden is returned when the access guard denies the actor.
var ErrForbidden = errors.New("access denied")
