package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrValidation        = errors.New("validation error")
	ErrInvalidState      = errors.New("invalid state")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	// ErrStorageFailure is transient: the same request may succeed later.
	ErrStorageFailure    = errors.New("storage failure")
)

// TransitionError reports an event that is not allowed in the current booking status.
type TransitionError struct {
	From  BookingStatusType
	Event BookingEventType
}

func NewTransitionError(from BookingStatusType, event BookingEventType) error {
	return &TransitionError{From: from, Event: event}
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event `%s` is not allowed in status `%s`", e.Event, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidState
}

// ValidationError describes a malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
