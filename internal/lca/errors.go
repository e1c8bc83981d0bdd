package lca

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every input domain violation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidFactors is returned for unusable factor tables.
	ErrInvalidFactors = errors.New("invalid factor table")
)

// InvalidInputError describes which input field is out of its domain.
type InvalidInputError struct {
	// Field is the input field name, e.g. "recycled_percent".
	Field string

	// Value is the rejected value as given by the caller.
	Value string

	// Reason explains the violated domain.
	Reason string

	// Suggestion is the closest known label for an unrecognized enum value.
	Suggestion string
}

func (e *InvalidInputError) Error() string {
	msg := fmt.Sprintf("invalid input: %s %q: %s", e.Field, e.Value, e.Reason)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field string, value any, reason string) *InvalidInputError {
	return &InvalidInputError{
		Field:  field,
		Value:  fmt.Sprint(value),
		Reason: reason,
	}
}

// FieldOf returns the offending field name if err is an InvalidInputError.
func FieldOf(err error) (string, bool) {
	var invalidErr *InvalidInputError
	if errors.As(err, &invalidErr) {
		return invalidErr.Field, true
	}
	return "", false
}
