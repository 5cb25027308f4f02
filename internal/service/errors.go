package service

import (
	"errors"
	"strings"
)

// ErrInvalidID reports a malformed document identifier, the Go-side
// equivalent of a store cast failure. Mapped to 400 at the HTTP boundary.
var ErrInvalidID = errors.New("invalid id")

// ValidationError carries one message per violated field constraint.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

func newValidationError(details []string) error {
	if len(details) == 0 {
		return nil
	}
	return &ValidationError{Details: details}
}
