// Package common defines sentinel errors and the validation error type
// shared across service and transport layers. Callers should use errors.Is
// and errors.As to match these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Registration errors.
	ErrUsernameTaken = errors.New("username already exists")

	// Login errors. The distinct messages intentionally reveal whether the
	// username exists; see the design notes before merging them.
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")

	// Token errors.
	ErrNoToken      = errors.New("no token")
	ErrInvalidToken = errors.New("invalid or expired token")

	// Service-level errors.
	ErrInternal = errors.New("internal error")
	ErrNotReady = errors.New("service unavailable")
)

// ValidationError collects every rule a request violated so the transport
// layer can report them all at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewValidationError builds a ValidationError from one or more messages.
func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}
