// Package errs defines the register's error taxonomy.
//
// Every failure the engine hands back to a calling shell is one of three
// recoverable kinds: a credential failure, a lookup that resolved nothing, or
// input that failed validation. Each typed error matches its sentinel with
// errors.Is so callers can branch without type assertions.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	ErrCredential = errors.New("register: credential error")
	ErrNotFound   = errors.New("register: not found")
	ErrValidation = errors.New("register: validation failed")

	// Store errors
	ErrAlreadyExists = errors.New("register: already exists")

	// Session errors
	ErrNoSession = errors.New("register: no employee logged in")

	// Balance file errors
	ErrCorruptBalance = errors.New("register: corrupt balance file")
)

// CredentialError reports an operation refused because nobody is logged in
// or the logged-in identity holds too low a privilege level.
type CredentialError struct {
	Op       string
	Required int
	Held     int
	LoggedIn bool
	Reason   string // overrides the level-based message
}

func (e *CredentialError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("register: %s: %s", e.Op, e.Reason)
	}
	if !e.LoggedIn {
		return fmt.Sprintf("register: %s: unauthorized operation while no employee logged in", e.Op)
	}
	return fmt.Sprintf("register: %s: insufficient privileges (level %d, requires %d)", e.Op, e.Held, e.Required)
}

// Is matches ErrCredential, and ErrNoSession when nobody was logged in.
func (e *CredentialError) Is(target error) bool {
	return target == ErrCredential || (target == ErrNoSession && !e.LoggedIn)
}

// NotFoundError reports a token that resolved to no catalog, order or staff entry.
type NotFoundError struct {
	Kind  string
	Token string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("register: %s not found with token %q", e.Kind, e.Token)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("register: validation failed for %s: %s", e.Field, e.Message)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFound builds a NotFoundError.
func NotFound(kind, token string) error {
	return &NotFoundError{Kind: kind, Token: token}
}

// Invalid builds a ValidationError with a formatted message.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// MultiError represents multiple errors that occurred.
type MultiError struct {
	Errors []error
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "register: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("register: %d errors occurred", len(e.Errors))
}

// Add adds an error to the multi-error.
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors.
func (e MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// First returns the first error or nil.
func (e MultiError) First() error {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return nil
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e MultiError) Unwrap() []error { return e.Errors }

// IsCredential returns true if the error is a credential failure.
func IsCredential(err error) bool { return errors.Is(err, ErrCredential) }

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation returns true if the error is a validation failure.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
