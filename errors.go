package register

import "github.com/caisseplanck/register/errs"

// Re-export the error taxonomy so callers of the engine need only this
// package.

// Sentinel errors.
var (
	ErrCredential     = errs.ErrCredential
	ErrNotFound       = errs.ErrNotFound
	ErrValidation     = errs.ErrValidation
	ErrNoSession      = errs.ErrNoSession
	ErrCorruptBalance = errs.ErrCorruptBalance
	ErrAlreadyExists  = errs.ErrAlreadyExists
)

// CredentialError reports a missing session or an insufficient privilege level.
type CredentialError = errs.CredentialError

// NotFoundError reports a token that resolved to nothing.
type NotFoundError = errs.NotFoundError

// ValidationError represents a validation failure with details.
type ValidationError = errs.ValidationError

// MultiError represents multiple errors that occurred.
type MultiError = errs.MultiError

// Error classifiers.
var (
	IsCredential = errs.IsCredential
	IsNotFound   = errs.IsNotFound
	IsValidation = errs.IsValidation
)
