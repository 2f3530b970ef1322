// Package domainerrors carries coded errors across layers. Services return
// these so callers can branch on the Code without string matching.
//
// Usage:
//
//	return dErrors.New(dErrors.CodeInvariantViolation, "credentials already registered")
//	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to build screen graph")
//	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) { ... }
package domainerrors

import (
	"errors"
)

// Code classifies a domain error.
type Code string

const (
	// CodeInvalidInput marks malformed values at a trust boundary (parsing).
	CodeInvalidInput Code = "invalid_input"
	// CodeValidation marks a request that parsed but failed a business rule.
	CodeValidation Code = "validation_error"
	// CodeInvariantViolation marks an attempt to break an aggregate invariant.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeConflict marks a state conflict with an existing resource.
	CodeConflict Code = "conflict"
	// CodeNotFound marks a missing resource.
	CodeNotFound Code = "not_found"
	// CodeInternal marks an unexpected failure.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error without a cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
// Wrapping a nil error returns nil.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	for err != nil {
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// Is is an alias of HasCode kept for call sites that read better as a predicate.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in err's chain, or CodeInternal for
// errors that were never coded.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
