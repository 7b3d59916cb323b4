package apperrors

import (
	"errors"
	"fmt"
)

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrPersistence indicates that the durable store could not be read or written.
var ErrPersistence = errors.New("persistence error")

// ErrNotFound indicates that a requested record could not be found.
var ErrNotFound = errors.New("record not found")

// Validation reasons.
var (
	ErrUnbalancedEntry     = errors.New("debit and credit amounts differ")
	ErrMissingCounterparty = errors.New("counterparty name required")
	ErrUnknownAccount      = errors.New("unknown account")
	ErrOutOfRange          = errors.New("position out of range")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidKind         = errors.New("invalid kind")
	ErrInvalidField        = errors.New("invalid field")
	ErrOversell            = errors.New("quantity exceeds stock on hand")
)

// ErrCorrupt indicates that a stored file exists but cannot be decoded.
var ErrCorrupt = errors.New("store is corrupt")

// ValidationError is a rejected input. It matches both ErrValidation and its
// Reason under errors.Is.
type ValidationError struct {
	Reason error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Reason}
}

// Invalid builds a ValidationError.
func Invalid(reason error, format string, args ...any) error {
	return &ValidationError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a failed load or save.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
