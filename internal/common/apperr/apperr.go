// Package apperr defines the error taxonomy shared by the scheduling core:
// validation failures, slot conflicts, missing records and transient
// storage faults. Controllers map these onto HTTP status codes; the
// sweeper logs and aggregates them.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input (bad station number, inverted
// shift times, invalid slot letter).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError reports an attempted double-booking of a station slot or
// an employee already assigned that date.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// Conflictf builds a ConflictError from a format string.
func Conflictf(format string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a lookup that requires existence, e.g. resolving
// an employee id. Idempotent no-ops (unassign without a matching row) do
// not raise it.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NotFoundf builds a NotFoundError from a format string.
func NotFoundf(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// TransientStoreError wraps a storage-layer failure. Interactive callers
// surface it as a failed operation; the sweeper logs it per entity type
// and continues.
type TransientStoreError struct {
	Op  string
	Err error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *TransientStoreError) Unwrap() error { return e.Err }

// Store wraps err as a TransientStoreError for operation op.
func Store(op string, err error) error {
	return &TransientStoreError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}
