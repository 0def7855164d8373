package models

import "errors"

// Sentinel error kinds. Services wrap these into DomainError values; the
// handlers package is the only place that maps them to HTTP status codes.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

type DomainError struct {
	kind    error
	message string
}

func (e *DomainError) Error() string { return e.message }

func (e *DomainError) Unwrap() error { return e.kind }

func Validation(message string) error {
	return &DomainError{kind: ErrValidation, message: message}
}

func Conflict(message string) error {
	return &DomainError{kind: ErrConflict, message: message}
}

func Unauthorized(message string) error {
	return &DomainError{kind: ErrUnauthorized, message: message}
}

func Forbidden(message string) error {
	return &DomainError{kind: ErrForbidden, message: message}
}

func NotFound(message string) error {
	return &DomainError{kind: ErrNotFound, message: message}
}
