package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind string

const (
	KindBadRequest   Kind = "bad_request"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

// AppError is a structured application error carrying its kind and the
// HTTP status it maps to
type AppError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Err        error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewBadRequest creates a bad request error (malformed input or invalid
// temporal/business state)
func NewBadRequest(message string) *AppError {
	return &AppError{
		Kind:       KindBadRequest,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewUnauthorized creates an authentication error
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Kind:       KindUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (wrong role, wrong apartment,
// wrong building)
func NewForbidden(message string) *AppError {
	return &AppError{
		Kind:       KindForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewNotFound creates a not found error
func NewNotFound(message string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewConflict creates a uniqueness violation error
func NewConflict(message string) *AppError {
	return &AppError{
		Kind:       KindConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewInternal creates an internal error wrapping the underlying cause
func NewInternal(message string, err error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// From extracts an AppError from err, wrapping unknown errors as Internal so
// that NotFound/Forbidden/BadRequest/Conflict are never recast on the way out
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("unexpected error", err)
}
