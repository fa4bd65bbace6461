// Package apperr defines the closed set of application error kinds and their
// mapping to HTTP status codes. Workflow code returns *apperr.Error values
// (usually package-level sentinels) and the transport layer classifies them
// by kind, never by message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application failure.
type Kind int

const (
	// Internal is the default kind for unclassified failures.
	Internal Kind = iota
	// Validation indicates a malformed or disallowed request body/parameter.
	Validation
	// NotFound indicates the referenced entity does not exist.
	NotFound
	// Conflict indicates an illegal state transition or uniqueness violation.
	Conflict
	// Unauthorized indicates missing or invalid credentials.
	Unauthorized
	// Forbidden indicates the acting user lacks the required role.
	Forbidden
)

// Error is an application error carrying a Kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New returns a new *Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns a new *Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err. Non-apperr errors classify as Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Status maps an error to an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Public returns the message safe to expose to clients. Unclassified errors
// are replaced with a generic message so internal detail never leaks.
func Public(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
