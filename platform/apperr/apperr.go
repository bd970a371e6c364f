// Package apperr defines the typed domain errors services return. The HTTP
// layer maps each error's Kind to a status code.
package apperr

import "net/http"

// Kind categorizes a domain error.
type Kind int

const (
	// KindUnknown is the zero value; it maps to a generic 400.
	KindUnknown Kind = iota
	// KindNotFound marks a missing resource.
	KindNotFound
	// KindValidation marks invalid input.
	KindValidation
	// KindConflict marks a clash with existing state, such as a duplicate.
	KindConflict
	// KindForbidden marks an action the caller may not perform.
	KindForbidden
	// KindUnauthorized marks missing or failed authentication.
	KindUnauthorized
	// KindBadRequest marks a malformed request.
	KindBadRequest
	// KindInternal marks an unexpected failure.
	KindInternal
)

// Error is a domain error with a Kind for HTTP mapping and an optional
// wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error's kind to a status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Wrap builds a domain error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotFound builds a KindNotFound error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Validation builds a KindValidation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict builds a KindConflict error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Forbidden builds a KindForbidden error.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Unauthorized builds a KindUnauthorized error.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// BadRequest builds a KindBadRequest error.
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Internal builds a KindInternal error.
func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// Is reports whether err is an *Error of the given kind. It deliberately
// checks the top-level error only; services return domain errors unwrapped.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
