// Package errs defines the tagged error kinds used across the service
// layer. Services return *errs.Error; handlers map the kind to an HTTP
// status at the boundary and never inspect message text.
package errs

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindConflict      Kind = "conflict"
	KindNotFound      Kind = "not_found"
	KindUnauthorized  Kind = "unauthorized"
	KindConfiguration Kind = "configuration"
	KindUnavailable   Kind = "unavailable"
	KindTransport     Kind = "transport"
	KindInternal      Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	// Detail carries the underlying diagnostic (provider error text, SMTP
	// reply, mongo error) for logging and troubleshooting output.
	Detail string
	// Troubleshooting holds optional operator guidance surfaced on OTP
	// delivery failures.
	Troubleshooting []string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	e := &Error{Kind: kind, Message: message}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}

// KindOf extracts the kind from an error, defaulting to KindInternal for
// untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to the transport status code. This is the
// only place kinds and status codes meet.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConfiguration, KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
