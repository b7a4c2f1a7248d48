// Package weberrors defines typed web application errors.
package weberrors

import (
	stderrors "errors"
	"net/http"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
	KindNotFound     Kind = "not_found"
)

// Error is a typed web application failure.
type Error struct {
	Kind    Kind
	Message string
}

// Error renders the human-readable message.
func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// HTTPStatus maps an error to the HTTP status a page should answer with.
// Backend sentinels map ahead of the typed kinds so facade failures land on
// the right status without re-wrapping.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if stderrors.Is(err, backend.ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}
	if stderrors.Is(err, backend.ErrUnauthorized) {
		return http.StatusForbidden
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
