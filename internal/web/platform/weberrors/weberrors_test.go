package weberrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid input", err: E(KindInvalidInput, "bad form"), want: http.StatusBadRequest},
		{name: "unauthorized", err: E(KindUnauthorized, "sign in"), want: http.StatusUnauthorized},
		{name: "forbidden", err: E(KindForbidden, "admins only"), want: http.StatusForbidden},
		{name: "not found", err: E(KindNotFound, "no such ticket"), want: http.StatusNotFound},
		{name: "unknown kind", err: E(KindUnknown, "boom"), want: http.StatusInternalServerError},
		{name: "untyped", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "unconfigured backend", err: fmt.Errorf("load: %w", backend.ErrNotConfigured), want: http.StatusServiceUnavailable},
		{name: "denied by backend", err: fmt.Errorf("write: %w", backend.ErrUnauthorized), want: http.StatusForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestErrorMessageFallsBackToKind(t *testing.T) {
	t.Parallel()

	if got := (Error{Kind: KindForbidden}).Error(); got != "forbidden" {
		t.Fatalf("Error() = %q, want kind name", got)
	}
	if got := E(KindInvalidInput, "subject is required").Error(); got != "subject is required" {
		t.Fatalf("Error() = %q, want message", got)
	}
}
