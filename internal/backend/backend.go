// Package backend is the data access facade for the hosted backend that owns
// all persistence, identity and realtime delivery. It speaks the backend's
// HTTP surfaces directly: the PostgREST-style data API, the GoTrue-style auth
// API, the object storage API and the phoenix-channel realtime socket.
//
// The facade is deliberately thin. Row-level authorization lives in the
// backend's policies; every check this process performs before a write is
// courtesy validation for the UI, not a security boundary.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ppc-youthlead/chapter-web/internal/platform/timeouts"
)

// ErrNotConfigured reports that the backend URL or anon key is missing.
// Callers must degrade to a "not configured" state instead of failing hard.
var ErrNotConfigured = errors.New("backend is not configured")

// ErrUnauthorized reports that the backend rejected the caller's credentials
// or that its row-level policy denied the operation.
var ErrUnauthorized = errors.New("backend rejected credentials")

// Config identifies the backend endpoint and its public API key. Both values
// are required for live operation; their absence flips the client into a
// degraded mode where every call returns ErrNotConfigured.
type Config struct {
	URL     string `env:"CHAPTER_WEB_BACKEND_URL"`
	AnonKey string `env:"CHAPTER_WEB_BACKEND_ANON_KEY"`
}

// Client is a configured handle on the external backend. The zero value and
// a client built from an empty Config are both valid, unconfigured clients.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	tracer  trace.Tracer
}

// New builds a client bound to the configured backend. New never fails: an
// incomplete Config yields a client whose Configured method reports false.
func New(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		anonKey: strings.TrimSpace(cfg.AnonKey),
		http:    &http.Client{Timeout: timeouts.BackendRequest},
		tracer:  otel.Tracer("github.com/ppc-youthlead/chapter-web/internal/backend"),
	}
}

// Configured reports whether both the endpoint and the anon key are present.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != "" && c.anonKey != ""
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// do executes one backend round trip with auth headers and a client span.
// token is the acting user's access token; when empty the anon key stands in.
func (c *Client) do(ctx context.Context, spanName string, req *http.Request, token string) (*http.Response, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	bearer := strings.TrimSpace(token)
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)

	ctx, span := c.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return resp, nil
}

// decodeError drains a failed response into a typed APIError. 401 and 403
// additionally carry ErrUnauthorized so callers can branch on denial.
func decodeError(resp *http.Response) error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(body, &payload)
	message := payload.Message
	if message == "" {
		message = payload.Msg
	}
	if message == "" {
		message = payload.ErrorDescription
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	apiErr := &APIError{Status: resp.StatusCode, Message: message}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr)
	}
	return apiErr
}
