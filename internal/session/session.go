// Package session resolves the acting identity for each request from the
// backend session token held in the browser cookie.
//
// Resolution is best effort: a missing, malformed, expired or rejected token
// degrades the request to anonymous so public pages keep rendering even when
// the backend is unreachable or unconfigured.
package session

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
	"github.com/ppc-youthlead/chapter-web/internal/web/platform/sessioncookie"
)

// Identity is the signed-in user as seen by page handlers. The access token
// travels with it so data calls run under the user's own backend privileges.
type Identity struct {
	UserID      string
	Email       string
	AccessToken string
}

type contextKey struct{}

// WithIdentity attaches the identity to the request context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// FromContext returns the acting identity, when one was resolved.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(Identity)
	return identity, ok
}

// Resolver turns access tokens into identities via the backend.
type Resolver struct {
	backend *backend.Client
	now     func() time.Time
}

// NewResolver builds a resolver bound to the backend facade.
func NewResolver(client *backend.Client) *Resolver {
	return &Resolver{backend: client, now: time.Now}
}

// Resolve validates the token and returns the identity behind it. The second
// return is false for any token the backend would not accept.
func (r *Resolver) Resolve(ctx context.Context, accessToken string) (Identity, bool) {
	if r == nil || r.backend == nil || accessToken == "" {
		return Identity{}, false
	}
	if !r.screenToken(accessToken) {
		return Identity{}, false
	}
	user, err := r.backend.UserForToken(ctx, accessToken)
	if err != nil {
		if !errors.Is(err, backend.ErrUnauthorized) && !errors.Is(err, backend.ErrNotConfigured) {
			log.Printf("session: identity lookup failed: %v", err)
		}
		return Identity{}, false
	}
	if user.ID == "" {
		return Identity{}, false
	}
	return Identity{UserID: user.ID, Email: user.Email, AccessToken: accessToken}, true
}

// screenToken parses the token claims locally to skip a doomed backend round
// trip for expired or garbage tokens. Signature verification stays with the
// backend; this check decides nothing security relevant.
func (r *Resolver) screenToken(accessToken string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if expiry != nil && expiry.Before(r.now()) {
		return false
	}
	return true
}

// Middleware resolves the session cookie into a request identity. Requests
// without a valid session pass through anonymous.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		token, ok := sessioncookie.Read(req)
		if ok {
			if identity, resolved := r.Resolve(req.Context(), token); resolved {
				req = req.WithContext(WithIdentity(req.Context(), identity))
			}
		}
		next.ServeHTTP(w, req)
	})
}
