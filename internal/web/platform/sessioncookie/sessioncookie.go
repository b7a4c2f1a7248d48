// Package sessioncookie centralizes web session cookie behavior.
package sessioncookie

import (
	"net/http"
	"strings"
)

// Name is the canonical session cookie. Its value is the backend access
// token for the signed-in user.
const Name = "chapter_session"

// VerifierName holds the PKCE code verifier between the authorize redirect
// and the provider callback.
const VerifierName = "chapter_pkce_verifier"

const verifierMaxAge = 600

// Read returns the trimmed session cookie value when present.
func Read(r *http.Request) (string, bool) {
	return read(r, Name)
}

// Write sets the session cookie for the current request context.
func Write(w http.ResponseWriter, r *http.Request, accessToken string) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(accessToken),
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie for the current request context.
func Clear(w http.ResponseWriter, r *http.Request) {
	expire(w, r, Name)
}

// ReadVerifier returns the pending PKCE verifier when present.
func ReadVerifier(r *http.Request) (string, bool) {
	return read(r, VerifierName)
}

// WriteVerifier stores the PKCE verifier until the provider calls back.
func WriteVerifier(w http.ResponseWriter, r *http.Request, verifier string) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     VerifierName,
		Value:    strings.TrimSpace(verifier),
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   verifierMaxAge,
	})
}

// ClearVerifier expires the PKCE verifier cookie.
func ClearVerifier(w http.ResponseWriter, r *http.Request) {
	expire(w, r, VerifierName)
}

func read(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

func expire(w http.ResponseWriter, r *http.Request, name string) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func isHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
