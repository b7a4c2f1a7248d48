package web

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/ppc-youthlead/chapter-web/internal/web/platform/sessioncookie"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
)

// callbackURL rebuilds the public auth callback URL from the request so the
// site works behind a proxy without extra configuration.
func callbackURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + routepath.AuthCallback
}

func loginErrorRedirect(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, routepath.Login+"?error="+url.QueryEscape(code), http.StatusFound)
}

func loginErrorRedirectDetails(w http.ResponseWriter, r *http.Request, code, details string) {
	target := routepath.Login + "?error=" + url.QueryEscape(code) + "&details=" + url.QueryEscape(details)
	http.Redirect(w, r, target, http.StatusFound)
}

// handleAuthLogin starts the OAuth flow: it stashes a fresh PKCE verifier in
// a short-lived cookie and hands the browser to the provider.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !s.client.Configured() {
		http.Redirect(w, r, routepath.Login, http.StatusFound)
		return
	}
	verifier, err := generateCodeVerifier()
	if err != nil {
		log.Printf("generate code verifier: %v", err)
		loginErrorRedirect(w, r, "auth_failed")
		return
	}
	sessioncookie.WriteVerifier(w, r, verifier)
	redirectTo := callbackURL(r)
	if next := nextTarget(r.FormValue("next")); next != routepath.Community {
		redirectTo += "?next=" + url.QueryEscape(next)
	}
	authorize, err := s.client.AuthorizeURL("google", redirectTo, computeS256Challenge(verifier))
	if err != nil {
		log.Printf("build authorize url: %v", err)
		loginErrorRedirect(w, r, "auth_failed")
		return
	}
	http.Redirect(w, r, authorize, http.StatusFound)
}

// handleAuthCallback finishes the OAuth flow. Every failure lands back on the
// sign-in page with a coded error so the page can explain what went wrong.
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("error") != "" {
		loginErrorRedirect(w, r, "auth_failed")
		return
	}
	code := query.Get("code")
	if code == "" {
		http.Redirect(w, r, routepath.Login, http.StatusFound)
		return
	}
	verifier, ok := sessioncookie.ReadVerifier(r)
	if !ok {
		loginErrorRedirect(w, r, "auth_failed")
		return
	}
	sessioncookie.ClearVerifier(w, r)

	authSession, err := s.client.ExchangeCode(r.Context(), code, verifier)
	if err != nil {
		log.Printf("exchange auth code: %v", err)
		loginErrorRedirectDetails(w, r, "auth_failed", err.Error())
		return
	}
	if authSession.AccessToken == "" {
		loginErrorRedirect(w, r, "no_session")
		return
	}
	user, err := s.client.UserForToken(r.Context(), authSession.AccessToken)
	if err != nil || user.ID == "" {
		if err != nil {
			log.Printf("load user for new session: %v", err)
		}
		loginErrorRedirect(w, r, "no_user")
		return
	}

	sessioncookie.Write(w, r, authSession.AccessToken)
	http.Redirect(w, r, nextTarget(query.Get("next")), http.StatusFound)
}

// nextTarget validates the post-login destination; only local paths pass.
func nextTarget(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return routepath.Community
	}
	return next
}

// handleAuthLogout revokes the backend session and clears the cookie. The
// cookie is cleared even when revocation fails so the browser signs out.
func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := sessioncookie.Read(r); ok {
		if err := s.client.SignOut(r.Context(), token); err != nil {
			log.Printf("revoke backend session: %v", err)
		}
	}
	sessioncookie.Clear(w, r)
	http.Redirect(w, r, routepath.Root, http.StatusFound)
}
