package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// User is the backend identity behind an access token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated backend session issued by the code exchange.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// AuthorizeURL returns the hosted provider authorization URL that starts the
// OAuth redirect flow. codeChallenge is the S256 PKCE challenge; the matching
// verifier must be presented to ExchangeCode when the provider calls back.
func (c *Client) AuthorizeURL(provider, redirectTo, codeChallenge string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	params := url.Values{}
	params.Set("provider", provider)
	params.Set("redirect_to", redirectTo)
	params.Set("code_challenge", codeChallenge)
	params.Set("code_challenge_method", "s256")
	return c.baseURL + "/auth/v1/authorize?" + params.Encode(), nil
}

// ExchangeCode trades an authorization code plus its PKCE verifier for a
// session.
func (c *Client) ExchangeCode(ctx context.Context, code, codeVerifier string) (Session, error) {
	payload, err := json.Marshal(map[string]string{
		"auth_code":     code,
		"code_verifier": codeVerifier,
	})
	if err != nil {
		return Session{}, fmt.Errorf("encode code exchange: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/auth/v1/token?grant_type=pkce", bytes.NewReader(payload))
	if err != nil {
		return Session{}, fmt.Errorf("build code exchange: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.do(ctx, "backend.auth.exchange", req, "")
	if err != nil {
		return Session{}, fmt.Errorf("exchange code: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Session{}, fmt.Errorf("exchange code: %w", decodeError(resp))
	}
	defer resp.Body.Close()
	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return session, nil
}

// UserForToken resolves the identity behind an access token. A rejected or
// expired token surfaces as ErrUnauthorized.
func (c *Client) UserForToken(ctx context.Context, accessToken string) (User, error) {
	if strings.TrimSpace(accessToken) == "" {
		return User{}, fmt.Errorf("%w: empty access token", ErrUnauthorized)
	}
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return User{}, fmt.Errorf("build user fetch: %w", err)
	}
	resp, err := c.do(ctx, "backend.auth.user", req, accessToken)
	if err != nil {
		return User{}, fmt.Errorf("fetch user: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("fetch user: %w", decodeError(resp))
	}
	defer resp.Body.Close()
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("decode user: %w", err)
	}
	return user, nil
}

// SignOut revokes the session behind the access token. Revocation failures
// are reported but the caller should still clear its own cookie.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("build sign-out: %w", err)
	}
	resp, err := c.do(ctx, "backend.auth.signout", req, accessToken)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sign out: %w", decodeError(resp))
	}
	return nil
}
