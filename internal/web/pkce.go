package web

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// verifierEntropyBytes is the raw entropy behind each PKCE code verifier;
// hex encoding doubles it to 64 characters on the wire.
const verifierEntropyBytes = 32

// generateCodeVerifier returns a fresh random PKCE code verifier. The
// verifier rides a short-lived cookie until the provider calls back.
func generateCodeVerifier() (string, error) {
	raw := make([]byte, verifierEntropyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// computeS256Challenge derives the challenge the backend checks the verifier
// against during the code exchange.
func computeS256Challenge(verifier string) string {
	digest := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(digest[:])
}
