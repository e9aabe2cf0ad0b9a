// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// csrfAlphabet matches the character set the backend uses for its own tokens.
const csrfAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CSRFTokenLength is the length of a double-submit CSRF token.
const CSRFTokenLength = 32

// TokenFingerprint returns a short, stable, non-reversible id for an access
// token. It keys per-token cache entries so raw tokens never reach Redis.
func TokenFingerprint(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}

// NewCSRFToken returns a fresh random token for the csrftoken cookie and the
// matching X-CSRFToken header.
func NewCSRFToken() (string, error) {
	raw := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	for i, b := range raw {
		raw[i] = csrfAlphabet[int(b)%len(csrfAlphabet)]
	}
	return string(raw), nil
}
