// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives for the web frontend.
//
// # Architecture
//
// This package isolates security-sensitive code (cookie signing, token
// fingerprints, CSRF tokens) from the screen logic. The backend access token
// itself is opaque to us and is never signed or parsed here.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSessionCookie is returned for cookies that fail verification.
var ErrInvalidSessionCookie = errors.New("sec: invalid session cookie")

// SessionClaims is the payload of the browser session cookie.
//
// It carries nothing but the session id: the backend token stays on the
// server, so a stolen cookie never reveals it.
type SessionClaims struct {
	jwt.RegisteredClaims

	SessionID string `json:"sid"`
}

// CookieSigner signs and verifies browser session cookies using HS256.
type CookieSigner struct {
	secret []byte
	issuer string
}

// NewCookieSigner creates a new CookieSigner.
func NewCookieSigner(secret, issuer string) (*CookieSigner, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("sec: session secret must be at least 32 bytes, got %d", len(secret))
	}
	return &CookieSigner{secret: []byte(secret), issuer: issuer}, nil
}

// Sign creates a cookie value for the given session id.
func (signer *CookieSigner) Sign(sessionID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    signer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signer.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session cookie: %w", err)
	}

	return signed, nil
}

// Verify checks the signature, issuer and expiry of a cookie value and
// returns the session id it carries.
func (signer *CookieSigner) Verify(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return signer.secret, nil
	}, jwt.WithIssuer(signer.issuer), jwt.WithExpirationRequired())

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSessionCookie, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidSessionCookie
	}

	return claims.SessionID, nil
}
