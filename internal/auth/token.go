package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
)

// Issuer is the iss claim stamped into every access token.
const Issuer = "chirpy"

// TokenManager issues and verifies short-lived signed access tokens.
// Verification is a pure function of (token, secret, clock): no storage,
// no network, so verifiers scale horizontally.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given symmetric secret
// and lifetime ceiling.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured lifetime ceiling.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a signed HS256 token for the given subject. A requested
// lifetime in (0, ttl] shortens the token; anything else clamps to the
// ceiling, never longer.
func (m *TokenManager) Issue(userID string, requested time.Duration) (string, error) {
	lifetime := m.ttl
	if requested > 0 && requested < m.ttl {
		lifetime = requested
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates an access token, returning the subject user
// ID. Bad signature, wrong algorithm, past expiry, and an absent subject
// all fail Unauthorized.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid or expired token")
	}

	if claims.Subject == "" {
		return "", apperrors.Unauthorized("invalid or expired token")
	}

	return claims.Subject, nil
}

// refreshTokenBytes is the entropy of an opaque refresh token (256 bits).
const refreshTokenBytes = 32

// NewRefreshToken returns a new opaque, high-entropy refresh token.
func NewRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
