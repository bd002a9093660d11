package auth

import (
	"net/http"
	"strings"

	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
)

// Scheme is an Authorization header scheme literal.
type Scheme string

const (
	// SchemeBearer carries an access token or a refresh token.
	SchemeBearer Scheme = "Bearer"
	// SchemeAPIKey carries the static key used by the payment webhook.
	SchemeAPIKey Scheme = "ApiKey"
)

// Credential is the scheme-tagged result of parsing an Authorization header.
type Credential struct {
	Scheme Scheme
	Token  string
}

// ParseAuthHeader splits the Authorization header into a scheme-tagged
// credential. The value must be exactly two space-separated tokens whose
// first token is a known scheme literal; anything else fails Unauthorized.
// Missing and malformed headers produce distinct messages.
func ParseAuthHeader(h http.Header) (Credential, error) {
	value := h.Get("Authorization")
	if value == "" {
		return Credential{}, apperrors.Unauthorized("missing authorization header")
	}

	parts := strings.Fields(value)
	if len(parts) != 2 {
		return Credential{}, apperrors.Unauthorized("malformed authorization header")
	}

	switch Scheme(parts[0]) {
	case SchemeBearer, SchemeAPIKey:
		return Credential{Scheme: Scheme(parts[0]), Token: parts[1]}, nil
	}
	return Credential{}, apperrors.Unauthorized("malformed authorization header")
}

// BearerToken extracts a Bearer credential, failing Unauthorized on any
// other scheme.
func BearerToken(h http.Header) (string, error) {
	cred, err := ParseAuthHeader(h)
	if err != nil {
		return "", err
	}
	if cred.Scheme != SchemeBearer {
		return "", apperrors.Unauthorized("authorization header must use the Bearer scheme")
	}
	return cred.Token, nil
}

// APIKey extracts an ApiKey credential, failing Unauthorized on any other
// scheme.
func APIKey(h http.Header) (string, error) {
	cred, err := ParseAuthHeader(h)
	if err != nil {
		return "", err
	}
	if cred.Scheme != SchemeAPIKey {
		return "", apperrors.Unauthorized("authorization header must use the ApiKey scheme")
	}
	return cred.Token, nil
}
