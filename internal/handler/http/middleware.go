package http

import (
	"context"
	"net/http"

	"github.com/chirpyhq/chirpy/internal/auth"
	"github.com/chirpyhq/chirpy/pkg/httputil"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFromContext returns the authenticated user ID, or "" if the request
// did not pass the Auth middleware.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// TokenVerifier validates an access token and returns the subject user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth requires a valid Bearer access token and stores the subject user ID
// in the request context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header)
			if err != nil {
				httputil.WriteError(w, r, err, nil)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				httputil.WriteError(w, r, err, nil)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContentTypeJSON sets the response content type for API routes.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
