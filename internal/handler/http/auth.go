package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/chirpyhq/chirpy/internal/auth"
	"github.com/chirpyhq/chirpy/internal/service"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
	"github.com/chirpyhq/chirpy/pkg/httputil"
)

// AuthHandler handles HTTP requests for login and token lifecycle.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, logger: logger}
}

// LoginRequest is the JSON request body for login. ExpiresInSeconds
// optionally requests a shorter access token lifetime.
type LoginRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	ExpiresInSeconds int64  `json:"expires_in_seconds"`
}

// LoginResponse is the user plus a fresh token pair.
type LoginResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	IsChirpyRed  bool      `json:"is_chirpy_red"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
}

// RefreshResponse carries a fresh access token.
type RefreshResponse struct {
	Token string `json:"token"`
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.BadRequest("invalid request body"), h.logger)
		return
	}

	session, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		ExpiresIn: time.Duration(req.ExpiresInSeconds) * time.Second,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		ID:           session.User.ID,
		Email:        session.User.Email,
		IsChirpyRed:  session.User.IsChirpyRed,
		CreatedAt:    session.User.CreatedAt,
		UpdatedAt:    session.User.UpdatedAt,
		Token:        session.AccessToken,
		RefreshToken: session.RefreshToken,
	})
}

// Refresh handles POST /refresh. The Bearer token here is the opaque
// refresh token, not a JWT.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := auth.BearerToken(r.Header)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	accessToken, err := h.auth.Refresh(r.Context(), refreshToken)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, RefreshResponse{Token: accessToken})
}

// Revoke handles POST /revoke. Revocation is idempotent: unknown tokens
// still get a 204.
func (h *AuthHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := auth.BearerToken(r.Header)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.auth.Revoke(r.Context(), refreshToken); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
