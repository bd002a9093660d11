package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chirpyhq/chirpy/internal/service"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
	"github.com/chirpyhq/chirpy/pkg/httputil"
	"github.com/chirpyhq/chirpy/pkg/validator"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	users  *service.UserService
	auth   *service.AuthService
	logger *slog.Logger
}

// NewUserHandler creates a new user HTTP handler.
func NewUserHandler(users *service.UserService, auth *service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, auth: auth, logger: logger}
}

// CredentialsRequest is the JSON request body for creating a user and for
// replacing the authenticated user's credentials.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// Create handles POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.BadRequest("invalid request body"), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, apperrors.BadRequest(err.Error()), h.logger)
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, user)
}

// Update handles PUT /users
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.BadRequest("invalid request body"), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, apperrors.BadRequest(err.Error()), h.logger)
		return
	}

	user, err := h.auth.UpdateCredentials(r.Context(), userID, service.UpdateCredentialsInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}
