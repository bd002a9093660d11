package http

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chirpyhq/chirpy/internal/auth"
	"github.com/chirpyhq/chirpy/internal/service"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
	"github.com/chirpyhq/chirpy/pkg/httputil"
)

// eventUserUpgraded is the only Polka event this service acts on.
const eventUserUpgraded = "user.upgraded"

// WebhookHandler handles payment provider webhooks.
type WebhookHandler struct {
	users    *service.UserService
	polkaKey string
	logger   *slog.Logger
}

// NewWebhookHandler creates a new webhook HTTP handler.
func NewWebhookHandler(users *service.UserService, polkaKey string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{users: users, polkaKey: polkaKey, logger: logger}
}

// PolkaWebhookRequest is the JSON request body Polka sends.
type PolkaWebhookRequest struct {
	Event string `json:"event"`
	Data  struct {
		UserID string `json:"user_id"`
	} `json:"data"`
}

// Polka handles POST /polka/webhooks. The API key is checked before the
// payload is read; unrecognized events are acknowledged without action so
// Polka does not retry them.
func (h *WebhookHandler) Polka(w http.ResponseWriter, r *http.Request) {
	key, err := auth.APIKey(r.Header)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if subtle.ConstantTimeCompare([]byte(key), []byte(h.polkaKey)) != 1 {
		httputil.WriteError(w, r, apperrors.Unauthorized("invalid api key"), h.logger)
		return
	}

	var req PolkaWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.BadRequest("invalid request body"), h.logger)
		return
	}

	if req.Event != eventUserUpgraded {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if req.Data.UserID == "" {
		httputil.WriteError(w, r, apperrors.BadRequest("user_id is required"), h.logger)
		return
	}

	if err := h.users.UpgradeToChirpyRed(r.Context(), req.Data.UserID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
