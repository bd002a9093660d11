package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chirpyhq/chirpy/internal/domain"
	"github.com/chirpyhq/chirpy/internal/service"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
	"github.com/chirpyhq/chirpy/pkg/httputil"
)

// ChirpHandler handles HTTP requests for chirps.
type ChirpHandler struct {
	chirps *service.ChirpService
	logger *slog.Logger
}

// NewChirpHandler creates a new chirp HTTP handler.
func NewChirpHandler(chirps *service.ChirpService, logger *slog.Logger) *ChirpHandler {
	return &ChirpHandler{chirps: chirps, logger: logger}
}

// CreateChirpRequest is the JSON request body for posting a chirp.
type CreateChirpRequest struct {
	Body string `json:"body"`
}

// Create handles POST /chirps
func (h *ChirpHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req CreateChirpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.BadRequest("invalid request body"), h.logger)
		return
	}

	chirp, err := h.chirps.Create(r.Context(), service.CreateInput{
		Body:   req.Body,
		UserID: userID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, chirp)
}

// List handles GET /chirps. Optional query parameters: author_id narrows to
// one author, sort=desc reverses the default oldest-first order.
func (h *ChirpHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ChirpFilter{
		AuthorID: r.URL.Query().Get("author_id"),
	}
	if r.URL.Query().Get("sort") == "desc" {
		filter.Sort = domain.ChirpSortDesc
	}

	chirps, err := h.chirps.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, chirps)
}

// Get handles GET /chirps/{chirpID}
func (h *ChirpHandler) Get(w http.ResponseWriter, r *http.Request) {
	chirp, err := h.chirps.Get(r.Context(), chi.URLParam(r, "chirpID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, chirp)
}

// Delete handles DELETE /chirps/{chirpID}
func (h *ChirpHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	if err := h.chirps.Delete(r.Context(), chi.URLParam(r, "chirpID"), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
