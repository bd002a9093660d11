package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chirpyhq/chirpy/internal/service"
	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
	"github.com/chirpyhq/chirpy/pkg/httputil"
)

const adminMetricsTemplate = `<html>
<body>
<h1>Welcome, Chirpy Admin</h1>
<p>Chirpy has been visited %d times!</p>
</body>
</html>`

// AdminHandler handles the admin hit-counter page and the development-only
// reset endpoint.
type AdminHandler struct {
	users       *service.UserService
	counter     *HitCounter
	development bool
	logger      *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler. The reset endpoint is
// only functional when development is true.
func NewAdminHandler(users *service.UserService, counter *HitCounter, development bool, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		users:       users,
		counter:     counter,
		development: development,
		logger:      logger,
	}
}

// Metrics handles GET /admin/metrics
func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, adminMetricsTemplate, h.counter.Count())
}

// Reset handles POST /admin/reset. It wipes every persisted row and zeroes
// the hit counter. Outside the development platform it always refuses.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !h.development {
		httputil.WriteError(w, r, apperrors.Forbidden("reset is only allowed in development"), h.logger)
		return
	}

	if err := h.users.Reset(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.counter.Reset()

	w.WriteHeader(http.StatusOK)
}
