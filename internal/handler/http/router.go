package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chirpyhq/chirpy/internal/service"
	"github.com/chirpyhq/chirpy/pkg/health"
	"github.com/chirpyhq/chirpy/pkg/middleware"
)

// RouterConfig carries the handler-level settings the router needs.
type RouterConfig struct {
	StaticDir   string
	PolkaKey    string
	Development bool
}

// NewRouter creates a chi router with all chirpy routes registered.
func NewRouter(
	userService *service.UserService,
	authService *service.AuthService,
	chirpService *service.ChirpService,
	verifier TokenVerifier,
	healthHandler *health.Handler,
	counter *HitCounter,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("chirpy"))

	// Health check and Prometheus endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Static site with hit counting
	r.Handle("/app", StaticSite(cfg.StaticDir, counter))
	r.Handle("/app/*", StaticSite(cfg.StaticDir, counter))

	userHandler := NewUserHandler(userService, authService, logger)
	authHandler := NewAuthHandler(authService, logger)
	chirpHandler := NewChirpHandler(chirpService, logger)
	webhookHandler := NewWebhookHandler(userService, cfg.PolkaKey, logger)
	adminHandler := NewAdminHandler(userService, counter, cfg.Development, logger)

	// Public API endpoints
	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/users", userHandler.Create)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/revoke", authHandler.Revoke)
		r.Get("/chirps", chirpHandler.List)
		r.Get("/chirps/{chirpID}", chirpHandler.Get)
		r.Post("/polka/webhooks", webhookHandler.Polka)
	})

	// Endpoints requiring a valid access token
	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(Auth(verifier))

		r.Put("/users", userHandler.Update)
		r.Post("/chirps", chirpHandler.Create)
		r.Delete("/chirps/{chirpID}", chirpHandler.Delete)
	})

	// Admin endpoints
	r.Get("/admin/metrics", adminHandler.Metrics)
	r.Post("/admin/reset", adminHandler.Reset)

	return r
}
