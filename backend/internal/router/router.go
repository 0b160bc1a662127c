package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gemchat-dev/gemchat/backend/internal/setup"
	mw "github.com/gemchat-dev/gemchat/shared/middleware"
	"github.com/gemchat-dev/gemchat/shared/middleware/metrics"
)

// New creates the chi router with all routes.
// NotFound must be registered before Route so the /api subrouter inherits it.
func New(deps *setup.Dependencies) http.Handler {
	cfg := deps.Config.Public
	h := deps.Handler
	authMw := deps.AuthMiddleware

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Recovery)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{mw.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(chimw.Compress(5))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		// JSON only, no scripts/styles needed
		api.Use(mw.SecurityHeadersWithCSP(cfg.HTTPS, mw.APIContentSecurityPolicy))

		api.Post("/register", h.Register)
		api.Post("/login", h.Login)
		api.With(authMw.NeedAuth()).Get("/user", h.User)

		if cfg.ConfigRequiresAuth {
			api.With(authMw.NeedAuth()).Get("/config", h.GetConfig)
		} else {
			api.Get("/config", h.GetConfig)
		}
	})

	return r
}
