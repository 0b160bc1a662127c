package handler

import (
	"context"
	"net/http"

	"github.com/gemchat-dev/gemchat/backend/internal/service"
	"github.com/gemchat-dev/gemchat/shared/config"
)

// request bodies are two short strings
const maxBodyBytes = 1 << 20

// HealthChecker reports whether the credential store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth   service.AuthService
	cfg    *config.Config
	health HealthChecker
	static http.Handler // nil when static serving is disabled
}

func New(auth service.AuthService, cfg *config.Config, health HealthChecker) *Handler {
	h := &Handler{auth: auth, cfg: cfg, health: health}
	if cfg.Public.StaticDir != "" {
		h.static = http.FileServer(http.Dir(cfg.Public.StaticDir))
	}
	return h
}
