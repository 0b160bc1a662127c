package setup

import (
	"context"

	"github.com/gemchat-dev/gemchat/backend/internal/handler"
	"github.com/gemchat-dev/gemchat/backend/internal/service"
	"github.com/gemchat-dev/gemchat/backend/internal/storage/pg"
	"github.com/gemchat-dev/gemchat/backend/internal/utils/password"
	"github.com/gemchat-dev/gemchat/shared/config"
	"github.com/gemchat-dev/gemchat/shared/jwt"
	mw "github.com/gemchat-dev/gemchat/shared/middleware"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage // nil when built over another store
	Auth           service.AuthService
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
}

// SetupDependencies connects to PostgreSQL and wires the application on top of it.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	deps := Build(cfg, storage, storage, password.New(password.DefaultCost))
	deps.Storage = storage
	return deps, nil
}

// Build wires the service and HTTP layer over an arbitrary credential store.
func Build(cfg *config.Config, store service.AuthStorage, health handler.HealthChecker, hasher service.Hasher) *Dependencies {
	auth := service.NewAuth(store, hasher, jwt.New(cfg.JwtKey(), cfg.JwtTTL()))

	return &Dependencies{
		Config:         cfg,
		Auth:           auth,
		Handler:        handler.New(auth, cfg, health),
		AuthMiddleware: mw.NewAuth(auth),
	}
}
