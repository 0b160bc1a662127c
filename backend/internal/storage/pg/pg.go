package pg

import (
	"context"
	"database/sql"
	"time"

	"github.com/gemchat-dev/gemchat/shared/config"
	"github.com/gemchat-dev/gemchat/shared/logger"
	sharedpg "github.com/gemchat-dev/gemchat/shared/storage/pg"
)

// queryTimeout bounds every credential store call.
const queryTimeout = 5 * time.Second

type Storage struct {
	db *sql.DB
}

// New connects to the credential store and, when configured, brings the schema up to date.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to database")
	db, err := sharedpg.Connect(ctx, cfg.Private.DatabaseURL, sharedpg.PoolConfig(cfg.Public.PgPool))
	if err != nil {
		return nil, err
	}
	logger.Log.Info("connected to PostgreSQL database")

	if cfg.Public.AutoMigrate {
		if err := RunMigrations(cfg.Private.DatabaseURL); err != nil {
			db.Close()
			return nil, err
		}
		logger.Log.Info("database migrations applied")
	}

	return &Storage{db: db}, nil
}

// Ping reports whether the database is reachable; used by the readiness probe.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return sharedpg.WithTx(ctx, s.db, fn)
}
