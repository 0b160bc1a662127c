package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Port               string        `yaml:"port" validate:"required,numeric"`
	JwtTTL             time.Duration `yaml:"jwt_ttl" validate:"gt=0"`
	LogLevel           string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogJSON            bool          `yaml:"log_json"`
	StaticDir          string        `yaml:"static_dir"`             // chat UI assets, empty disables static serving
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`   // defaults to any origin
	ConfigRequiresAuth bool          `yaml:"config_requires_auth"`   // gate /api/config behind bearer auth
	AutoMigrate        bool          `yaml:"auto_migrate"`           // apply embedded migrations on startup
	HTTPS              bool          `yaml:"https"`                  // served behind TLS, enables HSTS
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	PgPool             PgPool        `yaml:"pg_pool"`
}

type PgPool struct {
	MaxOpenConns    int           `yaml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" validate:"gte=0"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" validate:"gte=0"`
}

type Private struct {
	DatabaseURL  string `yaml:"database_url" validate:"required"`
	JwtKey       string `yaml:"jwt_key" validate:"required"`
	GoogleAPIKey string `yaml:"google_api_key"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

// Default returns the configuration used when neither files nor environment say otherwise.
func Default() *Config {
	return &Config{
		Public: Public{
			Port:               "3000",
			JwtTTL:             time.Hour,
			LogLevel:           "info",
			StaticDir:          "public",
			CORSAllowedOrigins: []string{"*"},
			AutoMigrate:        true,
			ShutdownTimeout:    30 * time.Second,
			PgPool: PgPool{
				MaxOpenConns:    25,
				MaxIdleConns:    10,
				ConnMaxLifetime: 5 * time.Minute,
				ConnMaxIdleTime: 1 * time.Minute,
			},
		},
	}
}

// Load builds the configuration in layers: defaults, then public.yaml and private.yaml
// from configFolder (each optional), then .env, then the process environment.
func Load(configFolder string) (*Config, error) {
	cfg := Default()

	if configFolder != "" {
		if err := loadPath(path.Join(configFolder, "public.yaml"), &cfg.Public); err != nil {
			return nil, err
		}
		if err := loadPath(path.Join(configFolder, "private.yaml"), &cfg.Private); err != nil {
			return nil, err
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("can't load .env: %w", err)
	}
	applyEnv(cfg)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func loadPath(configPath string, output interface{}) error {
	configFile, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Public.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Public.LogLevel = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Private.DatabaseURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Private.JwtKey = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.Private.GoogleAPIKey = v
	}
	if os.Getenv("NODE_ENV") == "production" {
		cfg.Private.DatabaseURL = requireSSL(cfg.Private.DatabaseURL)
	}
}

// requireSSL adds sslmode=require unless the connection string already picks a mode.
// Accepts both URL and key=value forms.
func requireSSL(dsn string) string {
	if dsn == "" || strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		q := u.Query()
		q.Set("sslmode", "require")
		u.RawQuery = q.Encode()
		return u.String()
	}
	return dsn + " sslmode=require"
}
