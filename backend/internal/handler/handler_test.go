package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gemchat-dev/gemchat/shared/config"
	"github.com/gemchat-dev/gemchat/shared/domain"
)

// --- Mocks ---

type MockAuthService struct {
	RegisterFunc      func(ctx context.Context, creds domain.Credentials) (domain.User, error)
	LoginFunc         func(ctx context.Context, creds domain.Credentials) (string, error)
	VerifyRequestFunc func(header string) (*domain.Claims, error)
}

func (m *MockAuthService) Register(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, creds)
	}
	return domain.User{Id: 1, Email: creds.Email}, nil
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return "test_token", nil
}

func (m *MockAuthService) VerifyRequest(header string) (*domain.Claims, error) {
	if m.VerifyRequestFunc != nil {
		return m.VerifyRequestFunc(header)
	}
	return &domain.Claims{Id: 1, Email: "test@example.com"}, nil
}

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil // Default: healthy
}

// --- Helpers ---

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Public.StaticDir = ""
	cfg.Private.DatabaseURL = "postgres://test"
	cfg.Private.JwtKey = "test"
	cfg.Private.GoogleAPIKey = "g-key"
	return cfg
}

func createRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, url, bytes.NewBuffer(body))
}

func timeAt(unix int64) time.Time {
	return time.Unix(unix, 0)
}
