package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Private.GoogleAPIKey = "AIza-test"
	h := New(&MockAuthService{}, cfg, &MockHealthChecker{})

	rr := httptest.NewRecorder()
	h.GetConfig(rr, createRequest(t, http.MethodGet, "/api/config", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"googleApiKey":"AIza-test"}`, rr.Body.String())
}

func TestGetConfig_EmptyKey(t *testing.T) {
	cfg := testConfig()
	cfg.Private.GoogleAPIKey = ""
	h := New(&MockAuthService{}, cfg, &MockHealthChecker{})

	rr := httptest.NewRecorder()
	h.GetConfig(rr, createRequest(t, http.MethodGet, "/api/config", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"googleApiKey":""}`, rr.Body.String())
}
