package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gemchat-dev/gemchat/shared/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog points the global logger at a buffer for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.InitializeTo(&buf, "debug", true)
	t.Cleanup(func() { logger.Initialize("info", false) })
	return &buf
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		writeBodyOnly bool
		expectedLevel string
	}{
		{"ok via body write", http.StatusOK, true, "INFO"},
		{"created", http.StatusCreated, false, "INFO"},
		{"client error", http.StatusBadRequest, false, "WARN"},
		{"not found", http.StatusNotFound, false, "WARN"},
		{"server error", http.StatusInternalServerError, false, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			handler := RequestID(Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !tt.writeBodyOnly {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte("x"))
			})))

			req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
			req.RemoteAddr = "192.0.2.7:5555"
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "http_request", entry["msg"])
			assert.Equal(t, tt.expectedLevel, entry["level"])
			assert.Equal(t, "POST", entry["method"])
			assert.Equal(t, "/api/login", entry["path"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, "192.0.2.7", entry["remote_ip"])
			assert.Equal(t, rr.Header().Get(RequestIDHeader), entry["request_id"])
			assert.Contains(t, entry, "duration_ms")
			assert.NotContains(t, entry, "user_id")
		})
	}
}

func TestStatusRecorder_FirstStatusWins(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	rec.WriteHeader(http.StatusTeapot)
	rec.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusTeapot, rec.statusCode)
}
