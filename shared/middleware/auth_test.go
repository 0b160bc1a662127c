package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gemchat-dev/gemchat/shared/domain"
	internal_errors "github.com/gemchat-dev/gemchat/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockVerifier struct {
	VerifyRequestFunc func(header string) (*domain.Claims, error)
}

func (m *MockVerifier) VerifyRequest(header string) (*domain.Claims, error) {
	return m.VerifyRequestFunc(header)
}

func TestNeedAuth(t *testing.T) {
	verifier := &MockVerifier{VerifyRequestFunc: func(header string) (*domain.Claims, error) {
		switch header {
		case "Bearer good":
			return &domain.Claims{Id: 5, Email: "a@b.co"}, nil
		case "":
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Unauthorized: No token provided", StatusCode: http.StatusUnauthorized, Err: internal_errors.ErrMissingToken}
		default:
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Unauthorized: Invalid token", StatusCode: http.StatusForbidden, Err: internal_errors.ErrInvalidSignature}
		}
	}}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
		expectedUser   *domain.Claims
	}{
		{
			name:           "Valid token",
			header:         "Bearer good",
			expectedStatus: http.StatusOK,
			expectedUser:   &domain.Claims{Id: 5, Email: "a@b.co"},
		},
		{
			name:           "No token",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Unauthorized: No token provided"}`,
		},
		{
			name:           "Invalid token",
			header:         "Bearer bad",
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"Unauthorized: Invalid token"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			var gotUser *domain.Claims
			reached := false
			handler := NewAuth(verifier).NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				gotUser = GetUserFromContext(r)
				w.WriteHeader(http.StatusOK)
			}))
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedUser != nil {
				require.True(t, reached)
				require.NotNil(t, gotUser)
				assert.Equal(t, tt.expectedUser.Id, gotUser.Id)
				assert.Equal(t, tt.expectedUser.Email, gotUser.Email)
				return
			}
			assert.False(t, reached, "next handler must not run")
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestGetUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetUserFromContext(req))
}

func TestNeedAuth_UserIdReachesAccessLog(t *testing.T) {
	buf := captureLog(t)
	verifier := &MockVerifier{VerifyRequestFunc: func(string) (*domain.Claims, error) {
		return &domain.Claims{Id: 42, Email: "a@b.co"}, nil
	}}
	handler := Logging(NewAuth(verifier).NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Authorization", "Bearer x")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(42), entry["user_id"])
}
