package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/auth"
)

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret-key",
		Issuer:     "test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_SkipPaths(t *testing.T) {
	handler := Auth(newTestJWTService(t), []string{"/healthz", "/metrics"})(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "basic scheme", header: "Basic abc123"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth(newTestJWTService(t), nil)(okHandler())
			req := httptest.NewRequest(http.MethodPost, "/fraud-detection/analyze-text", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error":"UNAUTHORIZED"`)
			assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestAuth_PreflightPassesThrough(t *testing.T) {
	handler := Auth(newTestJWTService(t), nil)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/fraud-detection/analyze-text", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_ValidTokenPopulatesClaims(t *testing.T) {
	svc := newTestJWTService(t)
	token, err := svc.GenerateToken("client-1", []string{auth.ScopeAnalyze})
	require.NoError(t, err)

	var subject string
	handler := Auth(svc, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		require.True(t, ok)
		subject = claims.Subject
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/fraud-detection/analyze-text", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "client-1", subject)
}

func TestRequireScope(t *testing.T) {
	svc := newTestJWTService(t)
	readOnly, err := svc.GenerateToken("reader", []string{auth.ScopeRead})
	require.NoError(t, err)
	analyzer, err := svc.GenerateToken("analyzer", []string{auth.ScopeAnalyze})
	require.NoError(t, err)

	handler := Auth(svc, nil)(RequireScope(auth.ScopeAnalyze, okHandler()))

	for token, want := range map[string]int{readOnly: http.StatusForbidden, analyzer: http.StatusOK} {
		req := httptest.NewRequest(http.MethodPost, "/fraud-detection/analyze-text", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code)
	}

	// Without the auth middleware there are no claims to check.
	rec := httptest.NewRecorder()
	RequireScope(auth.ScopeAnalyze, okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
