package middlewares

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/pkg/authtest"
	"checkout-service/internal/pkg/constvars"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestMiddlewares(internalConfig *config.InternalConfig) *Middlewares {
	return NewMiddlewares(zap.NewNop(), internalConfig, nil)
}

func TestRequireAPIKey(t *testing.T) {
	testAPIKey := "test-admin-api-key-12345"
	middlewares := newTestMiddlewares(&config.InternalConfig{
		App: config.App{AdminAPIKey: testAPIKey},
	})

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKeyAuth, ok := r.Context().Value(constvars.CONTEXT_API_KEY_AUTH).(bool)
		assert.True(t, ok, "CONTEXT_API_KEY_AUTH should be set")
		assert.True(t, apiKeyAuth, "CONTEXT_API_KEY_AUTH should be true")

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/payments/CHEC_1/resync", nil)
		req.Header.Set(constvars.HeaderXAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		middlewares.RequireAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid API key")
		assert.Equal(t, "success", rr.Body.String(), "should return success message")
	})

	t.Run("Missing API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/payments/CHEC_1/resync", nil)

		rr := httptest.NewRecorder()
		middlewares.RequireAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for missing API key")
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/payments/CHEC_1/resync", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		middlewares.RequireAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for invalid API key")
	})

	t.Run("Admin key not configured", func(t *testing.T) {
		unconfigured := newTestMiddlewares(&config.InternalConfig{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/payments/CHEC_1/resync", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "")

		rr := httptest.NewRecorder()
		unconfigured.RequireAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should reject every request when no admin key is set")
	})
}

func TestRequireAPIKey_HashedKey(t *testing.T) {
	hash := authtest.APIKeyHash(t, "hashed-admin-key")

	middlewares := newTestMiddlewares(&config.InternalConfig{
		App: config.App{AdminAPIKey: "plain-admin-key", AdminAPIKeyHash: hash},
	})
	handler := middlewares.RequireAPIKey(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		apiKey string
		want   int
	}{
		{"matches hash", "hashed-admin-key", http.StatusOK},
		{"plain key ignored when hash is set", "plain-admin-key", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/payments/CHEC_1/resync", nil)
			req.Header.Set(constvars.HeaderXAPIKey, tt.apiKey)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
		})
	}
}
