package middlewares

import (
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/utils"
	"context"
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

// RequireAPIKey guards operator endpoints. A configured bcrypt hash takes
// precedence over the plain key; with neither set the endpoints are closed.
func (m *Middlewares) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderXAPIKey)

		if !m.validAPIKey(apiKey) {
			utils.LogSecurityEvent(m.Log, "admin_api_key_rejected", utils.GetRequestID(r.Context()), "high",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTH, true)

		m.Log.Info("API Key authentication successful",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middlewares) validAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}
	if hash := m.InternalConfig.App.AdminAPIKeyHash; hash != "" {
		return utils.CheckAPIKeyHash(apiKey, hash)
	}
	expected := m.InternalConfig.App.AdminAPIKey
	return expected != "" && subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) == 1
}
