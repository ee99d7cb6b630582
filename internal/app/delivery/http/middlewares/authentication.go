package middlewares

import (
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/utils"
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the requester from an HS256 bearer token. Guests
// carry a token whose requester_type claim is "guest"; anything else is a
// registered user.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(header, constvars.AuthorizationBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRequesterMissing())
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, constvars.AuthorizationBearerPrefix))
		claims, err := utils.ParseRequesterJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.LogSecurityEvent(m.Log, "requester_token_rejected", utils.GetRequestID(r.Context()), "medium",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		requesterType := constvars.RequesterTypeUser
		if claims.RequesterType == constvars.RequesterTypeGuest {
			requesterType = constvars.RequesterTypeGuest
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUESTER_ID_KEY, claims.Subject)
		ctx = context.WithValue(ctx, constvars.CONTEXT_REQUESTER_TYPE_KEY, requesterType)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
