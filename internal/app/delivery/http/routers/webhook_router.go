package routers

import (
	"checkout-service/internal/app/delivery/http/controllers"
	"checkout-service/internal/app/delivery/http/middlewares"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// attachWebhookRouter exposes the gateway notification endpoint. It has no
// requester identity, the HMAC signature is its only authentication.
func attachWebhookRouter(router chi.Router, middlewares *middlewares.Middlewares, limiter *middlewares.RateLimiter, ctrl *controllers.WebhookController) {
	router.With(limiter.Limit, middlewares.BodyBuffer).Post("/payments", ctrl.HandlePaymentWebhook)
}

func attachAdminRouter(router chi.Router, middlewares *middlewares.Middlewares, normalLimiter, apiKeyLimiter func(http.Handler) http.Handler, ctrl *controllers.WebhookController) {
	router.Use(middlewares.RequireAPIKey)
	router.Use(middlewares.ConditionalRateLimit(normalLimiter, apiKeyLimiter))

	router.Post("/payments/{gatewayTransactionId}/resync", ctrl.Resync)
}
