package routers

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/delivery/http/controllers"
	"checkout-service/internal/app/delivery/http/middlewares"
	"checkout-service/internal/pkg/constvars"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Controllers struct {
	Payment *controllers.PaymentController
	Webhook *controllers.WebhookController
	Health  *controllers.HealthController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	accessLogger *logrus.Logger,
	gatherer prometheus.Gatherer,
	ctrls Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderAuthorization,
			constvars.HeaderContentType,
			constvars.HeaderXRequestID,
		},
		ExposedHeaders: []string{constvars.HeaderXRequestID},
		MaxAge:         300,
	}

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.Logging)
	router.Use(middlewares.RequestLogger(accessLogger))
	router.Use(middlewares.Instrument)
	router.Use(cors.Handler(corsOptions))

	router.Get("/healthz", ctrls.Health.Health)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	normalLimiter, apiKeyLimiter := middlewares.CreateRateLimiters()
	webhookLimiter := newWebhookLimiter(internalConfig, middlewares)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/payments", func(r chi.Router) {
			attachPaymentRouter(r, middlewares, normalLimiter, ctrls.Payment)
		})

		r.Route("/webhooks", func(r chi.Router) {
			attachWebhookRouter(r, middlewares, webhookLimiter, ctrls.Webhook)
		})

		r.Route("/admin", func(r chi.Router) {
			attachAdminRouter(r, middlewares, normalLimiter, apiKeyLimiter, ctrls.Webhook)
		})
	})
}

func newWebhookLimiter(internalConfig *config.InternalConfig, m *middlewares.Middlewares) *middlewares.RateLimiter {
	window := time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	blockTime := time.Duration(internalConfig.Webhook.BlockTimeInSeconds) * time.Second
	return middlewares.NewRateLimiter(internalConfig.Webhook.MaxRequests, window, blockTime, m.Log)
}
