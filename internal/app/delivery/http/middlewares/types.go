package middlewares

import (
	"checkout-service/internal/app/config"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	httpMetrics    *httpMetrics
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, registerer prometheus.Registerer) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		httpMetrics:    newHTTPMetrics(registerer),
	}
}
