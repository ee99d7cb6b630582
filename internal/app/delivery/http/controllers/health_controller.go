package controllers

import (
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/responses"
	"checkout-service/internal/pkg/utils"
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	Log    *zap.Logger
	Checks map[string]HealthCheck
}

func NewHealthController(logger *zap.Logger, checks map[string]HealthCheck) *HealthController {
	return &HealthController{
		Log:    logger,
		Checks: checks,
	}
}

func (ctrl *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(ctrl.Checks))
	for name := range ctrl.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	components := make(map[string]string, len(names))
	for _, name := range names {
		if err := ctrl.Checks[name](ctx); err != nil {
			ctrl.Log.Warn("HealthController.Health dependency unreachable",
				zap.String("component", name),
				zap.Error(err),
			)
			components[name] = constvars.ResponseError
			healthy = false
			continue
		}
		components[name] = constvars.ResponseSuccess
	}

	if healthy {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, components)
		return
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(constvars.StatusServiceUnavailable)
	json.NewEncoder(w).Encode(responses.ResponseDTO{
		Success: false,
		Message: constvars.HealthCheckDegradedMessage,
		Data:    components,
	})
}
