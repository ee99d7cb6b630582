package controllers

import (
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultRequestTimeout = 30 * time.Second

func requestTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(seconds) * time.Second
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	var customErr *exceptions.CustomError
	if errors.Is(err, context.DeadlineExceeded) && !errors.As(err, &customErr) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
