package controllers

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/responses"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/utils"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WebhookController struct {
	Log               *zap.Logger
	ReconcilerUsecase contracts.ReconcilerUsecase
	InternalConfig    *config.InternalConfig
}

func NewWebhookController(logger *zap.Logger, reconcilerUsecase contracts.ReconcilerUsecase, internalConfig *config.InternalConfig) *WebhookController {
	return &WebhookController{
		Log:               logger,
		ReconcilerUsecase: reconcilerUsecase,
		InternalConfig:    internalConfig,
	}
}

// HandlePaymentWebhook passes the body bytes through untouched, the signature
// covers them exactly as received.
func (ctrl *WebhookController) HandlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	utils.LogSecurityEvent(ctrl.Log, "payment_webhook_received", requestID, "info",
		zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		zap.String(constvars.LoggingUserAgentKey, r.UserAgent()),
	)

	rawBody, ok := r.Context().Value(constvars.CONTEXT_RAW_BODY).([]byte)
	if !ok {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrReadBody(err))
			return
		}
		rawBody = body
	}

	signature := r.Header.Get(constvars.HeaderXSignature)
	checkoutID := strings.TrimSpace(r.URL.Query().Get(constvars.QueryParamCheckoutID))

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.ReconcilerUsecase.HandlePaymentWebhook(ctx, rawBody, signature, checkoutID)
	if err != nil {
		ctrl.Log.Error("WebhookController.HandlePaymentWebhook failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingGatewayTransactionIDKey, checkoutID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, webhookResultMessage(result), result)
}

func (ctrl *WebhookController) Resync(w http.ResponseWriter, r *http.Request) {
	gatewayTransactionID := chi.URLParam(r, constvars.URLParamGatewayTransactionID)
	if gatewayTransactionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingURLParam(constvars.URLParamGatewayTransactionID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.ReconcilerUsecase.Resync(ctx, gatewayTransactionID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentResyncSuccessMessage, result)
}

func webhookResultMessage(result *responses.PaymentWebhookResult) string {
	switch {
	case result.AlreadyUpdated:
		return constvars.PaymentWebhookAlreadyUpdatedMessage
	case result.Ignored:
		return constvars.PaymentWebhookIgnoredMessage
	default:
		return constvars.PaymentWebhookProcessedMessage
	}
}
