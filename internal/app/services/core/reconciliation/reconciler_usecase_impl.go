package reconciliation

import (
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/responses"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/utils"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const auditTimeout = 5 * time.Second

type reconcilerUsecase struct {
	Verifier               contracts.WebhookVerifier
	PaymentGateway         contracts.PaymentGatewayService
	TransactionRepository  contracts.TransactionRepository
	WebhookEventRepository contracts.WebhookEventRepository
	NotificationUsecase    contracts.NotificationUsecase
	Metrics                contracts.PaymentMetrics
	Log                    *zap.Logger
}

type ReconcilerUsecaseDeps struct {
	Verifier               contracts.WebhookVerifier
	PaymentGateway         contracts.PaymentGatewayService
	TransactionRepository  contracts.TransactionRepository
	WebhookEventRepository contracts.WebhookEventRepository
	NotificationUsecase    contracts.NotificationUsecase
	Metrics                contracts.PaymentMetrics
}

func NewReconcilerUsecase(deps ReconcilerUsecaseDeps, logger *zap.Logger) contracts.ReconcilerUsecase {
	return &reconcilerUsecase{
		Verifier:               deps.Verifier,
		PaymentGateway:         deps.PaymentGateway,
		TransactionRepository:  deps.TransactionRepository,
		WebhookEventRepository: deps.WebhookEventRepository,
		NotificationUsecase:    deps.NotificationUsecase,
		Metrics:                deps.Metrics,
		Log:                    logger,
	}
}

// HandlePaymentWebhook verifies rawBody against signature before anything
// else. checkoutID may be empty, the id is then read from the body.
func (uc *reconcilerUsecase) HandlePaymentWebhook(ctx context.Context, rawBody []byte, signature, checkoutID string) (*responses.PaymentWebhookResult, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("reconcilerUsecase.HandlePaymentWebhook called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingGatewayTransactionIDKey, checkoutID),
	)

	event := &models.WebhookEvent{
		RequestID:            requestID,
		Source:               models.WebhookEventSourceNotification,
		GatewayTransactionID: checkoutID,
		RawBody:              string(rawBody),
		ReceivedAt:           time.Now(),
	}

	if err := uc.Verifier.Verify(rawBody, signature); err != nil {
		utils.LogSecurityEvent(uc.Log, "payment_webhook_signature_rejected", requestID, "high",
			zap.String(constvars.LoggingGatewayTransactionIDKey, checkoutID),
		)
		uc.finish(ctx, event, constvars.WebhookOutcomeFailed, err)
		return nil, err
	}
	event.SignatureValid = true

	if checkoutID == "" {
		if !gjson.ValidBytes(rawBody) {
			customErr := exceptions.ErrCannotParseJSON(errors.New(constvars.ErrDevWebhookBodyNotJSON))
			uc.finish(ctx, event, constvars.WebhookOutcomeFailed, customErr)
			return nil, customErr
		}
		checkoutID = strings.TrimSpace(gjson.GetBytes(rawBody, constvars.WebhookBodyIDPath).String())
		event.GatewayTransactionID = checkoutID
	}
	if checkoutID == "" {
		err := exceptions.ErrMissingURLParam(constvars.QueryParamCheckoutID)
		uc.finish(ctx, event, constvars.WebhookOutcomeFailed, err)
		return nil, err
	}

	return uc.reconcile(ctx, checkoutID, event)
}

// Resync reconciles a transaction on operator request. It reads the same
// gateway state a notification would trigger, without a signature.
func (uc *reconcilerUsecase) Resync(ctx context.Context, gatewayTransactionID string) (*responses.PaymentWebhookResult, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("reconcilerUsecase.Resync called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingGatewayTransactionIDKey, gatewayTransactionID),
	)

	event := &models.WebhookEvent{
		RequestID:            requestID,
		Source:               models.WebhookEventSourceResync,
		GatewayTransactionID: gatewayTransactionID,
		ReceivedAt:           time.Now(),
	}
	return uc.reconcile(ctx, gatewayTransactionID, event)
}

func (uc *reconcilerUsecase) reconcile(ctx context.Context, gatewayTransactionID string, event *models.WebhookEvent) (*responses.PaymentWebhookResult, error) {
	requestID := utils.GetRequestID(ctx)

	details, err := uc.PaymentGateway.GetCheckoutDetails(ctx, gatewayTransactionID)
	if err != nil {
		err = normalizeGatewayError(err)
		uc.Log.Error("reconcilerUsecase.reconcile failed to fetch gateway details",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingGatewayTransactionIDKey, gatewayTransactionID),
			zap.Error(err),
		)
		uc.finish(ctx, event, constvars.WebhookOutcomeFailed, err)
		return nil, err
	}

	gatewayStatus := models.ExtractGatewayStatus(details.Status, details.ChargeStatuses())
	canonical := models.MapGatewayStatus(gatewayStatus)
	event.GatewayStatus = gatewayStatus
	event.CanonicalStatus = canonical.String()

	transaction, err := uc.TransactionRepository.FindByGatewayTransactionID(ctx, gatewayTransactionID)
	if err == nil && transaction == nil {
		err = exceptions.ErrTransactionNotFound(nil, gatewayTransactionID)
	}
	if err != nil {
		uc.Log.Error("reconcilerUsecase.reconcile transaction lookup failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingGatewayTransactionIDKey, gatewayTransactionID),
			zap.Error(err),
		)
		uc.finish(ctx, event, constvars.WebhookOutcomeFailed, err)
		return nil, err
	}

	order := transaction.Order
	previous := order.Status
	event.PreviousStatus = previous.String()

	result := &responses.PaymentWebhookResult{
		GatewayTransactionID: gatewayTransactionID,
		GatewayStatus:        gatewayStatus,
		Status:               canonical.String(),
		PreviousStatus:       previous.String(),
	}

	logFields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
		zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
		zap.String(constvars.LoggingGatewayStatusKey, gatewayStatus),
		zap.String(constvars.LoggingCanonicalStatusKey, canonical.String()),
		zap.String(constvars.LoggingOrderStatusKey, previous.String()),
	}

	if transaction.Status == canonical.String() && previous == canonical {
		uc.Log.Info("reconcilerUsecase.reconcile status already applied", logFields...)
		result.AlreadyUpdated = true
		uc.finish(ctx, event, constvars.WebhookOutcomeAlreadyApplied, nil)
		return result, nil
	}

	if previous != canonical && !previous.CanTransitionTo(canonical) {
		uc.Log.Warn("reconcilerUsecase.reconcile stale status ignored", logFields...)
		result.Ignored = true
		uc.finish(ctx, event, constvars.WebhookOutcomeIgnored, nil)
		return result, nil
	}

	if err := uc.TransactionRepository.UpdateStatusWithOrder(ctx, transaction.ID, order.ID, canonical); err != nil {
		uc.Log.Error("reconcilerUsecase.reconcile status update failed", append(logFields, zap.Error(err))...)
		uc.finish(ctx, event, constvars.WebhookOutcomeFailed, err)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "payment_status_reconciled", requestID, logFields[1:]...)
	uc.finish(ctx, event, constvars.WebhookOutcomeApplied, nil)

	if previous != canonical {
		order.Status = canonical
		uc.NotificationUsecase.NotifyOrderStatus(ctx, order, canonical)
	}
	return result, nil
}

// finish records the outcome in metrics and the audit trail. The audit write
// cannot change the outcome.
func (uc *reconcilerUsecase) finish(ctx context.Context, event *models.WebhookEvent, outcome string, cause error) {
	uc.Metrics.IncWebhook(outcome)

	event.Outcome = outcome
	if cause != nil {
		event.Error = cause.Error()
	}
	if uc.WebhookEventRepository == nil {
		return
	}

	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	if err := uc.WebhookEventRepository.Insert(auditCtx, event); err != nil {
		uc.Log.Warn("reconcilerUsecase.finish failed to store webhook event",
			zap.String(constvars.LoggingRequestIDKey, event.RequestID),
			zap.String(constvars.LoggingGatewayTransactionIDKey, event.GatewayTransactionID),
			zap.Error(err),
		)
	}
}

func normalizeGatewayError(err error) error {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return err
	}
	return exceptions.ErrGatewayRequest(err, constvars.OperationReconcile)
}
