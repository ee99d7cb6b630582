package notifications

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/utils"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const defaultNotificationTimeout = 10 * time.Second

type notificationUsecase struct {
	MailerService  contracts.MailerService
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewNotificationUsecase(mailerService contracts.MailerService, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.NotificationUsecase {
	return &notificationUsecase{
		MailerService:  mailerService,
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

// NotifyOrderStatus sends the confirmation or cancellation email for the
// order. Other statuses are not notified.
func (uc *notificationUsecase) NotifyOrderStatus(ctx context.Context, order *models.Order, status models.OrderStatus) {
	requestID := utils.GetRequestID(ctx)

	var subject, template string
	switch status {
	case models.OrderStatusPaid:
		subject, template = constvars.EmailSubjectOrderConfirmation, constvars.EmailTemplateOrderConfirmation
	case models.OrderStatusCancelled:
		subject, template = constvars.EmailSubjectOrderCancellation, constvars.EmailTemplateOrderCancellation
	default:
		return
	}

	if order == nil || order.Customer.Email == "" {
		uc.Log.Warn("notificationUsecase.NotifyOrderStatus no recipient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderStatusKey, status.String()),
		)
		return
	}

	payload := &requests.EmailPayload{
		Subject:      fmt.Sprintf(subject, order.ID),
		From:         uc.InternalConfig.Mailer.EmailSender,
		To:           []string{order.Customer.Email},
		TemplateName: template,
		TemplateData: map[string]interface{}{
			"order_id":      order.ID,
			"customer_name": order.Customer.Name,
			"status":        status.String(),
			"total":         order.Total.StringFixed(2),
			"guest":         order.IsGuestOrder(),
		},
	}

	timeout := time.Duration(uc.InternalConfig.Payment.NotificationTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultNotificationTimeout
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := uc.MailerService.SendEmail(sendCtx, payload); err != nil {
		uc.Log.Error("notificationUsecase.NotifyOrderStatus failed to send email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, order.ID),
			zap.String(constvars.LoggingEmailTemplateKey, template),
			zap.Error(err),
		)
		return
	}

	uc.Log.Info("notificationUsecase.NotifyOrderStatus email queued",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
		zap.String(constvars.LoggingEmailTemplateKey, template),
	)
}
