package contracts

import (
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/dto/responses"
	"context"
)

type WebhookVerifier interface {
	Verify(payload []byte, signature string) error
}

type ReconcilerUsecase interface {
	HandlePaymentWebhook(ctx context.Context, rawBody []byte, signature, checkoutID string) (*responses.PaymentWebhookResult, error)
	Resync(ctx context.Context, gatewayTransactionID string) (*responses.PaymentWebhookResult, error)
}

type WebhookEventRepository interface {
	Insert(ctx context.Context, event *models.WebhookEvent) error
}
