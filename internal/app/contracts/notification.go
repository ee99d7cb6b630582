package contracts

import (
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/dto/requests"
	"context"
)

// NotificationUsecase never reports failure, delivery problems are logged.
type NotificationUsecase interface {
	NotifyOrderStatus(ctx context.Context, order *models.Order, status models.OrderStatus)
}

type MailerService interface {
	SendEmail(ctx context.Context, request *requests.EmailPayload) error
}
