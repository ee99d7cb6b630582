package contracts

import (
	"checkout-service/internal/app/models"
	"context"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
}
