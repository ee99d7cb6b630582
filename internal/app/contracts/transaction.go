package contracts

import (
	"checkout-service/internal/app/models"
	"context"
	"time"
)

type TransactionRepository interface {
	FindByOrderID(ctx context.Context, orderID string) (*models.Transaction, error)
	FindByGatewayTransactionID(ctx context.Context, gatewayTransactionID string) (*models.Transaction, error)
	// CreateTransaction inserts the row and, when orderStatus is not PENDING,
	// moves the order to orderStatus within the same database transaction.
	CreateTransaction(ctx context.Context, transaction *models.Transaction, orderStatus models.OrderStatus) error
	UpdateStatusWithOrder(ctx context.Context, transactionID, orderID string, status models.OrderStatus) error
	UpdateQRCodeArtifact(ctx context.Context, transactionID, artifact string) error
	// FindStalePending lists PENDING transactions last touched before
	// updatedBefore and created after createdAfter, oldest first.
	FindStalePending(ctx context.Context, updatedBefore, createdAfter time.Time, limit int) ([]*models.Transaction, error)
	// TouchPending marks a PENDING transaction as checked without changing
	// its status.
	TouchPending(ctx context.Context, transactionID string) error
}
