package transactions

import (
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/queries"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

type transactionPostgresRepository struct {
	DB *sql.DB
}

func NewTransactionPostgresRepository(db *sql.DB) contracts.TransactionRepository {
	return &transactionPostgresRepository{
		DB: db,
	}
}

type nullableTransactionColumns struct {
	qrCode         sql.NullString
	qrCodeImage    sql.NullString
	qrCodeArtifact sql.NullString
	expiresAt      sql.NullTime
}

func (n *nullableTransactionColumns) apply(transaction *models.Transaction) {
	transaction.QRCode = n.qrCode.String
	transaction.QRCodeImage = n.qrCodeImage.String
	transaction.QRCodeArtifact = n.qrCodeArtifact.String
	if n.expiresAt.Valid {
		expiresAt := n.expiresAt.Time
		transaction.ExpiresAt = &expiresAt
	}
}

func transactionDestinations(transaction *models.Transaction, nullable *nullableTransactionColumns) []interface{} {
	return []interface{}{
		&transaction.ID,
		&transaction.OrderID,
		&transaction.Amount,
		&transaction.Type,
		&transaction.Status,
		&transaction.PaymentMethod,
		&transaction.GatewayTransactionID,
		&transaction.GatewayReference,
		&nullable.qrCode,
		&nullable.qrCodeImage,
		&nullable.qrCodeArtifact,
		&nullable.expiresAt,
		&transaction.FraudDecision,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	}
}

func (repo *transactionPostgresRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	var (
		transaction models.Transaction
		nullable    nullableTransactionColumns
	)
	err := repo.DB.QueryRowContext(ctx, queries.GetTransactionByOrderID, orderID).
		Scan(transactionDestinations(&transaction, &nullable)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	nullable.apply(&transaction)
	return &transaction, nil
}

// FindByGatewayTransactionID loads the transaction together with the status,
// total and owner contact of its order.
func (repo *transactionPostgresRepository) FindByGatewayTransactionID(ctx context.Context, gatewayTransactionID string) (*models.Transaction, error) {
	var (
		transaction models.Transaction
		nullable    nullableTransactionColumns
		order       models.Order
		userID      sql.NullString
		guestID     sql.NullString
	)
	destinations := append(transactionDestinations(&transaction, &nullable),
		&order.Status,
		&order.Total,
		&userID,
		&guestID,
		&order.Customer.Name,
		&order.Customer.Email,
		&order.Customer.Phone,
		&order.Customer.TaxID,
	)

	err := repo.DB.QueryRowContext(ctx, queries.GetTransactionByGatewayTransactionID, gatewayTransactionID).
		Scan(destinations...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	nullable.apply(&transaction)

	order.ID = transaction.OrderID
	if userID.Valid {
		order.UserID = &userID.String
	}
	if guestID.Valid {
		order.GuestID = &guestID.String
	}
	transaction.Order = &order

	return &transaction, nil
}

func (repo *transactionPostgresRepository) CreateTransaction(ctx context.Context, transaction *models.Transaction, orderStatus models.OrderStatus) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, queries.InsertTransaction,
		transaction.ID,
		transaction.OrderID,
		transaction.Amount,
		transaction.Type,
		transaction.Status,
		transaction.PaymentMethod,
		transaction.GatewayTransactionID,
		transaction.GatewayReference,
		toNullString(transaction.QRCode),
		toNullString(transaction.QRCodeImage),
		toNullString(transaction.QRCodeArtifact),
		toNullTime(transaction),
		transaction.FraudDecision,
	).Scan(
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return exceptions.ErrPostgresDBInsertData(fmt.Errorf("%w: %s", exceptions.ErrDuplicateEntry, err.Error()))
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}

	if orderStatus != models.OrderStatusPending {
		if _, err := tx.ExecContext(ctx, queries.UpdateOrderStatus, orderStatus, transaction.OrderID); err != nil {
			return exceptions.ErrPostgresDBUpdateData(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommit(err)
	}
	return nil
}

// UpdateStatusWithOrder writes the same status to the transaction and its
// order, both or neither.
func (repo *transactionPostgresRepository) UpdateStatusWithOrder(ctx context.Context, transactionID, orderID string, status models.OrderStatus) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, queries.UpdateTransactionStatus, status, transactionID); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}

	if _, err := tx.ExecContext(ctx, queries.UpdateOrderStatus, status, orderID); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommit(err)
	}
	return nil
}

func (repo *transactionPostgresRepository) UpdateQRCodeArtifact(ctx context.Context, transactionID, artifact string) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdateTransactionQRCodeArtifact, artifact, transactionID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

// TouchPending bumps updated_at of a transaction that is still PENDING so
// the next sweep moves on to other rows.
func (repo *transactionPostgresRepository) TouchPending(ctx context.Context, transactionID string) error {
	_, err := repo.DB.ExecContext(ctx, queries.TouchPendingTransaction, transactionID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *transactionPostgresRepository) FindStalePending(ctx context.Context, updatedBefore, createdAfter time.Time, limit int) ([]*models.Transaction, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetStalePendingTransactions, updatedBefore, createdAfter, limit)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		var (
			transaction models.Transaction
			nullable    nullableTransactionColumns
		)
		if err := rows.Scan(transactionDestinations(&transaction, &nullable)...); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		nullable.apply(&transaction)
		result = append(result, &transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return result, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode
}

func toNullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func toNullTime(transaction *models.Transaction) sql.NullTime {
	if transaction.ExpiresAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *transaction.ExpiresAt, Valid: true}
}
