package orders

import (
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/queries"
	"context"
	"database/sql"
	"errors"
)

type orderPostgresRepository struct {
	DB *sql.DB
}

func NewOrderPostgresRepository(db *sql.DB) contracts.OrderRepository {
	return &orderPostgresRepository{
		DB: db,
	}
}

// FindByID returns nil without error when the order does not exist.
func (repo *orderPostgresRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var (
		order   models.Order
		userID  sql.NullString
		guestID sql.NullString
	)
	err := repo.DB.QueryRowContext(ctx, queries.GetOrderByID, orderID).Scan(
		&order.ID,
		&order.Status,
		&userID,
		&guestID,
		&order.Total,
		&order.ShippingStreet,
		&order.ShippingNumber,
		&order.ShippingComplement,
		&order.ShippingDistrict,
		&order.ShippingCity,
		&order.ShippingState,
		&order.ShippingPostalCode,
		&order.Customer.Name,
		&order.Customer.Email,
		&order.Customer.Phone,
		&order.Customer.TaxID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	order.UserID = nullStringPtr(userID)
	order.GuestID = nullStringPtr(guestID)

	items, err := repo.findItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (repo *orderPostgresRepository) findItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetOrderItemsByOrderID, orderID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return items, nil
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}
