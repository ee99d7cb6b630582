package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// orderTransitions lists the forward moves allowed from each non-terminal
// status. A paid order only moves on through fulfilment.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled, OrderStatusShipped, OrderStatusDelivered},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusDelivered},
	OrderStatusShipped: {OrderStatusDelivered},
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a forward move.
// Staying on the same status is not a transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID                 string          `json:"id"`
	Status             OrderStatus     `json:"status"`
	UserID             *string         `json:"user_id,omitempty"`
	GuestID            *string         `json:"guest_id,omitempty"`
	Total              decimal.Decimal `json:"total"`
	ShippingStreet     string          `json:"shipping_street"`
	ShippingNumber     string          `json:"shipping_number"`
	ShippingComplement string          `json:"shipping_complement,omitempty"`
	ShippingDistrict   string          `json:"shipping_district"`
	ShippingCity       string          `json:"shipping_city"`
	ShippingState      string          `json:"shipping_state"`
	ShippingPostalCode string          `json:"shipping_postal_code"`
	Customer           Customer        `json:"customer"`
	Items              []OrderItem     `json:"items"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Customer is the contact snapshot of whoever owns the order, either the
// registered user or the guest.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	TaxID string `json:"tax_id"`
}

type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (o *Order) IsGuestOrder() bool {
	return o.UserID == nil && o.GuestID != nil
}

// OwnerID returns the registered owner when present, the guest id otherwise.
func (o *Order) OwnerID() (string, bool) {
	if o.UserID != nil && *o.UserID != "" {
		return *o.UserID, true
	}
	if o.GuestID != nil && *o.GuestID != "" {
		return *o.GuestID, true
	}
	return "", false
}
