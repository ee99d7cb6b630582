package requests

import (
	"checkout-service/internal/app/models"

	"github.com/shopspring/decimal"
)

type CardPaymentRequest struct {
	CardToken    string `json:"card_token" validate:"required"`
	Installments int    `json:"installments" validate:"omitempty,min=1,max=12"`
}

// PaymentPayload is the gateway agnostic description of what is being paid.
type PaymentPayload struct {
	ReferenceID   string
	Description   string
	Amount        decimal.Decimal
	AmountInCents int64
	Customer      GatewayCustomer
	Shipping      GatewayShippingAddress
	Items         []GatewayItem
}

type CardPaymentPayload struct {
	PaymentPayload
	CardToken    string
	Installments int
}

type GatewayCustomer struct {
	Name  string
	Email string
	Phone string
	TaxID string
}

type GatewayShippingAddress struct {
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	PostalCode string
}

type GatewayItem struct {
	ReferenceID    string
	Name           string
	Quantity       int
	UnitPrice      decimal.Decimal
	UnitAmountCent int64
}

type AntifraudRequest struct {
	OrderID       string               `json:"order_id"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Customer      AntifraudCustomer    `json:"customer"`
	Items         []AntifraudItem      `json:"items"`
}

type AntifraudCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	TaxID string `json:"tax_id"`
}

type AntifraudItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
