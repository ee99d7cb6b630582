package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypePayment TransactionType = "PAYMENT"
)

type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "PIX"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodCheckout   PaymentMethod = "CHECKOUT"
)

type FraudDecision string

const (
	FraudDecisionApproved FraudDecision = "APPROVED"
	FraudDecisionDenied   FraudDecision = "DENIED"
	FraudDecisionReview   FraudDecision = "REVIEW"
)

type Transaction struct {
	ID                   string          `json:"id"`
	OrderID              string          `json:"order_id"`
	Amount               decimal.Decimal `json:"amount"`
	Type                 TransactionType `json:"type"`
	Status               string          `json:"status"`
	PaymentMethod        PaymentMethod   `json:"payment_method"`
	GatewayTransactionID string          `json:"gateway_transaction_id"`
	GatewayReference     string          `json:"gateway_reference"`
	QRCode               string          `json:"qr_code,omitempty"`
	QRCodeImage          string          `json:"qr_code_image,omitempty"`
	QRCodeArtifact       string          `json:"qr_code_artifact,omitempty"`
	ExpiresAt            *time.Time      `json:"expires_at,omitempty"`
	FraudDecision        FraudDecision   `json:"fraud_decision"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	Order                *Order          `json:"order,omitempty"`
}
