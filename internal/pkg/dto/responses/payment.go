package responses

import (
	"time"

	"github.com/shopspring/decimal"
)

type PixChargeResponse struct {
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	Code          string          `json:"code"`
	QRCodeImage   string          `json:"qr_code_image"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	OrderID       string          `json:"order_id"`
}

type CardPaymentResponse struct {
	TransactionID  string `json:"transaction_id"`
	Status         string `json:"status"`
	TransactionRef string `json:"transaction_ref"`
	OrderID        string `json:"order_id"`
}

type CheckoutResponse struct {
	RedirectURL string `json:"redirect_url"`
	CheckoutID  string `json:"checkout_id"`
}

type PaymentWebhookResult struct {
	GatewayTransactionID string `json:"gateway_transaction_id"`
	GatewayStatus        string `json:"gateway_status"`
	Status               string `json:"status"`
	PreviousStatus       string `json:"previous_status,omitempty"`
	AlreadyUpdated       bool   `json:"already_updated"`
	Ignored              bool   `json:"ignored"`
}

type AntifraudResult struct {
	Decision string  `json:"decision"`
	Score    float64 `json:"score,omitempty"`
	Reason   string  `json:"reason,omitempty"`
}
