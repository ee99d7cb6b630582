package payment_gateway

import (
	"checkout-service/internal/pkg/dto/responses"
	"time"
)

type gatewayAmount struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency,omitempty"`
}

type gatewayPhone struct {
	Country string `json:"country"`
	Area    string `json:"area"`
	Number  string `json:"number"`
	Type    string `json:"type"`
}

type gatewayCustomer struct {
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	TaxID  string         `json:"tax_id,omitempty"`
	Phones []gatewayPhone `json:"phones,omitempty"`
}

type gatewayItem struct {
	ReferenceID string `json:"reference_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	UnitAmount  int64  `json:"unit_amount"`
}

type gatewayAddress struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	Locality   string `json:"locality"`
	City       string `json:"city"`
	RegionCode string `json:"region_code"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type gatewayShipping struct {
	Address gatewayAddress `json:"address"`
}

type gatewayQRCodeRequest struct {
	Amount         gatewayAmount `json:"amount"`
	ExpirationDate *time.Time    `json:"expiration_date,omitempty"`
}

type gatewayCard struct {
	Encrypted string `json:"encrypted"`
}

type gatewayPaymentMethod struct {
	Type         string      `json:"type"`
	Installments int         `json:"installments"`
	Capture      bool        `json:"capture"`
	Card         gatewayCard `json:"card"`
}

type gatewayChargeRequest struct {
	ReferenceID   string               `json:"reference_id"`
	Description   string               `json:"description"`
	Amount        gatewayAmount        `json:"amount"`
	PaymentMethod gatewayPaymentMethod `json:"payment_method"`
}

type gatewayOrderRequest struct {
	ReferenceID      string                 `json:"reference_id"`
	Customer         gatewayCustomer        `json:"customer"`
	Items            []gatewayItem          `json:"items"`
	Shipping         *gatewayShipping       `json:"shipping,omitempty"`
	QRCodes          []gatewayQRCodeRequest `json:"qr_codes,omitempty"`
	Charges          []gatewayChargeRequest `json:"charges,omitempty"`
	NotificationURLs []string               `json:"notification_urls"`
}

type gatewayCheckoutRequest struct {
	ReferenceID             string           `json:"reference_id"`
	Customer                gatewayCustomer  `json:"customer"`
	Items                   []gatewayItem    `json:"items"`
	Shipping                *gatewayShipping `json:"shipping,omitempty"`
	RedirectURL             string           `json:"redirect_url,omitempty"`
	NotificationURLs        []string         `json:"notification_urls"`
	PaymentNotificationURLs []string         `json:"payment_notification_urls"`
}

type gatewayPaymentResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Reference string `json:"reference"`
}

type gatewayChargeResponse struct {
	ID              string                 `json:"id"`
	ReferenceID     string                 `json:"reference_id"`
	Status          string                 `json:"status"`
	PaymentResponse gatewayPaymentResponse `json:"payment_response"`
}

type gatewayOrderResponse struct {
	ID          string                    `json:"id"`
	ReferenceID string                    `json:"reference_id"`
	QRCodes     []responses.GatewayQRCode `json:"qr_codes"`
	Charges     []gatewayChargeResponse   `json:"charges"`
}

type gatewayCheckoutResponse struct {
	ID          string                  `json:"id"`
	ReferenceID string                  `json:"reference_id"`
	Status      string                  `json:"status"`
	Links       []responses.GatewayLink `json:"links"`
}
