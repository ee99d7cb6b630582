package contracts

import (
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/dto/responses"
	"context"
)

type PaymentGatewayService interface {
	CreatePixCharge(ctx context.Context, payload *requests.PaymentPayload, callbackURL string) (*responses.GatewayPixCharge, error)
	ProcessCardCharge(ctx context.Context, payload *requests.CardPaymentPayload, callbackURL string) (*responses.GatewayCardCharge, error)
	CreateCheckout(ctx context.Context, payload *requests.PaymentPayload, callbackURL string) (*responses.GatewayCheckout, error)
	GetCheckoutDetails(ctx context.Context, checkoutID string) (*responses.GatewayCheckoutDetails, error)
	GetOrderDetails(ctx context.Context, orderID string) (*responses.GatewayOrderDetails, error)
}
