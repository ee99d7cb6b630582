package contracts

import (
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/dto/responses"
	"context"
)

type PaymentUsecase interface {
	CreatePixCharge(ctx context.Context, orderID, requesterID string) (*responses.PixChargeResponse, error)
	ProcessCardPayment(ctx context.Context, orderID, requesterID string, request *requests.CardPaymentRequest) (*responses.CardPaymentResponse, error)
	CreateCheckout(ctx context.Context, orderID, requesterID string) (*responses.CheckoutResponse, error)
}
