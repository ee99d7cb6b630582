package payments

import (
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/responses"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/utils"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// idempotencyGuard answers repeated initiations from the transaction that
// already exists for the order. Live gateway data is preferred; whatever
// cannot be fetched is taken from the stored row, so only the lookup itself
// can fail.
type idempotencyGuard struct {
	TransactionRepository contracts.TransactionRepository
	PaymentGateway        contracts.PaymentGatewayService
	Log                   *zap.Logger
}

// find returns the order's transaction, or nil when there is none. A failed
// lookup is returned as an error: without it the caller cannot tell whether a
// charge already exists.
func (g *idempotencyGuard) find(ctx context.Context, orderID string) (*models.Transaction, error) {
	transaction, err := g.TransactionRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		g.Log.Error("idempotencyGuard.find lookup failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	if transaction != nil {
		g.Log.Info("idempotencyGuard.find existing transaction",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.String(constvars.LoggingGatewayTransactionIDKey, transaction.GatewayTransactionID),
		)
	}
	return transaction, nil
}

// liveGatewayStatus returns the current gateway status, or "" when the
// gateway could not be reached.
func (g *idempotencyGuard) liveGatewayStatus(ctx context.Context, transaction *models.Transaction) string {
	details, err := g.PaymentGateway.GetCheckoutDetails(ctx, transaction.GatewayTransactionID)
	if err != nil {
		g.logFallback(ctx, transaction, constvars.OperationGetCheckoutDetails, err)
		return ""
	}
	return models.ExtractGatewayStatus(details.Status, details.ChargeStatuses())
}

func (g *idempotencyGuard) reconstructPix(ctx context.Context, order *models.Order, transaction *models.Transaction) *responses.PixChargeResponse {
	response := &responses.PixChargeResponse{
		TransactionID: transaction.GatewayTransactionID,
		Code:          transaction.QRCode,
		QRCodeImage:   transaction.QRCodeImage,
		ExpiresAt:     transaction.ExpiresAt,
		Amount:        transaction.Amount,
		Description:   fmt.Sprintf(constvars.PaymentDescriptionFormat, transaction.OrderID),
		OrderID:       transaction.OrderID,
	}

	gatewayStatus := g.liveGatewayStatus(ctx, transaction)

	details, err := g.PaymentGateway.GetOrderDetails(ctx, transaction.GatewayTransactionID)
	if err != nil {
		g.logFallback(ctx, transaction, constvars.OperationGetOrderDetails, err)
	} else if len(details.QRCodes) > 0 {
		qrCode := details.QRCodes[0]
		if qrCode.Text != "" {
			response.Code = qrCode.Text
		}
		if image := qrCode.ImageURL(constvars.GatewayLinkRelQRCodePNG); image != "" {
			response.QRCodeImage = image
		}
		if qrCode.ExpirationDate != nil {
			response.ExpiresAt = qrCode.ExpirationDate
		}
	}

	response.Status = models.PixStatusFor(order.Status, gatewayStatus, isExpired(response.ExpiresAt))
	return response
}

func (g *idempotencyGuard) reconstructCard(ctx context.Context, transaction *models.Transaction) *responses.CardPaymentResponse {
	response := &responses.CardPaymentResponse{
		TransactionID:  transaction.GatewayTransactionID,
		Status:         transaction.Status,
		TransactionRef: transaction.GatewayReference,
		OrderID:        transaction.OrderID,
	}
	if gatewayStatus := g.liveGatewayStatus(ctx, transaction); gatewayStatus != "" {
		response.Status = models.MapGatewayStatus(gatewayStatus).String()
	}
	return response
}

func (g *idempotencyGuard) reconstructCheckout(ctx context.Context, transaction *models.Transaction) *responses.CheckoutResponse {
	response := &responses.CheckoutResponse{
		RedirectURL: transaction.GatewayReference,
		CheckoutID:  transaction.GatewayTransactionID,
	}

	details, err := g.PaymentGateway.GetCheckoutDetails(ctx, transaction.GatewayTransactionID)
	if err != nil {
		g.logFallback(ctx, transaction, constvars.OperationGetCheckoutDetails, err)
		return response
	}
	if redirectURL := details.LinkByRel(constvars.GatewayLinkRelPay); redirectURL != "" {
		response.RedirectURL = redirectURL
	}
	return response
}

func (g *idempotencyGuard) logFallback(ctx context.Context, transaction *models.Transaction, operation string, err error) {
	g.Log.Warn("idempotencyGuard using stored transaction data",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingOrderIDKey, transaction.OrderID),
		zap.String(constvars.LoggingGatewayTransactionIDKey, transaction.GatewayTransactionID),
		zap.String(constvars.LoggingOperationKey, operation),
		zap.Error(err),
	)
}
