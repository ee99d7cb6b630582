package payments

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/dto/responses"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultInitiationLockTTL = 30 * time.Second

type paymentUsecase struct {
	OrderRepository       contracts.OrderRepository
	TransactionRepository contracts.TransactionRepository
	PaymentGateway        contracts.PaymentGatewayService
	AntifraudService      contracts.AntifraudService
	LockerService         contracts.LockerService
	Storage               contracts.Storage
	NotificationUsecase   contracts.NotificationUsecase
	Metrics               contracts.PaymentMetrics
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	guard                 *idempotencyGuard
}

type PaymentUsecaseDeps struct {
	OrderRepository       contracts.OrderRepository
	TransactionRepository contracts.TransactionRepository
	PaymentGateway        contracts.PaymentGatewayService
	AntifraudService      contracts.AntifraudService
	LockerService         contracts.LockerService
	Storage               contracts.Storage
	NotificationUsecase   contracts.NotificationUsecase
	Metrics               contracts.PaymentMetrics
}

func NewPaymentUsecase(deps PaymentUsecaseDeps, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentUsecase {
	return &paymentUsecase{
		OrderRepository:       deps.OrderRepository,
		TransactionRepository: deps.TransactionRepository,
		PaymentGateway:        deps.PaymentGateway,
		AntifraudService:      deps.AntifraudService,
		LockerService:         deps.LockerService,
		Storage:               deps.Storage,
		NotificationUsecase:   deps.NotificationUsecase,
		Metrics:               deps.Metrics,
		InternalConfig:        internalConfig,
		Log:                   logger,
		guard: &idempotencyGuard{
			TransactionRepository: deps.TransactionRepository,
			PaymentGateway:        deps.PaymentGateway,
			Log:                   logger,
		},
	}
}

func (uc *paymentUsecase) CreatePixCharge(ctx context.Context, orderID, requesterID string) (*responses.PixChargeResponse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.CreatePixCharge called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)

	var (
		response  *responses.PixChargeResponse
		imageData []byte
	)
	err := uc.initiate(ctx, orderID, requesterID, models.PaymentMethodPix, initiationSteps{
		reuse: func(order *models.Order, transaction *models.Transaction) {
			response = uc.guard.reconstructPix(ctx, order, transaction)
		},
		charge: func(order *models.Order, payload *requests.PaymentPayload, callbackURL string, decision models.FraudDecision) (*models.Transaction, models.OrderStatus, error) {
			charge, err := uc.PaymentGateway.CreatePixCharge(ctx, payload, callbackURL)
			if err != nil {
				return nil, "", err
			}

			transaction := newTransaction(order, models.PaymentMethodPix, charge.Status, decision)
			transaction.GatewayTransactionID = charge.TransactionID
			transaction.GatewayReference = charge.ReferenceCode
			transaction.QRCode = charge.QRCodeText
			transaction.QRCodeImage = charge.QRCodeImage
			transaction.ExpiresAt = charge.ExpiresAt

			response = &responses.PixChargeResponse{
				TransactionID: charge.TransactionID,
				Status:        models.PixStatusFor(order.Status, charge.Status, isExpired(charge.ExpiresAt)),
				Code:          charge.QRCodeText,
				QRCodeImage:   charge.QRCodeImage,
				ExpiresAt:     charge.ExpiresAt,
				Amount:        order.Total,
				Description:   payload.Description,
				OrderID:       order.ID,
			}

			imageData = charge.QRCodeImageData
			return transaction, models.OrderStatusPending, nil
		},
		persisted: func(transaction *models.Transaction) {
			if len(imageData) > 0 {
				uc.archiveQRCode(ctx, transaction, imageData)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (uc *paymentUsecase) ProcessCardPayment(ctx context.Context, orderID, requesterID string, request *requests.CardPaymentRequest) (*responses.CardPaymentResponse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.ProcessCardPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)

	utils.SanitizeCardPaymentRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	var response *responses.CardPaymentResponse
	err := uc.initiate(ctx, orderID, requesterID, models.PaymentMethodCreditCard, initiationSteps{
		reuse: func(order *models.Order, transaction *models.Transaction) {
			response = uc.guard.reconstructCard(ctx, transaction)
		},
		charge: func(order *models.Order, payload *requests.PaymentPayload, callbackURL string, decision models.FraudDecision) (*models.Transaction, models.OrderStatus, error) {
			cardPayload := &requests.CardPaymentPayload{
				PaymentPayload: *payload,
				CardToken:      request.CardToken,
				Installments:   request.Installments,
			}
			charge, err := uc.PaymentGateway.ProcessCardCharge(ctx, cardPayload, callbackURL)
			if err != nil {
				return nil, "", err
			}

			transaction := newTransaction(order, models.PaymentMethodCreditCard, charge.Status, decision)
			transaction.GatewayTransactionID = charge.TransactionID
			transaction.GatewayReference = charge.TransactionRef

			response = &responses.CardPaymentResponse{
				TransactionID:  charge.TransactionID,
				Status:         transaction.Status,
				TransactionRef: charge.TransactionRef,
				OrderID:        order.ID,
			}

			orderStatus := models.OrderStatusPending
			if models.MapGatewayStatus(charge.Status) == models.OrderStatusPaid {
				orderStatus = models.OrderStatusPaid
			}
			return transaction, orderStatus, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (uc *paymentUsecase) CreateCheckout(ctx context.Context, orderID, requesterID string) (*responses.CheckoutResponse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.CreateCheckout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)

	var response *responses.CheckoutResponse
	err := uc.initiate(ctx, orderID, requesterID, models.PaymentMethodCheckout, initiationSteps{
		reuse: func(order *models.Order, transaction *models.Transaction) {
			response = uc.guard.reconstructCheckout(ctx, transaction)
		},
		charge: func(order *models.Order, payload *requests.PaymentPayload, callbackURL string, decision models.FraudDecision) (*models.Transaction, models.OrderStatus, error) {
			checkout, err := uc.PaymentGateway.CreateCheckout(ctx, payload, callbackURL)
			if err != nil {
				return nil, "", err
			}

			transaction := newTransaction(order, models.PaymentMethodCheckout, constvars.DefaultGatewayStatus, decision)
			transaction.GatewayTransactionID = checkout.CheckoutID
			transaction.GatewayReference = checkout.RedirectURL

			response = &responses.CheckoutResponse{
				RedirectURL: checkout.RedirectURL,
				CheckoutID:  checkout.CheckoutID,
			}
			return transaction, models.OrderStatusPending, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// initiationSteps holds the method specific parts of an initiation. charge
// calls the gateway and returns the row to persist along with the status the
// order moves to. reuse builds the response from an existing transaction and
// persisted, when set, runs once the new row is stored.
type initiationSteps struct {
	reuse     func(order *models.Order, transaction *models.Transaction)
	charge    func(order *models.Order, payload *requests.PaymentPayload, callbackURL string, decision models.FraudDecision) (*models.Transaction, models.OrderStatus, error)
	persisted func(transaction *models.Transaction)
}

func (uc *paymentUsecase) initiate(ctx context.Context, orderID, requesterID string, method models.PaymentMethod, steps initiationSteps) error {
	requestID := utils.GetRequestID(ctx)
	outcome := constvars.InitiationOutcomeFailed
	defer func() {
		uc.Metrics.IncInitiation(string(method), outcome)
	}()

	order, err := uc.loadPayableOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if err := checkOwnership(order, requesterID); err != nil {
		utils.LogSecurityEvent(uc.Log, "payment_ownership_mismatch", requestID, "medium",
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.String(constvars.LoggingRequesterIDKey, requesterID),
		)
		return err
	}

	existing, err := uc.guard.find(ctx, orderID)
	if err != nil {
		return err
	}
	if existing != nil {
		steps.reuse(order, existing)
		outcome = constvars.InitiationOutcomeReused
		return nil
	}

	acquired, release := uc.acquireInitiationLock(ctx, orderID)
	defer release()

	// Another request may have stored its transaction meanwhile.
	existing, err = uc.guard.find(ctx, orderID)
	if err != nil {
		return err
	}
	if existing != nil {
		steps.reuse(order, existing)
		outcome = constvars.InitiationOutcomeReused
		return nil
	}
	if !acquired {
		return exceptions.ErrPaymentInProgress(orderID)
	}

	payload := buildPaymentPayload(order)

	decision, err := uc.analyzeFraud(ctx, order, method)
	if err != nil {
		if exceptions.IsKind(err, exceptions.KindInvalidState) {
			outcome = constvars.InitiationOutcomeDenied
		}
		return err
	}

	callbackURL, err := uc.callbackURL()
	if err != nil {
		uc.Log.Error("paymentUsecase.initiate missing callback configuration",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.Error(err),
		)
		return err
	}

	transaction, orderStatus, err := steps.charge(order, payload, callbackURL, decision)
	if err != nil {
		return uc.normalizeFailure(ctx, err, orderID, operationFor(method))
	}

	err = uc.TransactionRepository.CreateTransaction(ctx, transaction, orderStatus)
	if errors.Is(err, exceptions.ErrDuplicateEntry) {
		uc.Log.Warn("paymentUsecase.initiate transaction already exists, reusing it",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.String(constvars.LoggingGatewayTransactionIDKey, transaction.GatewayTransactionID),
		)
		if existing, findErr := uc.guard.find(ctx, orderID); findErr == nil && existing != nil {
			steps.reuse(order, existing)
			outcome = constvars.InitiationOutcomeReused
			return nil
		}
	}
	if err != nil {
		uc.Log.Error("paymentUsecase.initiate failed to persist transaction after gateway success",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.String(constvars.LoggingGatewayTransactionIDKey, transaction.GatewayTransactionID),
			zap.Error(err),
		)
		return uc.normalizeFailure(ctx, err, orderID, operationFor(method))
	}

	utils.LogBusinessEvent(uc.Log, "payment_initiated", requestID,
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
		zap.String(constvars.LoggingGatewayTransactionIDKey, transaction.GatewayTransactionID),
		zap.String(constvars.LoggingPaymentMethodKey, string(method)),
		zap.String(constvars.LoggingFraudDecisionKey, string(decision)),
	)

	if steps.persisted != nil {
		steps.persisted(transaction)
	}

	if orderStatus == models.OrderStatusPaid {
		order.Status = models.OrderStatusPaid
		uc.NotificationUsecase.NotifyOrderStatus(ctx, order, models.OrderStatusPaid)
	}

	outcome = constvars.InitiationOutcomeCreated
	return nil
}

func (uc *paymentUsecase) loadPayableOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := uc.OrderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, exceptions.ErrOrderNotFound(nil, orderID)
	}
	if order.Status != models.OrderStatusPending {
		return nil, exceptions.ErrOrderNotPending(order.Status.String())
	}
	return order, nil
}

// acquireInitiationLock serializes initiations of one order across
// instances. When the lock backend is unreachable the unique constraint on
// the transaction row is the only protection left, so the call proceeds as
// if the lock was taken.
func (uc *paymentUsecase) acquireInitiationLock(ctx context.Context, orderID string) (bool, func()) {
	requestID := utils.GetRequestID(ctx)
	key := fmt.Sprintf(constvars.PaymentInitiationLockKeyFormat, orderID)

	ttl := time.Duration(uc.InternalConfig.Payment.InitiationLockTTLInSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultInitiationLockTTL
	}

	acquired, lockValue, err := uc.LockerService.TryLock(ctx, key, ttl)
	if err != nil {
		uc.Log.Warn("paymentUsecase.acquireInitiationLock lock unavailable, continuing without it",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return true, func() {}
	}
	if !acquired {
		return false, func() {}
	}

	return true, func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), key, lockValue); err != nil {
			uc.Log.Warn("paymentUsecase.acquireInitiationLock failed to release lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}
}

func (uc *paymentUsecase) analyzeFraud(ctx context.Context, order *models.Order, method models.PaymentMethod) (models.FraudDecision, error) {
	requestID := utils.GetRequestID(ctx)

	result, err := uc.AntifraudService.Analyze(ctx, buildAntifraudRequest(order, method))
	if err != nil {
		return "", uc.normalizeFailure(ctx, err, order.ID, constvars.OperationAntifraudAnalysis)
	}

	decision := models.FraudDecision(strings.ToUpper(result.Decision))
	if decision == models.FraudDecisionDenied {
		utils.LogSecurityEvent(uc.Log, "payment_denied_by_antifraud", requestID, "high",
			zap.String(constvars.LoggingOrderIDKey, order.ID),
			zap.String(constvars.LoggingPaymentMethodKey, string(method)),
		)
		return decision, exceptions.ErrFraudDenied(order.ID)
	}
	if decision == models.FraudDecisionReview {
		uc.Log.Warn("paymentUsecase.analyzeFraud order flagged for review",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, order.ID),
		)
	}
	return decision, nil
}

func (uc *paymentUsecase) callbackURL() (string, error) {
	base := strings.TrimRight(uc.InternalConfig.Payment.CallbackBaseUrl, "/")
	if base == "" {
		return "", exceptions.ErrMissingConfiguration("PAYMENT_CALLBACK_BASE_URL")
	}
	return base + constvars.PaymentWebhookCallbackPath, nil
}

// normalizeFailure keeps errors this service already classified and turns
// anything else into a gateway failure.
func (uc *paymentUsecase) normalizeFailure(ctx context.Context, err error, orderID, operation string) error {
	uc.Log.Error("paymentUsecase.initiate step failed",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingOperationKey, operation),
		zap.Error(err),
	)

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return err
	}
	return exceptions.ErrGatewayRequest(err, operation)
}

// archiveQRCode keeps a copy of the QR code image. The charge is already
// stored, so failures are only logged.
func (uc *paymentUsecase) archiveQRCode(ctx context.Context, transaction *models.Transaction, image []byte) {
	requestID := utils.GetRequestID(ctx)
	bucket := uc.InternalConfig.Minio.QRCodeBucketName
	if uc.Storage == nil || bucket == "" {
		return
	}

	objectName := utils.GenerateQRCodeObjectName(transaction.ID, constvars.QRCodeFileExtension)
	artifact, err := uc.Storage.UploadImage(ctx, image, bucket, objectName, constvars.QRCodeFileExtension)
	if err != nil {
		uc.Log.Warn("paymentUsecase.archiveQRCode upload failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
			zap.String(constvars.LoggingBucketNameKey, bucket),
			zap.Error(err),
		)
		return
	}

	if err := uc.TransactionRepository.UpdateQRCodeArtifact(ctx, transaction.ID, artifact); err != nil {
		uc.Log.Warn("paymentUsecase.archiveQRCode failed to record artifact",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
			zap.String(constvars.LoggingObjectNameKey, artifact),
			zap.Error(err),
		)
	}
}

func newTransaction(order *models.Order, method models.PaymentMethod, gatewayStatus string, decision models.FraudDecision) *models.Transaction {
	return &models.Transaction{
		ID:            uuid.NewString(),
		OrderID:       order.ID,
		Amount:        order.Total,
		Type:          models.TransactionTypePayment,
		Status:        models.MapGatewayStatus(gatewayStatus).String(),
		PaymentMethod: method,
		FraudDecision: decision,
	}
}

func operationFor(method models.PaymentMethod) string {
	switch method {
	case models.PaymentMethodPix:
		return constvars.OperationCreatePixCharge
	case models.PaymentMethodCreditCard:
		return constvars.OperationProcessCardCharge
	default:
		return constvars.OperationCreateCheckout
	}
}

func isExpired(expiresAt *time.Time) bool {
	return expiresAt != nil && time.Now().After(*expiresAt)
}
