package controllers

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/utils"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
	InternalConfig *config.InternalConfig
}

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *PaymentController {
	return &PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *PaymentController) CreatePixCharge(w http.ResponseWriter, r *http.Request) {
	orderID, requesterID, ok := ctrl.parseTarget(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	response, err := ctrl.PaymentUsecase.CreatePixCharge(ctx, orderID, requesterID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PixChargeCreatedSuccessMessage, response)
}

func (ctrl *PaymentController) ProcessCardPayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	orderID, requesterID, ok := ctrl.parseTarget(w, r)
	if !ok {
		return
	}
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.CardPaymentRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("PaymentController.ProcessCardPayment failed to parse request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	response, err := ctrl.PaymentUsecase.ProcessCardPayment(ctx, orderID, requesterID, request)
	if err != nil {
		ctrl.Log.Error("PaymentController.ProcessCardPayment failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CardPaymentProcessedSuccessMessage, response)
}

func (ctrl *PaymentController) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	orderID, requesterID, ok := ctrl.parseTarget(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	response, err := ctrl.PaymentUsecase.CreateCheckout(ctx, orderID, requesterID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CheckoutCreatedSuccessMessage, response)
}

// parseTarget writes the error response itself when ok is false.
func (ctrl *PaymentController) parseTarget(w http.ResponseWriter, r *http.Request) (orderID, requesterID string, ok bool) {
	orderID = chi.URLParam(r, constvars.URLParamOrderID)
	if orderID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingURLParam(constvars.URLParamOrderID))
		return "", "", false
	}

	requesterID = utils.GetRequesterID(r.Context())
	if requesterID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrRequesterMissing())
		return "", "", false
	}
	return orderID, requesterID, true
}
