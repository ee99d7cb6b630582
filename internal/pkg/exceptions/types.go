package exceptions

import (
	"checkout-service/internal/pkg/constvars"
	"fmt"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrMissingURLParam = func(paramName string) *CustomError {
		return WrapWithoutError(constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevMissingURLParam, paramName))
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrReadBody = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotReadBody)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrTooManyRequests = func(clientKey string) *CustomError {
		return WrapWithoutError(constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, fmt.Sprintf(constvars.ErrDevTooManyRequests, clientKey))
	}

	// Auth
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalid)
	}
	ErrRequesterMissing = func() *CustomError {
		return WrapWithoutError(constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthRequesterMissing)
	}
	ErrInvalidAPIKey = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientInvalidAPIKey, constvars.ErrDevInvalidAPIKey)
	}

	// Orders and transactions
	ErrOrderNotFound = func(err error, orderID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientOrderNotFound, fmt.Sprintf(constvars.ErrDevOrderNotFound, orderID))
	}
	ErrTransactionNotFound = func(err error, gatewayTransactionID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientTransactionNotFound, fmt.Sprintf(constvars.ErrDevTransactionNotFound, gatewayTransactionID))
	}
	ErrOrderNotPending = func(status string) *CustomError {
		return WrapWithoutError(constvars.StatusConflict, constvars.ErrClientOrderNotPayable, fmt.Sprintf(constvars.ErrDevOrderNotPayable, status))
	}
	ErrOrderOwnershipMissing = func() *CustomError {
		return withKind(WrapWithoutError(constvars.StatusUnprocessableEntity, constvars.ErrClientOrderWithoutOwner, constvars.ErrDevOrderWithoutOwner), KindInvalidState)
	}
	ErrOrderNotOwned = func() *CustomError {
		return WrapWithoutError(constvars.StatusUnauthorized, constvars.ErrClientOrderNotOwned, constvars.ErrDevOrderNotOwned)
	}
	ErrPaymentInProgress = func(orderID string) *CustomError {
		return WrapWithoutError(constvars.StatusConflict, constvars.ErrClientPaymentInProgress, fmt.Sprintf(constvars.ErrDevPaymentInProgress, orderID))
	}

	// Risk and gateway
	ErrFraudDenied = func(orderID string) *CustomError {
		return withKind(WrapWithoutError(constvars.StatusUnprocessableEntity, constvars.ErrClientFraudDenied, fmt.Sprintf(constvars.ErrDevFraudDenied, orderID)), KindInvalidState)
	}
	ErrMissingConfiguration = func(name string) *CustomError {
		return withKind(WrapWithoutError(constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMissingConfiguration, name)), KindConfiguration)
	}
	ErrGatewayRequest = func(err error, operation string) *CustomError {
		return withKind(BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientGatewayFailure, fmt.Sprintf(constvars.ErrDevGatewayRequest, operation)), KindGatewayFailure)
	}
	ErrGatewayUnexpectedStatus = func(statusCode int, body string) *CustomError {
		return WrapWithoutError(constvars.StatusBadGateway, constvars.ErrClientGatewayFailure, fmt.Sprintf(constvars.ErrDevGatewayUnexpectedStatus, statusCode, body))
	}
	ErrAntifraudRequest = func(err error) *CustomError {
		return withKind(BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientGatewayFailure, constvars.ErrDevAntifraudRequest), KindGatewayFailure)
	}
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientGatewayFailure, constvars.ErrDevSendHTTPRequest)
	}
	ErrDecodeResponse = func(err error, source string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientGatewayFailure, fmt.Sprintf(constvars.ErrDevDecodeHTTPResponse, source))
	}

	// Webhooks
	ErrInvalidWebhookSignature = func() *CustomError {
		return WrapWithoutError(constvars.StatusUnauthorized, constvars.ErrClientInvalidWebhookSignature, constvars.ErrDevInvalidWebhookSignature)
	}
	ErrMissingWebhookSignature = func() *CustomError {
		return WrapWithoutError(constvars.StatusUnauthorized, constvars.ErrClientInvalidWebhookSignature, constvars.ErrDevMissingWebhookSignature)
	}

	// PostgreSQL
	ErrPostgresDBFindData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindData)
	}
	ErrPostgresDBInsertData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertData)
	}
	ErrPostgresDBUpdateData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateData)
	}
	ErrPostgresDBBeginTransaction = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToBeginTransaction)
	}
	ErrPostgresDBCommit = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCommit)
	}

	// MongoDB
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}

	// Redis
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucketName))
	}
)
