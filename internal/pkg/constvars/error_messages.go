package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"uuid":     "must be a valid UUID",
	"url":      "must be a valid URL",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientOrderNotFound                 = "order not found"
	ErrClientTransactionNotFound           = "transaction not found"
	ErrClientOrderNotPayable               = "order already paid or in another status"
	ErrClientOrderWithoutOwner             = "order is not linked to any customer"
	ErrClientOrderNotOwned                 = "you are not allowed to pay for this order"
	ErrClientFraudDenied                   = "transaction denied by fraud analysis"
	ErrClientPaymentInProgress             = "payment for this order is already being processed, please retry shortly"
	ErrClientGatewayFailure                = "failed to communicate with payment gateway"
	ErrClientInvalidWebhookSignature       = "invalid webhook signature"
	ErrClientInvalidAPIKey                 = "invalid API key"
	ErrClientTooManyRequests               = "too many requests, please try again later"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevCannotReadBody             = "cannot read request body"
	ErrDevWebhookBodyNotJSON         = "webhook body is not valid JSON"
	ErrDevMissingURLParam            = "missing URL param %s"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevServerDeadlineExceeded     = "deadline exceeded"
	ErrDevAuthTokenInvalid           = "invalid token"
	ErrDevAuthSigningMethod          = "unexpected signing method"
	ErrDevAuthRequesterMissing       = "requester identity missing"
	ErrDevInvalidAPIKey              = "invalid API key"
	ErrDevTooManyRequests            = "rate limit exceeded for %s"
	ErrDevCreateHTTPRequest          = "failed to create HTTP request"
	ErrDevSendHTTPRequest            = "failed to send HTTP request"
	ErrDevDecodeHTTPResponse         = "failed to decode HTTP response from %s"
	ErrDevMissingConfiguration       = "missing mandatory configuration %s"
	ErrDevOrderNotFound              = "order %s not found"
	ErrDevTransactionNotFound        = "transaction with gateway id %s not found"
	ErrDevOrderNotPayable            = "order status is %s, expected PENDING"
	ErrDevOrderWithoutOwner          = "order has neither user id nor guest id"
	ErrDevOrderNotOwned              = "requester does not own the order"
	ErrDevFraudDenied                = "antifraud verdict DENIED for order %s"
	ErrDevPaymentInProgress          = "initiation lock for order %s held by another request"
	ErrDevGatewayRequest             = "payment gateway call %s failed"
	ErrDevGatewayUnexpectedStatus    = "payment gateway responded with status %d: %s"
	ErrDevAntifraudRequest           = "antifraud analysis failed"
	ErrDevInvalidWebhookSignature    = "webhook signature mismatch"
	ErrDevMissingWebhookSignature    = "webhook signature missing"
	ErrDevDBFailedToFindData         = "failed to find data on database"
	ErrDevDBFailedToInsertData       = "failed to insert data into database"
	ErrDevDBFailedToUpdateData       = "failed to update data into database"
	ErrDevDBFailedToBeginTransaction = "failed to begin database transaction"
	ErrDevDBFailedToCommit           = "failed to commit database transaction"
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevRedisSetData               = "failed to set data on redis"
	ErrDevRedisDeleteData            = "failed to delete data on redis"
	ErrDevRedisUnlock                = "failed to release redis lock"
	ErrDevRabbitMQPublishMessage     = "failed to publish message to queue %s"
	ErrDevMinioFailedToCreateObject  = "failed to create object on bucket %s"
)
