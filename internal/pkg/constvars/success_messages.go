package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	PixChargeCreatedSuccessMessage      = "instant transfer charge created successfully"
	CardPaymentProcessedSuccessMessage  = "card payment processed successfully"
	CheckoutCreatedSuccessMessage       = "checkout created successfully"
	PaymentWebhookProcessedMessage      = "payment webhook processed successfully"
	PaymentWebhookAlreadyUpdatedMessage = "payment status already updated"
	PaymentWebhookIgnoredMessage        = "stale payment status ignored"
	PaymentResyncSuccessMessage         = "payment status resynchronized successfully"
	HealthCheckSuccessMessage           = "service is healthy"
	HealthCheckDegradedMessage          = "one or more dependencies are unreachable"
)
