package constvars

const (
	LoggingRequestIDKey            = "request_id"
	LoggingOperationKey            = "operation"
	LoggingDurationKey             = "duration"
	LoggingSuccessKey              = "success"
	LoggingEndpointKey             = "endpoint"
	LoggingMethodKey               = "method"
	LoggingRemoteAddrKey           = "remote_addr"
	LoggingUserAgentKey            = "user_agent"
	LoggingQueryKey                = "query"
	LoggingStatusCodeKey           = "status_code"
	LoggingErrorTypeKey            = "error_type"
	LoggingOrderIDKey              = "order_id"
	LoggingOrderStatusKey          = "order_status"
	LoggingTransactionIDKey        = "transaction_id"
	LoggingGatewayTransactionIDKey = "gateway_transaction_id"
	LoggingGatewayStatusKey        = "gateway_status"
	LoggingCanonicalStatusKey      = "canonical_status"
	LoggingPaymentMethodKey        = "payment_method"
	LoggingFraudDecisionKey        = "fraud_decision"
	LoggingRequesterIDKey          = "requester_id"
	LoggingRedisKey                = "redis_key"
	LoggingLockValueKey            = "lock_value"
	LoggingLockExpirationTimeKey   = "lock_expiration_time"
	LoggingEmailTemplateKey        = "email_template"
	LoggingBucketNameKey           = "bucket_name"
	LoggingObjectNameKey           = "object_name"
	LoggingURLKey                  = "url"
)
