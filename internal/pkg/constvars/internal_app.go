package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_RAW_BODY                 ContextKey = "raw_body"
	CONTEXT_REQUESTER_ID_KEY         ContextKey = "requester_id"
	CONTEXT_REQUESTER_TYPE_KEY       ContextKey = "requester_type"
	CONTEXT_API_KEY_AUTH             ContextKey = "api_key_auth"
)

const (
	REQUEST_ID_PREFIX = "CHKT_SVC_"
)

const (
	RequesterTypeUser  = "user"
	RequesterTypeGuest = "guest"
)

const (
	URLParamOrderID              = "orderId"
	URLParamGatewayTransactionID = "gatewayTransactionId"
	QueryParamCheckoutID         = "checkout_id"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)
