package constvars

// Gateway status vocabulary reported on checkouts, orders and charges.
const (
	GatewayStatusPaid       = "PAID"
	GatewayStatusApproved   = "APPROVED"
	GatewayStatusInAnalysis = "IN_ANALYSIS"
	GatewayStatusPending    = "PENDING"
	GatewayStatusWaiting    = "WAITING"
	GatewayStatusCanceled   = "CANCELED"
	GatewayStatusAborted    = "ABORTED"
	GatewayStatusRefunded   = "REFUNDED"
	GatewayStatusShipped    = "SHIPPED"
	GatewayStatusDelivered  = "DELIVERED"
	GatewayStatusDeclined   = "DECLINED"
	GatewayStatusExpired    = "EXPIRED"
)

// DefaultGatewayStatus is used when neither the resource nor its charges carry a status.
const DefaultGatewayStatus = "pending"

// Instant transfer charge descriptor statuses.
const (
	PixStatusPending   = "PENDING"
	PixStatusCompleted = "COMPLETED"
	PixStatusCanceled  = "CANCELED"
	PixStatusExpired   = "EXPIRED"
	PixStatusFailed    = "FAILED"
)

const (
	GatewayLinkRelPay       = "PAY"
	GatewayLinkRelQRCodePNG = "QRCODE.PNG"
	GatewayPaymentTypeCard  = "CREDIT_CARD"
	GatewayCurrencyBRL      = "BRL"
	GatewayPhoneTypeMobile  = "MOBILE"
	GatewayPhoneCountryBR   = "55"
	GatewayAddressCountry   = "BRA"
)

const (
	GatewayPathOrders    = "/orders"
	GatewayPathCheckouts = "/checkouts"
)

const (
	PaymentInitiationLockKeyFormat = "payment:initiate:%s"
	ResyncWorkerLockKey            = "payment:resync:lock"
	DefaultResyncCronSpec          = "@every 5m"
	PaymentWebhookCallbackPath     = "/api/v1/webhooks/payments"
	PaymentRedirectPathFormat      = "/orders/%s/payment-result"
	QRCodeObjectNameFormat         = "qrcodes/%s%s"
)

const (
	OperationCreatePixCharge    = "create_pix_charge"
	OperationProcessCardCharge  = "process_card_charge"
	OperationCreateCheckout     = "create_checkout"
	OperationGetCheckoutDetails = "get_checkout_details"
	OperationGetOrderDetails    = "get_order_details"
	OperationAntifraudAnalysis  = "antifraud_analysis"
	OperationReconcile          = "reconcile_payment_status"
)

const (
	WebhookOutcomeApplied        = "applied"
	WebhookOutcomeAlreadyApplied = "already_applied"
	WebhookOutcomeIgnored        = "ignored"
	WebhookOutcomeFailed         = "failed"
)

// WebhookBodyIDPath is the gjson path of the checkout or charge id in a
// gateway notification.
const WebhookBodyIDPath = "id"

const (
	InitiationOutcomeCreated = "created"
	InitiationOutcomeReused  = "reused"
	InitiationOutcomeDenied  = "denied"
	InitiationOutcomeFailed  = "failed"
)

const (
	PaymentDescriptionFormat = "Order %s"
	QRCodeFileExtension      = ".png"
)
