package contracts

import "time"

type PaymentMetrics interface {
	IncInitiation(method, outcome string)
	IncWebhook(outcome string)
	ObserveGatewayCall(operation, outcome string, duration time.Duration)
}
