package metrics

import (
	"checkout-service/internal/app/contracts"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type paymentMetrics struct {
	initiationsTotal    *prometheus.CounterVec
	webhooksTotal       *prometheus.CounterVec
	gatewayCallDuration *prometheus.HistogramVec
}

// NewPaymentMetrics registers the payment collectors on registerer.
func NewPaymentMetrics(registerer prometheus.Registerer) contracts.PaymentMetrics {
	m := &paymentMetrics{
		initiationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_initiations_total",
				Help: "Total number of payment initiations by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		webhooksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhooks_total",
				Help: "Total number of payment webhooks by outcome",
			},
			[]string{"outcome"},
		),
		gatewayCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_gateway_call_duration_seconds",
				Help:    "Latency of outbound payment gateway and antifraud calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "outcome"},
		),
	}

	registerer.MustRegister(m.initiationsTotal, m.webhooksTotal, m.gatewayCallDuration)
	return m
}

func (m *paymentMetrics) IncInitiation(method, outcome string) {
	m.initiationsTotal.WithLabelValues(method, outcome).Inc()
}

func (m *paymentMetrics) IncWebhook(outcome string) {
	m.webhooksTotal.WithLabelValues(outcome).Inc()
}

func (m *paymentMetrics) ObserveGatewayCall(operation, outcome string, duration time.Duration) {
	m.gatewayCallDuration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}

type noopMetrics struct{}

// NewNoopMetrics is used where no registry is wired, such as tests.
func NewNoopMetrics() contracts.PaymentMetrics {
	return noopMetrics{}
}

func (noopMetrics) IncInitiation(method, outcome string) {}

func (noopMetrics) IncWebhook(outcome string) {}

func (noopMetrics) ObserveGatewayCall(operation, outcome string, duration time.Duration) {}
