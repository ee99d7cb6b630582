package models

import "time"

const (
	WebhookEventSourceNotification = "notification"
	WebhookEventSourceResync       = "resync"
)

// WebhookEvent is the audit record of one reconciliation attempt, either a
// gateway notification or a manual resync.
type WebhookEvent struct {
	ID                   string    `json:"id" bson:"_id"`
	RequestID            string    `json:"request_id" bson:"request_id"`
	Source               string    `json:"source" bson:"source"`
	GatewayTransactionID string    `json:"gateway_transaction_id" bson:"gateway_transaction_id"`
	SignatureValid       bool      `json:"signature_valid" bson:"signature_valid"`
	GatewayStatus        string    `json:"gateway_status,omitempty" bson:"gateway_status,omitempty"`
	CanonicalStatus      string    `json:"canonical_status,omitempty" bson:"canonical_status,omitempty"`
	PreviousStatus       string    `json:"previous_status,omitempty" bson:"previous_status,omitempty"`
	Outcome              string    `json:"outcome" bson:"outcome"`
	Error                string    `json:"error,omitempty" bson:"error,omitempty"`
	RawBody              string    `json:"raw_body,omitempty" bson:"raw_body,omitempty"`
	ReceivedAt           time.Time `json:"received_at" bson:"received_at"`
}
