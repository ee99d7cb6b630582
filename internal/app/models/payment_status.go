package models

import (
	"checkout-service/internal/pkg/constvars"
	"strings"
)

var gatewayStatusMapping = map[string]OrderStatus{
	constvars.GatewayStatusPaid:       OrderStatusPaid,
	constvars.GatewayStatusApproved:   OrderStatusPaid,
	constvars.GatewayStatusInAnalysis: OrderStatusPending,
	constvars.GatewayStatusPending:    OrderStatusPending,
	constvars.GatewayStatusCanceled:   OrderStatusCancelled,
	constvars.GatewayStatusAborted:    OrderStatusCancelled,
	constvars.GatewayStatusRefunded:   OrderStatusShipped,
	constvars.GatewayStatusShipped:    OrderStatusShipped,
	constvars.GatewayStatusDelivered:  OrderStatusDelivered,
}

// MapGatewayStatus translates the gateway vocabulary into the canonical order
// status. Unknown values map to PENDING.
func MapGatewayStatus(gatewayStatus string) OrderStatus {
	if status, ok := gatewayStatusMapping[strings.ToUpper(strings.TrimSpace(gatewayStatus))]; ok {
		return status
	}
	return OrderStatusPending
}

// ExtractGatewayStatus prefers the top level status, then the first charge
// status, then falls back to "pending".
func ExtractGatewayStatus(status string, chargeStatuses []string) string {
	if strings.TrimSpace(status) != "" {
		return status
	}
	if len(chargeStatuses) > 0 && strings.TrimSpace(chargeStatuses[0]) != "" {
		return chargeStatuses[0]
	}
	return constvars.DefaultGatewayStatus
}

// PixStatusFor derives the instant transfer descriptor status from the order
// status and the raw gateway status.
func PixStatusFor(orderStatus OrderStatus, gatewayStatus string, expired bool) string {
	switch strings.ToUpper(gatewayStatus) {
	case constvars.GatewayStatusDeclined:
		return constvars.PixStatusFailed
	case constvars.GatewayStatusExpired:
		return constvars.PixStatusExpired
	}

	switch orderStatus {
	case OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered:
		return constvars.PixStatusCompleted
	case OrderStatusCancelled:
		return constvars.PixStatusCanceled
	default:
		if expired {
			return constvars.PixStatusExpired
		}
		return constvars.PixStatusPending
	}
}
