package payments

import (
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/exceptions"
)

// checkOwnership accepts the requester only when it is the registered owner
// of the order or, for guest orders, the guest that placed it.
func checkOwnership(order *models.Order, requesterID string) error {
	if order.UserID != nil && *order.UserID != "" {
		if requesterID == "" || requesterID != *order.UserID {
			return exceptions.ErrOrderNotOwned()
		}
		return nil
	}

	if order.GuestID == nil || *order.GuestID == "" {
		return exceptions.ErrOrderOwnershipMissing()
	}
	if requesterID == "" || requesterID != *order.GuestID {
		return exceptions.ErrOrderNotOwned()
	}
	return nil
}
