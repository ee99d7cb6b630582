package payments

import (
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/utils"
	"fmt"
)

func buildPaymentPayload(order *models.Order) *requests.PaymentPayload {
	items := make([]requests.GatewayItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, requests.GatewayItem{
			ReferenceID:    item.ProductID,
			Name:           item.ProductName,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			UnitAmountCent: utils.ToCents(item.UnitPrice),
		})
	}

	return &requests.PaymentPayload{
		ReferenceID:   order.ID,
		Description:   fmt.Sprintf(constvars.PaymentDescriptionFormat, order.ID),
		Amount:        order.Total,
		AmountInCents: utils.ToCents(order.Total),
		Customer: requests.GatewayCustomer{
			Name:  order.Customer.Name,
			Email: order.Customer.Email,
			Phone: order.Customer.Phone,
			TaxID: order.Customer.TaxID,
		},
		Shipping: requests.GatewayShippingAddress{
			Street:     order.ShippingStreet,
			Number:     order.ShippingNumber,
			Complement: order.ShippingComplement,
			District:   order.ShippingDistrict,
			City:       order.ShippingCity,
			State:      order.ShippingState,
			PostalCode: order.ShippingPostalCode,
		},
		Items: items,
	}
}

func buildAntifraudRequest(order *models.Order, method models.PaymentMethod) *requests.AntifraudRequest {
	items := make([]requests.AntifraudItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, requests.AntifraudItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &requests.AntifraudRequest{
		OrderID:       order.ID,
		Amount:        order.Total,
		PaymentMethod: method,
		Customer: requests.AntifraudCustomer{
			Name:  order.Customer.Name,
			Email: order.Customer.Email,
			Phone: order.Customer.Phone,
			TaxID: order.Customer.TaxID,
		},
		Items: items,
	}
}
