package constvars

const (
	EmailTemplateOrderConfirmation = "order_confirmation"
	EmailTemplateOrderCancellation = "order_cancellation"
)

const (
	EmailSubjectOrderConfirmation = "Payment confirmed for order %s"
	EmailSubjectOrderCancellation = "Order %s has been cancelled"
)
