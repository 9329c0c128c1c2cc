// Package event provides a type for the event that triggered the webhook.
package event

// Type represents the kind of Snipcart event that triggered the webhook.
type Type string

const (
	// OrderCompleted represents a completed order event.
	OrderCompleted Type = "order.completed"
	// OrderStatusChanged represents an order status change event.
	OrderStatusChanged Type = "order.status.changed"
	// OrderNotificationCreated represents an order notification creation event.
	OrderNotificationCreated Type = "order.notification.created"
	// OrderPaymentStatusChanged represents an order payment status change event.
	OrderPaymentStatusChanged Type = "order.paymentStatus.changed"
	// OrderTrackingNumberChanged represents an order tracking number change event.
	OrderTrackingNumberChanged Type = "order.trackingNumber.changed"
	// OrderRefundCreated represents an order refund creation event.
	OrderRefundCreated Type = "order.refund.created"
	// SubscriptionCreated represents a subscription creation event.
	SubscriptionCreated Type = "subscription.created"
	// SubscriptionCancelled represents a subscription cancellation event.
	SubscriptionCancelled Type = "subscription.cancelled"
	// SubscriptionPaused represents a subscription pause event.
	SubscriptionPaused Type = "subscription.paused"
	// SubscriptionResumed represents a subscription resume event.
	SubscriptionResumed Type = "subscription.resumed"
	// SubscriptionInvoiceCreated represents a subscription invoice creation event.
	SubscriptionInvoiceCreated Type = "subscription.invoice.created"
	// ShippingRatesFetch represents a shipping rates fetch event.
	ShippingRatesFetch Type = "shippingrates.fetch"
	// TaxesCalculate represents a tax calculation event.
	TaxesCalculate Type = "taxes.calculate"
	// CustomerUpdated represents a customer update event.
	CustomerUpdated Type = "customauth:customer_updated"
)

// Known lists every event type the webhook endpoint accepts.
func Known() []Type {
	return []Type{
		OrderCompleted,
		OrderStatusChanged,
		OrderNotificationCreated,
		OrderPaymentStatusChanged,
		OrderTrackingNumberChanged,
		OrderRefundCreated,
		SubscriptionCreated,
		SubscriptionCancelled,
		SubscriptionPaused,
		SubscriptionResumed,
		SubscriptionInvoiceCreated,
		ShippingRatesFetch,
		TaxesCalculate,
		CustomerUpdated,
	}
}

// IsKnown returns true if the given name matches a known event type.
func IsKnown(name string) bool {
	for _, t := range Known() {
		if string(t) == name {
			return true
		}
	}
	return false
}
