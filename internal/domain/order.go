package domain

import (
	"fmt"
	"strings"
	"time"
)

// PaymentMode selects the checkout completion path.
type PaymentMode string

const (
	PaymentCashOnDelivery PaymentMode = "cod"
	PaymentOnline         PaymentMode = "online"
)

// ParsePaymentMode normalizes client input into a PaymentMode.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cod", "cash", "cash_on_delivery", "cashondelivery":
		return PaymentCashOnDelivery, nil
	case "online":
		return PaymentOnline, nil
	default:
		return "", fmt.Errorf("unknown payment mode %q", s)
	}
}

// PaymentStatus is fixed at order creation and never changes afterwards.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// PaymentStatusFor derives the payment status from the payment mode:
// cash on delivery is pending until the courier collects, online orders
// are treated as settled at confirmation time.
func PaymentStatusFor(mode PaymentMode) PaymentStatus {
	if mode == PaymentOnline {
		return PaymentPaid
	}
	return PaymentPending
}

// FulfillmentStatus is the operational state of an order, controlled by
// administrators. Transitions are not restricted to forward-only.
type FulfillmentStatus string

const (
	StatusPreparing      FulfillmentStatus = "Preparing"
	StatusOutForDelivery FulfillmentStatus = "Out for Delivery"
	StatusDelivered      FulfillmentStatus = "Delivered"
)

// ParseFulfillmentStatus validates admin input against the closed set.
func ParseFulfillmentStatus(s string) (FulfillmentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preparing":
		return StatusPreparing, nil
	case "out for delivery", "out_for_delivery":
		return StatusOutForDelivery, nil
	case "delivered":
		return StatusDelivered, nil
	default:
		return "", fmt.Errorf("unknown fulfillment status %q", s)
	}
}

// CheckoutContext carries the delivery details captured for one
// checkout attempt. It is session-scoped and consumed when the cart is
// materialized into orders.
type CheckoutContext struct {
	Address     string      `json:"address"`
	PaymentMode PaymentMode `json:"paymentMode"`
}

// Order is one durable record produced from one cart line at checkout.
type Order struct {
	ID            int64             `json:"id"`
	Username      string            `json:"username"`
	Item          string            `json:"item"`
	Quantity      int               `json:"quantity"`
	Address       string            `json:"address"`
	PaymentMode   PaymentMode       `json:"paymentMode"`
	PaymentStatus PaymentStatus     `json:"paymentStatus"`
	Status        FulfillmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}
