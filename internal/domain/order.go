package domain

import (
	"fmt"
	"time"
)

// PaymentMode selects how an order is settled.
type PaymentMode string

const (
	PaymentModeCOD    PaymentMode = "COD"
	PaymentModeOnline PaymentMode = "Online"
)

// ParsePaymentMode validates a payment mode coming in over the wire.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch PaymentMode(s) {
	case PaymentModeCOD, PaymentModeOnline:
		return PaymentMode(s), nil
	}
	return "", fmt.Errorf("%w: payment mode %q", ErrUnknownStatus, s)
}

// PaymentStatus is the server-reported settlement state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// OrderStatus is the server-authoritative lifecycle state of an order. The
// linear chain Pending through Delivered is forward-only; the two
// cancellation states sit outside it.
type OrderStatus string

const (
	StatusPending               OrderStatus = "Pending"
	StatusConfirmed             OrderStatus = "Confirmed"
	StatusPacked                OrderStatus = "Packed"
	StatusShipped               OrderStatus = "Shipped"
	StatusDelivered             OrderStatus = "Delivered"
	StatusCancellationRequested OrderStatus = "CancellationRequested"
	StatusCancelled             OrderStatus = "Cancelled"
)

// progression indexes the linear chain for the step tracker. Cancellation
// states are deliberately absent.
var progression = map[OrderStatus]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusPacked:    2,
	StatusShipped:   3,
	StatusDelivered: 4,
}

// ParseOrderStatus rejects status strings outside the known set rather than
// letting an unrecognized value flow into rendering or eligibility checks.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusPacked, StatusShipped,
		StatusDelivered, StatusCancellationRequested, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("%w: order status %q", ErrUnknownStatus, s)
}

// StepIndex returns the position of a status on the linear chain, or false
// when the status is off the chain and the tracker must be suppressed.
func (s OrderStatus) StepIndex() (int, bool) {
	idx, ok := progression[s]
	return idx, ok
}

// CancellationEligible reports whether a cancellation request may still be
// raised. Delivered orders, cancelled orders, and orders already awaiting a
// cancellation decision are not eligible; eligibility doubles as the
// duplicate-request guard.
func (s OrderStatus) CancellationEligible() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPacked, StatusShipped:
		return true
	}
	return false
}

// RefundStatus is the server-reported state of a refund attached to a
// cancelled online order.
type RefundStatus string

const (
	RefundPending   RefundStatus = "Pending"
	RefundProcessed RefundStatus = "Processed"
	RefundFailed    RefundStatus = "Failed"
)

// OrderItem is a purchased line as stored on the order, frozen at placement.
type OrderItem struct {
	ProductRef  string `json:"product"`
	ProductType string `json:"productType"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
}

// ShippingAddress is the delivery destination collected at checkout. Every
// field is required at submission.
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// PaymentDetails carries the opaque gateway triple recorded after a verified
// online payment. The client relays these values and never interprets them.
type PaymentDetails struct {
	GatewayOrderID   string `json:"gatewayOrderId,omitempty"`
	GatewayPaymentID string `json:"gatewayPaymentId,omitempty"`
	Signature        string `json:"signature,omitempty"`
}

// CancellationRequest holds the customer's reason and, once an admin has
// rejected the request, the rejection reason.
type CancellationRequest struct {
	Reason          string `json:"reason"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// Refund exists only on cancelled online orders that had been paid.
type Refund struct {
	RefundStatus RefundStatus `json:"refundStatus"`
	RefundAmount int64        `json:"refundAmount"`
	RefundID     string       `json:"refundId,omitempty"`
}

// Order is owned by the upstream shop API; this service reads it and, apart
// from the cancellation request, never mutates it.
type Order struct {
	ID                  string               `json:"id"`
	OrderItems          []OrderItem          `json:"orderItems"`
	ShippingAddress     ShippingAddress      `json:"shippingAddress"`
	ItemsPrice          int64                `json:"itemsPrice"`
	ShippingPrice       int64                `json:"shippingPrice"`
	DiscountAmount      int64                `json:"discountAmount"`
	TotalAmount         int64                `json:"totalAmount"`
	PaymentMode         PaymentMode          `json:"paymentMode"`
	PaymentStatus       PaymentStatus        `json:"paymentStatus"`
	PaymentDetails      *PaymentDetails      `json:"paymentDetails,omitempty"`
	OrderStatus         OrderStatus          `json:"orderStatus"`
	CancellationRequest *CancellationRequest `json:"cancellationRequest,omitempty"`
	Refund              *Refund              `json:"refund,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
}

// CancellationRejected reports whether the order carries the trace of a
// rejected cancellation request: back on the linear chain with a rejection
// reason populated. Rendering must distinguish this from a fresh order in
// the same status.
func (o Order) CancellationRejected() bool {
	if o.CancellationRequest == nil || o.CancellationRequest.RejectionReason == "" {
		return false
	}
	_, onChain := o.OrderStatus.StepIndex()
	return onChain
}

// OrderDraft is what checkout submits upstream. It is built fresh at
// submission and never mutated afterwards; the server recomputes all prices
// and the draft's totals are display mirrors only.
type OrderDraft struct {
	Items           []OrderItem     `json:"orderItems"`
	ItemsPrice      int64           `json:"itemsPrice"`
	ShippingPrice   int64           `json:"shippingPrice"`
	TotalAmount     int64           `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMode     PaymentMode     `json:"paymentMode"`
}
