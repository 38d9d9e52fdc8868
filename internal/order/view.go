package order

import (
	"fmt"

	"gardenshop/internal/domain"
)

// RefundCreditWindow is the credit estimate shown with a processed refund.
const RefundCreditWindow = "5-7 business days"

// RefundState buckets the refund panel into its four distinct renderings.
type RefundState string

const (
	// RefundStateNone: non-online order, nothing to repay.
	RefundStateNone RefundState = "none"
	// RefundStateInProgress: refund pending or not yet reported.
	RefundStateInProgress RefundState = "in_progress"
	// RefundStateProcessed: refund confirmed with amount and window.
	RefundStateProcessed RefundState = "processed"
	// RefundStateFailed: alarm state, contact support. Never rendered as a
	// plain pending indicator.
	RefundStateFailed RefundState = "failed"
)

// RefundSummary is the display model for the refund panel of a cancelled
// order.
type RefundSummary struct {
	State        RefundState `json:"state"`
	Message      string      `json:"message"`
	Amount       int64       `json:"amount,omitempty"`
	RefundID     string      `json:"refundId,omitempty"`
	CreditWindow string      `json:"creditWindow,omitempty"`
}

// BuildRefundSummary reconciles the refund object of a cancelled order into
// one of four renderings. Orders that are not cancelled have no panel.
func BuildRefundSummary(o domain.Order) *RefundSummary {
	if o.OrderStatus != domain.StatusCancelled {
		return nil
	}
	if o.PaymentMode != domain.PaymentModeOnline {
		return &RefundSummary{
			State:   RefundStateNone,
			Message: "No refund needed: this order was not paid online.",
		}
	}
	if o.Refund == nil {
		return &RefundSummary{
			State:   RefundStateInProgress,
			Message: "Your refund is being processed.",
		}
	}
	switch o.Refund.RefundStatus {
	case domain.RefundProcessed:
		return &RefundSummary{
			State:        RefundStateProcessed,
			Message:      fmt.Sprintf("₹%d will be credited to your original payment method within %s.", o.Refund.RefundAmount, RefundCreditWindow),
			Amount:       o.Refund.RefundAmount,
			RefundID:     o.Refund.RefundID,
			CreditWindow: RefundCreditWindow,
		}
	case domain.RefundFailed:
		return &RefundSummary{
			State:   RefundStateFailed,
			Message: fmt.Sprintf("Refund failed. Please contact support with order reference %s.", o.ID),
		}
	default:
		return &RefundSummary{
			State:   RefundStateInProgress,
			Message: "Your refund is being processed.",
		}
	}
}

// TrackerStep is one stop on the linear progress tracker.
type TrackerStep struct {
	Status  domain.OrderStatus `json:"status"`
	Reached bool               `json:"reached"`
}

// Tracker is the step-progress display model. Suppressed entirely once an
// order leaves the linear chain, since positional progress no longer applies.
type Tracker struct {
	Visible bool          `json:"visible"`
	Current int           `json:"current,omitempty"`
	Steps   []TrackerStep `json:"steps,omitempty"`
}

var trackerChain = []domain.OrderStatus{
	domain.StatusPending,
	domain.StatusConfirmed,
	domain.StatusPacked,
	domain.StatusShipped,
	domain.StatusDelivered,
}

// BuildTracker indexes the order's status on the linear chain.
func BuildTracker(o domain.Order) Tracker {
	idx, ok := o.OrderStatus.StepIndex()
	if !ok {
		return Tracker{Visible: false}
	}
	steps := make([]TrackerStep, len(trackerChain))
	for i, st := range trackerChain {
		steps[i] = TrackerStep{Status: st, Reached: i <= idx}
	}
	return Tracker{Visible: true, Current: idx, Steps: steps}
}

// View is the full order display model: the order itself plus the derived
// tracker, refund panel, rejection notice, and whether a cancellation
// request may still be raised.
type View struct {
	Order                 domain.Order   `json:"order"`
	Tracker               Tracker        `json:"tracker"`
	Refund                *RefundSummary `json:"refund,omitempty"`
	CanCancel             bool           `json:"canCancel"`
	CancellationRejected  bool           `json:"cancellationRejected"`
	RejectionReason       string         `json:"rejectionReason,omitempty"`
	CancellationRequested bool           `json:"cancellationRequested"`
}

// BuildView derives everything the order detail page renders from server
// truth.
func BuildView(o domain.Order) View {
	v := View{
		Order:                 o,
		Tracker:               BuildTracker(o),
		Refund:                BuildRefundSummary(o),
		CanCancel:             o.OrderStatus.CancellationEligible(),
		CancellationRequested: o.OrderStatus == domain.StatusCancellationRequested,
	}
	if o.CancellationRejected() {
		v.CancellationRejected = true
		v.RejectionReason = o.CancellationRequest.RejectionReason
	}
	return v
}
