package order

import (
	"testing"

	"gardenshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cancelled(mode domain.PaymentMode, refund *domain.Refund) domain.Order {
	return domain.Order{
		ID:          "o1",
		OrderStatus: domain.StatusCancelled,
		PaymentMode: mode,
		Refund:      refund,
	}
}

func TestRefundSummary_Processed(t *testing.T) {
	// Scenario: online order cancelled, refund processed for 549.
	o := cancelled(domain.PaymentModeOnline, &domain.Refund{
		RefundStatus: domain.RefundProcessed,
		RefundAmount: 549,
		RefundID:     "rfnd_123",
	})

	sum := BuildRefundSummary(o)
	require.NotNil(t, sum)
	assert.Equal(t, RefundStateProcessed, sum.State)
	assert.Equal(t, int64(549), sum.Amount)
	assert.Equal(t, "rfnd_123", sum.RefundID)
	assert.Contains(t, sum.Message, "₹549")
	assert.Contains(t, sum.Message, "5-7 business days")
}

func TestRefundSummary_FailedIsDistinctFromPending(t *testing.T) {
	failed := BuildRefundSummary(cancelled(domain.PaymentModeOnline, &domain.Refund{
		RefundStatus: domain.RefundFailed,
	}))
	pending := BuildRefundSummary(cancelled(domain.PaymentModeOnline, &domain.Refund{
		RefundStatus: domain.RefundPending,
	}))

	require.NotNil(t, failed)
	require.NotNil(t, pending)
	assert.Equal(t, RefundStateFailed, failed.State)
	assert.Equal(t, RefundStateInProgress, pending.State)
	assert.NotEqual(t, failed.State, pending.State)
	assert.Contains(t, failed.Message, "support")
	assert.Contains(t, failed.Message, "o1")
}

func TestRefundSummary_AbsentRefundIsInProgress(t *testing.T) {
	sum := BuildRefundSummary(cancelled(domain.PaymentModeOnline, nil))
	require.NotNil(t, sum)
	assert.Equal(t, RefundStateInProgress, sum.State)
}

func TestRefundSummary_CODNeedsNoRefund(t *testing.T) {
	sum := BuildRefundSummary(cancelled(domain.PaymentModeCOD, nil))
	require.NotNil(t, sum)
	assert.Equal(t, RefundStateNone, sum.State)
	assert.Contains(t, sum.Message, "No refund needed")
}

func TestRefundSummary_OnlyForCancelledOrders(t *testing.T) {
	o := domain.Order{OrderStatus: domain.StatusShipped, PaymentMode: domain.PaymentModeOnline}
	assert.Nil(t, BuildRefundSummary(o))
}

func TestTracker_LinearProgression(t *testing.T) {
	o := domain.Order{OrderStatus: domain.StatusPacked}
	tr := BuildTracker(o)

	require.True(t, tr.Visible)
	assert.Equal(t, 2, tr.Current)
	require.Len(t, tr.Steps, 5)
	assert.True(t, tr.Steps[0].Reached)
	assert.True(t, tr.Steps[2].Reached)
	assert.False(t, tr.Steps[3].Reached)
}

func TestTracker_SuppressedOffChain(t *testing.T) {
	for _, status := range []domain.OrderStatus{domain.StatusCancelled, domain.StatusCancellationRequested} {
		tr := BuildTracker(domain.Order{OrderStatus: status})
		assert.False(t, tr.Visible, "status %s", status)
		assert.Empty(t, tr.Steps, "status %s", status)
	}
}

func TestView_RejectedCancellationIsFlagged(t *testing.T) {
	// Admin rejected the request: back in Shipped with a rejection reason.
	o := domain.Order{
		ID:          "o1",
		OrderStatus: domain.StatusShipped,
		CancellationRequest: &domain.CancellationRequest{
			Reason:          "wrong size",
			RejectionReason: "order already handed to courier",
		},
	}

	v := BuildView(o)
	assert.True(t, v.CancellationRejected)
	assert.Equal(t, "order already handed to courier", v.RejectionReason)
	// Back on the chain: the tracker renders again.
	assert.True(t, v.Tracker.Visible)
	// Still in-flight, so a fresh request remains possible.
	assert.True(t, v.CanCancel)
}

func TestView_FreshOrderNotFlaggedAsRejected(t *testing.T) {
	v := BuildView(domain.Order{ID: "o1", OrderStatus: domain.StatusShipped})
	assert.False(t, v.CancellationRejected)
	assert.Empty(t, v.RejectionReason)
}

func TestView_CancellationRequestedHidesTrackerAndCancel(t *testing.T) {
	o := domain.Order{
		ID:                  "o1",
		OrderStatus:         domain.StatusCancellationRequested,
		CancellationRequest: &domain.CancellationRequest{Reason: "wrong size"},
	}
	v := BuildView(o)
	assert.False(t, v.Tracker.Visible)
	assert.False(t, v.CanCancel)
	assert.True(t, v.CancellationRequested)
	assert.False(t, v.CancellationRejected)
}
