package checkout

import (
	"time"

	"gardenshop/internal/domain"
)

// SessionStatus tracks one online-payment attempt from gateway order
// creation to a settled outcome.
type SessionStatus string

const (
	// SessionOrderCreated: the upstream issued a gateway order id.
	SessionOrderCreated SessionStatus = "ORDER_CREATED"
	// SessionOpen: widget options were handed to the customer; the flow is
	// suspended until the widget reports an outcome.
	SessionOpen SessionStatus = "GATEWAY_SESSION_OPEN"
	// SessionVerifying: the widget reported success; the triple is being
	// verified upstream.
	SessionVerifying SessionStatus = "VERIFYING"
	// SessionPlaced: verification passed and the order exists upstream.
	SessionPlaced SessionStatus = "ORDER_PLACED"
	// SessionVerificationFailed: verification failed after the gateway may
	// already have captured funds. Terminal; manual reconciliation.
	SessionVerificationFailed SessionStatus = "VERIFICATION_FAILED"
	// SessionCancelled: the customer dismissed the widget. No order exists
	// and checkout may be retried from scratch.
	SessionCancelled SessionStatus = "USER_CANCELLED"
)

// IsTerminal reports whether the session reached an outcome.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionPlaced || s == SessionVerificationFailed || s == SessionCancelled
}

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionOrderCreated: {SessionOpen},
	SessionOpen:         {SessionVerifying, SessionCancelled},
	SessionVerifying:    {SessionPlaced, SessionVerificationFailed},
}

func canTransition(from, to SessionStatus) bool {
	for _, next := range sessionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// session is one pending online checkout. The draft is frozen at submission
// and resent verbatim with the verification triple.
type session struct {
	ID             string
	UserID         string
	Status         SessionStatus
	Draft          domain.OrderDraft
	GatewayOrderID string
	CreatedAt      time.Time
}

func (s *session) expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.CreatedAt) > ttl
}
