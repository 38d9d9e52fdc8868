// Package checkout drives cart submission through either the
// cash-on-delivery path or the two-phase online payment protocol. Money must
// not move without a verified order, and an order must never be marked paid
// without gateway-side proof; the orchestrator therefore only relays opaque
// gateway values and treats the upstream as the source of truth for pricing.
package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"gardenshop/internal/domain"
	"gardenshop/internal/gateway"
	"gardenshop/internal/shopapi"
	"github.com/google/uuid"
)

// MsgPaymentCancelled is shown when the customer dismisses the widget.
const MsgPaymentCancelled = "Payment cancelled. Please try again."

type cartService interface {
	Get(ctx context.Context, userID string) ([]domain.CartLine, error)
	Clear(ctx context.Context, userID string) error
}

type shopAPI interface {
	CreateOrder(ctx context.Context, userID string, draft domain.OrderDraft) (*domain.Order, error)
	CreatePaymentOrder(ctx context.Context, userID string, req shopapi.CreatePaymentOrderRequest) (*shopapi.CreatePaymentOrderResponse, error)
	VerifyPayment(ctx context.Context, userID string, req shopapi.VerifyPaymentRequest) (*shopapi.VerifyPaymentResponse, error)
}

type gatewayBridge interface {
	Ready() bool
	Options(gatewayOrderID string, amount int64, key string, prefill gateway.Prefill) gateway.CheckoutOptions
}

// Pricing mirrors the upstream shipping rule for display totals. The
// upstream recomputes everything; these figures never become authoritative.
type Pricing struct {
	ShippingPrice     int64
	FreeShippingAbove int64
}

const defaultSessionTTL = 30 * time.Minute

type Service struct {
	carts   cartService
	api     shopAPI
	bridge  gatewayBridge
	pricing Pricing
	logger  *log.Logger

	sessionTTL time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
	// inflight maps a user to their pending submission: the session id on
	// the online path, "" while a COD call is running.
	inflight map[string]string
}

func New(carts cartService, api shopAPI, bridge gatewayBridge, pricing Pricing, logger *log.Logger) *Service {
	return &Service{
		carts:      carts,
		api:        api,
		bridge:     bridge,
		pricing:    pricing,
		logger:     logger,
		sessionTTL: defaultSessionTTL,
		now:        time.Now,
		sessions:   make(map[string]*session),
		inflight:   make(map[string]string),
	}
}

// SetSessionTTL overrides how long an open payment session stays claimable.
// Non-positive values are ignored.
func (s *Service) SetSessionTTL(ttl time.Duration) {
	if ttl > 0 {
		s.sessionTTL = ttl
	}
}

// SubmitInput is one checkout submission.
type SubmitInput struct {
	Address     domain.ShippingAddress `json:"shippingAddress"`
	PaymentMode string                 `json:"paymentMode"`
	Prefill     gateway.Prefill        `json:"prefill"`
}

// PaymentIntent is returned on the online path: the widget options the
// customer needs to open the gateway modal, tied to a session that must be
// settled by Complete or Dismiss.
type PaymentIntent struct {
	SessionID string                  `json:"sessionId"`
	Options   gateway.CheckoutOptions `json:"options"`
}

// SubmitResult carries exactly one of: a placed COD order, or an online
// payment intent.
type SubmitResult struct {
	Order   *domain.Order  `json:"order,omitempty"`
	Payment *PaymentIntent `json:"payment,omitempty"`
}

// Submit validates and routes a checkout. A second submission for the same
// user while one is pending is rejected; any failure leaves the cart intact
// so retrying needs no re-entry of items.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (*SubmitResult, error) {
	if err := in.Address.Validate(); err != nil {
		return nil, err
	}
	mode, err := domain.ParsePaymentMode(in.PaymentMode)
	if err != nil {
		return nil, domain.NewValidationError("paymentMode", "must be COD or Online")
	}
	if mode == domain.PaymentModeOnline && !s.bridge.Ready() {
		return nil, domain.ErrGatewayNotReady
	}

	if !s.acquire(userID) {
		return nil, domain.ErrCheckoutInFlight
	}

	lines, err := s.carts.Get(ctx, userID)
	if err != nil {
		s.release(userID)
		return nil, err
	}
	if len(lines) == 0 {
		s.release(userID)
		return nil, domain.NewValidationError("cart", "is empty")
	}
	draft := s.buildDraft(lines, in.Address, mode)

	if mode == domain.PaymentModeCOD {
		defer s.release(userID)
		order, err := s.api.CreateOrder(ctx, userID, draft)
		if err != nil {
			return nil, fmt.Errorf("create order: %w", err)
		}
		s.clearCart(ctx, userID)
		return &SubmitResult{Order: order}, nil
	}

	resp, err := s.api.CreatePaymentOrder(ctx, userID, shopapi.CreatePaymentOrderRequest{Items: draft.Items})
	if err != nil {
		s.release(userID)
		return nil, fmt.Errorf("create payment order: %w", err)
	}

	sess := &session{
		ID:             uuid.NewString(),
		UserID:         userID,
		Status:         SessionOrderCreated,
		Draft:          draft,
		GatewayOrderID: resp.GatewayOrderID,
		CreatedAt:      s.now(),
	}
	sess.Status = SessionOpen

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.inflight[userID] = sess.ID
	s.mu.Unlock()

	// The upstream recomputed the amount from its own catalog; the widget is
	// opened with that figure, not the cart's display total.
	opts := s.bridge.Options(resp.GatewayOrderID, resp.Amount, resp.Key, in.Prefill)
	return &SubmitResult{Payment: &PaymentIntent{SessionID: sess.ID, Options: opts}}, nil
}

// Complete settles an open session with the widget's success triple and
// verifies it upstream. Verification failure is terminal: funds may already
// be captured, so the customer is sent to support and nothing is retried.
func (s *Service) Complete(ctx context.Context, userID, sessionID string, success gateway.Success) (*domain.Order, error) {
	if !success.Complete() {
		return nil, domain.NewValidationError("payment", "incomplete gateway response")
	}

	sess, err := s.takeSession(userID, sessionID, SessionVerifying)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.VerifyPayment(ctx, userID, shopapi.VerifyPaymentRequest{
		GatewayOrderID:   success.GatewayOrderID,
		GatewayPaymentID: success.GatewayPaymentID,
		Signature:        success.Signature,
		Draft:            sess.Draft,
	})
	if err != nil || !resp.Verified {
		s.settle(sess, SessionVerificationFailed)
		if err != nil {
			s.logger.Printf("verify payment for session %s: %v", sessionID, err)
			return nil, fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
		}
		return nil, domain.ErrVerificationFailed
	}

	s.clearCart(ctx, userID)
	s.settle(sess, SessionPlaced)
	return &resp.Order, nil
}

// Dismiss settles an open session as user-cancelled. No order exists, no
// funds were captured, the cart is untouched, and checkout may be retried.
func (s *Service) Dismiss(_ context.Context, userID, sessionID string) error {
	sess, err := s.takeSession(userID, sessionID, SessionCancelled)
	if err != nil {
		return err
	}
	s.settle(sess, SessionCancelled)
	return nil
}

func (s *Service) buildDraft(lines []domain.CartLine, addr domain.ShippingAddress, mode domain.PaymentMode) domain.OrderDraft {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		productType := "Product"
		if l.IsCombo {
			productType = "Combo"
		}
		image := ""
		if len(l.Images) > 0 {
			image = l.Images[0]
		}
		items = append(items, domain.OrderItem{
			ProductRef:  l.ProductID,
			ProductType: productType,
			Name:        l.Name,
			Quantity:    l.Quantity,
			Price:       l.Price,
			Image:       image,
		})
	}

	itemsPrice := domain.CartTotal(lines)
	shipping := s.pricing.ShippingPrice
	if s.pricing.FreeShippingAbove > 0 && itemsPrice >= s.pricing.FreeShippingAbove {
		shipping = 0
	}
	return domain.OrderDraft{
		Items:           items,
		ItemsPrice:      itemsPrice,
		ShippingPrice:   shipping,
		TotalAmount:     itemsPrice + shipping,
		ShippingAddress: addr,
		PaymentMode:     mode,
	}
}

// takeSession looks up an open session for the user and moves it to the
// requested next status. Expired sessions are torn down here, so a widget
// callback arriving after abandonment cannot mutate anything.
func (s *Service) takeSession(userID, sessionID string, to SessionStatus) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[strings.TrimSpace(sessionID)]
	if !ok || sess.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if sess.expired(s.sessionTTL, s.now()) {
		delete(s.sessions, sess.ID)
		delete(s.inflight, sess.UserID)
		return nil, domain.ErrNotFound
	}
	if sess.Status.IsTerminal() {
		return nil, domain.ErrSessionSettled
	}
	if !canTransition(sess.Status, to) {
		return nil, domain.ErrSessionSettled
	}
	sess.Status = to
	return sess, nil
}

// settle records a terminal status and releases the user's in-flight slot.
func (s *Service) settle(sess *session, to SessionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if to.IsTerminal() {
		sess.Status = to
		delete(s.sessions, sess.ID)
		delete(s.inflight, sess.UserID)
		return
	}
	sess.Status = to
}

func (s *Service) clearCart(ctx context.Context, userID string) {
	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order exists upstream; a stale cart is recoverable, losing the
		// order is not.
		s.logger.Printf("clear cart for %s after order placement: %v", userID, err)
	}
}

// acquire reserves the user's single submission slot. A slot held by an
// expired or vanished session is reclaimed, so an abandoned widget does not
// lock the user out past the session TTL.
func (s *Service) acquire(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID, busy := s.inflight[userID]
	if !busy {
		s.inflight[userID] = ""
		return true
	}
	if sessionID != "" {
		if sess, ok := s.sessions[sessionID]; !ok || sess.expired(s.sessionTTL, s.now()) {
			delete(s.sessions, sessionID)
			s.inflight[userID] = ""
			return true
		}
	}
	return false
}

func (s *Service) release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, userID)
}
