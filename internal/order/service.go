// Package order interprets the server-authoritative order lifecycle: status
// progression for the step tracker, cancellation-request eligibility, and
// refund reconciliation. The upstream owns every transition; this side only
// requests cancellations and renders what comes back.
package order

import (
	"context"
	"fmt"
	"strings"

	"gardenshop/internal/domain"
)

type orderAPI interface {
	GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error)
	CancelOrder(ctx context.Context, userID, orderID, reason string) (*domain.Order, error)
	MyOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

type Service struct {
	api orderAPI
}

func New(api orderAPI) *Service {
	return &Service{api: api}
}

// Get fetches one order and rejects payloads whose status falls outside the
// known set; an unrecognized status must never reach rendering.
func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	o, err := s.api.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := validate(o); err != nil {
		return nil, err
	}
	return o, nil
}

// List returns the user's orders, dropping none: an unknown status anywhere
// fails the whole read rather than silently hiding an order.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.api.MyOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if err := validate(&orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// RequestCancellation submits a cancellation request. The reason is
// mandatory, and eligibility is decided by the status state machine before
// the mutation goes out; that same check keeps a second request for an order
// already in CancellationRequested from ever leaving this process.
func (s *Service) RequestCancellation(ctx context.Context, userID, orderID, reason string) (*domain.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.NewValidationError("reason", "required")
	}

	current, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if !current.OrderStatus.CancellationEligible() {
		return nil, fmt.Errorf("%w: order %s is %s", domain.ErrCancellationNotAllowed, orderID, current.OrderStatus)
	}

	updated, err := s.api.CancelOrder(ctx, userID, orderID, reason)
	if err != nil {
		return nil, err
	}
	if err := validate(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func validate(o *domain.Order) error {
	if _, err := domain.ParseOrderStatus(string(o.OrderStatus)); err != nil {
		return err
	}
	return nil
}
