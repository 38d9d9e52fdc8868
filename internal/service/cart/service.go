package cart

import (
	"context"
	"strings"
	"sync"

	"gardenshop/internal/domain"
)

type cartRepo interface {
	Load(ctx context.Context, userID string) ([]domain.CartLine, error)
	Save(ctx context.Context, userID string, lines []domain.CartLine) error
	Clear(ctx context.Context, userID string) error
}

type notifier interface {
	Show(userID string, line domain.CartLine)
}

// Service owns all cart mutations. Every mutation reloads the latest stored
// list, derives the next list from it, and persists the whole list, so two
// back-to-back mutations converge on the merged result instead of one
// clobbering the other.
type Service struct {
	repo   cartRepo
	notify notifier

	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func New(repo cartRepo, notify notifier) *Service {
	return &Service{
		repo:   repo,
		notify: notify,
		locks:  make(map[string]*userLock),
	}
}

// AddInput is the product snapshot taken at add time. Price is captured here
// and never re-read; later catalog changes must not alter an in-cart line.
type AddInput struct {
	ProductID       string                  `json:"productId"`
	IsCombo         bool                    `json:"isCombo"`
	Name            string                  `json:"name"`
	Price           int64                   `json:"price"`
	Quantity        int                     `json:"quantity"`
	Images          []string                `json:"images,omitempty"`
	SelectedPackage *domain.SelectedPackage `json:"selectedPackage,omitempty"`
}

// Add merges into an existing (productId, isCombo) line by incrementing its
// quantity, or appends a new line. Triggers the transient popup for the
// affected line.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) ([]domain.CartLine, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.NewValidationError("productId", "required")
	}
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}
	if in.Price < 0 {
		return nil, domain.NewValidationError("price", "must not be negative")
	}

	unlock := s.lockUser(userID)
	defer unlock()

	lines, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := domain.LineKey{ProductID: in.ProductID, IsCombo: in.IsCombo}
	var added domain.CartLine
	merged := false
	for i := range lines {
		if lines[i].Key() == key {
			lines[i].Quantity += qty
			added = lines[i]
			merged = true
			break
		}
	}
	if !merged {
		added = domain.CartLine{
			ProductID:       in.ProductID,
			IsCombo:         in.IsCombo,
			Name:            in.Name,
			Price:           in.Price,
			Quantity:        qty,
			Images:          in.Images,
			SelectedPackage: in.SelectedPackage,
		}
		lines = append(lines, added)
	}

	if err := s.repo.Save(ctx, userID, lines); err != nil {
		return nil, err
	}
	if s.notify != nil {
		s.notify.Show(userID, added)
	}
	return lines, nil
}

// Remove deletes the matching line. Absent lines are a no-op.
func (s *Service) Remove(ctx context.Context, userID, productID string, isCombo bool) ([]domain.CartLine, error) {
	unlock := s.lockUser(userID)
	defer unlock()
	return s.removeLocked(ctx, userID, productID, isCombo)
}

// UpdateQuantity replaces a line's quantity. A quantity of zero or less
// removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, isCombo bool, quantity int) ([]domain.CartLine, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, userID, productID, isCombo)
	}

	lines, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	key := domain.LineKey{ProductID: productID, IsCombo: isCombo}
	for i := range lines {
		if lines[i].Key() == key {
			lines[i].Quantity = quantity
			if err := s.repo.Save(ctx, userID, lines); err != nil {
				return nil, err
			}
			return lines, nil
		}
	}
	return lines, nil
}

// Clear empties the cart. Called exactly once after a successful order
// placement so the purchased items cannot be resubmitted.
func (s *Service) Clear(ctx context.Context, userID string) error {
	unlock := s.lockUser(userID)
	defer unlock()
	return s.repo.Clear(ctx, userID)
}

// Get returns the current lines.
func (s *Service) Get(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return s.repo.Load(ctx, userID)
}

// Total is the sum of price*quantity over all lines.
func (s *Service) Total(ctx context.Context, userID string) (int64, error) {
	lines, err := s.repo.Load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.CartTotal(lines), nil
}

// Count is the sum of quantities over all lines.
func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	lines, err := s.repo.Load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.CartCount(lines), nil
}

func (s *Service) removeLocked(ctx context.Context, userID, productID string, isCombo bool) ([]domain.CartLine, error) {
	lines, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	key := domain.LineKey{ProductID: productID, IsCombo: isCombo}
	next := make([]domain.CartLine, 0, len(lines))
	removed := false
	for _, l := range lines {
		if l.Key() == key {
			removed = true
			continue
		}
		next = append(next, l)
	}
	if !removed {
		return lines, nil
	}
	if err := s.repo.Save(ctx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// lockUser serializes mutations per user; reads stay lock-free. Locks are
// reference-counted and dropped from the map once the last holder releases,
// so the map tracks only users with a mutation in flight.
func (s *Service) lockUser(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, userID)
		}
		s.mu.Unlock()
	}
}
