package cart

import (
	"context"
	"sync"

	"gardenshop/internal/domain"
)

type memoryRepo struct {
	mu    sync.Mutex
	carts map[string][]byte
}

// NewMemory keeps carts in process memory. Used in tests and when no durable
// backend is configured; carts do not survive a restart.
func NewMemory() Repository {
	return &memoryRepo{carts: make(map[string][]byte)}
}

func (r *memoryRepo) Load(_ context.Context, userID string) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return decodeLines(r.carts[userID]), nil
}

func (r *memoryRepo) Save(_ context.Context, userID string, lines []domain.CartLine) error {
	raw, err := encodeLines(lines)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[userID] = raw
	return nil
}

func (r *memoryRepo) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
