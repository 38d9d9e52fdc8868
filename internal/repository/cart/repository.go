package cart

import (
	"context"
	"encoding/json"

	"gardenshop/internal/domain"
)

// Repository persists the full cart line list under a single durable key per
// user. Mutations always write the whole list; readers always receive a
// valid (possibly empty) list.
type Repository interface {
	Load(ctx context.Context, userID string) ([]domain.CartLine, error)
	Save(ctx context.Context, userID string, lines []domain.CartLine) error
	Clear(ctx context.Context, userID string) error
}

// decodeLines turns a stored payload into cart lines. An absent, empty, or
// corrupt payload yields an empty cart; restoration never fails on bad data.
func decodeLines(raw []byte) []domain.CartLine {
	if len(raw) == 0 {
		return nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil
	}
	out := lines[:0]
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity < 1 {
			continue
		}
		out = append(out, l)
	}
	return out
}

func encodeLines(lines []domain.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return json.Marshal(lines)
}
