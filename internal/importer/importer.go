// Package importer loads cart exports from the previous storefront, which
// kept each user's cart client-side. The export is a JSON array of user
// records produced by the migration script.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gardenshop/internal/domain"
)

// CartWriter is the slice of the cart repository the importer needs.
type CartWriter interface {
	Save(ctx context.Context, userID string, lines []domain.CartLine) error
}

type exportRecord struct {
	UserID string            `json:"userId"`
	Items  []domain.CartLine `json:"items"`
}

// CartImporter reads a legacy cart export and writes one durable cart per
// user.
type CartImporter struct {
	reader io.Reader
	repo   CartWriter
}

func NewCartImporter(r io.Reader, repo CartWriter) *CartImporter {
	return &CartImporter{reader: r, repo: repo}
}

// Run decodes the export and saves each user's cart. Lines the legacy app
// recorded without a product id or with a non-positive quantity are dropped,
// matching how the store treats corrupt persisted carts. A record without a
// user id fails the run.
func (i *CartImporter) Run(ctx context.Context) (int, error) {
	var records []exportRecord
	dec := json.NewDecoder(i.reader)
	if err := dec.Decode(&records); err != nil {
		return 0, fmt.Errorf("decode export: %w", err)
	}

	imported := 0
	for n, rec := range records {
		if rec.UserID == "" {
			return imported, fmt.Errorf("record %d: missing userId", n)
		}

		lines := make([]domain.CartLine, 0, len(rec.Items))
		for _, line := range rec.Items {
			if line.ProductID == "" || line.Quantity < 1 {
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}

		if err := i.repo.Save(ctx, rec.UserID, lines); err != nil {
			return imported, fmt.Errorf("save cart for %s: %w", rec.UserID, err)
		}
		imported++
	}

	return imported, nil
}
