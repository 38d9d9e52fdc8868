package seed

import (
	"context"
	"fmt"

	"gardenshop/internal/domain"
	cartrepo "gardenshop/internal/repository/cart"
)

// DemoUserID is the account the seeded cart belongs to.
const DemoUserID = "demo-user"

// Apply writes a demo cart for manual testing. Repeated runs overwrite the
// same cart, so it is idempotent.
func Apply(ctx context.Context, repo cartrepo.Repository) error {
	lines := []domain.CartLine{
		{
			ProductID: "seed-rose",
			Name:      "Hybrid Tea Rose Seeds",
			Price:     49,
			Quantity:  2,
			Images:    []string{"https://cdn.example.com/img/rose-seeds.jpg"},
		},
		{
			ProductID: "seed-tulsi",
			Name:      "Holy Basil Plant",
			Price:     149,
			Quantity:  1,
		},
		{
			ProductID: "combo-herb-garden",
			IsCombo:   true,
			Name:      "Kitchen Herb Garden Combo",
			Price:     399,
			Quantity:  1,
			SelectedPackage: &domain.SelectedPackage{
				Size:  "3 pots",
				Price: 399,
			},
		},
	}

	if err := repo.Save(ctx, DemoUserID, lines); err != nil {
		return fmt.Errorf("save demo cart: %w", err)
	}
	return nil
}
