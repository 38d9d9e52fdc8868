package domain

// CartLine is one entry in a customer's cart. The price is snapshotted at
// add time in whole currency units; later catalog price changes never alter
// an in-cart line.
type CartLine struct {
	ProductID       string           `json:"productId"`
	IsCombo         bool             `json:"isCombo"`
	Name            string           `json:"name"`
	Price           int64            `json:"price"`
	Quantity        int              `json:"quantity"`
	Images          []string         `json:"images,omitempty"`
	SelectedPackage *SelectedPackage `json:"selectedPackage,omitempty"`
}

// SelectedPackage records the pack size a customer picked on the product
// page, with its own price snapshot.
type SelectedPackage struct {
	Size  string `json:"size"`
	Price int64  `json:"price"`
}

// LineKey identifies a line inside a cart. Combos and plain products with
// the same upstream id are distinct lines.
type LineKey struct {
	ProductID string
	IsCombo   bool
}

func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.ProductID, IsCombo: l.IsCombo}
}

// LineTotal is price times quantity in whole currency units.
func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

// CartTotal sums price*quantity over all lines.
func CartTotal(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}

// CartCount sums quantities over all lines.
func CartCount(lines []CartLine) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}
