package domain

// CartLine is a single distinct item in a cart. UnitPrice is in minor
// currency units (kobo).
type CartLine struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
}

// LineTotal returns UnitPrice * Quantity in minor units.
func (l CartLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}
