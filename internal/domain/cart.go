package domain

// CartLine is one item accumulated in a session's cart. A cart holds at
// most one line per item name; repeated adds merge into the existing
// line and keep the price recorded on the first add.
type CartLine struct {
	Item           string `json:"item"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

// TotalCents returns the line total in minor currency units.
func (l CartLine) TotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// Cart is the ordered collection of lines held by one session before
// checkout. Insertion order is preserved.
type Cart []CartLine

// TotalCents sums all line totals using exact integer arithmetic.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, l := range c {
		total += l.TotalCents()
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Clone returns an independent copy so callers can hand cart snapshots
// across the session lock boundary.
func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
