package domain

// MenuItem is a catalog entry. The catalog is read-only at runtime;
// rows come from seed data or the CSV importer.
type MenuItem struct {
	ID         int64  `json:"id"`
	Item       string `json:"item"`
	PriceCents int64  `json:"priceCents"`
	Image      string `json:"image,omitempty"`
}
