package catalog

import "time"

// Product is the normalized display model served to storefront clients.
// It is rebuilt from scratch on every catalog refresh and never mutated.
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	CompareAtPrice  *float64  `json:"compare_at_price,omitempty"`
	DiscountPercent *int      `json:"discount_percent,omitempty"`
	InStock         bool      `json:"in_stock"`
	StockCount      int       `json:"stock_count"`
	Category        string    `json:"category"`
	Brand           string    `json:"brand"`
	Images          []string  `json:"images"`
	Tags            []string  `json:"tags,omitempty"`
	Rating          float64   `json:"rating"`
	Variants        []Variant `json:"variants,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Variant is one sellable variation surfaced to the grid and cart.
type Variant struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Price *float64 `json:"price,omitempty"`
}
