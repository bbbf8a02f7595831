// Package cart implements the session cart: an ordered set of line items
// keyed by product and variant, with derived totals.
package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/novamart/storefront-backend/pkg/errors"
)

// LineItem is one cart line. Display fields are denormalized at add time so
// the cart renders without a catalog lookup.
type LineItem struct {
	ProductID    string  `json:"productId"`
	VariantID    string  `json:"variantId,omitempty"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unitPrice"`
	Quantity     int     `json:"quantity"`
	Image        string  `json:"image,omitempty"`
	VariantLabel string  `json:"variantLabel,omitempty"`
}

// ItemKey identifies a cart line. Two adds of the same product with the same
// variant merge; different variants stay separate lines.
func ItemKey(productID, variantID string) string {
	productID = strings.TrimSpace(productID)
	variantID = strings.TrimSpace(variantID)
	if variantID == "" {
		return productID
	}
	return productID + "@" + variantID
}

// Key returns the identity key for this line.
func (li LineItem) Key() string {
	return ItemKey(li.ProductID, li.VariantID)
}

// Store holds the cart lines in insertion order.
type Store struct {
	items []LineItem
}

// NewStore builds a cart from a previously persisted snapshot. Lines with a
// blank product id or non-positive quantity are dropped rather than trusted.
func NewStore(items []LineItem) *Store {
	st := &Store{}
	for _, item := range items {
		if strings.TrimSpace(item.ProductID) == "" || item.Quantity <= 0 {
			continue
		}
		st.items = append(st.items, item)
	}
	return st
}

// AddItem inserts a new line or merges quantity into an existing one.
func (s *Store) AddItem(item LineItem) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if item.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	key := item.Key()
	for i := range s.items {
		if s.items[i].Key() == key {
			s.items[i].Quantity += item.Quantity
			return nil
		}
	}
	s.items = append(s.items, item)
	return nil
}

// UpdateQuantity sets the quantity for an existing line. A quantity below
// one removes the line instead of keeping a zero-quantity entry around.
func (s *Store) UpdateQuantity(key string, quantity int) error {
	for i := range s.items {
		if s.items[i].Key() != key {
			continue
		}
		if quantity < 1 {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
		s.items[i].Quantity = quantity
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
}

// RemoveItem deletes the line with the given key. Removing an absent key is
// a no-op.
func (s *Store) RemoveItem(key string) {
	for i := range s.items {
		if s.items[i].Key() == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.items = nil
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the total quantity across all lines.
func (s *Store) Count() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Total is the sum of unit price times quantity over all lines, computed
// with decimals so float unit prices do not accumulate drift.
func (s *Store) Total() float64 {
	total := decimal.Zero
	for _, item := range s.items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	value, _ := total.Round(2).Float64()
	return value
}
