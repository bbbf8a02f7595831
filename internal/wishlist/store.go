// Package wishlist implements the session wishlist: an ordered, duplicate-free
// set of products with denormalized display fields.
package wishlist

import (
	"strings"

	pkgerrors "github.com/novamart/storefront-backend/pkg/errors"
)

// Entry is one saved product.
type Entry struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	InStock   bool    `json:"inStock"`
}

// Store keeps entries in insertion order with constant-time membership.
type Store struct {
	entries []Entry
	index   map[string]int
}

// NewStore rebuilds a wishlist from a persisted snapshot, dropping blank or
// duplicated product ids.
func NewStore(entries []Entry) *Store {
	st := &Store{index: make(map[string]int)}
	for _, entry := range entries {
		id := strings.TrimSpace(entry.ProductID)
		if id == "" {
			continue
		}
		if _, ok := st.index[id]; ok {
			continue
		}
		entry.ProductID = id
		st.index[id] = len(st.entries)
		st.entries = append(st.entries, entry)
	}
	return st
}

// Add appends the entry unless the product is already saved. Adding a
// duplicate is a no-op, not an error.
func (s *Store) Add(entry Entry) error {
	id := strings.TrimSpace(entry.ProductID)
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, ok := s.index[id]; ok {
		return nil
	}
	entry.ProductID = id
	s.index[id] = len(s.entries)
	s.entries = append(s.entries, entry)
	return nil
}

// Remove drops the product. Removing an absent product is a no-op.
func (s *Store) Remove(productID string) {
	pos, ok := s.index[strings.TrimSpace(productID)]
	if !ok {
		return
	}
	removed := s.entries[pos].ProductID
	s.entries = append(s.entries[:pos], s.entries[pos+1:]...)
	delete(s.index, removed)
	for i := pos; i < len(s.entries); i++ {
		s.index[s.entries[i].ProductID] = i
	}
}

// Contains reports whether the product is saved.
func (s *Store) Contains(productID string) bool {
	_, ok := s.index[strings.TrimSpace(productID)]
	return ok
}

// Entries returns a copy of the saved entries in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len is the number of saved products.
func (s *Store) Len() int {
	return len(s.entries)
}
