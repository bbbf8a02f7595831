package catalog

import (
	"strconv"
	"strings"
)

// Kind distinguishes how a facet sources its options.
type Kind string

const (
	// KindCatalog facets enumerate their options from the product set.
	KindCatalog Kind = "catalog"
	// KindStatic facets carry a fixed option list.
	KindStatic Kind = "static"
	// KindRange facets carry fixed inclusive numeric buckets.
	KindRange Kind = "range"
)

// Option is one selectable value; range options carry their interval.
type Option struct {
	Value string   `json:"value"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Definition describes one filter dimension. Exactly one of Scalar or Values
// is set: Scalar facets match by membership, Values facets by intersection.
type Definition struct {
	ID      string
	Label   string
	Kind    Kind
	Options []Option
	Scalar  func(Product) string
	Values  func(Product) []string
}

// SelectionState maps a facet id to the set of selected option values.
type SelectionState map[string]map[string]struct{}

// NewSelectionState builds a state from raw value lists, dropping blanks
// and duplicates.
func NewSelectionState(raw map[string][]string) SelectionState {
	state := SelectionState{}
	for facetID, values := range raw {
		for _, value := range values {
			trimmed := strings.TrimSpace(value)
			if trimmed == "" {
				continue
			}
			set, ok := state[facetID]
			if !ok {
				set = map[string]struct{}{}
				state[facetID] = set
			}
			set[trimmed] = struct{}{}
		}
	}
	return state
}

// Selected returns the selected values for a facet, or nil.
func (s SelectionState) Selected(facetID string) map[string]struct{} {
	if s == nil {
		return nil
	}
	return s[facetID]
}

// IsEmpty reports whether no facet carries a selection.
func (s SelectionState) IsEmpty() bool {
	for _, set := range s {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

func floatPtr(v float64) *float64 { return &v }

// DefaultFacets is the storefront's fixed facet configuration. Catalog
// facets get their options filled by the indexer; price buckets and rating
// tiers are static.
func DefaultFacets() []Definition {
	return []Definition{
		{
			ID:     "category",
			Label:  "Category",
			Kind:   KindCatalog,
			Scalar: func(p Product) string { return p.Category },
		},
		{
			ID:     "brand",
			Label:  "Brand",
			Kind:   KindCatalog,
			Scalar: func(p Product) string { return p.Brand },
		},
		{
			ID:     "tag",
			Label:  "Features",
			Kind:   KindCatalog,
			Values: func(p Product) []string { return p.Tags },
		},
		{
			ID:    "rating",
			Label: "Rating",
			Kind:  KindStatic,
			Options: []Option{
				{Value: "1"}, {Value: "2"}, {Value: "3"}, {Value: "4"}, {Value: "5"},
			},
			Scalar: func(p Product) string { return ratingTier(p.Rating) },
		},
		{
			ID:    "price",
			Label: "Price",
			Kind:  KindRange,
			Options: []Option{
				{Value: "under-50", Min: floatPtr(0), Max: floatPtr(49.99)},
				{Value: "50-200", Min: floatPtr(50), Max: floatPtr(199.99)},
				{Value: "200-500", Min: floatPtr(200), Max: floatPtr(499.99)},
				{Value: "500-1000", Min: floatPtr(500), Max: floatPtr(999.99)},
				{Value: "1000-plus", Min: floatPtr(1000)},
			},
		},
	}
}

func ratingTier(rating float64) string {
	tier := int(rating)
	if tier < 1 {
		return ""
	}
	if tier > 5 {
		tier = 5
	}
	return strconv.Itoa(tier)
}
