package catalog

import "strings"

// Filter returns the products satisfying every facet that carries at least
// one selection. It is a pure function: same inputs, same ordered subset,
// original relative order preserved. A selected value no row can satisfy
// simply yields an empty result; there is no special case for it.
func Filter(products []Product, idx Index, state SelectionState) []Product {
	if state.IsEmpty() {
		return append([]Product(nil), products...)
	}
	filtered := make([]Product, 0, len(products))
	for _, product := range products {
		if matchesAll(product, idx, state) {
			filtered = append(filtered, product)
		}
	}
	return filtered
}

func matchesAll(product Product, idx Index, state SelectionState) bool {
	for _, def := range idx.Definitions {
		selected := state.Selected(def.ID)
		if len(selected) == 0 {
			continue
		}
		if !matchesFacet(product, def, selected) {
			return false
		}
	}
	return true
}

func matchesFacet(product Product, def Definition, selected map[string]struct{}) bool {
	if def.Kind == KindRange {
		return matchesAnyBucket(product.Price, def.Options, selected)
	}
	if def.Values != nil {
		for _, value := range def.Values(product) {
			if _, ok := selected[value]; ok {
				return true
			}
		}
		return false
	}
	if def.Scalar != nil {
		_, ok := selected[def.Scalar(product)]
		return ok
	}
	return false
}

// matchesAnyBucket is an OR across the selected buckets; interval bounds are
// inclusive at both ends.
func matchesAnyBucket(price float64, options []Option, selected map[string]struct{}) bool {
	for _, option := range options {
		if _, ok := selected[option.Value]; !ok {
			continue
		}
		if option.Min != nil && price < *option.Min {
			continue
		}
		if option.Max != nil && price > *option.Max {
			continue
		}
		return true
	}
	return false
}

// MatchesQuery reports whether the product's name or description contains
// the query, case-insensitively. Used for the free-text search knob layered
// on top of facet filtering.
func MatchesQuery(product Product, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(product.Name), query) ||
		strings.Contains(strings.ToLower(product.Description), query)
}
