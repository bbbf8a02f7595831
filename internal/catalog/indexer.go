package catalog

import "sort"

// Index is the facet option space observed in one catalog snapshot.
type Index struct {
	Definitions []Definition
	Options     map[string][]Option
}

// BuildIndex scans products and fills each catalog facet with its sorted,
// de-duplicated distinct values. Static and range facets keep their fixed
// options. The previous index is discarded wholesale, never merged.
func BuildIndex(products []Product, defs []Definition) Index {
	index := Index{
		Definitions: defs,
		Options:     make(map[string][]Option, len(defs)),
	}
	for _, def := range defs {
		if def.Kind != KindCatalog {
			index.Options[def.ID] = append([]Option(nil), def.Options...)
			continue
		}
		seen := map[string]struct{}{}
		for _, product := range products {
			for _, value := range facetValues(def, product) {
				if value == "" {
					continue
				}
				seen[value] = struct{}{}
			}
		}
		values := make([]string, 0, len(seen))
		for value := range seen {
			values = append(values, value)
		}
		sort.Strings(values)
		options := make([]Option, 0, len(values))
		for _, value := range values {
			options = append(options, Option{Value: value})
		}
		index.Options[def.ID] = options
	}
	return index
}

// Sanitize drops selected values that are absent from the current option
// lists, so a stale selection from a prior catalog cannot linger in the UI.
func (idx Index) Sanitize(state SelectionState) SelectionState {
	if state == nil {
		return nil
	}
	cleaned := SelectionState{}
	for facetID, selected := range state {
		options, ok := idx.Options[facetID]
		if !ok {
			continue
		}
		valid := make(map[string]struct{}, len(options))
		for _, option := range options {
			valid[option.Value] = struct{}{}
		}
		for value := range selected {
			if _, ok := valid[value]; !ok {
				continue
			}
			set, ok := cleaned[facetID]
			if !ok {
				set = map[string]struct{}{}
				cleaned[facetID] = set
			}
			set[value] = struct{}{}
		}
	}
	return cleaned
}

func facetValues(def Definition, product Product) []string {
	if def.Values != nil {
		return def.Values(product)
	}
	if def.Scalar != nil {
		return []string{def.Scalar(product)}
	}
	return nil
}
