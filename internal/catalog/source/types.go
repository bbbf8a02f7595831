package source

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawProduct mirrors one record from the upstream commerce backend. Optional
// fields stay optional here; all defaulting happens in the catalog mapper.
type RawProduct struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Price          FlexNumber   `json:"price"`
	CompareAtPrice *FlexNumber  `json:"compareAtPrice"`
	Stock          Availability `json:"stock"`
	Category       string       `json:"category"`
	Brand          string       `json:"brand"`
	Images         []string     `json:"images"`
	Tags           []string     `json:"tags"`
	Rating         FlexNumber   `json:"rating"`
	Variants       []RawVariant `json:"variants"`
	CreatedAt      string       `json:"createdAt"`
}

// RawVariant is one sellable variation of a product.
type RawVariant struct {
	ID    string      `json:"id"`
	Label string      `json:"label"`
	Price *FlexNumber `json:"price"`
}

// FlexNumber accepts JSON numbers, numeric strings, or null. Anything else
// decodes to zero so one malformed field never sinks the record.
type FlexNumber float64

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*f = 0
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexNumber(parsed)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexNumber(n)
	return nil
}

func (f FlexNumber) Float() float64 {
	return float64(f)
}

// Availability accepts booleans, counts, or numeric strings for stock.
type Availability struct {
	Known bool
	Count int
}

func (a *Availability) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch trimmed {
	case "", "null":
		*a = Availability{}
		return nil
	case "true":
		*a = Availability{Known: true, Count: 1}
		return nil
	case "false":
		*a = Availability{Known: true, Count: 0}
		return nil
	}
	var n FlexNumber
	if err := n.UnmarshalJSON(data); err != nil {
		*a = Availability{}
		return nil
	}
	count := int(n.Float())
	if count < 0 {
		count = 0
	}
	*a = Availability{Known: true, Count: count}
	return nil
}

// InStock reports whether the record advertises at least one unit.
func (a Availability) InStock() bool {
	return a.Known && a.Count > 0
}
