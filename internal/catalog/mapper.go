package catalog

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/novamart/storefront-backend/internal/catalog/source"
)

const (
	defaultCategory = "General"
	defaultBrand    = "Unbranded"
	minBrandRunes   = 3
)

// categoryRules are evaluated in order; the first keyword hit wins. The
// ordering is load-bearing: reordering changes how ambiguous names resolve.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{"Computers", []string{"laptop", "notebook", "ultrabook", "macbook", "chromebook", "desktop"}},
	{"Mobile", []string{"phone", "mobile", "smartphone"}},
	{"Wearables", []string{"watch", "wearable", "band", "tracker"}},
	{"Audio", []string{"earbud", "earphone", "headphone", "headset", "speaker", "soundbar"}},
	{"Accessories", []string{"charger", "cable", "keyboard", "mouse", "case", "cover", "stand"}},
}

// fallbackImages maps a derived category to a placeholder so the image list
// is never empty.
var fallbackImages = map[string]string{
	"Computers":   "/assets/placeholders/computers.webp",
	"Mobile":      "/assets/placeholders/mobile.webp",
	"Wearables":   "/assets/placeholders/wearables.webp",
	"Audio":       "/assets/placeholders/audio.webp",
	"Accessories": "/assets/placeholders/accessories.webp",
}

const defaultFallbackImage = "/assets/placeholders/product.webp"

// MapProduct normalizes one raw record into a display model. It never fails:
// missing or malformed fields degrade to defaults.
func MapProduct(raw source.RawProduct) Product {
	name := strings.TrimSpace(raw.Name)

	price := raw.Price.Float()
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		category = deriveCategory(name, raw.Description)
	}

	brand := strings.TrimSpace(raw.Brand)
	if brand == "" {
		brand = deriveBrand(name)
	}

	product := Product{
		ID:          strings.TrimSpace(raw.ID),
		Name:        name,
		Description: strings.TrimSpace(raw.Description),
		Price:       price,
		InStock:     raw.Stock.InStock(),
		StockCount:  raw.Stock.Count,
		Category:    category,
		Brand:       brand,
		Images:      normalizeImages(raw.Images, category),
		Tags:        normalizeTags(raw.Tags),
		Rating:      clampRating(raw.Rating.Float()),
		CreatedAt:   parseCreatedAt(raw.CreatedAt),
	}

	if raw.CompareAtPrice != nil {
		compare := raw.CompareAtPrice.Float()
		if compare > 0 {
			product.CompareAtPrice = &compare
		}
	}
	product.DiscountPercent = discountPercent(product.Price, product.CompareAtPrice)

	for _, variant := range raw.Variants {
		id := strings.TrimSpace(variant.ID)
		if id == "" {
			continue
		}
		mapped := Variant{ID: id, Label: strings.TrimSpace(variant.Label)}
		if variant.Price != nil {
			p := variant.Price.Float()
			if p >= 0 {
				mapped.Price = &p
			}
		}
		product.Variants = append(product.Variants, mapped)
	}

	return product
}

// MapAll maps every usable record, skipping records without an id. The
// returned error aggregates per-record anomalies for logging; it never
// invalidates the mapped slice.
func MapAll(raws []source.RawProduct) ([]Product, error) {
	products := make([]Product, 0, len(raws))
	var issues error
	for i, raw := range raws {
		if strings.TrimSpace(raw.ID) == "" {
			issues = multierr.Append(issues, fmt.Errorf("record %d: missing product id, skipped", i))
			continue
		}
		if raw.Price.Float() < 0 {
			issues = multierr.Append(issues, fmt.Errorf("record %d (%s): negative price clamped to 0", i, raw.ID))
		}
		products = append(products, MapProduct(raw))
	}
	return products, issues
}

func discountPercent(price float64, compareAt *float64) *int {
	if compareAt == nil || price <= 0 || *compareAt <= price {
		return nil
	}
	percent := int(math.Round((*compareAt - price) / *compareAt * 100))
	return &percent
}

func deriveCategory(name, description string) string {
	haystack := strings.ToLower(name + " " + description)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(haystack, keyword) {
				return rule.category
			}
		}
	}
	return defaultCategory
}

func deriveBrand(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return defaultBrand
	}
	first := fields[0]
	if len([]rune(first)) < minBrandRunes {
		return defaultBrand
	}
	return first
}

func normalizeImages(images []string, category string) []string {
	cleaned := make([]string, 0, len(images))
	for _, image := range images {
		if trimmed := strings.TrimSpace(image); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) > 0 {
		return cleaned
	}
	if fallback, ok := fallbackImages[category]; ok {
		return []string{fallback}
	}
	return []string{defaultFallbackImage}
}

func normalizeTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}

func clampRating(rating float64) float64 {
	if math.IsNaN(rating) || rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

func parseCreatedAt(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
