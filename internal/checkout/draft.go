// Package checkout derives a priced order draft from the session cart. It
// does not take payment or place orders.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/novamart/storefront-backend/internal/cart"
	"github.com/novamart/storefront-backend/pkg/config"
	pkgerrors "github.com/novamart/storefront-backend/pkg/errors"
)

// Contact identifies the would-be buyer.
type Contact struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
}

// Address is the shipping destination.
type Address struct {
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" validate:"required"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required,len=2"`
}

// Draft is a priced, unplaced order.
type Draft struct {
	ID        string          `json:"id"`
	Contact   Contact         `json:"contact"`
	Address   Address         `json:"address"`
	Items     []cart.LineItem `json:"items"`
	Subtotal  float64         `json:"subtotal"`
	Tax       float64         `json:"tax"`
	Shipping  float64         `json:"shipping"`
	Total     float64         `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Calculator prices drafts from configured rates.
type Calculator struct {
	taxRate         decimal.Decimal
	shippingFee     decimal.Decimal
	freeShippingMin decimal.Decimal
}

// NewCalculator parses the configured rates once at startup.
func NewCalculator(cfg config.CheckoutConfig) (*Calculator, error) {
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("parsing tax rate %q: %w", cfg.TaxRate, err)
	}
	shippingFee, err := decimal.NewFromString(cfg.ShippingFee)
	if err != nil {
		return nil, fmt.Errorf("parsing shipping fee %q: %w", cfg.ShippingFee, err)
	}
	freeShippingMin, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return nil, fmt.Errorf("parsing free shipping threshold %q: %w", cfg.FreeShippingThreshold, err)
	}
	return &Calculator{
		taxRate:         taxRate,
		shippingFee:     shippingFee,
		freeShippingMin: freeShippingMin,
	}, nil
}

// BuildDraft prices the cart for the given contact and address. An empty
// cart cannot be drafted.
func (c *Calculator) BuildDraft(_ context.Context, contact Contact, address Address, items []cart.LineItem) (*Draft, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if strings.TrimSpace(contact.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact email is required")
	}

	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	tax := subtotal.Mul(c.taxRate).Round(2)
	shipping := c.shippingFee
	if subtotal.GreaterThanOrEqual(c.freeShippingMin) {
		shipping = decimal.Zero
	}
	total := subtotal.Add(tax).Add(shipping).Round(2)

	subtotalF, _ := subtotal.Round(2).Float64()
	taxF, _ := tax.Float64()
	shippingF, _ := shipping.Round(2).Float64()
	totalF, _ := total.Float64()

	return &Draft{
		ID:        uuid.NewString(),
		Contact:   contact,
		Address:   address,
		Items:     items,
		Subtotal:  subtotalF,
		Tax:       taxF,
		Shipping:  shippingF,
		Total:     totalF,
		CreatedAt: time.Now().UTC(),
	}, nil
}
