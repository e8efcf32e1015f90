// Package pricing computes order totals.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/autospares/internal/domain"
)

// Line is a priced quantity
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns the rounded line total
func (l Line) Total() decimal.Decimal {
	return domain.RoundMoney(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
}

// Totals is the breakdown of an order's cost
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Calculator applies tax and shipping rules
type Calculator struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

// NewCalculator creates a calculator
func NewCalculator(taxRate, freeShippingThreshold, shippingFee decimal.Decimal) *Calculator {
	return &Calculator{
		TaxRate:               taxRate,
		FreeShippingThreshold: freeShippingThreshold,
		ShippingFee:           shippingFee,
	}
}

// Compute rounds each component to cents before summing. Shipping is free only
// when the subtotal is strictly above the threshold.
func (c *Calculator) Compute(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	subtotal = domain.RoundMoney(subtotal)

	tax := domain.RoundMoney(subtotal.Mul(c.TaxRate))

	shipping := domain.RoundMoney(c.ShippingFee)
	if subtotal.GreaterThan(c.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	discount := decimal.Zero

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    subtotal.Add(tax).Add(shipping).Sub(discount),
	}
}
