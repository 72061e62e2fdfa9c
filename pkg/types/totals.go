package types

import "github.com/shopspring/decimal"

// Totals is the monetary breakdown shared by cart previews and order drafts.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// OrderTotal computes the canonical shipping-inclusive total,
// clamped at zero so an oversized flat discount cannot surface
// a negative figure.
func OrderTotal(subtotal, shipping, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(shipping).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// CartTotal computes the cart preview total, which deliberately
// excludes shipping. Clamped at zero like OrderTotal.
func CartTotal(subtotal, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// NewTotals assembles a Totals block using the canonical order formula.
func NewTotals(subtotal, shipping, discount decimal.Decimal) Totals {
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    OrderTotal(subtotal, shipping, discount),
	}
}
