package shipping

import (
	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
)

// Evaluator answers free-shipping eligibility and per-method cost for a given
// subtotal. It is pure; selectability enforcement stays at the API boundary.
type Evaluator struct {
	threshold decimal.Decimal
}

// NewEvaluator builds an evaluator with the free-shipping threshold.
func NewEvaluator(threshold decimal.Decimal) *Evaluator {
	return &Evaluator{threshold: threshold}
}

// Threshold returns the configured free-shipping threshold.
func (e *Evaluator) Threshold() decimal.Decimal {
	return e.threshold
}

// FreeShippingEligible reports whether the subtotal reaches the threshold.
func (e *Evaluator) FreeShippingEligible(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(e.threshold)
}

// CostFor returns the shipping cost of a method at the given subtotal: zero
// when the method rides the free-shipping rule and the subtotal qualifies,
// the base price otherwise.
func (e *Evaluator) CostFor(method models.ShippingMethod, subtotal decimal.Decimal) decimal.Decimal {
	if method.FreeEligible && e.FreeShippingEligible(subtotal) {
		return decimal.Zero
	}
	return method.BasePrice
}

// Selectable reports whether a method may be chosen at the given subtotal.
// FreeOnly methods are off the menu until the subtotal qualifies.
func (e *Evaluator) Selectable(method models.ShippingMethod, subtotal decimal.Decimal) bool {
	if method.FreeOnly {
		return e.FreeShippingEligible(subtotal)
	}
	return true
}
