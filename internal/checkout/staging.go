package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	"github.com/ozanakin/carsi-storefront/pkg/types"
)

// DefaultShippingMethodID is applied when a draft commits without an explicit
// shipping selection.
const DefaultShippingMethodID = "standard"

// Staging is the in-progress checkout draft for one session. It moves through
// the steps info → address → shipping before commit; revisiting a step
// re-edits fields without resetting the rest.
type Staging struct {
	SessionKey       string             `json:"session_key"`
	Items            []models.CartItem  `json:"items"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	Shipping         decimal.Decimal    `json:"shipping"`
	Discount         decimal.Decimal    `json:"discount"`
	Total            decimal.Decimal    `json:"total"`
	CouponCode       *string            `json:"coupon_code,omitempty"`
	CustomerInfo     types.CustomerInfo `json:"customer_info"`
	ShippingAddress  types.Address      `json:"shipping_address"`
	ShippingMethodID string             `json:"shipping_method_id,omitempty"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// newStaging seeds a staging draft from the cart snapshot. Shipping starts at
// zero until a method is selected.
func newStaging(record *models.CartRecord) *Staging {
	items := make([]models.CartItem, len(record.Items))
	copy(items, record.Items)

	sub := decimal.Zero
	for _, item := range items {
		sub = sub.Add(item.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discount := decimal.Zero
	if record.CouponDiscount != nil {
		discount = *record.CouponDiscount
	}

	staging := &Staging{
		SessionKey: record.SessionKey,
		Items:      items,
		Subtotal:   sub,
		Discount:   discount,
		CouponCode: record.CouponCode,
		UpdatedAt:  time.Now().UTC(),
	}
	staging.recompute()
	return staging
}

// SetCustomerInfo assigns the contact block. Totals are unaffected.
func (s *Staging) SetCustomerInfo(info types.CustomerInfo) {
	s.CustomerInfo = info
	s.touch()
}

// SetShippingAddress assigns the delivery address. Totals are unaffected.
func (s *Staging) SetShippingAddress(address types.Address) {
	s.ShippingAddress = address
	s.touch()
}

// SetShippingMethod records the selection and replaces the shipping figure
// entirely, then recomputes the total.
func (s *Staging) SetShippingMethod(methodID string, cost decimal.Decimal) {
	s.ShippingMethodID = methodID
	s.Shipping = cost
	s.recompute()
	s.touch()
}

// Totals returns the current monetary breakdown.
func (s *Staging) Totals() types.Totals {
	return types.NewTotals(s.Subtotal, s.Shipping, s.Discount)
}

func (s *Staging) recompute() {
	s.Total = types.OrderTotal(s.Subtotal, s.Shipping, s.Discount)
}

func (s *Staging) touch() {
	s.UpdatedAt = time.Now().UTC()
}
