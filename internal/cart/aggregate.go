package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	"github.com/ozanakin/carsi-storefront/pkg/types"
)

// The aggregate operations below mutate an in-memory CartRecord only; the
// service persists the result. Line identity is the (product, variant) pair.

// addLine merges into an existing line or appends a new one with quantity 1.
// Price fields of an existing line are never touched.
func addLine(record *models.CartRecord, line models.CartItem) {
	for i := range record.Items {
		if record.Items[i].SameLine(line.ProductID, line.VariantID) {
			record.Items[i].Quantity++
			return
		}
	}
	line.Quantity = 1
	record.Items = append(record.Items, line)
}

// removeLine deletes the matching line. Absence is a no-op, not an error.
func removeLine(record *models.CartRecord, productID uuid.UUID, variantID *uuid.UUID) {
	for i := range record.Items {
		if record.Items[i].SameLine(productID, variantID) {
			record.Items = append(record.Items[:i], record.Items[i+1:]...)
			return
		}
	}
}

// setQuantity replaces a line's quantity. Zero or less removes the line.
func setQuantity(record *models.CartRecord, productID uuid.UUID, variantID *uuid.UUID, quantity int) {
	if quantity <= 0 {
		removeLine(record, productID, variantID)
		return
	}
	for i := range record.Items {
		if record.Items[i].SameLine(productID, variantID) {
			record.Items[i].Quantity = quantity
			return
		}
	}
}

// setCoupon sets or clears both coupon fields together.
func setCoupon(record *models.CartRecord, code *string, discount *decimal.Decimal) {
	record.CouponCode = code
	record.CouponDiscount = discount
}

// clearCart empties the lines and drops the coupon as one operation.
func clearCart(record *models.CartRecord) {
	record.Items = nil
	setCoupon(record, nil, nil)
}

// itemCount sums line quantities.
func itemCount(record *models.CartRecord) int {
	count := 0
	for _, item := range record.Items {
		count += item.Quantity
	}
	return count
}

// subtotal sums effective unit price times quantity across lines.
func subtotal(record *models.CartRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range record.Items {
		sum = sum.Add(item.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// cartTotal is the shipping-free preview total, clamped at zero.
func cartTotal(record *models.CartRecord) decimal.Decimal {
	discount := decimal.Zero
	if record.CouponDiscount != nil {
		discount = *record.CouponDiscount
	}
	return types.CartTotal(subtotal(record), discount)
}
