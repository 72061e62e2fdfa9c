package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
)

// AddItemInput identifies the product (and optional variant) to add.
type AddItemInput struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
}

// QuantityInput carries a replacement quantity for a line.
type QuantityInput struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity"`
}

// CouponInput carries a coupon code to apply.
type CouponInput struct {
	Code string `json:"code" validate:"required"`
}

// LineView is one cart line as the storefront renders it.
type LineView struct {
	ProductID   uuid.UUID        `json:"product_id"`
	VariantID   *uuid.UUID       `json:"variant_id,omitempty"`
	Title       string           `json:"title"`
	VariantName *string          `json:"variant_name,omitempty"`
	Image       *string          `json:"image,omitempty"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	Quantity    int              `json:"quantity"`
	LineTotal   decimal.Decimal  `json:"line_total"`
}

// View is the full cart projection with derived figures. Derived fields are
// recomputed on every read, never stored.
type View struct {
	SessionKey     string          `json:"session_key"`
	Items          []LineView      `json:"items"`
	CouponCode     *string         `json:"coupon_code,omitempty"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	ItemCount      int             `json:"item_count"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
}

func toView(record *models.CartRecord) View {
	items := make([]LineView, 0, len(record.Items))
	for _, item := range record.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		items = append(items, LineView{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			Title:       item.Title,
			VariantName: item.VariantName,
			Image:       item.Image,
			UnitPrice:   item.UnitPrice,
			SalePrice:   item.SalePrice,
			Quantity:    item.Quantity,
			LineTotal:   item.EffectiveUnitPrice().Mul(qty),
		})
	}

	discount := decimal.Zero
	if record.CouponDiscount != nil {
		discount = *record.CouponDiscount
	}

	return View{
		SessionKey:     record.SessionKey,
		Items:          items,
		CouponCode:     record.CouponCode,
		CouponDiscount: discount,
		ItemCount:      itemCount(record),
		Subtotal:       subtotal(record),
		Total:          cartTotal(record),
	}
}
