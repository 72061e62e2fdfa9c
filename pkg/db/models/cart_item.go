package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a price snapshot line keyed by (product, variant).
type CartItem struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID      uuid.UUID        `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID   uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	VariantID   *uuid.UUID       `gorm:"column:variant_id;type:uuid"`
	Title       string           `gorm:"column:title;not null"`
	UnitPrice   decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2);not null"`
	SalePrice   *decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2)"`
	Image       *string          `gorm:"column:image"`
	VariantName *string          `gorm:"column:variant_name"`
	Quantity    int              `gorm:"column:quantity;not null"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectiveUnitPrice mirrors the catalog effective-price rule on the snapshot.
func (c CartItem) EffectiveUnitPrice() decimal.Decimal {
	if c.SalePrice != nil && c.SalePrice.LessThan(c.UnitPrice) {
		return *c.SalePrice
	}
	return c.UnitPrice
}

// SameLine reports whether the item occupies the (product, variant) identity
// slot of the given key.
func (c CartItem) SameLine(productID uuid.UUID, variantID *uuid.UUID) bool {
	if c.ProductID != productID {
		return false
	}
	if c.VariantID == nil && variantID == nil {
		return true
	}
	if c.VariantID == nil || variantID == nil {
		return false
	}
	return *c.VariantID == *variantID
}
