package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDraftItem is a frozen copy of a cart line at commit time.
type OrderDraftItem struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DraftID     uuid.UUID        `gorm:"column:draft_id;type:uuid;not null;index"`
	ProductID   uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	VariantID   *uuid.UUID       `gorm:"column:variant_id;type:uuid"`
	Title       string           `gorm:"column:title;not null"`
	UnitPrice   decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2);not null"`
	SalePrice   *decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2)"`
	Image       *string          `gorm:"column:image"`
	VariantName *string          `gorm:"column:variant_name"`
	Quantity    int              `gorm:"column:quantity;not null"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
}
