package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingMethod is static reference data keyed by a stable slug.
// FreeEligible methods cost zero at or above the free-shipping threshold;
// FreeOnly methods are not selectable below it.
type ShippingMethod struct {
	ID               string          `gorm:"column:id;primaryKey"`
	Name             string          `gorm:"column:name;not null"`
	Description      string          `gorm:"column:description;not null;default:''"`
	BasePrice        decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null"`
	DeliveryEstimate string          `gorm:"column:delivery_estimate;not null;default:''"`
	FreeEligible     bool            `gorm:"column:free_eligible;not null;default:false"`
	FreeOnly         bool            `gorm:"column:free_only;not null;default:false"`
	Position         int             `gorm:"column:position;not null;default:0"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
