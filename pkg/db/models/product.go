package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a catalog listing.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU         string           `gorm:"column:sku;not null"`
	Title       string           `gorm:"column:title;not null"`
	Description string           `gorm:"column:description;not null;default:''"`
	Brand       string           `gorm:"column:brand;not null;default:''"`
	CategoryID  string           `gorm:"column:category_id;not null;index"`
	Tags        pq.StringArray   `gorm:"column:tags;type:text[]"`
	Images      pq.StringArray   `gorm:"column:images;type:text[]"`
	Price       decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	SalePrice   *decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2)"`
	Currency    string           `gorm:"column:currency;not null;default:'TRY'"`
	Stock       int              `gorm:"column:stock;not null;default:0"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice returns the sale price when it undercuts the list price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.LessThan(p.Price) {
		return *p.SalePrice
	}
	return p.Price
}

// InStock reports whether any units remain.
func (p Product) InStock() bool {
	return p.Stock > 0
}
