package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/pkg/enums"
	"github.com/ozanakin/carsi-storefront/pkg/types"
)

// OrderDraft is the immutable record produced when checkout completes. Items
// are a snapshot copy of the cart at commit time, never a live reference.
type OrderDraft struct {
	ID               uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionKey       string             `gorm:"column:session_key;not null;index"`
	Status           enums.DraftStatus  `gorm:"column:status;not null;default:'draft'"`
	Subtotal         decimal.Decimal    `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Shipping         decimal.Decimal    `gorm:"column:shipping;type:numeric(12,2);not null"`
	Discount         decimal.Decimal    `gorm:"column:discount;type:numeric(12,2);not null"`
	Total            decimal.Decimal    `gorm:"column:total;type:numeric(12,2);not null"`
	CustomerInfo     types.CustomerInfo `gorm:"column:customer_info;type:jsonb;serializer:json"`
	ShippingAddress  types.Address      `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	ShippingMethodID string             `gorm:"column:shipping_method_id;not null;default:'standard'"`
	CouponCode       *string            `gorm:"column:coupon_code"`
	Items            []OrderDraftItem   `gorm:"foreignKey:DraftID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
