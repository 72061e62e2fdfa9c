package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartRecord is the session-scoped cart persisted across visits.
// Coupon code and discount are set and cleared together.
type CartRecord struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionKey     string           `gorm:"column:session_key;not null;uniqueIndex"`
	CouponCode     *string          `gorm:"column:coupon_code"`
	CouponDiscount *decimal.Decimal `gorm:"column:coupon_discount;type:numeric(12,2)"`
	Items          []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
