package models

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteItem marks a product as liked by a session.
type FavoriteItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionKey string    `gorm:"column:session_key;not null;uniqueIndex:idx_favorites_session_product"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_favorites_session_product"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
