package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
)

// FavoriteRepository covers the persistence surface the service needs.
type FavoriteRepository interface {
	ListBySession(ctx context.Context, sessionKey string) ([]models.FavoriteItem, error)
	Add(ctx context.Context, item *models.FavoriteItem) error
	Remove(ctx context.Context, sessionKey string, productID uuid.UUID) error
	Exists(ctx context.Context, sessionKey string, productID uuid.UUID) (bool, error)
}

// Repository is the GORM-backed favorites store.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListBySession returns the session's favorites, newest first.
func (r *Repository) ListBySession(ctx context.Context, sessionKey string) ([]models.FavoriteItem, error) {
	var rows []models.FavoriteItem
	err := r.db.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// Add inserts a favorite. The composite unique index makes re-adding a
// duplicate-key error the service treats as a no-op.
func (r *Repository) Add(ctx context.Context, item *models.FavoriteItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Remove deletes a favorite. Absence is not an error.
func (r *Repository) Remove(ctx context.Context, sessionKey string, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_key = ? AND product_id = ?", sessionKey, productID).
		Delete(&models.FavoriteItem{}).
		Error
}

// Exists reports whether the session already favorited the product.
func (r *Repository) Exists(ctx context.Context, sessionKey string, productID uuid.UUID) (bool, error) {
	var item models.FavoriteItem
	err := r.db.WithContext(ctx).
		Where("session_key = ? AND product_id = ?", sessionKey, productID).
		First(&item).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
