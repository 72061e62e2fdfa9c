package coupons

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
)

// Repository reads the coupon reference set.
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

// FindByCode loads a coupon by its code. Codes are stored upper-cased, so the
// lookup folds the input the same way.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).
		First(&coupon, "code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// ListAll returns every coupon, newest first. Admin listing only.
func (r *Repository) ListAll(ctx context.Context) ([]models.Coupon, error) {
	var rows []models.Coupon
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}
