package shipping

import (
	"context"

	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
)

// Repository reads the shipping method reference set.
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

// ListAll returns every shipping method in display order.
func (r *Repository) ListAll(ctx context.Context) ([]models.ShippingMethod, error) {
	var rows []models.ShippingMethod
	err := r.db.WithContext(ctx).Order("position ASC").Find(&rows).Error
	return rows, err
}

// FindByID loads one shipping method by its slug.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.ShippingMethod, error) {
	var method models.ShippingMethod
	if err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &method, nil
}
