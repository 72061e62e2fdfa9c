package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	"github.com/ozanakin/carsi-storefront/pkg/enums"
)

// DraftRepository covers the durable order-draft collection.
type DraftRepository interface {
	Create(ctx context.Context, draft *models.OrderDraft) (*models.OrderDraft, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.OrderDraft, error)
	ListBySession(ctx context.Context, sessionKey string) ([]models.OrderDraft, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DraftStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository is the GORM-backed draft store.
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

// Create appends a committed draft with its item snapshot.
func (r *Repository) Create(ctx context.Context, draft *models.OrderDraft) (*models.OrderDraft, error) {
	if err := r.db.WithContext(ctx).Create(draft).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

// FindByID loads one draft with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderDraft, error) {
	var draft models.OrderDraft
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&draft, "id = ?", id).
		Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

// ListBySession returns the session's drafts, newest first.
func (r *Repository) ListBySession(ctx context.Context, sessionKey string) ([]models.OrderDraft, error) {
	var rows []models.OrderDraft
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("session_key = ?", sessionKey).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// UpdateStatus advances a draft's status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DraftStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderDraft{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

// Delete removes a draft by id. Deleting an absent draft is not an error.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.OrderDraft{}).Error
}
