package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
)

// ProductChecker verifies a product exists before it can be favorited.
type ProductChecker interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// IDsDTO is the liked-product-id projection used to paint heart icons.
type IDsDTO struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// Service manages the session's liked products.
type Service interface {
	List(ctx context.Context, sessionKey string) (IDsDTO, error)
	Add(ctx context.Context, sessionKey string, productID uuid.UUID) error
	Remove(ctx context.Context, sessionKey string, productID uuid.UUID) error
	Toggle(ctx context.Context, sessionKey string, productID uuid.UUID) (bool, error)
}

type service struct {
	repo     FavoriteRepository
	products ProductChecker
}

// NewService builds the favorites service.
func NewService(repo FavoriteRepository, products ProductChecker) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorites repository is required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product checker is required")
	}
	return &service{repo: repo, products: products}, nil
}

// List returns the session's liked product ids, newest first.
func (s *service) List(ctx context.Context, sessionKey string) (IDsDTO, error) {
	if sessionKey == "" {
		return IDsDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session key is required")
	}
	items, err := s.repo.ListBySession(ctx, sessionKey)
	if err != nil {
		return IDsDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorites")
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return IDsDTO{ProductIDs: ids}, nil
}

// Add marks a product as liked. Re-adding is a no-op.
func (s *service) Add(ctx context.Context, sessionKey string, productID uuid.UUID) error {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return err
	}

	exists, err := s.repo.Exists(ctx, sessionKey, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check favorite")
	}
	if exists {
		return nil
	}

	if err := s.repo.Add(ctx, &models.FavoriteItem{SessionKey: sessionKey, ProductID: productID}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
	}
	return nil
}

// Remove unlikes a product. Absence is a no-op.
func (s *service) Remove(ctx context.Context, sessionKey string, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.repo.Remove(ctx, sessionKey, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
	}
	return nil
}

// Toggle flips the liked state and reports the new state.
func (s *service) Toggle(ctx context.Context, sessionKey string, productID uuid.UUID) (bool, error) {
	exists, err := s.repo.Exists(ctx, sessionKey, productID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check favorite")
	}
	if exists {
		return false, s.Remove(ctx, sessionKey, productID)
	}
	return true, s.Add(ctx, sessionKey, productID)
}

func (s *service) ensureProduct(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return nil
}
