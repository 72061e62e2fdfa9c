package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
	"github.com/ozanakin/carsi-storefront/pkg/pagination"
)

// Source supplies the raw product collection the query engine filters.
type Source interface {
	ListAll(ctx context.Context) ([]models.Product, error)
}

// ProductRepository covers the persistence operations the service needs.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type invalidator interface {
	Invalidate(ctx context.Context)
}

// Service exposes catalog browsing and admin CRUD.
type Service interface {
	Browse(ctx context.Context, filters ProductFilters, page, pageSize int) (pagination.Page[ProductSummary], error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetail, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDetail, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDetail, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       ProductRepository
	source     Source
	invalidate invalidator
}

// NewService builds a catalog service backed by the provided stack. The data
// source is injected so the engine stays testable in isolation.
func NewService(repo ProductRepository, source Source) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repository is required")
	}
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog source is required")
	}
	svc := &service{repo: repo, source: source}
	if inv, ok := source.(invalidator); ok {
		svc.invalidate = inv
	}
	return svc, nil
}

// Browse runs the query engine over the injected source.
func (s *service) Browse(ctx context.Context, filters ProductFilters, page, pageSize int) (pagination.Page[ProductSummary], error) {
	products, err := s.source.ListAll(ctx)
	if err != nil {
		return pagination.Page[ProductSummary]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}

	result := Query(products, filters, page, pageSize)

	summaries := make([]ProductSummary, 0, len(result.Items))
	for _, p := range result.Items {
		summaries = append(summaries, toSummary(p))
	}

	return pagination.Page[ProductSummary]{
		Items:      summaries,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// GetProduct returns the product detail regardless of active state; the
// storefront grid hides inactive rows but the admin screen still needs them.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	detail := toDetail(*product)
	return &detail, nil
}

// CreateProduct validates and inserts a new listing.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDetail, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !input.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if err := validateSalePrice(input.Price, input.SalePrice); err != nil {
		return nil, err
	}

	currency := strings.TrimSpace(input.Currency)
	if currency == "" {
		currency = "TRY"
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	product := &models.Product{
		SKU:         strings.TrimSpace(input.SKU),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Brand:       strings.TrimSpace(input.Brand),
		CategoryID:  strings.TrimSpace(input.CategoryID),
		Tags:        pq.StringArray(input.Tags),
		Images:      pq.StringArray(input.Images),
		Price:       input.Price,
		SalePrice:   input.SalePrice,
		Currency:    currency,
		Stock:       input.Stock,
		IsActive:    active,
	}
	for _, v := range input.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			Name:  v.Name,
			Value: v.Value,
			Stock: v.Stock,
		})
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
	}

	s.dropCache(ctx)
	detail := toDetail(*created)
	return &detail, nil
}

// UpdateProduct applies a partial edit to an existing listing.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDetail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.Title != nil {
		product.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Brand != nil {
		product.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.CategoryID != nil {
		product.CategoryID = strings.TrimSpace(*input.CategoryID)
	}
	if input.Tags != nil {
		product.Tags = pq.StringArray(input.Tags)
	}
	if input.Images != nil {
		product.Images = pq.StringArray(input.Images)
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		product.Price = *input.Price
	}
	if input.ClearSale {
		product.SalePrice = nil
	} else if input.SalePrice != nil {
		product.SalePrice = input.SalePrice
	}
	if err := validateSalePrice(product.Price, product.SalePrice); err != nil {
		return nil, err
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	s.dropCache(ctx)
	detail := toDetail(*updated)
	return &detail, nil
}

// DeleteProduct removes a listing.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	s.dropCache(ctx)
	return nil
}

func (s *service) dropCache(ctx context.Context) {
	if s.invalidate != nil {
		s.invalidate.Invalidate(ctx)
	}
}

func validateSalePrice(price decimal.Decimal, sale *decimal.Decimal) error {
	if sale == nil {
		return nil
	}
	if !sale.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale price must be positive")
	}
	if sale.GreaterThanOrEqual(price) {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale price must be below list price")
	}
	return nil
}
