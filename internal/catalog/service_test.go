package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
)

type stubProductRepo struct {
	product *models.Product
	findErr error
	deleted []uuid.UUID
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.product == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

func (s *stubProductRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.product = product
	return product, nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.product = product
	return product, nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubSource struct {
	products    []models.Product
	err         error
	invalidated int
}

func (s *stubSource) ListAll(ctx context.Context) ([]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubSource) Invalidate(ctx context.Context) { s.invalidated++ }

func newTestService(t *testing.T, repo *stubProductRepo, source *stubSource) Service {
	t.Helper()
	svc, err := NewService(repo, source)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewServiceRequiresDeps(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil, &stubSource{}); err == nil {
		t.Fatal("expected error for nil repository")
	}
	if _, err := NewService(&stubProductRepo{}, nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestServiceBrowseMapsSummaries(t *testing.T) {
	t.Parallel()

	source := &stubSource{products: fixtureProducts()}
	svc := newTestService(t, &stubProductRepo{}, source)

	page, err := svc.Browse(context.Background(), ProductFilters{}, 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected 3 summaries, got %d", page.Total)
	}
	for _, item := range page.Items {
		if item.ID == uuid.Nil || item.Title == "" {
			t.Fatalf("summary missing fields: %+v", item)
		}
	}
}

func TestServiceGetProductNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubProductRepo{}, &stubSource{})

	_, err := svc.GetProduct(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceCreateProductRejectsBadSalePrice(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubProductRepo{}, &stubSource{})

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		SKU:        "SKU-1",
		Title:      "Ürün",
		CategoryID: "giyim",
		Price:      dec("100.00"),
		SalePrice:  decPtr("100.00"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateProductDefaultsAndInvalidates(t *testing.T) {
	t.Parallel()

	repo := &stubProductRepo{}
	source := &stubSource{}
	svc := newTestService(t, repo, source)

	detail, err := svc.CreateProduct(context.Background(), CreateProductInput{
		SKU:        "SKU-1",
		Title:      "  Yeni Ürün  ",
		CategoryID: "giyim",
		Price:      dec("150.00"),
		Stock:      4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Title != "Yeni Ürün" {
		t.Fatalf("title not trimmed: %q", detail.Title)
	}
	if detail.Currency != "TRY" {
		t.Fatalf("expected TRY default, got %q", detail.Currency)
	}
	if !detail.IsActive {
		t.Fatal("new products should default to active")
	}
	if source.invalidated != 1 {
		t.Fatalf("expected one cache invalidation, got %d", source.invalidated)
	}
}

func TestServiceUpdateProductClearSale(t *testing.T) {
	t.Parallel()

	repo := &stubProductRepo{product: &models.Product{
		ID:        uuid.New(),
		Title:     "Deri Ceket",
		Price:     dec("2499.00"),
		SalePrice: decPtr("1999.00"),
		Currency:  "TRY",
		IsActive:  true,
	}}
	source := &stubSource{}
	svc := newTestService(t, repo, source)

	detail, err := svc.UpdateProduct(context.Background(), repo.product.ID, UpdateProductInput{ClearSale: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.SalePrice != nil {
		t.Fatalf("expected sale price cleared, got %v", detail.SalePrice)
	}
	if source.invalidated != 1 {
		t.Fatalf("expected one cache invalidation, got %d", source.invalidated)
	}
}

func TestServiceUpdateProductRejectsSaleAboveList(t *testing.T) {
	t.Parallel()

	repo := &stubProductRepo{product: &models.Product{
		ID:       uuid.New(),
		Title:    "Ürün",
		Price:    dec("100.00"),
		Currency: "TRY",
		IsActive: true,
	}}
	svc := newTestService(t, repo, &stubSource{})

	_, err := svc.UpdateProduct(context.Background(), repo.product.ID, UpdateProductInput{
		SalePrice: decPtr("120.00"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceDeleteProductInvalidates(t *testing.T) {
	t.Parallel()

	repo := &stubProductRepo{}
	source := &stubSource{}
	svc := newTestService(t, repo, source)

	id := uuid.New()
	if err := svc.DeleteProduct(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != id {
		t.Fatalf("delete not forwarded: %v", repo.deleted)
	}
	if source.invalidated != 1 {
		t.Fatalf("expected one cache invalidation, got %d", source.invalidated)
	}
}
