package cart

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/internal/coupons"
	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
)

type stubCartRepo struct {
	record *models.CartRecord
}

func (s *stubCartRepo) FindBySessionKey(ctx context.Context, sessionKey string) (*models.CartRecord, error) {
	if s.record == nil || s.record.SessionKey != sessionKey {
		return nil, gorm.ErrRecordNotFound
	}
	return s.record, nil
}

func (s *stubCartRepo) Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	record.ID = uuid.New()
	s.record = record
	return record, nil
}

func (s *stubCartRepo) Update(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	s.record = record
	return record, nil
}

func (s *stubCartRepo) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error {
	if s.record != nil && s.record.ID == cartID {
		s.record.Items = items
	}
	return nil
}

func (s *stubCartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.record != nil && s.record.ID == id {
		s.record = nil
	}
	return nil
}

type stubProductLoader struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubProductLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

type stubValidator struct {
	result coupons.ValidationResult
}

func (s *stubValidator) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (coupons.ValidationResult, error) {
	if strings.EqualFold(code, s.result.Code) {
		return s.result, nil
	}
	return coupons.ValidationResult{Code: code, Discount: decimal.Zero, Message: "coupon code not found"}, nil
}

func fixtureProduct() *models.Product {
	variantID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	return &models.Product{
		ID:       uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Title:    "Pamuklu Tişört",
		Price:    dec("100.00"),
		Currency: "TRY",
		Stock:    10,
		IsActive: true,
		Variants: []models.ProductVariant{
			{ID: variantID, Name: "Beden", Value: "M", Stock: 5},
		},
	}
}

func newTestService(t *testing.T, repo *stubCartRepo, validator CouponValidator) Service {
	t.Helper()
	product := fixtureProduct()
	if validator == nil {
		validator = &stubValidator{}
	}
	svc, err := NewService(repo, &stubProductLoader{products: map[uuid.UUID]*models.Product{product.ID: product}}, validator, nil, 0)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestGetMissingCartReadsEmpty(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCartRepo{}, nil)
	view, err := svc.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ItemCount != 0 || !view.Total.IsZero() {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestAddItemSnapshotsAndMerges(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	svc := newTestService(t, repo, nil)
	product := fixtureProduct()

	view, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: product.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ItemCount != 1 || len(view.Items) != 1 {
		t.Fatalf("expected single line, got %+v", view)
	}
	if !view.Items[0].UnitPrice.Equal(dec("100.00")) {
		t.Fatalf("price not snapshotted: %s", view.Items[0].UnitPrice)
	}

	view, err = svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: product.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Fatalf("expected merged quantity 2, got %+v", view.Items)
	}
	if !view.Subtotal.Equal(dec("200.00")) {
		t.Fatalf("expected subtotal 200, got %s", view.Subtotal)
	}
}

func TestAddItemVariantSnapshot(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCartRepo{}, nil)
	product := fixtureProduct()
	variantID := product.Variants[0].ID

	view, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: product.ID, VariantID: &variantID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Items[0].VariantName == nil || *view.Items[0].VariantName != "Beden: M" {
		t.Fatalf("variant name not snapshotted: %+v", view.Items[0])
	}

	unknown := uuid.New()
	_, err = svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: product.ID, VariantID: &unknown})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown variant, got %v", err)
	}
}

func TestApplyCouponCommitsValidatorResult(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	validator := &stubValidator{result: coupons.ValidationResult{
		Valid:    true,
		Code:     "DEMO20",
		Discount: dec("40.00"),
	}}
	svc := newTestService(t, repo, validator)
	product := fixtureProduct()

	if _, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: product.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.UpdateQuantity(context.Background(), "sess-1", QuantityInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := svc.ApplyCoupon(context.Background(), "sess-1", "demo20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CouponCode == nil || *view.CouponCode != "DEMO20" {
		t.Fatalf("coupon code not committed: %+v", view)
	}
	if !view.CouponDiscount.Equal(dec("40.00")) {
		t.Fatalf("expected discount 40, got %s", view.CouponDiscount)
	}
	// Cart total view excludes shipping: 200 − 40.
	if !view.Total.Equal(dec("160.00")) {
		t.Fatalf("expected total 160, got %s", view.Total)
	}
}

func TestApplyCouponInvalidSurfacesMessage(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	svc := newTestService(t, repo, nil)
	product := fixtureProduct()

	if _, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: product.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.ApplyCoupon(context.Background(), "sess-1", "YOK")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(typed.Error(), "not found") {
		t.Fatalf("expected the validator message, got %q", typed.Error())
	}
}

func TestApplyCouponEmptyCartRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCartRepo{}, nil)
	_, err := svc.ApplyCoupon(context.Background(), "sess-1", "DEMO20")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMutationRevalidatesAppliedCoupon(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	validator := &stubValidator{result: coupons.ValidationResult{
		Valid:    true,
		Code:     "DEMO20",
		Discount: dec("40.00"),
	}}
	svc := newTestService(t, repo, validator)
	product := fixtureProduct()

	if _, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: product.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.UpdateQuantity(context.Background(), "sess-1", QuantityInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ApplyCoupon(context.Background(), "sess-1", "DEMO20"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The subtotal drop pushes the coupon below its minimum.
	validator.result.Valid = false
	validator.result.Message = "minimum cart amount is 100.00"

	view, err := svc.UpdateQuantity(context.Background(), "sess-1", QuantityInput{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CouponCode != nil || !view.CouponDiscount.IsZero() {
		t.Fatalf("coupon should be cleared after revalidation: %+v", view)
	}
	if !view.Total.Equal(dec("100.00")) {
		t.Fatalf("expected total 100, got %s", view.Total)
	}
}

func TestRemovingLastItemClearsCoupon(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	validator := &stubValidator{result: coupons.ValidationResult{Valid: true, Code: "DEMO20", Discount: dec("20.00")}}
	svc := newTestService(t, repo, validator)
	product := fixtureProduct()

	if _, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: product.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ApplyCoupon(context.Background(), "sess-1", "DEMO20"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := svc.RemoveItem(context.Background(), "sess-1", product.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CouponCode != nil || !view.CouponDiscount.IsZero() {
		t.Fatalf("coupon should not survive an empty cart: %+v", view)
	}
}

func TestRemoveCouponClearsBothFields(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	validator := &stubValidator{result: coupons.ValidationResult{Valid: true, Code: "DEMO20", Discount: dec("20.00")}}
	svc := newTestService(t, repo, validator)
	product := fixtureProduct()

	if _, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: product.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ApplyCoupon(context.Background(), "sess-1", "DEMO20"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := svc.RemoveCoupon(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CouponCode != nil || !view.CouponDiscount.IsZero() {
		t.Fatalf("coupon fields not cleared: %+v", view)
	}
}

func TestClearDeletesCart(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	svc := newTestService(t, repo, nil)
	product := fixtureProduct()

	if _, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: product.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Clear(context.Background(), "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.record != nil {
		t.Fatal("cart row should be deleted")
	}

	// Clearing an absent cart is a no-op.
	if err := svc.Clear(context.Background(), "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
