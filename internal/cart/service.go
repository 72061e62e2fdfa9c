package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/internal/coupons"
	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
	pkgredis "github.com/ozanakin/carsi-storefront/pkg/redis"
)

// ProductLoader resolves catalog products for price snapshots.
type ProductLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// CouponValidator is the slice of the coupon service the cart needs.
type CouponValidator interface {
	Validate(ctx context.Context, code string, subtotal decimal.Decimal) (coupons.ValidationResult, error)
}

type mirrorStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Service manages the session cart. Derived figures (count, subtotal, total)
// are recomputed on every read.
type Service interface {
	Get(ctx context.Context, sessionKey string) (View, error)
	AddItem(ctx context.Context, sessionKey string, input AddItemInput) (View, error)
	RemoveItem(ctx context.Context, sessionKey string, productID uuid.UUID, variantID *uuid.UUID) (View, error)
	UpdateQuantity(ctx context.Context, sessionKey string, input QuantityInput) (View, error)
	ApplyCoupon(ctx context.Context, sessionKey, code string) (View, error)
	RemoveCoupon(ctx context.Context, sessionKey string) (View, error)
	Clear(ctx context.Context, sessionKey string) error
	Record(ctx context.Context, sessionKey string) (*models.CartRecord, error)
}

type service struct {
	repo      CartRepository
	products  ProductLoader
	validator CouponValidator
	mirror    mirrorStore
	mirrorTTL time.Duration
}

// NewService wires the cart service. The mirror store is optional; when nil
// the cart lives in the database only.
func NewService(repo CartRepository, products ProductLoader, validator CouponValidator, mirror mirrorStore, mirrorTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repository is required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product loader is required")
	}
	if validator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon validator is required")
	}
	return &service{
		repo:      repo,
		products:  products,
		validator: validator,
		mirror:    mirror,
		mirrorTTL: mirrorTTL,
	}, nil
}

// Get returns the cart view for the session. A session without a cart reads
// as an empty cart.
func (s *service) Get(ctx context.Context, sessionKey string) (View, error) {
	record, err := s.load(ctx, sessionKey)
	if err != nil {
		return View{}, err
	}
	if record == nil {
		return emptyView(sessionKey), nil
	}
	return toView(record), nil
}

// Record exposes the raw cart row for the checkout flow.
func (s *service) Record(ctx context.Context, sessionKey string) (*models.CartRecord, error) {
	record, err := s.load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart is empty")
	}
	return record, nil
}

// AddItem snapshots the product's current pricing into the cart. Adding an
// existing (product, variant) line bumps its quantity without touching the
// snapshot.
func (s *service) AddItem(ctx context.Context, sessionKey string, input AddItemInput) (View, error) {
	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return View{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return View{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	line := models.CartItem{
		ProductID: product.ID,
		Title:     product.Title,
		UnitPrice: product.Price,
		SalePrice: product.SalePrice,
	}
	if len(product.Images) > 0 {
		image := product.Images[0]
		line.Image = &image
	}
	if input.VariantID != nil {
		variant := findVariant(product.Variants, *input.VariantID)
		if variant == nil {
			return View{}, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found")
		}
		id := variant.ID
		name := fmt.Sprintf("%s: %s", variant.Name, variant.Value)
		line.VariantID = &id
		line.VariantName = &name
	}

	record, err := s.loadOrCreate(ctx, sessionKey)
	if err != nil {
		return View{}, err
	}

	addLine(record, line)
	return s.persist(ctx, record)
}

// RemoveItem drops the matching line. A missing line is a no-op.
func (s *service) RemoveItem(ctx context.Context, sessionKey string, productID uuid.UUID, variantID *uuid.UUID) (View, error) {
	record, err := s.load(ctx, sessionKey)
	if err != nil {
		return View{}, err
	}
	if record == nil {
		return emptyView(sessionKey), nil
	}

	removeLine(record, productID, variantID)
	return s.persist(ctx, record)
}

// UpdateQuantity replaces a line's quantity; zero or less removes the line.
func (s *service) UpdateQuantity(ctx context.Context, sessionKey string, input QuantityInput) (View, error) {
	record, err := s.load(ctx, sessionKey)
	if err != nil {
		return View{}, err
	}
	if record == nil {
		return emptyView(sessionKey), nil
	}

	setQuantity(record, input.ProductID, input.VariantID, input.Quantity)
	return s.persist(ctx, record)
}

// ApplyCoupon validates the code against the current subtotal and commits
// the computed discount onto the cart.
func (s *service) ApplyCoupon(ctx context.Context, sessionKey, code string) (View, error) {
	record, err := s.load(ctx, sessionKey)
	if err != nil {
		return View{}, err
	}
	if record == nil || len(record.Items) == 0 {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "cannot apply a coupon to an empty cart")
	}

	result, err := s.validator.Validate(ctx, code, subtotal(record))
	if err != nil {
		return View{}, err
	}
	if !result.Valid {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, result.Message)
	}

	appliedCode := result.Code
	discount := result.Discount
	setCoupon(record, &appliedCode, &discount)
	return s.persist(ctx, record)
}

// RemoveCoupon clears both coupon fields.
func (s *service) RemoveCoupon(ctx context.Context, sessionKey string) (View, error) {
	record, err := s.load(ctx, sessionKey)
	if err != nil {
		return View{}, err
	}
	if record == nil {
		return emptyView(sessionKey), nil
	}

	setCoupon(record, nil, nil)
	return s.persist(ctx, record)
}

// Clear removes the cart row entirely, lines and coupon together.
func (s *service) Clear(ctx context.Context, sessionKey string) error {
	record, err := s.load(ctx, sessionKey)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	if err := s.repo.Delete(ctx, record.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	s.dropMirror(ctx, sessionKey)
	return nil
}

func (s *service) load(ctx context.Context, sessionKey string) (*models.CartRecord, error) {
	if sessionKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session key is required")
	}
	record, err := s.repo.FindBySessionKey(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return record, nil
}

func (s *service) loadOrCreate(ctx context.Context, sessionKey string) (*models.CartRecord, error) {
	record, err := s.load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	created, err := s.repo.Create(ctx, &models.CartRecord{SessionKey: sessionKey})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	return created, nil
}

func (s *service) persist(ctx context.Context, record *models.CartRecord) (View, error) {
	if err := s.refreshCoupon(ctx, record); err != nil {
		return View{}, err
	}
	if err := s.repo.ReplaceItems(ctx, record.ID, record.Items); err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart items")
	}
	if _, err := s.repo.Update(ctx, record); err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}

	view := toView(record)
	s.writeMirror(ctx, view)
	return view, nil
}

// refreshCoupon revalidates an applied coupon against the current subtotal.
// A coupon that no longer qualifies is cleared, code and discount together.
func (s *service) refreshCoupon(ctx context.Context, record *models.CartRecord) error {
	if record.CouponCode == nil {
		return nil
	}
	if len(record.Items) == 0 {
		setCoupon(record, nil, nil)
		return nil
	}

	result, err := s.validator.Validate(ctx, *record.CouponCode, subtotal(record))
	if err != nil {
		return err
	}
	if !result.Valid {
		setCoupon(record, nil, nil)
		return nil
	}
	setCoupon(record, &result.Code, &result.Discount)
	return nil
}

func (s *service) writeMirror(ctx context.Context, view View) {
	if s.mirror == nil {
		return
	}
	encoded, err := json.Marshal(view)
	if err != nil {
		return
	}
	// Mirror failures never fail the cart operation.
	_ = s.mirror.Set(ctx, pkgredis.CartKey(view.SessionKey), string(encoded), s.mirrorTTL)
}

func (s *service) dropMirror(ctx context.Context, sessionKey string) {
	if s.mirror == nil {
		return
	}
	_ = s.mirror.Del(ctx, pkgredis.CartKey(sessionKey))
}

func findVariant(variants []models.ProductVariant, id uuid.UUID) *models.ProductVariant {
	for i := range variants {
		if variants[i].ID == id {
			return &variants[i]
		}
	}
	return nil
}

func emptyView(sessionKey string) View {
	return View{
		SessionKey:     sessionKey,
		Items:          []LineView{},
		CouponDiscount: decimal.Zero,
		ItemCount:      0,
		Subtotal:       decimal.Zero,
		Total:          decimal.Zero,
	}
}
