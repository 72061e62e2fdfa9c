package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	"github.com/ozanakin/carsi-storefront/pkg/enums"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// ValidationResult is the outcome of checking a code against a subtotal.
// Discount is the raw computed amount; totals clamp it downstream, so a fixed
// coupon larger than the subtotal still reports its full value here.
type ValidationResult struct {
	Valid    bool            `json:"valid"`
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
	Message  string          `json:"message,omitempty"`
}

// Summary is the admin-facing shape of a reference coupon.
type Summary struct {
	Code           string           `json:"code"`
	DiscountType   string           `json:"discount_type"`
	Value          decimal.Decimal  `json:"value"`
	MinOrderAmount *decimal.Decimal `json:"min_order_amount,omitempty"`
	IsActive       bool             `json:"is_active"`
}

// CouponStore is the read surface over the coupon reference set.
type CouponStore interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	ListAll(ctx context.Context) ([]models.Coupon, error)
}

// Service validates coupon codes against order subtotals. Coupons are static
// reference data; validation never mutates them.
type Service interface {
	Validate(ctx context.Context, code string, subtotal decimal.Decimal) (ValidationResult, error)
	List(ctx context.Context) ([]Summary, error)
}

type service struct {
	repo CouponStore
}

// NewService builds the coupon validator.
func NewService(repo CouponStore) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon repository is required")
	}
	return &service{repo: repo}, nil
}

// Validate checks the code case-insensitively and computes the discount for
// the given subtotal. Business failures come back as an invalid result with a
// message; only infrastructure problems surface as errors.
func (s *service) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (ValidationResult, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return invalid(trimmed, "coupon code is required"), nil
	}

	coupon, err := s.repo.FindByCode(ctx, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid(trimmed, "coupon code not found"), nil
		}
		return ValidationResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up coupon")
	}

	if !coupon.IsActive {
		return invalid(coupon.Code, "coupon is no longer active"), nil
	}

	if coupon.MinOrderAmount != nil && subtotal.LessThan(*coupon.MinOrderAmount) {
		return invalid(coupon.Code, fmt.Sprintf(
			"order subtotal must be at least %s to use this coupon",
			coupon.MinOrderAmount.StringFixed(2),
		)), nil
	}

	return ValidationResult{
		Valid:    true,
		Code:     coupon.Code,
		Discount: DiscountFor(coupon, subtotal),
	}, nil
}

// List exposes the coupon reference set for the admin screen.
func (s *service) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, Summary{
			Code:           row.Code,
			DiscountType:   row.DiscountType.String(),
			Value:          row.Value,
			MinOrderAmount: row.MinOrderAmount,
			IsActive:       row.IsActive,
		})
	}
	return summaries, nil
}

// DiscountFor computes the raw discount a coupon grants on a subtotal.
func DiscountFor(coupon *models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	switch coupon.DiscountType {
	case enums.DiscountTypePercentage:
		return subtotal.Mul(coupon.Value).Div(oneHundred).Round(2)
	case enums.DiscountTypeFixed:
		return coupon.Value
	default:
		return decimal.Zero
	}
}

func invalid(code, message string) ValidationResult {
	return ValidationResult{
		Code:     strings.ToUpper(code),
		Discount: decimal.Zero,
		Message:  message,
	}
}
