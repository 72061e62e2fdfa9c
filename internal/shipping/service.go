package shipping

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
)

// MethodQuote is a shipping method priced against a specific subtotal.
type MethodQuote struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	DeliveryEstimate string          `json:"delivery_estimate,omitempty"`
	Cost             decimal.Decimal `json:"cost"`
	Free             bool            `json:"free"`
	Selectable       bool            `json:"selectable"`
}

// MethodSource is the persistence surface the service needs.
type MethodSource interface {
	ListAll(ctx context.Context) ([]models.ShippingMethod, error)
	FindByID(ctx context.Context, id string) (*models.ShippingMethod, error)
}

// Service quotes shipping methods for a subtotal and resolves selections.
type Service interface {
	Quote(ctx context.Context, subtotal decimal.Decimal) ([]MethodQuote, error)
	ResolveSelection(ctx context.Context, methodID string, subtotal decimal.Decimal) (*models.ShippingMethod, decimal.Decimal, error)
	FreeShippingEligible(subtotal decimal.Decimal) bool
}

type service struct {
	repo      MethodSource
	evaluator *Evaluator
}

// NewService builds the shipping service.
func NewService(repo MethodSource, evaluator *Evaluator) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping repository is required")
	}
	if evaluator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping evaluator is required")
	}
	return &service{repo: repo, evaluator: evaluator}, nil
}

// Quote prices every method against the subtotal. Unselectable methods are
// still listed, flagged, so the storefront can render them greyed out.
func (s *service) Quote(ctx context.Context, subtotal decimal.Decimal) ([]MethodQuote, error) {
	methods, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipping methods")
	}

	quotes := make([]MethodQuote, 0, len(methods))
	for _, method := range methods {
		cost := s.evaluator.CostFor(method, subtotal)
		quotes = append(quotes, MethodQuote{
			ID:               method.ID,
			Name:             method.Name,
			Description:      method.Description,
			DeliveryEstimate: method.DeliveryEstimate,
			Cost:             cost,
			Free:             cost.IsZero(),
			Selectable:       s.evaluator.Selectable(method, subtotal),
		})
	}
	return quotes, nil
}

// ResolveSelection validates that a method exists and is selectable at the
// subtotal, returning the method and its cost.
func (s *service) ResolveSelection(ctx context.Context, methodID string, subtotal decimal.Decimal) (*models.ShippingMethod, decimal.Decimal, error) {
	method, err := s.repo.FindByID(ctx, methodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "shipping method not found")
		}
		return nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipping method")
	}

	if !s.evaluator.Selectable(*method, subtotal) {
		return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodePolicy, "shipping method requires free-shipping eligibility")
	}

	return method, s.evaluator.CostFor(*method, subtotal), nil
}

// FreeShippingEligible reports whether the subtotal clears the threshold.
func (s *service) FreeShippingEligible(subtotal decimal.Decimal) bool {
	return s.evaluator.FreeShippingEligible(subtotal)
}
