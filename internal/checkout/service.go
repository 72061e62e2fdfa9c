package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/internal/shipping"
	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	"github.com/ozanakin/carsi-storefront/pkg/enums"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
	"github.com/ozanakin/carsi-storefront/pkg/types"
)

// CartSource is the cart surface checkout needs: the raw record to seed the
// staging draft, and a clear hook for after commit.
type CartSource interface {
	Record(ctx context.Context, sessionKey string) (*models.CartRecord, error)
	Clear(ctx context.Context, sessionKey string) error
}

// Service drives the checkout flow: a staged draft per session moving through
// contact, address, and shipping steps, committed into the durable draft
// collection.
type Service interface {
	Start(ctx context.Context, sessionKey string) (*Staging, error)
	Get(ctx context.Context, sessionKey string) (*Staging, error)
	SetCustomerInfo(ctx context.Context, sessionKey string, input CustomerInfoInput) (*Staging, error)
	SetShippingAddress(ctx context.Context, sessionKey string, input AddressInput) (*Staging, error)
	SelectShippingMethod(ctx context.Context, sessionKey string, input ShippingSelectionInput) (*Staging, error)
	Totals(ctx context.Context, sessionKey string) (types.Totals, error)
	Commit(ctx context.Context, sessionKey string) (*DraftView, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*DraftView, error)
	ListDrafts(ctx context.Context, sessionKey string) ([]DraftView, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
	Submit(ctx context.Context, id uuid.UUID) (*DraftView, error)
}

type service struct {
	staging  StagingStore
	drafts   DraftRepository
	carts    CartSource
	shipping shipping.Service
	provider PlacementProvider
}

// NewService wires the checkout service.
func NewService(staging StagingStore, drafts DraftRepository, carts CartSource, shippingSvc shipping.Service, provider PlacementProvider) (Service, error) {
	if staging == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "staging store is required")
	}
	if drafts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft repository is required")
	}
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart source is required")
	}
	if shippingSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping service is required")
	}
	if provider == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "placement provider is required")
	}
	return &service{
		staging:  staging,
		drafts:   drafts,
		carts:    carts,
		shipping: shippingSvc,
		provider: provider,
	}, nil
}

// Start seeds a fresh staging draft from the session cart, replacing any
// earlier in-progress draft.
func (s *service) Start(ctx context.Context, sessionKey string) (*Staging, error) {
	record, err := s.carts.Record(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot start checkout with an empty cart")
	}

	staging := newStaging(record)
	if err := s.staging.Save(ctx, staging); err != nil {
		return nil, err
	}
	return staging, nil
}

// Get returns the in-progress draft for the session.
func (s *service) Get(ctx context.Context, sessionKey string) (*Staging, error) {
	return s.loadStaging(ctx, sessionKey)
}

// SetCustomerInfo records the contact step.
func (s *service) SetCustomerInfo(ctx context.Context, sessionKey string, input CustomerInfoInput) (*Staging, error) {
	return s.update(ctx, sessionKey, func(staging *Staging) error {
		staging.SetCustomerInfo(input.toCustomerInfo())
		return nil
	})
}

// SetShippingAddress records the address step.
func (s *service) SetShippingAddress(ctx context.Context, sessionKey string, input AddressInput) (*Staging, error) {
	return s.update(ctx, sessionKey, func(staging *Staging) error {
		staging.SetShippingAddress(input.toAddress())
		return nil
	})
}

// SelectShippingMethod validates the selection against the subtotal and
// replaces the shipping figure.
func (s *service) SelectShippingMethod(ctx context.Context, sessionKey string, input ShippingSelectionInput) (*Staging, error) {
	return s.update(ctx, sessionKey, func(staging *Staging) error {
		method, cost, err := s.shipping.ResolveSelection(ctx, input.MethodID, staging.Subtotal)
		if err != nil {
			return err
		}
		staging.SetShippingMethod(method.ID, cost)
		return nil
	})
}

// Totals returns the current checkout breakdown, shipping included.
func (s *service) Totals(ctx context.Context, sessionKey string) (types.Totals, error) {
	staging, err := s.loadStaging(ctx, sessionKey)
	if err != nil {
		return types.Totals{}, err
	}
	return staging.Totals(), nil
}

// Commit validates the staged draft, applies defaults, and appends an
// immutable draft to the durable collection. Validation failure leaves the
// collection untouched. On success the staging entry and the cart are cleared.
func (s *service) Commit(ctx context.Context, sessionKey string) (*DraftView, error) {
	staging, err := s.loadStaging(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if len(staging.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout requires at least one item")
	}
	if staging.CustomerInfo.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer information is required before commit")
	}

	address := staging.ShippingAddress
	if address.IsZero() {
		address = staging.CustomerInfo.AsAddress()
	}

	methodID := staging.ShippingMethodID
	shippingCost := staging.Shipping
	if methodID == "" {
		method, cost, err := s.shipping.ResolveSelection(ctx, DefaultShippingMethodID, staging.Subtotal)
		if err != nil {
			return nil, err
		}
		methodID = method.ID
		shippingCost = cost
	}

	draft := &models.OrderDraft{
		SessionKey:       sessionKey,
		Status:           enums.DraftStatusDraft,
		Subtotal:         staging.Subtotal,
		Shipping:         shippingCost,
		Discount:         staging.Discount,
		Total:            types.OrderTotal(staging.Subtotal, shippingCost, staging.Discount),
		CustomerInfo:     staging.CustomerInfo,
		ShippingAddress:  address,
		ShippingMethodID: methodID,
		CouponCode:       staging.CouponCode,
	}
	for _, item := range staging.Items {
		draft.Items = append(draft.Items, models.OrderDraftItem{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			Title:       item.Title,
			UnitPrice:   item.UnitPrice,
			SalePrice:   item.SalePrice,
			Image:       item.Image,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
		})
	}

	created, err := s.drafts.Create(ctx, draft)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order draft")
	}

	// Commit succeeded: the staging object and the cart are done. Cleanup
	// failures are logged upstream, never fail the commit.
	_ = s.staging.Clear(ctx, sessionKey)
	_ = s.carts.Clear(ctx, sessionKey)

	view := toDraftView(created)
	return &view, nil
}

// GetDraft loads one committed draft.
func (s *service) GetDraft(ctx context.Context, id uuid.UUID) (*DraftView, error) {
	draft, err := s.findDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toDraftView(draft)
	return &view, nil
}

// ListDrafts returns the session's committed drafts, newest first.
func (s *service) ListDrafts(ctx context.Context, sessionKey string) ([]DraftView, error) {
	drafts, err := s.drafts.ListBySession(ctx, sessionKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order drafts")
	}
	views := make([]DraftView, 0, len(drafts))
	for i := range drafts {
		views = append(views, toDraftView(&drafts[i]))
	}
	return views, nil
}

// DeleteDraft removes a draft from the durable collection. Absence is a no-op.
func (s *service) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "draft id is required")
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order draft")
	}
	return nil
}

// Submit hands a committed draft to the placement provider and marks it
// submitted. A draft submits at most once.
func (s *service) Submit(ctx context.Context, id uuid.UUID) (*DraftView, error) {
	draft, err := s.findDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.Status == enums.DraftStatusSubmitted {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order draft already submitted")
	}

	if err := s.provider.Place(ctx, draft); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order")
	}
	if err := s.drafts.UpdateStatus(ctx, id, enums.DraftStatusSubmitted); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark draft submitted")
	}

	draft.Status = enums.DraftStatusSubmitted
	view := toDraftView(draft)
	return &view, nil
}

func (s *service) loadStaging(ctx context.Context, sessionKey string) (*Staging, error) {
	if sessionKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session key is required")
	}
	staging, err := s.staging.Load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if staging == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout in progress")
	}
	return staging, nil
}

func (s *service) update(ctx context.Context, sessionKey string, apply func(*Staging) error) (*Staging, error) {
	staging, err := s.loadStaging(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if err := apply(staging); err != nil {
		return nil, err
	}
	if err := s.staging.Save(ctx, staging); err != nil {
		return nil, err
	}
	return staging, nil
}

func (s *service) findDraft(ctx context.Context, id uuid.UUID) (*models.OrderDraft, error) {
	draft, err := s.drafts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order draft not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order draft")
	}
	return draft, nil
}
