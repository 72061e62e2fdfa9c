package shipping

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testMethods() []models.ShippingMethod {
	return []models.ShippingMethod{
		{ID: "standard", Name: "Standart Kargo", BasePrice: dec("49.99"), FreeEligible: true, Position: 1},
		{ID: "express", Name: "Hızlı Kargo", BasePrice: dec("89.99"), Position: 2},
		{ID: "free", Name: "Ücretsiz Kargo", BasePrice: decimal.Zero, FreeEligible: true, FreeOnly: true, Position: 3},
	}
}

func TestFreeShippingEligibleBoundary(t *testing.T) {
	t.Parallel()

	eval := NewEvaluator(dec("500"))

	if eval.FreeShippingEligible(dec("499.99")) {
		t.Fatal("499.99 must not qualify for free shipping")
	}
	if !eval.FreeShippingEligible(dec("500")) {
		t.Fatal("500 must qualify for free shipping")
	}
	if !eval.FreeShippingEligible(dec("500.01")) {
		t.Fatal("500.01 must qualify for free shipping")
	}
}

func TestCostFor(t *testing.T) {
	t.Parallel()

	eval := NewEvaluator(dec("500"))
	standard := testMethods()[0]
	express := testMethods()[1]

	if got := eval.CostFor(standard, dec("200")); !got.Equal(dec("49.99")) {
		t.Fatalf("expected base price below threshold, got %s", got)
	}
	if got := eval.CostFor(standard, dec("500")); !got.IsZero() {
		t.Fatalf("expected free shipping at threshold, got %s", got)
	}
	// Methods not flagged free-eligible charge base price regardless.
	if got := eval.CostFor(express, dec("1000")); !got.Equal(dec("89.99")) {
		t.Fatalf("express must keep its base price, got %s", got)
	}
}

func TestSelectableFreeOnly(t *testing.T) {
	t.Parallel()

	eval := NewEvaluator(dec("500"))
	free := testMethods()[2]

	if eval.Selectable(free, dec("499.99")) {
		t.Fatal("free-only method must be unselectable below threshold")
	}
	if !eval.Selectable(free, dec("500")) {
		t.Fatal("free-only method must be selectable at threshold")
	}
	if !eval.Selectable(testMethods()[0], dec("10")) {
		t.Fatal("regular methods are always selectable")
	}
}

type stubMethodRepo struct {
	methods []models.ShippingMethod
}

func (s *stubMethodRepo) ListAll(ctx context.Context) ([]models.ShippingMethod, error) {
	return s.methods, nil
}

func (s *stubMethodRepo) FindByID(ctx context.Context, id string) (*models.ShippingMethod, error) {
	for i := range s.methods {
		if s.methods[i].ID == id {
			return &s.methods[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(&stubMethodRepo{methods: testMethods()}, NewEvaluator(dec("500")))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestQuoteFlagsSelectability(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	quotes, err := svc.Quote(context.Background(), dec("200"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(quotes))
	}

	byID := map[string]MethodQuote{}
	for _, q := range quotes {
		byID[q.ID] = q
	}
	if q := byID["standard"]; !q.Cost.Equal(dec("49.99")) || !q.Selectable {
		t.Fatalf("unexpected standard quote: %+v", q)
	}
	if q := byID["free"]; q.Selectable {
		t.Fatalf("free-only method should be unselectable at 200: %+v", q)
	}
}

func TestResolveSelection(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	method, cost, err := svc.ResolveSelection(context.Background(), "standard", dec("200"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method.ID != "standard" || !cost.Equal(dec("49.99")) {
		t.Fatalf("unexpected resolution: %s %s", method.ID, cost)
	}

	_, _, err = svc.ResolveSelection(context.Background(), "free", dec("200"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodePolicy {
		t.Fatalf("expected policy violation, got %v", err)
	}

	_, _, err = svc.ResolveSelection(context.Background(), "drone", dec("200"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
