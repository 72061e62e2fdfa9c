package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	"github.com/ozanakin/carsi-storefront/pkg/types"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func cartFixture() *models.CartRecord {
	code := "DEMO20"
	return &models.CartRecord{
		ID:             uuid.New(),
		SessionKey:     "sess-1",
		CouponCode:     &code,
		CouponDiscount: decPtr("40.00"),
		Items: []models.CartItem{
			{ProductID: uuid.New(), Title: "Ürün", UnitPrice: dec("100.00"), Quantity: 2},
		},
	}
}

func TestNewStagingSeedsTotals(t *testing.T) {
	t.Parallel()

	staging := newStaging(cartFixture())

	if !staging.Subtotal.Equal(dec("200.00")) {
		t.Fatalf("expected subtotal 200, got %s", staging.Subtotal)
	}
	if !staging.Shipping.IsZero() {
		t.Fatalf("shipping starts at zero, got %s", staging.Shipping)
	}
	// 200 + 0 − 40
	if !staging.Total.Equal(dec("160.00")) {
		t.Fatalf("expected total 160, got %s", staging.Total)
	}
	if staging.CouponCode == nil || *staging.CouponCode != "DEMO20" {
		t.Fatalf("coupon not carried over: %+v", staging.CouponCode)
	}
}

func TestSetShippingMethodReplacesFigure(t *testing.T) {
	t.Parallel()

	staging := newStaging(cartFixture())

	staging.SetShippingMethod("express", dec("89.99"))
	if !staging.Total.Equal(dec("249.99")) {
		t.Fatalf("expected total 249.99, got %s", staging.Total)
	}

	// Re-selecting replaces, never accumulates.
	staging.SetShippingMethod("standard", dec("49.99"))
	if !staging.Shipping.Equal(dec("49.99")) {
		t.Fatalf("expected shipping 49.99, got %s", staging.Shipping)
	}
	if !staging.Total.Equal(dec("209.99")) {
		t.Fatalf("expected total 209.99, got %s", staging.Total)
	}
}

func TestStepReEditKeepsOtherFields(t *testing.T) {
	t.Parallel()

	staging := newStaging(cartFixture())
	staging.SetCustomerInfo(types.CustomerInfo{Name: "Ayşe Yılmaz", Email: "ayse@example.com"})
	staging.SetShippingMethod("standard", dec("49.99"))

	// Going back to the contact step must not reset the shipping selection.
	staging.SetCustomerInfo(types.CustomerInfo{Name: "Ayşe Yılmaz", Email: "ayse@ornek.com"})

	if staging.ShippingMethodID != "standard" || !staging.Shipping.Equal(dec("49.99")) {
		t.Fatalf("shipping selection lost on re-edit: %+v", staging)
	}
	if staging.CustomerInfo.Email != "ayse@ornek.com" {
		t.Fatalf("contact edit not applied: %+v", staging.CustomerInfo)
	}
}

func TestTotalsClampAtZero(t *testing.T) {
	t.Parallel()

	record := cartFixture()
	record.CouponDiscount = decPtr("500.00")
	staging := newStaging(record)

	if !staging.Total.IsZero() {
		t.Fatalf("oversized discount must clamp to zero, got %s", staging.Total)
	}
}
