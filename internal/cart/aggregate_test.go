package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
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

func line(productID uuid.UUID, variantID *uuid.UUID, price string, qty int) models.CartItem {
	return models.CartItem{
		ProductID: productID,
		VariantID: variantID,
		Title:     "Ürün",
		UnitPrice: dec(price),
		Quantity:  qty,
	}
}

func TestAddLineMergesSameIdentity(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	record := &models.CartRecord{}

	addLine(record, line(productID, nil, "100.00", 0))
	addLine(record, line(productID, nil, "120.00", 0))

	if len(record.Items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(record.Items))
	}
	if record.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", record.Items[0].Quantity)
	}
	// The snapshot price of the existing line must survive the merge.
	if !record.Items[0].UnitPrice.Equal(dec("100.00")) {
		t.Fatalf("merge must not touch the price snapshot: %s", record.Items[0].UnitPrice)
	}
}

func TestAddLineVariantsAreDistinctLines(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	variantA := uuid.New()
	variantB := uuid.New()
	record := &models.CartRecord{}

	addLine(record, line(productID, &variantA, "100.00", 0))
	addLine(record, line(productID, &variantB, "100.00", 0))
	addLine(record, line(productID, nil, "100.00", 0))

	if len(record.Items) != 3 {
		t.Fatalf("expected 3 distinct lines, got %d", len(record.Items))
	}
}

func TestRemoveLineMissingIsNoop(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	record := &models.CartRecord{Items: []models.CartItem{line(productID, nil, "50.00", 1)}}

	removeLine(record, uuid.New(), nil)
	if len(record.Items) != 1 {
		t.Fatal("removing an absent line must not touch the cart")
	}

	removeLine(record, productID, nil)
	if len(record.Items) != 0 {
		t.Fatal("matching line should be removed")
	}
}

func TestSetQuantityFloorRemoves(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	record := &models.CartRecord{Items: []models.CartItem{line(productID, nil, "50.00", 3)}}

	setQuantity(record, productID, nil, 5)
	if record.Items[0].Quantity != 5 {
		t.Fatalf("expected replacement to 5, got %d", record.Items[0].Quantity)
	}

	setQuantity(record, productID, nil, 0)
	if len(record.Items) != 0 {
		t.Fatal("quantity zero must remove the line")
	}

	record.Items = []models.CartItem{line(productID, nil, "50.00", 3)}
	setQuantity(record, productID, nil, -2)
	if len(record.Items) != 0 {
		t.Fatal("negative quantity must remove the line")
	}
}

func TestClearCartDropsItemsAndCoupon(t *testing.T) {
	t.Parallel()

	code := "DEMO20"
	record := &models.CartRecord{
		Items:          []models.CartItem{line(uuid.New(), nil, "50.00", 1)},
		CouponCode:     &code,
		CouponDiscount: decPtr("10.00"),
	}

	clearCart(record)

	if len(record.Items) != 0 || record.CouponCode != nil || record.CouponDiscount != nil {
		t.Fatalf("clear must drop items and coupon together: %+v", record)
	}
}

func TestDerivedReads(t *testing.T) {
	t.Parallel()

	sale := line(uuid.New(), nil, "100.00", 2)
	sale.SalePrice = decPtr("80.00")
	record := &models.CartRecord{
		Items: []models.CartItem{
			sale,
			line(uuid.New(), nil, "25.50", 3),
		},
		CouponDiscount: decPtr("36.50"),
	}

	if got := itemCount(record); got != 5 {
		t.Fatalf("expected count 5, got %d", got)
	}
	// 2×80 + 3×25.50 = 236.50
	if got := subtotal(record); !got.Equal(dec("236.50")) {
		t.Fatalf("expected subtotal 236.50, got %s", got)
	}
	if got := cartTotal(record); !got.Equal(dec("200.00")) {
		t.Fatalf("expected total 200.00, got %s", got)
	}
}

func TestCartTotalClampsAtZero(t *testing.T) {
	t.Parallel()

	record := &models.CartRecord{
		Items:          []models.CartItem{line(uuid.New(), nil, "30.00", 1)},
		CouponDiscount: decPtr("50.00"),
	}

	if got := cartTotal(record); !got.IsZero() {
		t.Fatalf("oversized discount must clamp to zero, got %s", got)
	}
}
