package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	"github.com/ozanakin/carsi-storefront/pkg/enums"
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

func strPtr(s string) *string { return &s }

func fixtureProducts() []models.Product {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.Product{
		{
			ID:         uuid.New(),
			Title:      "Pamuklu Tişört",
			Brand:      "Karaca",
			CategoryID: "giyim",
			Tags:       pq.StringArray{"yazlik", "pamuk"},
			Price:      dec("199.90"),
			Stock:      10,
			IsActive:   true,
			CreatedAt:  base,
		},
		{
			ID:         uuid.New(),
			Title:      "Deri Ceket",
			Brand:      "Vakko",
			CategoryID: "giyim",
			Tags:       pq.StringArray{"kislik"},
			Price:      dec("2499.00"),
			SalePrice:  decPtr("1999.00"),
			Stock:      0,
			IsActive:   true,
			CreatedAt:  base.Add(time.Hour),
		},
		{
			ID:         uuid.New(),
			Title:      "Çelik Tencere",
			Brand:      "Karaca",
			CategoryID: "mutfak",
			Tags:       pq.StringArray{"celik"},
			Price:      dec("899.50"),
			Stock:      3,
			IsActive:   true,
			CreatedAt:  base.Add(2 * time.Hour),
		},
		{
			ID:         uuid.New(),
			Title:      "Eski Ürün",
			Brand:      "Karaca",
			CategoryID: "giyim",
			Price:      dec("49.90"),
			Stock:      5,
			IsActive:   false,
			CreatedAt:  base.Add(3 * time.Hour),
		},
	}
}

func TestQueryExcludesInactive(t *testing.T) {
	t.Parallel()

	page := Query(fixtureProducts(), ProductFilters{}, 1, 20)
	if page.Total != 3 {
		t.Fatalf("expected 3 active products, got %d", page.Total)
	}
	for _, p := range page.Items {
		if !p.IsActive {
			t.Fatalf("inactive product leaked into results: %s", p.Title)
		}
	}
}

func TestQueryCategoryAndStock(t *testing.T) {
	t.Parallel()

	page := Query(fixtureProducts(), ProductFilters{
		CategoryID: strPtr("giyim"),
		InStock:    true,
	}, 1, 20)

	if page.Total != 1 {
		t.Fatalf("expected 1 product, got %d", page.Total)
	}
	if page.Items[0].Title != "Pamuklu Tişört" {
		t.Fatalf("unexpected product: %s", page.Items[0].Title)
	}
}

func TestQueryTurkishSearch(t *testing.T) {
	t.Parallel()

	// Uppercase dotted İ must fold to i under Turkish rules and still match.
	page := Query(fixtureProducts(), ProductFilters{Search: "TİŞÖRT"}, 1, 20)
	if page.Total != 1 || page.Items[0].Title != "Pamuklu Tişört" {
		t.Fatalf("expected the tişört to match, got %+v", page.Items)
	}

	// Brand and tag fields participate in the search too.
	if got := Query(fixtureProducts(), ProductFilters{Search: "vakko"}, 1, 20); got.Total != 1 {
		t.Fatalf("expected brand match, got %d results", got.Total)
	}
	if got := Query(fixtureProducts(), ProductFilters{Search: "pamuk"}, 1, 20); got.Total != 1 {
		t.Fatalf("expected tag match, got %d results", got.Total)
	}
}

func TestQueryPriceRangeUsesEffectivePrice(t *testing.T) {
	t.Parallel()

	// The jacket lists at 2499 but sells at 1999; a 2000 cap must include it.
	page := Query(fixtureProducts(), ProductFilters{
		MinPrice: decPtr("1000"),
		MaxPrice: decPtr("2000"),
	}, 1, 20)

	if page.Total != 1 || page.Items[0].Title != "Deri Ceket" {
		t.Fatalf("expected the discounted jacket, got %+v", page.Items)
	}
}

func TestQuerySortPriceAsc(t *testing.T) {
	t.Parallel()

	page := Query(fixtureProducts(), ProductFilters{Sort: enums.SortPriceAsc}, 1, 20)
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(page.Items))
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].EffectivePrice().GreaterThan(page.Items[i].EffectivePrice()) {
			t.Fatalf("items not sorted by effective price ascending")
		}
	}
}

func TestQuerySortNewest(t *testing.T) {
	t.Parallel()

	page := Query(fixtureProducts(), ProductFilters{Sort: enums.SortNewest}, 1, 20)
	if page.Items[0].Title != "Çelik Tencere" {
		t.Fatalf("expected newest product first, got %s", page.Items[0].Title)
	}
}

func TestQuerySortNameTurkishCollation(t *testing.T) {
	t.Parallel()

	page := Query(fixtureProducts(), ProductFilters{Sort: enums.SortName}, 1, 20)
	// Turkish collation orders Ç right after C, well before D and P.
	if page.Items[0].Title != "Çelik Tencere" {
		t.Fatalf("expected Çelik Tencere first under Turkish collation, got %s", page.Items[0].Title)
	}
}

func TestQueryPaginationReassembles(t *testing.T) {
	t.Parallel()

	products := fixtureProducts()
	var collected []string
	for page := 1; ; page++ {
		result := Query(products, ProductFilters{Sort: enums.SortPriceAsc}, page, 2)
		if len(result.Items) == 0 {
			break
		}
		for _, p := range result.Items {
			collected = append(collected, p.Title)
		}
		if page > result.TotalPages {
			t.Fatalf("walked past total pages %d", result.TotalPages)
		}
	}
	if len(collected) != 3 {
		t.Fatalf("pages did not reassemble the full result set: %v", collected)
	}
}

func TestQueryOutOfRangePage(t *testing.T) {
	t.Parallel()

	result := Query(fixtureProducts(), ProductFilters{}, 99, 2)
	if len(result.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(result.Items))
	}
	if result.Total != 3 || result.TotalPages != 2 {
		t.Fatalf("totals should survive out-of-range pages: %+v", result)
	}
}

func TestQueryTagsMatchAny(t *testing.T) {
	t.Parallel()

	page := Query(fixtureProducts(), ProductFilters{Tags: []string{"kislik", "celik"}}, 1, 20)
	if page.Total != 2 {
		t.Fatalf("expected 2 products matching either tag, got %d", page.Total)
	}
}

func TestQueryDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	products := fixtureProducts()
	before := make([]string, len(products))
	for i, p := range products {
		before[i] = p.Title
	}

	Query(products, ProductFilters{Brand: strPtr("Karaca"), Sort: enums.SortPriceDesc}, 1, 2)

	for i, p := range products {
		if p.Title != before[i] {
			t.Fatalf("input slice reordered at %d: %s != %s", i, p.Title, before[i])
		}
	}
}
