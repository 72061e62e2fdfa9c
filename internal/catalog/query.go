package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	"github.com/ozanakin/carsi-storefront/pkg/enums"
	"github.com/ozanakin/carsi-storefront/pkg/pagination"
)

// ProductFilters describe the supported filter knobs for the browse endpoint.
// Every field is optional; absence means no constraint.
type ProductFilters struct {
	CategoryID *string          `json:"category_id,omitempty"`
	Search     string           `json:"q,omitempty"`
	MinPrice   *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice   *decimal.Decimal `json:"max_price,omitempty"`
	InStock    bool             `json:"in_stock,omitempty"`
	Brand      *string          `json:"brand,omitempty"`
	Tags       []string         `json:"tags,omitempty"`
	Sort       enums.SortKey    `json:"sort,omitempty"`
}

// Query filters, sorts, and paginates the product set in memory. Inactive
// products are always excluded; price comparisons use the effective price.
// Pure over its inputs.
func Query(products []models.Product, filters ProductFilters, page, pageSize int) pagination.Page[models.Product] {
	working := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.IsActive {
			working = append(working, p)
		}
	}

	if filters.CategoryID != nil {
		working = keep(working, func(p models.Product) bool {
			return p.CategoryID == *filters.CategoryID
		})
	}

	if search := strings.TrimSpace(filters.Search); search != "" {
		// Turkish case folding keeps dotted/dotless I matches correct.
		folder := cases.Lower(language.Turkish)
		needle := folder.String(search)
		working = keep(working, func(p models.Product) bool {
			return matchesSearch(p, needle, folder)
		})
	}

	if filters.MinPrice != nil {
		working = keep(working, func(p models.Product) bool {
			return p.EffectivePrice().GreaterThanOrEqual(*filters.MinPrice)
		})
	}
	if filters.MaxPrice != nil {
		working = keep(working, func(p models.Product) bool {
			return p.EffectivePrice().LessThanOrEqual(*filters.MaxPrice)
		})
	}

	if filters.InStock {
		working = keep(working, models.Product.InStock)
	}

	if filters.Brand != nil {
		working = keep(working, func(p models.Product) bool {
			return p.Brand == *filters.Brand
		})
	}

	if len(filters.Tags) > 0 {
		wanted := map[string]struct{}{}
		for _, tag := range filters.Tags {
			wanted[tag] = struct{}{}
		}
		working = keep(working, func(p models.Product) bool {
			for _, tag := range p.Tags {
				if _, ok := wanted[tag]; ok {
					return true
				}
			}
			return false
		})
	}

	sortProducts(working, filters.Sort)

	return pagination.Paginate(working, page, pageSize)
}

func matchesSearch(p models.Product, needle string, folder cases.Caser) bool {
	if strings.Contains(folder.String(p.Title), needle) {
		return true
	}
	if strings.Contains(folder.String(p.Description), needle) {
		return true
	}
	if strings.Contains(folder.String(p.Brand), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(folder.String(tag), needle) {
			return true
		}
	}
	return false
}

func sortProducts(products []models.Product, key enums.SortKey) {
	switch key {
	case enums.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice().LessThan(products[j].EffectivePrice())
		})
	case enums.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice().GreaterThan(products[j].EffectivePrice())
		})
	case enums.SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case enums.SortName:
		collator := collate.New(language.Turkish)
		sort.SliceStable(products, func(i, j int) bool {
			return collator.CompareString(products[i].Title, products[j].Title) < 0
		})
	}
}

func keep(products []models.Product, predicate func(models.Product) bool) []models.Product {
	filtered := products[:0]
	for _, p := range products {
		if predicate(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
