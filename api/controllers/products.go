package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ozanakin/carsi-storefront/api/responses"
	"github.com/ozanakin/carsi-storefront/api/validators"
	"github.com/ozanakin/carsi-storefront/internal/catalog"
	"github.com/ozanakin/carsi-storefront/pkg/enums"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
	"github.com/ozanakin/carsi-storefront/pkg/logger"
	"github.com/ozanakin/carsi-storefront/pkg/pagination"
)

// ProductList serves the storefront browse grid with filters, search, sort,
// and pagination.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseProductFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pageSize, err := validators.ParseQueryInt(r, "page_size", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Browse(r.Context(), filters, page, pageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductDetail serves one product with variants.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		detail, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

func parseProductFilters(r *http.Request) (catalog.ProductFilters, error) {
	filters := catalog.ProductFilters{
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
	}

	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		filters.CategoryID = &category
	}
	if brand := strings.TrimSpace(r.URL.Query().Get("brand")); brand != "" {
		filters.Brand = &brand
	}
	if tags := strings.TrimSpace(r.URL.Query().Get("tags")); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filters.Tags = append(filters.Tags, tag)
			}
		}
	}

	minPrice, err := validators.ParseQueryDecimal(r, "min_price")
	if err != nil {
		return catalog.ProductFilters{}, err
	}
	filters.MinPrice = minPrice

	maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
	if err != nil {
		return catalog.ProductFilters{}, err
	}
	filters.MaxPrice = maxPrice

	inStock, err := validators.ParseQueryBool(r, "in_stock")
	if err != nil {
		return catalog.ProductFilters{}, err
	}
	filters.InStock = inStock

	if raw := strings.TrimSpace(r.URL.Query().Get("sort")); raw != "" {
		sort, err := enums.ParseSortKey(raw)
		if err != nil {
			return catalog.ProductFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort key")
		}
		filters.Sort = sort
	}

	return filters, nil
}
