package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/api/responses"
	"github.com/ozanakin/carsi-storefront/api/validators"
	"github.com/ozanakin/carsi-storefront/internal/coupons"
	"github.com/ozanakin/carsi-storefront/pkg/logger"
)

type couponValidateRequest struct {
	Code     string          `json:"code" validate:"required"`
	Subtotal decimal.Decimal `json:"subtotal" validate:"required"`
}

// CouponValidate checks a code against a subtotal without committing it to
// any cart. The storefront uses it for instant feedback in the coupon field.
func CouponValidate(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload couponValidateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Validate(r.Context(), payload.Code, payload.Subtotal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminCouponList exposes the coupon reference set for the admin screen.
func AdminCouponList(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summaries)
	}
}
