package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/api/middleware"
	"github.com/ozanakin/carsi-storefront/api/responses"
	"github.com/ozanakin/carsi-storefront/api/validators"
	"github.com/ozanakin/carsi-storefront/internal/cart"
	"github.com/ozanakin/carsi-storefront/internal/shipping"
	"github.com/ozanakin/carsi-storefront/pkg/logger"
)

// ShippingQuote prices every shipping method against the session cart's
// subtotal (or an explicit ?subtotal= override).
func ShippingQuote(svc shipping.Service, carts cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subtotal, err := validators.ParseQueryDecimal(r, "subtotal")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount := decimal.Zero
		if subtotal != nil {
			amount = *subtotal
		} else {
			view, err := carts.Get(r.Context(), middleware.SessionKey(r.Context()))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			amount = view.Subtotal
		}

		quotes, err := svc.Quote(r.Context(), amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"free_shipping_eligible": svc.FreeShippingEligible(amount),
			"methods":                quotes,
		})
	}
}
