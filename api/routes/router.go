package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ozanakin/carsi-storefront/api/controllers"
	"github.com/ozanakin/carsi-storefront/api/middleware"
	"github.com/ozanakin/carsi-storefront/internal/cart"
	"github.com/ozanakin/carsi-storefront/internal/catalog"
	"github.com/ozanakin/carsi-storefront/internal/checkout"
	"github.com/ozanakin/carsi-storefront/internal/coupons"
	"github.com/ozanakin/carsi-storefront/internal/favorites"
	"github.com/ozanakin/carsi-storefront/internal/shipping"
	"github.com/ozanakin/carsi-storefront/pkg/config"
	"github.com/ozanakin/carsi-storefront/pkg/logger"
	"github.com/ozanakin/carsi-storefront/pkg/metrics"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry

	DBProbe    func(ctx context.Context) error
	RedisProbe func(ctx context.Context) error

	Catalog   catalog.Service
	Coupons   coupons.Service
	Shipping  shipping.Service
	Cart      cart.Service
	Checkout  checkout.Service
	Favorites favorites.Service
}

// NewRouter wires the storefront HTTP surface.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger,
			controllers.ReadyCheck{Name: "database", Probe: deps.DBProbe},
			controllers.ReadyCheck{Name: "redis", Probe: deps.RedisProbe},
		))
	})

	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(deps.Logger))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, deps.Logger))
			r.Get("/{productId}", controllers.ProductDetail(deps.Catalog, deps.Logger))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, deps.Logger))
			r.Post("/items", controllers.CartAddItem(deps.Cart, deps.Logger))
			r.Put("/items", controllers.CartUpdateQuantity(deps.Cart, deps.Logger))
			r.Delete("/items", controllers.CartRemoveItem(deps.Cart, deps.Logger))
			r.Post("/coupon", controllers.CartApplyCoupon(deps.Cart, deps.Logger))
			r.Delete("/coupon", controllers.CartRemoveCoupon(deps.Cart, deps.Logger))
			r.Delete("/", controllers.CartClear(deps.Cart, deps.Logger))
		})

		r.Post("/coupons/validate", controllers.CouponValidate(deps.Coupons, deps.Logger))
		r.Get("/shipping/quote", controllers.ShippingQuote(deps.Shipping, deps.Cart, deps.Logger))

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", controllers.CheckoutStart(deps.Checkout, deps.Logger))
			r.Get("/", controllers.CheckoutFetch(deps.Checkout, deps.Logger))
			r.Put("/customer", controllers.CheckoutCustomerInfo(deps.Checkout, deps.Logger))
			r.Put("/address", controllers.CheckoutAddress(deps.Checkout, deps.Logger))
			r.Put("/shipping", controllers.CheckoutShipping(deps.Checkout, deps.Logger))
			r.Get("/totals", controllers.CheckoutTotals(deps.Checkout, deps.Logger))
			r.Post("/commit", controllers.CheckoutCommit(deps.Checkout, deps.Logger))
		})

		r.Route("/drafts", func(r chi.Router) {
			r.Get("/", controllers.DraftList(deps.Checkout, deps.Logger))
			r.Get("/{draftId}", controllers.DraftDetail(deps.Checkout, deps.Logger))
			r.Delete("/{draftId}", controllers.DraftDelete(deps.Checkout, deps.Logger))
			r.Post("/{draftId}/submit", controllers.DraftSubmit(deps.Checkout, deps.Logger))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", controllers.FavoritesList(deps.Favorites, deps.Logger))
			r.Post("/{productId}/toggle", controllers.FavoritesToggle(deps.Favorites, deps.Logger))
			r.Delete("/{productId}", controllers.FavoritesRemove(deps.Favorites, deps.Logger))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Get("/coupons", controllers.AdminCouponList(deps.Coupons, deps.Logger))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(deps.Catalog, deps.Logger))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(deps.Catalog, deps.Logger))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(deps.Catalog, deps.Logger))
		})
	})

	return r
}
