package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/ozanakin/carsi-storefront/api/routes"
	"github.com/ozanakin/carsi-storefront/internal/cart"
	"github.com/ozanakin/carsi-storefront/internal/catalog"
	"github.com/ozanakin/carsi-storefront/internal/checkout"
	"github.com/ozanakin/carsi-storefront/internal/coupons"
	"github.com/ozanakin/carsi-storefront/internal/favorites"
	"github.com/ozanakin/carsi-storefront/internal/shipping"
	"github.com/ozanakin/carsi-storefront/pkg/config"
	"github.com/ozanakin/carsi-storefront/pkg/db"
	"github.com/ozanakin/carsi-storefront/pkg/logger"
	"github.com/ozanakin/carsi-storefront/pkg/metrics"
	"github.com/ozanakin/carsi-storefront/pkg/migrate"
	"github.com/ozanakin/carsi-storefront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	threshold, err := decimal.NewFromString(cfg.Checkout.FreeShippingThreshold)
	if err != nil {
		logg.Error(context.Background(), "invalid free shipping threshold", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()

	catalogRepo := catalog.NewRepository(gormDB)
	catalogSource := catalog.NewCachedSource(catalogRepo, redisClient, cfg.Catalog.CacheTTL)
	catalogService, err := catalog.NewService(catalogRepo, catalogSource)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	couponService, err := coupons.NewService(coupons.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create coupon service", err)
		os.Exit(1)
	}

	shippingService, err := shipping.NewService(shipping.NewRepository(gormDB), shipping.NewEvaluator(threshold))
	if err != nil {
		logg.Error(context.Background(), "failed to create shipping service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRepository(gormDB), catalogRepo, couponService, redisClient, cfg.Cart.MirrorTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(
		checkout.NewRedisStagingStore(redisClient, cfg.Checkout.StagingTTL),
		checkout.NewRepository(gormDB),
		cartService,
		shippingService,
		checkout.NewLogPlacementProvider(logg),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	favoritesService, err := favorites.NewService(favorites.NewRepository(gormDB), catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			Metrics:    httpMetrics,
			Registry:   registry,
			DBProbe:    dbClient.Ping,
			RedisProbe: redisClient.Ping,
			Catalog:    catalogService,
			Coupons:    couponService,
			Shipping:   shippingService,
			Cart:       cartService,
			Checkout:   checkoutService,
			Favorites:  favoritesService,
		}),
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var closeErr error
		closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
		closeErr = multierr.Append(closeErr, redisClient.Close())
		closeErr = multierr.Append(closeErr, dbClient.Close())
		if closeErr != nil {
			logg.Error(ctx, "shutdown finished with errors", closeErr)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}
