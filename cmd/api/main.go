package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/rgarza/posdesk-backend/api/routes"
	cartsvc "github.com/rgarza/posdesk-backend/internal/cart"
	checkoutsvc "github.com/rgarza/posdesk-backend/internal/checkout"
	ordersrepo "github.com/rgarza/posdesk-backend/internal/orders"
	prefsvc "github.com/rgarza/posdesk-backend/internal/preferences"
	productsvc "github.com/rgarza/posdesk-backend/internal/products"
	"github.com/rgarza/posdesk-backend/pkg/config"
	"github.com/rgarza/posdesk-backend/pkg/db"
	"github.com/rgarza/posdesk-backend/pkg/gateway"
	"github.com/rgarza/posdesk-backend/pkg/logger"
	"github.com/rgarza/posdesk-backend/pkg/metrics"
	"github.com/rgarza/posdesk-backend/pkg/migrate"
	"github.com/rgarza/posdesk-backend/pkg/redis"
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

	defer func() {
		if err := multierr.Combine(redisClient.Close(), dbClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	productService, err := productsvc.NewService(productsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(
		cartsvc.NewRepository(redisClient, cfg.Checkout.SessionTTL),
		productService,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	prefsService, err := prefsvc.NewService(redisClient, cfg.Checkout.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create preferences service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.Params{
		Cart:              cartService,
		Preferences:       prefsService,
		Orders:            ordersrepo.NewRepository(dbClient.DB()),
		Gateway:           gateway.NewSimulated(),
		Metrics:           checkoutMetrics,
		Logger:            logg,
		TaxRatePercent:    cfg.Checkout.TaxRatePercent,
		Currency:          cfg.Checkout.Currency,
		MerchantRefPrefix: cfg.Gateway.MerchantRefPrefix,
		GatewayTimeout:    cfg.Gateway.Timeout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

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
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DBPinger:    dbClient,
			RedisPinger: redisClient,
			Products:    productService,
			Cart:        cartService,
			Preferences: prefsService,
			Checkout:    checkoutService,
			Metrics:     registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
