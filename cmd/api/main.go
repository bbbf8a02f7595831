package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/novamart/storefront-backend/api/routes"
	"github.com/novamart/storefront-backend/internal/cart"
	"github.com/novamart/storefront-backend/internal/catalog"
	"github.com/novamart/storefront-backend/internal/catalog/source"
	"github.com/novamart/storefront-backend/internal/checkout"
	"github.com/novamart/storefront-backend/internal/wishlist"
	"github.com/novamart/storefront-backend/pkg/config"
	"github.com/novamart/storefront-backend/pkg/env"
	"github.com/novamart/storefront-backend/pkg/localstore"
	"github.com/novamart/storefront-backend/pkg/logger"
	"github.com/novamart/storefront-backend/pkg/metrics"
	"github.com/novamart/storefront-backend/pkg/redis"
	"github.com/novamart/storefront-backend/pkg/session"
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
		Console:     cfg.App.IsDev(),
	})

	if cfg.App.IsProd() {
		for _, origin := range cfg.CORS.AllowedOrigins {
			if strings.Contains(origin, "localhost") {
				logg.Warn(context.Background(), "production run allows a localhost CORS origin: "+origin)
			}
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	met := metrics.New(registry)

	snapshots := localstore.New(redisClient, cfg.Cart.SnapshotTTL)

	sourceClient, err := source.NewClient(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog source client", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(sourceClient, logg, met)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(snapshots, redisClient, catalogService, logg, met)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(snapshots, redisClient, catalogService, logg, met)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	checkoutCalc, err := checkout.NewCalculator(cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout calculator", err)
		os.Exit(1)
	}

	serverCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	catalogService.StartRefreshLoop(serverCtx, cfg.Catalog.RefreshInterval)

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			sessionManager,
			catalogService,
			cartService,
			wishlistService,
			checkoutCalc,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
