package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dzstorefront-backend/config"
	"dzstorefront-backend/internal/delivery/http/middleware"
	v1 "dzstorefront-backend/internal/delivery/http/v1"
	"dzstorefront-backend/internal/domain"
	"dzstorefront-backend/internal/infrastructure/cache"
	"dzstorefront-backend/internal/infrastructure/woocommerce"
	"dzstorefront-backend/internal/repository/postgres"
	"dzstorefront-backend/internal/usecase"
	"dzstorefront-backend/pkg/logger"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Commerce backend client
	wooClient := woocommerce.NewClient(cfg.WooBaseURL, cfg.WooConsumerKey, cfg.WooConsumerSecret, cfg.WooTimeout)

	// Durable zone-cache mirror (optional; memory-only without a DSN)
	var zoneStore domain.ZoneCacheStore
	if cfg.DBUrl != "" {
		pool, err := postgres.NewPgxPool(context.Background(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()

		kv := postgres.NewKVStore(pool)
		if err := kv.Migrate(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate kv_cache table")
		}
		zoneStore = kv
		log.Info().Msg("Durable zone cache enabled (PostgreSQL)")
	} else {
		log.Info().Msg("Running without durable zone cache")
	}

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// --- Modules Initialization ---

	// Shipping Module (wilaya rate resolution)
	zoneUC := usecase.NewShippingZoneUsecase(wooClient, zoneStore, cfg.ShippingCacheTTL)
	wilayaUC := usecase.NewWilayaShippingUsecase(zoneUC, memCache, cfg.ShippingCacheTTL)
	shippingHandler := v1.NewShippingHandler(zoneUC, wilayaUC)

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(wooClient, memCache, cfg)
	catalogHandler := v1.NewCatalogHandler(catalogUC)

	// Order Module
	orderUC := usecase.NewOrderUsecase(wooClient, cfg)
	orderHandler := v1.NewOrderHandler(orderUC)

	// Webhook Module
	webhookHandler := v1.NewWebhookHandler(zoneUC, wilayaUC, catalogUC, cfg.WebhookToken)

	// Set up Router
	mux := http.NewServeMux()

	// Shipping
	mux.HandleFunc("GET /api/v1/shipping/zones", shippingHandler.GetZones)
	mux.HandleFunc("GET /api/v1/shipping/wilayas", shippingHandler.ListWilayas)
	mux.HandleFunc("GET /api/v1/shipping/wilaya/{name}", shippingHandler.GetWilayaShipping)

	// Catalog
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct)
	mux.HandleFunc("GET /api/v1/categories", catalogHandler.ListCategories)

	// Checkout (cash on delivery)
	mux.HandleFunc("POST /api/v1/orders", orderHandler.PlaceOrder)

	// Webhooks
	mux.HandleFunc("POST /api/v1/webhooks/woocommerce", webhookHandler.Handle)

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Load balancer compatibility

	// Warm the zone cache so the first checkout finds it populated
	zoneUC.Preload(context.Background())

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Rate limiter lifecycle is tied to shutdown below
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitPerSec),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
