package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pesokrava/autospares/internal/config"
	"github.com/Pesokrava/autospares/internal/delivery/events"
	httpDelivery "github.com/Pesokrava/autospares/internal/delivery/http"
	"github.com/Pesokrava/autospares/internal/delivery/http/handler"
	"github.com/Pesokrava/autospares/internal/inventory"
	"github.com/Pesokrava/autospares/internal/numbering"
	gateway "github.com/Pesokrava/autospares/internal/payment"
	"github.com/Pesokrava/autospares/internal/pkg/cache"
	"github.com/Pesokrava/autospares/internal/pkg/database"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/pricing"
	cacheRepo "github.com/Pesokrava/autospares/internal/repository/cache"
	"github.com/Pesokrava/autospares/internal/repository/postgres"
	"github.com/Pesokrava/autospares/internal/usecase/admin"
	"github.com/Pesokrava/autospares/internal/usecase/basket"
	"github.com/Pesokrava/autospares/internal/usecase/order"
	"github.com/Pesokrava/autospares/internal/usecase/payment"
	"github.com/Pesokrava/autospares/internal/usecase/product"
	"github.com/Pesokrava/autospares/migrations"

	_ "github.com/Pesokrava/autospares/docs"
)

// @title Auto Spares Store API
// @version 1.0
// @description Storefront order core: catalogue, session baskets, checkout, order lifecycle and payments.

// @contact.name API Support
// @contact.url http://github.com/Pesokrava/autospares

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @tag.name Products
// @tag.description Catalogue management
// @tag.name Orders
// @tag.description Checkout and order lookup
// @tag.name Cart
// @tag.name Wishlist
// @tag.name Comparison
// @tag.name Payments
// @tag.name Admin
// @tag.description Dashboard, order lifecycle and stock administration

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewWithLevel(cfg.Env, cfg.LogLevel)
	logger.SetGlobal(appLogger)
	appLogger.Info("Starting Auto Spares API...")

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStartup()

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(startupCtx, cfg, 10, time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	if err := database.RunMigrations(startupCtx, db, migrations.FS); err != nil {
		appLogger.Fatal("Failed to apply migrations", err)
	}

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(startupCtx, cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg.NATS, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	if err := events.NewStreamConfig(publisher.JetStream(), appLogger).EnsureStreams(); err != nil {
		appLogger.Fatal("Failed to ensure JetStream streams", err)
	}

	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db, cfg.Order.MaxTxRetries)
	redisCache := cacheRepo.NewRedisCache(
		redisClient,
		cfg.Cache.ProductTTL,
		cfg.Cache.ProductListTTL,
		cfg.Cache.DashboardTTL,
	)
	sessions := cacheRepo.NewSessionStore(redisClient, cfg.Cache.SessionTTL)

	productService := product.NewService(productRepo, redisCache, appLogger)
	orderService := order.NewService(
		orderRepo,
		inventory.NewLedger(),
		pricing.NewCalculator(cfg.Order.TaxRate, cfg.Order.FreeShippingThreshold, cfg.Order.ShippingFee),
		numbering.NewGenerator(cfg.Order.NumberPrefix, cfg.Order.Location),
		redisCache,
		publisher,
		appLogger,
	)
	basketService := basket.NewService(sessions, productService, orderService, appLogger)
	paymentService := payment.NewService(
		gateway.NewPayShap(cfg.Payment.Environment, cfg.Payment.WebhookSecret, appLogger),
		orderService,
		cfg.Order.Currency,
		appLogger,
	)
	adminService := admin.NewService(orderRepo, redisCache, cfg.Order.Location, appLogger)

	router := httpDelivery.NewRouter(httpDelivery.Handlers{
		Product: handler.NewProductHandler(productService, appLogger),
		Order:   handler.NewOrderHandler(orderService, appLogger),
		Basket:  handler.NewBasketHandler(basketService, appLogger),
		Payment: handler.NewPaymentHandler(paymentService, appLogger),
		Admin:   handler.NewAdminHandler(adminService, appLogger),
	}, cfg, appLogger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	// flush post-commit event publishing before the NATS connection drains
	if err := orderService.Wait(ctx); err != nil {
		appLogger.Warn("Timed out waiting for in-flight order events")
	}

	appLogger.Info("Server stopped gracefully")
}
