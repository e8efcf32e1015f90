package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pesokrava/autospares/internal/config"
	"github.com/Pesokrava/autospares/internal/delivery/events"
	"github.com/Pesokrava/autospares/internal/pkg/database"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewWithLevel(cfg.Env, cfg.LogLevel)
	appLogger.Info("Starting stock worker...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(ctx, cfg, 10, time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	publisher, err := events.NewPublisher(cfg.NATS, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", err)
	}
	defer publisher.Close()

	streams := events.NewStreamConfig(publisher.JetStream(), appLogger)
	if err := streams.EnsureStreams(); err != nil {
		appLogger.Fatal("Failed to ensure streams", err)
	}
	if err := streams.EnsureConsumer(); err != nil {
		appLogger.Fatal("Failed to ensure consumer", err)
	}

	puller, err := events.NewPuller(publisher.JetStream(), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to subscribe to order events", err)
	}
	defer puller.Close()

	monitor := worker.NewStockMonitor(worker.NewStockChecker(db, appLogger), publisher, appLogger)

	done := make(chan struct{})
	go func() {
		defer close(done)
		puller.Run(ctx, monitor.HandleEvent)
	}()

	<-ctx.Done()
	appLogger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	<-done
	if err := monitor.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Error during shutdown", err)
	}

	appLogger.Info("Stock worker stopped")
}
