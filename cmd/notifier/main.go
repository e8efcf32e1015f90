package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pesokrava/autospares/internal/config"
	"github.com/Pesokrava/autospares/internal/delivery/events"
	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewWithLevel(cfg.Env, cfg.LogLevel)
	appLogger.Info("Starting notifier service...")

	consumer, err := events.NewConsumer(cfg.NATS, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS consumer", err)
	}
	defer consumer.Close()

	for _, subject := range []string{domain.SubjectOrderEvents, domain.SubjectInventoryAlerts} {
		if err := consumer.Subscribe(subject, events.LoggingHandler(appLogger)); err != nil {
			appLogger.Fatal("Failed to subscribe to "+subject, err)
		}
	}

	appLogger.Info("Notifier service started and listening for events...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	appLogger.Info("Shutting down notifier service...")
}
