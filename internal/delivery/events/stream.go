package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

const (
	// OrderStreamName holds order lifecycle events
	OrderStreamName = "ORDERS"

	// InventoryStreamName holds stock alerts raised by the stock monitor
	InventoryStreamName = "INVENTORY"

	// ConsumerName is the durable consumer used by the stock monitor
	ConsumerName = "stock-monitor"

	// MaxDeliveryAttempts bounds redelivery of an order event to the stock monitor.
	// A dropped event only delays the next low-stock check for its products.
	MaxDeliveryAttempts = 3

	// AckWait is how long to wait for acknowledgment before redelivery
	AckWait = 30 * time.Second
)

// StreamConfig creates the JetStream streams and consumer the services rely on
type StreamConfig struct {
	js     nats.JetStreamContext
	logger *logger.Logger
}

// NewStreamConfig creates a new stream configuration helper
func NewStreamConfig(js nats.JetStreamContext, log *logger.Logger) *StreamConfig {
	return &StreamConfig{
		js:     js,
		logger: log,
	}
}

// generateExponentialBackoff creates a backoff schedule for NATS redeliveries:
// 1s, 2s, 4s, ... MaxDeliver N needs N-1 durations since the first delivery is immediate.
func generateExponentialBackoff(maxDeliveryAttempts int) []time.Duration {
	if maxDeliveryAttempts <= 1 {
		return nil
	}

	backoff := make([]time.Duration, maxDeliveryAttempts-1)
	for i := range backoff {
		backoff[i] = time.Duration(1<<i) * time.Second
	}
	return backoff
}

func orderStream() *nats.StreamConfig {
	return &nats.StreamConfig{
		Name:        OrderStreamName,
		Subjects:    []string{domain.SubjectOrderEvents},
		Retention:   nats.WorkQueuePolicy,
		Storage:     nats.FileStorage,
		Replicas:    1,
		MaxAge:      24 * time.Hour,
		Discard:     nats.DiscardOld,
		Description: "Order lifecycle events",
	}
}

func inventoryStream() *nats.StreamConfig {
	return &nats.StreamConfig{
		Name:        InventoryStreamName,
		Subjects:    []string{domain.SubjectInventoryAlerts},
		Retention:   nats.LimitsPolicy,
		Storage:     nats.FileStorage,
		Replicas:    1,
		MaxAge:      7 * 24 * time.Hour,
		Discard:     nats.DiscardOld,
		Description: "Low-stock and out-of-stock alerts",
	}
}

// EnsureStreams creates the order and inventory streams when missing
func (s *StreamConfig) EnsureStreams() error {
	for _, cfg := range []*nats.StreamConfig{orderStream(), inventoryStream()} {
		if err := s.ensureStream(cfg); err != nil {
			return err
		}
	}
	return nil
}

func (s *StreamConfig) ensureStream(cfg *nats.StreamConfig) error {
	info, err := s.js.StreamInfo(cfg.Name)

	if errors.Is(err, nats.ErrStreamNotFound) {
		s.logger.WithFields(logger.Fields{
			"stream":   cfg.Name,
			"subjects": cfg.Subjects,
		}).Info("Creating JetStream stream")

		if _, err := s.js.AddStream(cfg); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", cfg.Name, err)
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get stream info for %s: %w", cfg.Name, err)
	}

	s.logger.WithFields(logger.Fields{
		"stream":   info.Config.Name,
		"messages": info.State.Msgs,
		"bytes":    info.State.Bytes,
	}).Info("JetStream stream already exists")

	return nil
}

func stockMonitorConsumer() *nats.ConsumerConfig {
	return &nats.ConsumerConfig{
		Durable:       ConsumerName,
		AckPolicy:     nats.AckExplicitPolicy,
		AckWait:       AckWait,
		MaxDeliver:    MaxDeliveryAttempts,
		FilterSubject: domain.SubjectOrderEvents,
		BackOff:       generateExponentialBackoff(MaxDeliveryAttempts),
		Description:   "Stock monitor consumer for order events",
	}
}

// EnsureConsumer creates the durable stock-monitor consumer on the order stream
func (s *StreamConfig) EnsureConsumer() error {
	info, err := s.js.ConsumerInfo(OrderStreamName, ConsumerName)

	if errors.Is(err, nats.ErrConsumerNotFound) {
		s.logger.WithFields(logger.Fields{
			"stream":   OrderStreamName,
			"consumer": ConsumerName,
		}).Info("Creating JetStream consumer")

		if _, err := s.js.AddConsumer(OrderStreamName, stockMonitorConsumer()); err != nil {
			return fmt.Errorf("failed to create consumer: %w", err)
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}

	s.logger.WithFields(logger.Fields{
		"consumer":    info.Name,
		"pending":     info.NumPending,
		"redelivered": info.NumRedelivered,
		"ack_pending": info.NumAckPending,
	}).Info("JetStream consumer already exists")

	return nil
}
