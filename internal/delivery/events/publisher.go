package events

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/autospares/internal/config"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

// Publisher publishes events to NATS JetStream
type Publisher struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *logger.Logger
}

// NewPublisher connects to NATS and opens a JetStream context
func NewPublisher(cfg config.NATSConfig, log *logger.Logger) (*Publisher, error) {
	nc, err := nats.Connect(cfg.URL, nats.Name("autospares-publisher"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	log.WithFields(logger.Fields{"url": cfg.URL}).Info("Connected to NATS JetStream")

	return &Publisher{
		nc:     nc,
		js:     js,
		logger: log,
	}, nil
}

// JetStream exposes the context so callers can provision streams on the same connection
func (p *Publisher) JetStream() nats.JetStreamContext {
	return p.js
}

// Publish stores data on subject and waits for the stream acknowledgment
func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) error {
	ack, err := p.js.Publish(subject, data, nats.Context(ctx))
	if err != nil {
		p.logger.WithFields(logger.Fields{"subject": subject}).Error("Failed to publish message to JetStream", err)
		return fmt.Errorf("failed to publish to JetStream: %w", err)
	}

	p.logger.WithFields(logger.Fields{
		"subject":  subject,
		"stream":   ack.Stream,
		"sequence": ack.Sequence,
	}).Debug("Published message to JetStream")

	return nil
}

// Close drains pending publishes and closes the connection
func (p *Publisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
	p.logger.Info("NATS publisher connection closed")
}
