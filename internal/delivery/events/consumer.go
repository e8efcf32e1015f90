package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/autospares/internal/config"
	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

// Handler processes one message payload
type Handler func(data []byte) error

// Consumer receives events over plain NATS subscriptions
type Consumer struct {
	nc     *nats.Conn
	logger *logger.Logger
	subs   []*nats.Subscription
}

// NewConsumer creates a new NATS consumer
func NewConsumer(cfg config.NATSConfig, log *logger.Logger) (*Consumer, error) {
	nc, err := nats.Connect(cfg.URL, nats.Name("autospares-consumer"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Infof("Connected to NATS at %s", cfg.URL)

	return &Consumer{
		nc:     nc,
		logger: log,
	}, nil
}

// Subscribe registers handler for subject. Handler errors are logged and dropped.
func (c *Consumer) Subscribe(subject string, handler Handler) error {
	sub, err := c.nc.Subscribe(subject, func(msg *nats.Msg) {
		c.logger.Debugf("Received message on subject %s", subject)

		if err := handler(msg.Data); err != nil {
			c.logger.Errorf(err, "Failed to handle message on subject %s", subject)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	c.subs = append(c.subs, sub)
	c.logger.Infof("Subscribed to NATS subject: %s", subject)
	return nil
}

// Close unsubscribes everything and closes the NATS connection
func (c *Consumer) Close() {
	for _, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			c.logger.Warnf("Failed to unsubscribe from %s: %v", sub.Subject, err)
		}
	}
	c.subs = nil
	if c.nc != nil {
		c.nc.Close()
		c.logger.Info("NATS consumer connection closed")
	}
}

// Puller drains the durable stock-monitor consumer in batches
type Puller struct {
	sub     *nats.Subscription
	logger  *logger.Logger
	batch   int
	maxWait time.Duration
}

// NewPuller binds a pull subscription to the durable consumer on the order stream
func NewPuller(js nats.JetStreamContext, log *logger.Logger) (*Puller, error) {
	sub, err := js.PullSubscribe(domain.SubjectOrderEvents, ConsumerName, nats.Bind(OrderStreamName, ConsumerName), nats.ManualAck())
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to JetStream consumer: %w", err)
	}

	log.WithFields(logger.Fields{
		"stream":   OrderStreamName,
		"consumer": ConsumerName,
	}).Info("Subscribed to JetStream consumer")

	return &Puller{
		sub:     sub,
		logger:  log,
		batch:   10,
		maxWait: 5 * time.Second,
	}, nil
}

// Run fetches until ctx is cancelled. A handler error NAKs the message so the
// server redelivers it with backoff; success ACKs it.
func (p *Puller) Run(ctx context.Context, handler Handler) {
	for ctx.Err() == nil {
		msgs, err := p.sub.Fetch(p.batch, nats.MaxWait(p.maxWait))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			p.logger.Error("Failed to fetch messages from JetStream", err)
			select {
			case <-time.After(p.maxWait):
			case <-ctx.Done():
			}
			continue
		}

		for _, msg := range msgs {
			if err := handler(msg.Data); err != nil {
				p.logger.Error("Failed to handle event", err)
				if nakErr := msg.Nak(); nakErr != nil {
					p.logger.Error("Failed to NAK message", nakErr)
				}
				continue
			}
			if ackErr := msg.Ack(); ackErr != nil {
				p.logger.Error("Failed to ACK message", ackErr)
			}
		}
	}
}

// Close drops the pull subscription; the durable consumer stays on the server
func (p *Puller) Close() {
	if err := p.sub.Unsubscribe(); err != nil {
		p.logger.Error("Failed to unsubscribe from JetStream", err)
	}
}

type envelope struct {
	Type        string `json:"type"`
	OrderNumber string `json:"order_number,omitempty"`
	Status      string `json:"status,omitempty"`
	ProductCode string `json:"product_code,omitempty"`
}

// LoggingHandler logs the type and key of every order event or stock alert
func LoggingHandler(log *logger.Logger) Handler {
	return func(data []byte) error {
		var e envelope
		if err := json.Unmarshal(data, &e); err != nil {
			log.Error("Failed to unmarshal event", err)
			return err
		}
		if e.Type == "" {
			return fmt.Errorf("event without type")
		}

		fields := logger.Fields{"type": e.Type}
		if e.OrderNumber != "" {
			fields["order_number"] = e.OrderNumber
			fields["status"] = e.Status
		}
		if e.ProductCode != "" {
			fields["product_code"] = e.ProductCode
		}
		log.WithFields(fields).Info("Received event")
		return nil
	}
}
