package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

const (
	// Events for the same product inside this window collapse into one check
	defaultDebounceWindow = 1 * time.Second

	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
)

// Checker decides whether a product currently needs a stock alert
type Checker interface {
	Check(ctx context.Context, productID uuid.UUID) (*domain.StockAlert, error)
}

// AlertPublisher publishes encoded stock alerts
type AlertPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// StockMonitor watches order events and raises low-stock alerts for the products
// they touched
type StockMonitor struct {
	checker   Checker
	publisher AlertPublisher
	logger    *logger.Logger
	debounce  time.Duration

	mu         sync.Mutex
	pending    map[uuid.UUID]*pendingCheck
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

type pendingCheck struct {
	timestamp time.Time
	timer     *time.Timer
}

// NewStockMonitor creates a new stock monitor
func NewStockMonitor(checker Checker, publisher AlertPublisher, log *logger.Logger) *StockMonitor {
	ctx, cancel := context.WithCancel(context.Background())

	return &StockMonitor{
		checker:    checker,
		publisher:  publisher,
		logger:     log,
		debounce:   defaultDebounceWindow,
		pending:    make(map[uuid.UUID]*pendingCheck),
		shutdownCh: make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// HandleEvent schedules stock checks for the products of an order event.
// Only events that can lower stock are of interest.
func (m *StockMonitor) HandleEvent(data []byte) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		m.logger.Error("Failed to unmarshal order event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.Type != domain.EventOrderCreated {
		m.logger.WithFields(logger.Fields{
			"type":         event.Type,
			"order_number": event.OrderNumber,
		}).Debug("Ignoring order event")
		return nil
	}

	m.logger.WithFields(logger.Fields{
		"order_number": event.OrderNumber,
		"items":        len(event.Items),
	}).Info("Received order event")

	for _, item := range event.Items {
		m.schedule(item.ProductID, event.Timestamp)
	}
	return nil
}

func (m *StockMonitor) schedule(productID uuid.UUID, timestamp time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.shutdownCh:
		return
	default:
	}

	existing, found := m.pending[productID]
	if found {
		// A check already scheduled after a newer event covers this one too.
		if timestamp.Before(existing.timestamp) {
			return
		}
		// A timer that already fired owns its wg slot; only a stopped one hands it over.
		if !existing.timer.Stop() {
			m.wg.Add(1)
		}
	} else {
		m.wg.Add(1)
	}

	check := &pendingCheck{timestamp: timestamp}
	check.timer = time.AfterFunc(m.debounce, func() {
		m.process(productID, check)
	})
	m.pending[productID] = check
}

func (m *StockMonitor) process(productID uuid.UUID, check *pendingCheck) {
	defer m.wg.Done()

	m.mu.Lock()
	if m.pending[productID] == check {
		delete(m.pending, productID)
	}
	m.mu.Unlock()

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			m.logger.WithFields(logger.Fields{
				"product_id": productID.String(),
				"attempt":    attempt + 1,
				"backoff_ms": backoff.Milliseconds(),
			}).Warn("Retrying stock check")

			select {
			case <-time.After(backoff):
			case <-m.ctx.Done():
				return
			}
			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(m.ctx, 5*time.Second)
		lastErr = m.checkAndAlert(ctx, productID)
		cancel()

		if lastErr == nil {
			return
		}
	}

	m.logger.WithFields(logger.Fields{
		"product_id":  productID.String(),
		"max_retries": maxRetries,
	}).Error("Stock check failed after all retries", lastErr)
}

func (m *StockMonitor) checkAndAlert(ctx context.Context, productID uuid.UUID) error {
	alert, err := m.checker.Check(ctx, productID)
	if err != nil {
		return err
	}
	if alert == nil {
		return nil
	}

	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode stock alert: %w", err)
	}
	if err := m.publisher.Publish(ctx, domain.SubjectInventoryAlerts, data); err != nil {
		return err
	}

	m.logger.WithFields(logger.Fields{
		"product_code": alert.ProductCode,
		"type":         alert.Type,
		"stock":        alert.StockQuantity,
	}).Info("Stock alert published")
	return nil
}

// Shutdown stops pending checks and waits for in-flight ones
func (m *StockMonitor) Shutdown(ctx context.Context) error {
	m.logger.Info("Shutting down stock monitor...")

	m.mu.Lock()
	close(m.shutdownCh)
	m.cancel()
	cancelled := 0
	for id, p := range m.pending {
		if p.timer.Stop() {
			m.wg.Done()
			cancelled++
		}
		delete(m.pending, id)
	}
	m.mu.Unlock()

	m.logger.WithFields(logger.Fields{"cancelled_checks": cancelled}).Info("Cancelled pending checks")

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		m.logger.Warn("Shutdown timeout reached, forcing exit")
		return ctx.Err()
	}
}

// PendingCount returns the number of products waiting for a check
func (m *StockMonitor) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
