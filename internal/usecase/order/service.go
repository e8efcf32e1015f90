package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/inventory"
	"github.com/Pesokrava/autospares/internal/numbering"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/pkg/validator"
	"github.com/Pesokrava/autospares/internal/pricing"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Cache is the part of the read cache that order changes make stale
type Cache interface {
	InvalidateProducts(ctx context.Context, ids ...uuid.UUID) error
	InvalidateDashboard(ctx context.Context) error
}

// Service runs checkout and the order lifecycle
type Service struct {
	repo      domain.OrderRepository
	ledger    *inventory.Ledger
	calc      *pricing.Calculator
	numbers   *numbering.Generator
	cache     Cache
	publisher EventPublisher
	logger    *logger.Logger
	now       func() time.Time
	inflight  sync.WaitGroup
}

// NewService creates a new order service
func NewService(
	repo domain.OrderRepository,
	ledger *inventory.Ledger,
	calc *pricing.Calculator,
	numbers *numbering.Generator,
	cache Cache,
	publisher EventPublisher,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		calc:      calc,
		numbers:   numbers,
		cache:     cache,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// CheckoutItem is one requested product line
type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gt=0"`
}

// CheckoutRequest is everything needed to place an order
type CheckoutRequest struct {
	UserID          *uuid.UUID           `json:"-"`
	Items           []CheckoutItem       `json:"items" validate:"required,min=1,dive"`
	ShippingAddress domain.Address       `json:"shipping_address"`
	BillingAddress  *domain.Address      `json:"billing_address,omitempty" validate:"omitempty"`
	PaymentMethod   domain.PaymentMethod `json:"payment_method" validate:"required,oneof=credit_card debit_card paypal bank_transfer cash_on_delivery payshap"`
	CustomerNotes   string               `json:"customer_notes" validate:"max=500"`
}

// StatusUpdate is an admin request to move an order along its lifecycle
type StatusUpdate struct {
	Status         domain.OrderStatus `json:"status" validate:"required"`
	TrackingNumber string             `json:"tracking_number" validate:"max=100"`
	Carrier        string             `json:"carrier" validate:"max=100"`
	Note           string             `json:"note" validate:"max=1000"`
}

// Checkout validates stock, prices the order, assigns its number, persists it
// as pending and decrements stock, all in one transaction.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*domain.Order, error) {
	if err := validator.Struct(req); err != nil {
		s.logger.Debugf("Checkout validation failed: %v", err)
		return nil, err
	}

	requested := make([]inventory.Line, 0, len(req.Items))
	for _, it := range req.Items {
		requested = append(requested, inventory.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	lines := inventory.MergeLines(requested)

	shipping := withDefaultCountry(req.ShippingAddress)
	billing := shipping
	if req.BillingAddress != nil {
		billing = withDefaultCountry(*req.BillingAddress)
	}

	var placed *domain.Order
	err := s.repo.WithinTx(ctx, func(tx domain.OrderTx) error {
		products, err := s.ledger.Reserve(ctx, tx, lines)
		if err != nil {
			return err
		}

		items := make(domain.OrderItems, 0, len(lines))
		priced := make([]pricing.Line, 0, len(lines))
		for _, line := range lines {
			p := products[line.ProductID]
			pl := pricing.Line{UnitPrice: p.Price, Quantity: line.Quantity}
			priced = append(priced, pl)
			items = append(items, domain.OrderItem{
				ProductID:   p.ID,
				Name:        p.Name,
				Price:       p.Price,
				Image:       p.ImageURL,
				ProductCode: p.ProductCode,
				SKU:         p.SKU,
				Quantity:    line.Quantity,
				Total:       pl.Total(),
			})
		}
		totals := s.calc.Compute(priced)

		now := s.now()
		seq, err := tx.NextOrderSequence(ctx, s.numbers.DayPrefix(now))
		if err != nil {
			return fmt.Errorf("next order sequence: %w", err)
		}
		number, err := s.numbers.Format(now, seq)
		if err != nil {
			return err
		}

		o := &domain.Order{
			OrderNumber:     number,
			UserID:          req.UserID,
			Items:           items,
			Subtotal:        totals.Subtotal,
			Tax:             totals.Tax,
			Shipping:        totals.Shipping,
			Discount:        totals.Discount,
			Total:           totals.Total,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentPending,
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: shipping,
			BillingAddress:  billing,
			CustomerNotes:   req.CustomerNotes,
			OrderDate:       now,
			StatusHistory: domain.StatusHistory{{
				Status:    domain.StatusPending,
				Timestamp: now,
				Note:      "Order created",
			}},
		}
		if err := tx.InsertOrder(ctx, o); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		if err := s.ledger.Decrement(ctx, tx, lines); err != nil {
			return err
		}

		placed = o
		return nil
	})
	if err != nil {
		s.logFailure("Checkout failed", err)
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	s.afterCommit(ctx, placed, ids...)
	s.publishEvent(domain.NewOrderEvent(domain.EventOrderCreated, placed, "", s.now()))

	s.logger.WithFields(logger.Fields{
		"order_id":     placed.ID,
		"order_number": placed.OrderNumber,
		"total":        placed.Total.StringFixed(domain.MoneyPlaces),
		"items":        len(placed.Items),
	}).Info("Order placed")

	return placed, nil
}

// UpdateStatus applies an admin status change under a row lock. Entering
// cancelled credits every item back to stock in the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, update StatusUpdate, actorID *uuid.UUID) (*domain.Order, error) {
	if err := validator.Struct(update); err != nil {
		return nil, err
	}

	var (
		updated *domain.Order
		outcome domain.StatusOutcome
	)
	err := s.repo.WithinTx(ctx, func(tx domain.OrderTx) error {
		o, err := tx.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}

		outcome, err = o.ApplyStatus(domain.StatusChange{
			Status:         update.Status,
			TrackingNumber: update.TrackingNumber,
			Carrier:        update.Carrier,
			Note:           update.Note,
			ActorID:        actorID,
		}, s.now())
		if err != nil {
			return err
		}

		if outcome.RestoreStock {
			if err := s.ledger.Restore(ctx, tx, o.Items); err != nil {
				return err
			}
		}

		if err := tx.UpdateOrder(ctx, o, outcome.Entry); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		s.logFailure("Order status update failed", err)
		return nil, err
	}

	var restored []uuid.UUID
	if outcome.RestoreStock {
		for _, it := range updated.Items {
			restored = append(restored, it.ProductID)
		}
	}
	s.afterCommit(ctx, updated, restored...)
	s.publishEvent(domain.NewOrderEvent(domain.EventOrderStatusChanged, updated, outcome.Previous, s.now()))

	s.logger.WithFields(logger.Fields{
		"order_number":   updated.OrderNumber,
		"from":           outcome.Previous,
		"to":             updated.Status,
		"stock_restored": outcome.RestoreStock,
	}).Info("Order status updated")

	return updated, nil
}

// PaymentLookup identifies the order a payment belongs to. The intent ID is
// tried first; the order number is the fallback.
type PaymentLookup struct {
	IntentID    string
	OrderNumber string
}

// RecordPayment applies a provider outcome to the matching order. Replays of
// an already applied outcome change nothing and publish nothing.
func (s *Service) RecordPayment(ctx context.Context, lookup PaymentLookup, result domain.PaymentResult) (*domain.Order, error) {
	var (
		updated *domain.Order
		outcome domain.PaymentOutcome
	)
	err := s.repo.WithinTx(ctx, func(tx domain.OrderTx) error {
		o, err := s.lockForPayment(ctx, tx, lookup)
		if err != nil {
			return err
		}

		outcome = o.ApplyPayment(result, s.now())
		updated = o
		if !outcome.Changed {
			return nil
		}

		var appended []domain.StatusHistoryEntry
		if outcome.Entry != nil {
			appended = append(appended, *outcome.Entry)
		}
		return tx.UpdateOrder(ctx, o, appended...)
	})
	if err != nil {
		s.logFailure("Recording payment failed", err)
		return nil, err
	}

	if outcome.Changed {
		s.afterCommit(ctx, updated)
		s.publishEvent(domain.NewOrderEvent(domain.EventOrderPaymentUpdated, updated, "", s.now()))

		s.logger.WithFields(logger.Fields{
			"order_number":   updated.OrderNumber,
			"payment_status": updated.PaymentStatus,
			"status":         updated.Status,
		}).Info("Payment recorded")
	}

	return updated, nil
}

func (s *Service) lockForPayment(ctx context.Context, tx domain.OrderTx, lookup PaymentLookup) (*domain.Order, error) {
	if lookup.IntentID != "" {
		o, err := tx.GetOrderByPaymentIntentForUpdate(ctx, lookup.IntentID)
		if err == nil || !errors.Is(err, domain.ErrNotFound) || lookup.OrderNumber == "" {
			return o, err
		}
	}
	if lookup.OrderNumber == "" {
		return nil, domain.ErrNotFound
	}
	return tx.GetOrderByNumberForUpdate(ctx, lookup.OrderNumber)
}

// AttachPaymentIntent stores the provider intent on an order that can still be paid
func (s *Service) AttachPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) (*domain.Order, error) {
	var updated *domain.Order
	err := s.repo.WithinTx(ctx, func(tx domain.OrderTx) error {
		o, err := tx.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := Payable(o); err != nil {
			return err
		}

		o.PaymentIntentID = &intentID
		if err := tx.UpdateOrder(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		s.logFailure("Attaching payment intent failed", err)
		return nil, err
	}
	return updated, nil
}

// Payable rejects orders that are already settled or closed
func Payable(o *domain.Order) error {
	if o.PaymentStatus == domain.PaymentPaid || o.PaymentStatus == domain.PaymentRefunded {
		return fmt.Errorf("order %s is already %s: %w", o.OrderNumber, o.PaymentStatus, domain.ErrConflict)
	}
	if o.Status == domain.StatusCancelled || o.Status == domain.StatusRefunded {
		return fmt.Errorf("order %s is %s: %w", o.OrderNumber, o.Status, domain.ErrConflict)
	}
	return nil
}

// GetByID retrieves an order by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logFailure("Failed to get order", err)
		return nil, err
	}
	return o, nil
}

// GetByNumber retrieves an order by its order number
func (s *Service) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	o, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		s.logFailure("Failed to get order", err)
		return nil, err
	}
	return o, nil
}

// List returns a newest-first page of orders matching the filter
func (s *Service) List(ctx context.Context, filter domain.OrderFilter, limit, offset int) ([]*domain.Order, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, domain.NewValidationError(domain.FieldError{Field: "status", Message: "unknown status"})
	}

	orders, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list orders", err)
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count orders", err)
		return nil, 0, err
	}

	return orders, total, nil
}

// Wait blocks until in-flight event publishes finish or ctx ends
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func withDefaultCountry(a domain.Address) domain.Address {
	if a.Country == "" {
		a.Country = domain.DefaultCountry
	}
	return a
}

func (s *Service) afterCommit(ctx context.Context, o *domain.Order, touched ...uuid.UUID) {
	if len(touched) > 0 {
		if err := s.cache.InvalidateProducts(ctx, touched...); err != nil {
			s.logger.Warnf("Failed to invalidate product cache after order %s: %v", o.OrderNumber, err)
		}
	}
	if err := s.cache.InvalidateDashboard(ctx); err != nil {
		s.logger.Warnf("Failed to invalidate dashboard cache: %v", err)
	}
}

// logFailure keeps business rejections out of the error log
func (s *Service) logFailure(msg string, err error) {
	var (
		verr *domain.ValidationError
		serr *domain.StockError
		uerr *domain.UnavailableError
		terr *domain.TransitionError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &serr), errors.As(err, &uerr), errors.As(err, &terr),
		errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrConflict):
		s.logger.Debugf("%s: %v", msg, err)
	case errors.Is(err, domain.ErrTransient):
		s.logger.Warnf("%s: %v", msg, err)
	default:
		s.logger.Error(msg, err)
	}
}
