package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Pesokrava/autospares/internal/domain"
	gateway "github.com/Pesokrava/autospares/internal/payment"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/usecase/order"
)

// Orders is the part of the order service payments drive
type Orders interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	AttachPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) (*domain.Order, error)
	RecordPayment(ctx context.Context, lookup order.PaymentLookup, result domain.PaymentResult) (*domain.Order, error)
}

// Service connects orders to the payment provider
type Service struct {
	provider gateway.Provider
	orders   Orders
	currency string
	logger   *logger.Logger
}

// NewService creates a new payment service
func NewService(provider gateway.Provider, orders Orders, currency string, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		orders:   orders,
		currency: currency,
		logger:   log,
	}
}

// Confirmed is the result of confirming an intent
type Confirmed struct {
	Order        *domain.Order         `json:"order"`
	Confirmation *gateway.Confirmation `json:"confirmation"`
}

// CreateIntent opens a provider intent for the order total and stores it on the order
func (s *Service) CreateIntent(ctx context.Context, orderID uuid.UUID) (*gateway.Intent, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Payable(o); err != nil {
		return nil, err
	}

	intent, err := s.provider.CreateIntent(ctx, gateway.IntentRequest{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Amount:        o.Total,
		Currency:      s.currency,
		CustomerEmail: o.ShippingAddress.Email,
		CustomerName:  strings.TrimSpace(o.ShippingAddress.FirstName + " " + o.ShippingAddress.LastName),
	})
	if err != nil {
		s.logger.Error("Failed to create payment intent", err)
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	if _, err := s.orders.AttachPaymentIntent(ctx, o.ID, intent.ID); err != nil {
		return nil, err
	}

	s.logger.WithFields(logger.Fields{
		"order_number": o.OrderNumber,
		"intent_id":    intent.ID,
	}).Info("Payment intent created")

	return intent, nil
}

// Confirm asks the provider to confirm an intent and records the outcome
func (s *Service) Confirm(ctx context.Context, intentID string) (*Confirmed, error) {
	if intentID == "" {
		return nil, domain.NewValidationError(domain.FieldError{Field: "payment_intent_id", Message: "is required"})
	}

	confirmation, err := s.provider.Confirm(ctx, intentID)
	if err != nil {
		s.logger.Warnf("Payment confirmation failed for %s: %v", intentID, err)
		return nil, fmt.Errorf("confirm payment: %v: %w", err, domain.ErrInvalidInput)
	}

	o, err := s.orders.RecordPayment(ctx, order.PaymentLookup{IntentID: intentID}, domain.PaymentResult{
		Succeeded: confirmation.Succeeded(),
		Reference: confirmation.ChargeID,
	})
	if err != nil {
		return nil, err
	}

	return &Confirmed{Order: o, Confirmation: confirmation}, nil
}

// HandleWebhook verifies and applies a provider callback. Unknown event types
// are acknowledged and ignored.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if !s.provider.VerifySignature(payload, signature) {
		s.logger.Warn("Rejected payment webhook with invalid signature")
		return domain.ErrInvalidSignature
	}

	event, err := gateway.ParseWebhookEvent(payload)
	if err != nil {
		return domain.NewValidationError(domain.FieldError{Field: "body", Message: err.Error()})
	}

	lookup := order.PaymentLookup{IntentID: event.Data.Object.ID, OrderNumber: event.OrderNumber()}
	log := s.logger.WithFields(logger.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"intent_id":  lookup.IntentID,
	})

	var result domain.PaymentResult
	switch event.Type {
	case gateway.EventPaymentSucceeded:
		result = domain.PaymentResult{Succeeded: true}
	case gateway.EventPaymentFailed:
		result = domain.PaymentResult{Succeeded: false}
	case gateway.EventDisputeCreated:
		log.Warn("Payment dispute opened")
		return nil
	default:
		log.Debug("Ignoring payment webhook event")
		return nil
	}

	if _, err := s.orders.RecordPayment(ctx, lookup, result); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn("Payment webhook for unknown order")
		}
		return err
	}

	log.Info("Payment webhook applied")
	return nil
}
