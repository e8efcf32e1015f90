// Package payment talks to the payment provider. Only a sandbox PayShap
// provider exists; it never moves real money.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Provider intent and charge statuses
const (
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusSucceeded             = "succeeded"
	StatusFailed                = "failed"
)

// Webhook event types
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventDisputeCreated   = "charge.dispute.created"
)

// IntentRequest describes the payment to collect for an order
type IntentRequest struct {
	OrderID       uuid.UUID
	OrderNumber   string
	Amount        decimal.Decimal
	Currency      string
	CustomerEmail string
	CustomerName  string
}

// Intent is a payment intent created with the provider
type Intent struct {
	ID           string    `json:"id"`
	ClientSecret string    `json:"client_secret"`
	PaymentURL   string    `json:"payment_url"`
	AmountCents  int64     `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created"`
}

// Confirmation is the provider's answer to a confirm call
type Confirmation struct {
	IntentID   string `json:"id"`
	Status     string `json:"status"`
	ChargeID   string `json:"charge_id"`
	ReceiptURL string `json:"receipt_url"`
}

// Succeeded reports whether the payment went through
func (c *Confirmation) Succeeded() bool {
	return c.Status == StatusSucceeded
}

// Provider is a payment gateway
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	Confirm(ctx context.Context, intentID string) (*Confirmation, error)
	VerifySignature(payload []byte, signature string) bool
}

// WebhookObject is the payment intent a webhook event refers to
type WebhookObject struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// WebhookEvent is a provider callback
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object WebhookObject `json:"object"`
	} `json:"data"`
}

// OrderNumber returns the order number carried in the intent metadata, if any
func (e *WebhookEvent) OrderNumber() string {
	return e.Data.Object.Metadata["order_number"]
}

// ParseWebhookEvent decodes a webhook body
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("webhook event has no type")
	}
	return &event, nil
}

// ToCents converts an amount in rand to integer cents
func ToCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
