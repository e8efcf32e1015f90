package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

const (
	payShapProductionURL = "https://api.payshap.io/v1"
	payShapSandboxURL    = "https://sandbox-api.payshap.io/v1"
)

// PayShap is a sandbox PayShap provider. Intents and confirmations are
// generated locally; webhook signatures are verified with HMAC-SHA256.
type PayShap struct {
	baseURL       string
	webhookSecret []byte
	logger        *logger.Logger
	now           func() time.Time
}

// NewPayShap creates the provider for the given environment ("sandbox" or "production")
func NewPayShap(environment, webhookSecret string, log *logger.Logger) *PayShap {
	baseURL := payShapSandboxURL
	if environment == "production" {
		baseURL = payShapProductionURL
	}
	return &PayShap{
		baseURL:       baseURL,
		webhookSecret: []byte(webhookSecret),
		logger:        log,
		now:           time.Now,
	}
}

// CreateIntent creates a payment intent for an order
func (p *PayShap) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("payment amount must be positive, got %s", req.Amount)
	}

	token := uuid.NewString()
	intent := &Intent{
		ID:           "pi_" + token,
		ClientSecret: "pi_" + token + "_secret_" + uuid.NewString()[:8],
		PaymentURL:   p.baseURL + "/checkout/" + token,
		AmountCents:  ToCents(req.Amount),
		Currency:     strings.ToUpper(req.Currency),
		Status:       StatusRequiresPaymentMethod,
		CreatedAt:    p.now().UTC(),
	}

	p.logger.WithFields(logger.Fields{
		"intent_id":    intent.ID,
		"order_number": req.OrderNumber,
		"amount_cents": intent.AmountCents,
	}).Info("PayShap payment intent created")

	return intent, nil
}

// Confirm confirms a payment intent. The sandbox always succeeds.
func (p *PayShap) Confirm(ctx context.Context, intentID string) (*Confirmation, error) {
	if !strings.HasPrefix(intentID, "pi_") {
		return nil, fmt.Errorf("unknown payment intent %q", intentID)
	}

	chargeID := "ch_" + uuid.NewString()
	confirmation := &Confirmation{
		IntentID:   intentID,
		Status:     StatusSucceeded,
		ChargeID:   chargeID,
		ReceiptURL: p.baseURL + "/receipts/" + chargeID,
	}

	p.logger.WithFields(logger.Fields{
		"intent_id": intentID,
		"charge_id": chargeID,
	}).Info("PayShap payment confirmed")

	return confirmation, nil
}

// VerifySignature checks a hex HMAC-SHA256 of the raw payload.
// Nothing verifies without a configured secret.
func (p *PayShap) VerifySignature(payload []byte, signature string) bool {
	if len(p.webhookSecret) == 0 || signature == "" {
		return false
	}
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	return hmac.Equal(got, Sign(p.webhookSecret, payload))
}

// Sign returns the HMAC-SHA256 of payload under secret
func Sign(secret, payload []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return mac.Sum(nil)
}
