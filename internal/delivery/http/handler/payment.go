package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Pesokrava/autospares/internal/delivery/http/request"
	"github.com/Pesokrava/autospares/internal/delivery/http/response"
	"github.com/Pesokrava/autospares/internal/domain"
	gateway "github.com/Pesokrava/autospares/internal/payment"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/usecase/payment"
)

// SignatureHeader carries the hex HMAC-SHA256 of a webhook body
const SignatureHeader = "Payshap-Signature"

// PaymentService is the payment use case
type PaymentService interface {
	CreateIntent(ctx context.Context, orderID uuid.UUID) (*gateway.Intent, error)
	Confirm(ctx context.Context, intentID string) (*payment.Confirmed, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	service PaymentService
	logger  *logger.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  log,
	}
}

// IntentRequest names the order to pay
type IntentRequest struct {
	OrderID uuid.UUID `json:"order_id"`
}

// ConfirmRequest names the intent to confirm
type ConfirmRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

// CreateIntent handles POST /api/v1/payments/intents
// @Summary Create a payment intent for an order
// @Tags Payments
// @Accept json
// @Produce json
// @Param intent body IntentRequest true "Order"
// @Success 201 {object} gateway.Intent
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Order already paid or closed"
// @Router /payments/intents [post]
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req IntentRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OrderID == uuid.Nil {
		response.ValidationError(w, []domain.FieldError{{Field: "order_id", Message: "is required"}})
		return
	}

	intent, err := h.service.CreateIntent(r.Context(), req.OrderID)
	if err != nil {
		writeError(w, h.logger, "Order", err)
		return
	}
	response.Created(w, intent)
}

// Confirm handles POST /api/v1/payments/confirm
// @Summary Confirm a payment intent
// @Description A successful confirmation marks the order paid and confirms a pending order
// @Tags Payments
// @Accept json
// @Produce json
// @Param confirm body ConfirmRequest true "Intent"
// @Success 200 {object} payment.Confirmed
// @Failure 400 {object} map[string]any "Unknown intent"
// @Failure 404 {object} map[string]string "Order not found"
// @Router /payments/confirm [post]
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	confirmed, err := h.service.Confirm(r.Context(), req.PaymentIntentID)
	if err != nil {
		writeError(w, h.logger, "Order", err)
		return
	}
	response.Success(w, confirmed)
}

// Webhook handles POST /api/v1/payments/webhook
// @Summary Payment provider callback
// @Tags Payments
// @Accept json
// @Produce json
// @Param Payshap-Signature header string true "Hex HMAC-SHA256 of the body"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string "Invalid signature"
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := request.ReadBody(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get(SignatureHeader)); err != nil {
		writeError(w, h.logger, "Order", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"received": true})
}
