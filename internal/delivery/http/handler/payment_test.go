package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Pesokrava/autospares/internal/domain"
	gateway "github.com/Pesokrava/autospares/internal/payment"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/usecase/payment"
)

// MockPaymentService is a mock implementation of PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateIntent(ctx context.Context, orderID uuid.UUID) (*gateway.Intent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Intent), args.Error(1)
}

func (m *MockPaymentService) Confirm(ctx context.Context, intentID string) (*payment.Confirmed, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Confirmed), args.Error(1)
}

func (m *MockPaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.Called(ctx, payload, signature).Error(0)
}

func setupPaymentHandler() (*PaymentHandler, *MockPaymentService) {
	svc := new(MockPaymentService)
	return NewPaymentHandler(svc, logger.Nop()), svc
}

func TestPaymentHandler_CreateIntent(t *testing.T) {
	handler, svc := setupPaymentHandler()
	orderID := uuid.New()
	svc.On("CreateIntent", mock.Anything, orderID).Return(&gateway.Intent{ID: "pi_1", AmountCents: 125350}, nil)

	w := httptest.NewRecorder()
	handler.CreateIntent(w, newRequest(t, http.MethodPost, "/", IntentRequest{OrderID: orderID}, nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "pi_1", data["id"])
}

func TestPaymentHandler_CreateIntent_AlreadyPaid(t *testing.T) {
	handler, svc := setupPaymentHandler()
	orderID := uuid.New()
	svc.On("CreateIntent", mock.Anything, orderID).Return(nil, domain.ErrConflict)

	w := httptest.NewRecorder()
	handler.CreateIntent(w, newRequest(t, http.MethodPost, "/", IntentRequest{OrderID: orderID}, nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPaymentHandler_Confirm(t *testing.T) {
	handler, svc := setupPaymentHandler()
	svc.On("Confirm", mock.Anything, "pi_1").Return(&payment.Confirmed{
		Order:        &domain.Order{PaymentStatus: domain.PaymentPaid},
		Confirmation: &gateway.Confirmation{IntentID: "pi_1", Status: gateway.StatusSucceeded},
	}, nil)

	w := httptest.NewRecorder()
	handler.Confirm(w, newRequest(t, http.MethodPost, "/", ConfirmRequest{PaymentIntentID: "pi_1"}, nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPaymentHandler_Webhook_PassesRawBodyAndSignature(t *testing.T) {
	handler, svc := setupPaymentHandler()
	body := `{"type":"payment_intent.succeeded"}`
	svc.On("HandleWebhook", mock.Anything, []byte(body), "abc123").Return(nil)

	req := newRequest(t, http.MethodPost, "/", body, nil)
	req.Header.Set(SignatureHeader, "abc123")
	w := httptest.NewRecorder()
	handler.Webhook(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["received"])
	svc.AssertExpectations(t)
}

func TestPaymentHandler_Webhook_BadSignature(t *testing.T) {
	handler, svc := setupPaymentHandler()
	svc.On("HandleWebhook", mock.Anything, mock.Anything, "").Return(domain.ErrInvalidSignature)

	w := httptest.NewRecorder()
	handler.Webhook(w, newRequest(t, http.MethodPost, "/", `{}`, nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
