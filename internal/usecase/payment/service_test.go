package payment

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/autospares/internal/domain"
	gateway "github.com/Pesokrava/autospares/internal/payment"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/usecase/order"
)

const webhookSecret = "whsec_test"

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrders) AttachPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) (*domain.Order, error) {
	args := m.Called(ctx, id, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrders) RecordPayment(ctx context.Context, lookup order.PaymentLookup, result domain.PaymentResult) (*domain.Order, error) {
	args := m.Called(ctx, lookup, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func setupService() (*Service, *MockOrders) {
	orders := new(MockOrders)
	provider := gateway.NewPayShap("sandbox", webhookSecret, logger.Nop())
	return NewService(provider, orders, "ZAR", logger.Nop()), orders
}

func pendingOrder() *domain.Order {
	return &domain.Order{
		ID:            uuid.New(),
		OrderNumber:   "MSA2508150001",
		Total:         decimal.RequireFromString("1253.50"),
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		ShippingAddress: domain.Address{
			FirstName: "Thandi",
			LastName:  "Mokoena",
			Email:     "thandi@example.com",
		},
	}
}

func sign(payload string) string {
	return hex.EncodeToString(gateway.Sign([]byte(webhookSecret), []byte(payload)))
}

func TestService_CreateIntent(t *testing.T) {
	svc, orders := setupService()
	o := pendingOrder()

	orders.On("GetByID", mock.Anything, o.ID).Return(o, nil)
	orders.On("AttachPaymentIntent", mock.Anything, o.ID, mock.AnythingOfType("string")).Return(o, nil)

	intent, err := svc.CreateIntent(context.Background(), o.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(125350), intent.AmountCents)
	assert.Equal(t, "ZAR", intent.Currency)
	orders.AssertCalled(t, "AttachPaymentIntent", mock.Anything, o.ID, intent.ID)
}

func TestService_CreateIntent_PaidOrder(t *testing.T) {
	svc, orders := setupService()
	o := pendingOrder()
	o.PaymentStatus = domain.PaymentPaid

	orders.On("GetByID", mock.Anything, o.ID).Return(o, nil)

	_, err := svc.CreateIntent(context.Background(), o.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
	orders.AssertNotCalled(t, "AttachPaymentIntent", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateIntent_UnknownOrder(t *testing.T) {
	svc, orders := setupService()
	id := uuid.New()
	orders.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := svc.CreateIntent(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Confirm(t *testing.T) {
	svc, orders := setupService()
	paid := pendingOrder()
	paid.PaymentStatus = domain.PaymentPaid
	paid.Status = domain.StatusConfirmed

	orders.On("RecordPayment", mock.Anything, order.PaymentLookup{IntentID: "pi_123"},
		mock.MatchedBy(func(r domain.PaymentResult) bool { return r.Succeeded && r.Reference != "" })).
		Return(paid, nil)

	got, err := svc.Confirm(context.Background(), "pi_123")

	require.NoError(t, err)
	assert.Same(t, paid, got.Order)
	assert.True(t, got.Confirmation.Succeeded())
}

func TestService_Confirm_UnknownIntent(t *testing.T) {
	svc, orders := setupService()

	_, err := svc.Confirm(context.Background(), "bogus")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	orders.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_HandleWebhook(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		records bool
		result  domain.PaymentResult
	}{
		{"succeeded", gateway.EventPaymentSucceeded, true, domain.PaymentResult{Succeeded: true}},
		{"failed", gateway.EventPaymentFailed, true, domain.PaymentResult{Succeeded: false}},
		{"dispute", gateway.EventDisputeCreated, false, domain.PaymentResult{}},
		{"unknown", "customer.created", false, domain.PaymentResult{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orders := setupService()
			payload := fmt.Sprintf(`{"id":"evt_1","type":%q,"data":{"object":{"id":"pi_1","metadata":{"order_number":"MSA2508150001"}}}}`, tt.event)
			lookup := order.PaymentLookup{IntentID: "pi_1", OrderNumber: "MSA2508150001"}
			if tt.records {
				orders.On("RecordPayment", mock.Anything, lookup, tt.result).Return(pendingOrder(), nil)
			}

			err := svc.HandleWebhook(context.Background(), []byte(payload), sign(payload))

			require.NoError(t, err)
			if tt.records {
				orders.AssertExpectations(t)
			} else {
				orders.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_HandleWebhook_BadSignature(t *testing.T) {
	svc, orders := setupService()
	payload := `{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`

	err := svc.HandleWebhook(context.Background(), []byte(payload), "deadbeef")

	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	orders.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_HandleWebhook_MalformedBody(t *testing.T) {
	svc, _ := setupService()
	payload := `{"id":"evt_1"}`

	err := svc.HandleWebhook(context.Background(), []byte(payload), sign(payload))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_HandleWebhook_UnknownOrder(t *testing.T) {
	svc, orders := setupService()
	payload := `{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_gone"}}}`
	orders.On("RecordPayment", mock.Anything, order.PaymentLookup{IntentID: "pi_gone"}, domain.PaymentResult{Succeeded: true}).
		Return(nil, domain.ErrNotFound)

	err := svc.HandleWebhook(context.Background(), []byte(payload), sign(payload))

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
