package basket

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/repository/cache"
	"github.com/Pesokrava/autospares/internal/usecase/order"
)

type memoryStore struct {
	docs    map[string][]byte
	saveErr error
	// failKind makes every write touching that document kind fail
	failKind string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[string][]byte)}
}

func (m *memoryStore) Load(ctx context.Context, sessionID, kind string) ([]byte, error) {
	data, ok := m.docs[sessionID+":"+kind]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (m *memoryStore) Save(ctx context.Context, sessionID, kind string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if kind == m.failKind {
		return errors.New("redis down")
	}
	m.docs[sessionID+":"+kind] = data
	return nil
}

func (m *memoryStore) SaveAll(ctx context.Context, sessionID string, docs map[string][]byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for kind := range docs {
		if kind == m.failKind {
			return errors.New("redis down")
		}
	}
	for kind, data := range docs {
		m.docs[sessionID+":"+kind] = data
	}
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, sessionID, kind string) error {
	delete(m.docs, sessionID+":"+kind)
	return nil
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type MockCheckout struct {
	mock.Mock
}

func (m *MockCheckout) Checkout(ctx context.Context, req order.CheckoutRequest) (*domain.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

const session = "sess-1"

func setupService() (*Service, *memoryStore, *MockCatalog, *MockCheckout) {
	store := newMemoryStore()
	catalog := new(MockCatalog)
	checkout := new(MockCheckout)
	return NewService(store, catalog, checkout, logger.Nop()), store, catalog, checkout
}

func stocked(catalog *MockCatalog, name, price string) *domain.Product {
	p := &domain.Product{
		ID:          uuid.New(),
		ProductCode: "CODE-" + name,
		SKU:         "SKU-" + name,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsActive:    true,
	}
	catalog.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	return p
}

func TestService_AddToCart_PersistsAcrossCalls(t *testing.T) {
	svc, _, catalog, _ := setupService()
	pads := stocked(catalog, "pads", "850.00")
	filter := stocked(catalog, "filter", "120.50")
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, session, pads.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, session, pads.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, session, filter.ID)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, session)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, pads.ID, view.Items[0].ProductID)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 3, view.ItemCount)
	assert.Equal(t, "1820.50", view.Total.StringFixed(2))
}

func TestService_AddToCart_RejectsInactiveProduct(t *testing.T) {
	svc, store, catalog, _ := setupService()
	p := stocked(catalog, "pads", "850.00")
	p.IsActive = false

	_, err := svc.AddToCart(context.Background(), session, p.ID)

	assert.ErrorIs(t, err, domain.ErrProductUnavailable)
	assert.Empty(t, store.docs)
}

func TestService_AddToCart_UnknownProduct(t *testing.T) {
	svc, _, catalog, _ := setupService()
	id := uuid.New()
	catalog.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := svc.AddToCart(context.Background(), session, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_RequiresSession(t *testing.T) {
	svc, _, _, _ := setupService()

	_, err := svc.GetCart(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_UpdateCartItem(t *testing.T) {
	svc, _, catalog, _ := setupService()
	pads := stocked(catalog, "pads", "100.00")
	ctx := context.Background()
	_, err := svc.AddToCart(ctx, session, pads.ID)
	require.NoError(t, err)

	view, err := svc.UpdateCartItem(ctx, session, pads.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, view.ItemCount)

	_, err = svc.UpdateCartItem(ctx, session, uuid.New(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	view, err = svc.UpdateCartItem(ctx, session, pads.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

func TestService_RemoveAndClearCart(t *testing.T) {
	svc, store, catalog, _ := setupService()
	pads := stocked(catalog, "pads", "100.00")
	ctx := context.Background()
	_, err := svc.AddToCart(ctx, session, pads.ID)
	require.NoError(t, err)

	view, err := svc.RemoveCartItem(ctx, session, uuid.New())
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	require.NoError(t, svc.ClearCart(ctx, session))
	assert.NotContains(t, store.docs, session+":"+cache.KindCart)
}

func TestService_UnreadableCartStartsEmpty(t *testing.T) {
	svc, store, _, _ := setupService()
	store.docs[session+":"+cache.KindCart] = []byte("{not json")

	view, err := svc.GetCart(context.Background(), session)

	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestService_SaveFailure(t *testing.T) {
	svc, store, catalog, _ := setupService()
	pads := stocked(catalog, "pads", "100.00")
	store.saveErr = errors.New("redis down")

	_, err := svc.AddToCart(context.Background(), session, pads.ID)

	assert.EqualError(t, err, "redis down")
}

func TestService_Wishlist(t *testing.T) {
	svc, _, catalog, _ := setupService()
	pads := stocked(catalog, "pads", "850.00")
	ctx := context.Background()

	view, err := svc.AddToWishlist(ctx, session, pads.ID)
	require.NoError(t, err)
	assert.True(t, view.OK)
	assert.Equal(t, "Added to wishlist", view.Message)

	view, err = svc.AddToWishlist(ctx, session, pads.ID)
	require.NoError(t, err)
	assert.False(t, view.OK)
	assert.Equal(t, "Item already in wishlist", view.Message)
	assert.Equal(t, 1, view.Count)

	view, err = svc.RemoveFromWishlist(ctx, session, pads.ID)
	require.NoError(t, err)
	assert.True(t, view.OK)
	assert.Equal(t, 0, view.Count)

	view, err = svc.RemoveFromWishlist(ctx, session, pads.ID)
	require.NoError(t, err)
	assert.True(t, view.OK)
}

func TestService_MoveToCart(t *testing.T) {
	svc, _, catalog, _ := setupService()
	pads := stocked(catalog, "pads", "850.00")
	ctx := context.Background()
	_, err := svc.AddToWishlist(ctx, session, pads.ID)
	require.NoError(t, err)

	missing, cart, err := svc.MoveToCart(ctx, session, uuid.New())
	require.NoError(t, err)
	assert.False(t, missing.OK)
	assert.Equal(t, "Item not found", missing.Message)
	assert.Empty(t, cart.Items)

	moved, cart, err := svc.MoveToCart(ctx, session, pads.ID)
	require.NoError(t, err)
	assert.True(t, moved.OK)
	assert.Equal(t, 0, moved.Count)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, pads.ID, cart.Items[0].ProductID)

	wishlist, err := svc.GetWishlist(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 0, wishlist.Count)
	stored, err := svc.GetCart(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ItemCount)
}

func TestService_MoveToCart_FailedWriteKeepsBothDocuments(t *testing.T) {
	svc, store, catalog, _ := setupService()
	pads := stocked(catalog, "pads", "850.00")
	ctx := context.Background()
	_, err := svc.AddToWishlist(ctx, session, pads.ID)
	require.NoError(t, err)

	store.failKind = cache.KindWishlist
	_, _, err = svc.MoveToCart(ctx, session, pads.ID)
	assert.EqualError(t, err, "redis down")
	store.failKind = ""

	wishlist, err := svc.GetWishlist(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 1, wishlist.Count)
	cart, err := svc.GetCart(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestService_Comparison_Capacity(t *testing.T) {
	svc, _, catalog, _ := setupService()
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c", "d"} {
		view, err := svc.AddToComparison(ctx, session, stocked(catalog, name, "10.00").ID)
		require.NoError(t, err)
		require.True(t, view.OK)
	}

	view, err := svc.AddToComparison(ctx, session, stocked(catalog, "e", "10.00").ID)
	require.NoError(t, err)
	assert.False(t, view.OK)
	assert.Equal(t, "Maximum 4 items can be compared", view.Message)

	stored, err := svc.GetComparison(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Count)

	view, err = svc.RemoveFromComparison(ctx, session, stored.Items[0].ProductID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Count)

	require.NoError(t, svc.ClearComparison(ctx, session))
	stored, err = svc.GetComparison(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Count)
}

func TestService_CheckoutCart_ClearsCartOnSuccess(t *testing.T) {
	svc, store, catalog, checkout := setupService()
	pads := stocked(catalog, "pads", "850.00")
	ctx := context.Background()
	_, err := svc.AddToCart(ctx, session, pads.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, session, pads.ID)
	require.NoError(t, err)

	userID := uuid.New()
	placed := &domain.Order{OrderNumber: "MSA2508150001"}
	checkout.On("Checkout", mock.Anything, mock.MatchedBy(func(req order.CheckoutRequest) bool {
		return len(req.Items) == 1 &&
			req.Items[0].ProductID == pads.ID &&
			req.Items[0].Quantity == 2 &&
			req.UserID == &userID &&
			req.PaymentMethod == domain.MethodPayShap
	})).Return(placed, nil)

	got, err := svc.CheckoutCart(ctx, session, &userID, CartCheckout{PaymentMethod: domain.MethodPayShap})

	require.NoError(t, err)
	assert.Same(t, placed, got)
	assert.NotContains(t, store.docs, session+":"+cache.KindCart)
	checkout.AssertExpectations(t)
}

func TestService_CheckoutCart_KeepsCartOnFailure(t *testing.T) {
	svc, store, catalog, checkout := setupService()
	pads := stocked(catalog, "pads", "850.00")
	ctx := context.Background()
	_, err := svc.AddToCart(ctx, session, pads.ID)
	require.NoError(t, err)

	checkout.On("Checkout", mock.Anything, mock.Anything).
		Return(nil, &domain.StockError{ProductID: pads.ID, Name: "pads", Available: 0, Requested: 1})

	_, err = svc.CheckoutCart(ctx, session, nil, CartCheckout{PaymentMethod: domain.MethodPayShap})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, store.docs, session+":"+cache.KindCart)
}

func TestService_CheckoutCart_EmptyCart(t *testing.T) {
	svc, _, _, checkout := setupService()

	_, err := svc.CheckoutCart(context.Background(), session, nil, CartCheckout{})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Fields[0].Field)
	checkout.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything)
}
