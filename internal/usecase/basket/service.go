// Package basket persists the per-session cart, wishlist and comparison and
// turns a cart into an order.
package basket

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	aggregate "github.com/Pesokrava/autospares/internal/basket"
	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/repository/cache"
	"github.com/Pesokrava/autospares/internal/usecase/order"
)

// Store holds serialized session documents
type Store interface {
	Load(ctx context.Context, sessionID, kind string) ([]byte, error)
	Save(ctx context.Context, sessionID, kind string, data []byte) error
	SaveAll(ctx context.Context, sessionID string, docs map[string][]byte) error
	Delete(ctx context.Context, sessionID, kind string) error
}

// Catalog resolves products added to a basket
type Catalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

// Checkout places an order
type Checkout interface {
	Checkout(ctx context.Context, req order.CheckoutRequest) (*domain.Order, error)
}

// Service handles session basket operations
type Service struct {
	store    Store
	catalog  Catalog
	checkout Checkout
	logger   *logger.Logger
}

// NewService creates a new basket service
func NewService(store Store, catalog Catalog, checkout Checkout, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		catalog:  catalog,
		checkout: checkout,
		logger:   log,
	}
}

// CartView is the cart as returned to clients
type CartView struct {
	Items     []aggregate.Line `json:"items"`
	Total     decimal.Decimal  `json:"total"`
	ItemCount int              `json:"item_count"`
}

// ListView is a wishlist or comparison as returned to clients
type ListView struct {
	Items   []aggregate.Item `json:"items"`
	Count   int              `json:"count"`
	OK      bool             `json:"ok"`
	Message string           `json:"message,omitempty"`
}

// CartCheckout carries what checkout needs beyond the cart contents
type CartCheckout struct {
	ShippingAddress domain.Address       `json:"shipping_address"`
	BillingAddress  *domain.Address      `json:"billing_address,omitempty"`
	PaymentMethod   domain.PaymentMethod `json:"payment_method"`
	CustomerNotes   string               `json:"customer_notes"`
}

func cartView(c *aggregate.Cart) *CartView {
	return &CartView{Items: c.Lines(), Total: c.Total(), ItemCount: c.ItemCount()}
}

func listView(items []aggregate.Item, result aggregate.Result) *ListView {
	return &ListView{Items: items, Count: len(items), OK: result.OK, Message: result.Message}
}

func itemFromProduct(p *domain.Product) aggregate.Item {
	return aggregate.Item{
		ProductID:   p.ID,
		Name:        p.Name,
		Image:       p.ImageURL,
		Price:       p.Price,
		ProductCode: p.ProductCode,
		SKU:         p.SKU,
	}
}

func requireSession(sessionID string) error {
	if sessionID == "" {
		return domain.NewValidationError(domain.FieldError{Field: "X-Session-ID", Message: "is required"})
	}
	return nil
}

// load returns the stored document or nil when the session has none.
// Unreadable documents are discarded.
func (s *Service) load(ctx context.Context, sessionID, kind string) ([]byte, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	data, err := s.store.Load(ctx, sessionID, kind)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("Failed to load session "+kind, err)
		return nil, err
	}
	return data, nil
}

func (s *Service) save(ctx context.Context, sessionID, kind string, data []byte) error {
	if err := s.store.Save(ctx, sessionID, kind, data); err != nil {
		s.logger.Error("Failed to save session "+kind, err)
		return err
	}
	return nil
}

func (s *Service) loadCart(ctx context.Context, sessionID string) (*aggregate.Cart, error) {
	data, err := s.load(ctx, sessionID, cache.KindCart)
	if err != nil || data == nil {
		return aggregate.NewCart(), err
	}
	c, err := aggregate.UnmarshalCart(data)
	if err != nil {
		s.logger.Warnf("Discarding unreadable cart for session %s: %v", sessionID, err)
		return aggregate.NewCart(), nil
	}
	return c, nil
}

func (s *Service) saveCart(ctx context.Context, sessionID string, c *aggregate.Cart) error {
	data, err := aggregate.MarshalCart(c)
	if err != nil {
		return err
	}
	return s.save(ctx, sessionID, cache.KindCart, data)
}

func (s *Service) saveItems(ctx context.Context, sessionID, kind string, items []aggregate.Item) error {
	data, err := aggregate.MarshalItems(items)
	if err != nil {
		return err
	}
	return s.save(ctx, sessionID, kind, data)
}

func (s *Service) loadWishlist(ctx context.Context, sessionID string) (*aggregate.Wishlist, error) {
	data, err := s.load(ctx, sessionID, cache.KindWishlist)
	if err != nil || data == nil {
		return aggregate.NewWishlist(), err
	}
	w, err := aggregate.UnmarshalWishlist(data)
	if err != nil {
		s.logger.Warnf("Discarding unreadable wishlist for session %s: %v", sessionID, err)
		return aggregate.NewWishlist(), nil
	}
	return w, nil
}

func (s *Service) loadComparison(ctx context.Context, sessionID string) (*aggregate.Comparison, error) {
	data, err := s.load(ctx, sessionID, cache.KindComparison)
	if err != nil || data == nil {
		return aggregate.NewComparison(), err
	}
	c, err := aggregate.UnmarshalComparison(data)
	if err != nil {
		s.logger.Warnf("Discarding unreadable comparison for session %s: %v", sessionID, err)
		return aggregate.NewComparison(), nil
	}
	return c, nil
}

// lookup resolves a product that may be added to a basket
func (s *Service) lookup(ctx context.Context, productID uuid.UUID) (aggregate.Item, error) {
	p, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return aggregate.Item{}, err
	}
	if !p.IsActive {
		return aggregate.Item{}, &domain.UnavailableError{ProductID: p.ID, Name: p.Name}
	}
	return itemFromProduct(p), nil
}

// GetCart returns the session cart
func (s *Service) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cartView(c), nil
}

// AddToCart adds one unit of a product to the cart
func (s *Service) AddToCart(ctx context.Context, sessionID string, productID uuid.UUID) (*CartView, error) {
	c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	item, err := s.lookup(ctx, productID)
	if err != nil {
		return nil, err
	}

	c.AddItem(item)
	if err := s.saveCart(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return cartView(c), nil
}

// UpdateCartItem sets a line quantity; zero or less removes the line
func (s *Service) UpdateCartItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*CartView, error) {
	c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !c.UpdateQuantity(productID, quantity) {
		return nil, domain.ErrNotFound
	}
	if err := s.saveCart(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return cartView(c), nil
}

// RemoveCartItem drops a line from the cart
func (s *Service) RemoveCartItem(ctx context.Context, sessionID string, productID uuid.UUID) (*CartView, error) {
	c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !c.RemoveItem(productID) {
		return cartView(c), nil
	}
	if err := s.saveCart(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return cartView(c), nil
}

// ClearCart empties the cart
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, sessionID, cache.KindCart); err != nil {
		s.logger.Error("Failed to clear cart", err)
		return err
	}
	return nil
}

// CheckoutCart places an order for the cart contents and clears the cart.
// The cart is kept when checkout fails.
func (s *Service) CheckoutCart(ctx context.Context, sessionID string, userID *uuid.UUID, req CartCheckout) (*domain.Order, error) {
	c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, domain.NewValidationError(domain.FieldError{Field: "items", Message: "cart is empty"})
	}

	items := make([]order.CheckoutItem, 0, len(c.Lines()))
	for _, l := range c.Lines() {
		items = append(items, order.CheckoutItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	placed, err := s.checkout.Checkout(ctx, order.CheckoutRequest{
		UserID:          userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		CustomerNotes:   req.CustomerNotes,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, sessionID, cache.KindCart); err != nil {
		s.logger.Warnf("Order %s placed but cart for session %s was not cleared: %v", placed.OrderNumber, sessionID, err)
	}
	return placed, nil
}

// GetWishlist returns the session wishlist
func (s *Service) GetWishlist(ctx context.Context, sessionID string) (*ListView, error) {
	w, err := s.loadWishlist(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return listView(w.Items(), aggregate.Result{OK: true}), nil
}

// AddToWishlist saves a product to the wishlist
func (s *Service) AddToWishlist(ctx context.Context, sessionID string, productID uuid.UUID) (*ListView, error) {
	w, err := s.loadWishlist(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	item, err := s.lookup(ctx, productID)
	if err != nil {
		return nil, err
	}

	result := w.Add(item)
	if result.OK {
		if err := s.saveItems(ctx, sessionID, cache.KindWishlist, w.Items()); err != nil {
			return nil, err
		}
	}
	return listView(w.Items(), result), nil
}

// RemoveFromWishlist drops a product from the wishlist
func (s *Service) RemoveFromWishlist(ctx context.Context, sessionID string, productID uuid.UUID) (*ListView, error) {
	w, err := s.loadWishlist(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := w.Remove(productID)
	if err := s.saveItems(ctx, sessionID, cache.KindWishlist, w.Items()); err != nil {
		return nil, err
	}
	return listView(w.Items(), result), nil
}

// MoveToCart moves a wishlist product into the cart. Both documents are
// written together, and only when the product was in the wishlist.
func (s *Service) MoveToCart(ctx context.Context, sessionID string, productID uuid.UUID) (*ListView, *CartView, error) {
	w, err := s.loadWishlist(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	result := w.MoveToCart(productID, c)
	if !result.OK {
		return listView(w.Items(), result), cartView(c), nil
	}

	cartData, err := aggregate.MarshalCart(c)
	if err != nil {
		return nil, nil, err
	}
	wishlistData, err := aggregate.MarshalItems(w.Items())
	if err != nil {
		return nil, nil, err
	}
	if err := s.store.SaveAll(ctx, sessionID, map[string][]byte{
		cache.KindCart:     cartData,
		cache.KindWishlist: wishlistData,
	}); err != nil {
		s.logger.Error("Failed to move wishlist item to cart", err)
		return nil, nil, err
	}
	return listView(w.Items(), result), cartView(c), nil
}

// ClearWishlist empties the wishlist
func (s *Service) ClearWishlist(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, sessionID, cache.KindWishlist); err != nil {
		s.logger.Error("Failed to clear wishlist", err)
		return err
	}
	return nil
}

// GetComparison returns the session comparison
func (s *Service) GetComparison(ctx context.Context, sessionID string) (*ListView, error) {
	c, err := s.loadComparison(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return listView(c.Items(), aggregate.Result{OK: true}), nil
}

// AddToComparison includes a product in the comparison
func (s *Service) AddToComparison(ctx context.Context, sessionID string, productID uuid.UUID) (*ListView, error) {
	c, err := s.loadComparison(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	item, err := s.lookup(ctx, productID)
	if err != nil {
		return nil, err
	}

	result := c.Add(item)
	if result.OK {
		if err := s.saveItems(ctx, sessionID, cache.KindComparison, c.Items()); err != nil {
			return nil, err
		}
	}
	return listView(c.Items(), result), nil
}

// RemoveFromComparison drops a product from the comparison
func (s *Service) RemoveFromComparison(ctx context.Context, sessionID string, productID uuid.UUID) (*ListView, error) {
	c, err := s.loadComparison(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := c.Remove(productID)
	if err := s.saveItems(ctx, sessionID, cache.KindComparison, c.Items()); err != nil {
		return nil, err
	}
	return listView(c.Items(), result), nil
}

// ClearComparison empties the comparison
func (s *Service) ClearComparison(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, sessionID, cache.KindComparison); err != nil {
		s.logger.Error("Failed to clear comparison", err)
		return err
	}
	return nil
}
