package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Pesokrava/autospares/internal/delivery/http/request"
	"github.com/Pesokrava/autospares/internal/delivery/http/response"
	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/usecase/basket"
)

// BasketService is the session basket use case
type BasketService interface {
	GetCart(ctx context.Context, sessionID string) (*basket.CartView, error)
	AddToCart(ctx context.Context, sessionID string, productID uuid.UUID) (*basket.CartView, error)
	UpdateCartItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*basket.CartView, error)
	RemoveCartItem(ctx context.Context, sessionID string, productID uuid.UUID) (*basket.CartView, error)
	ClearCart(ctx context.Context, sessionID string) error
	CheckoutCart(ctx context.Context, sessionID string, userID *uuid.UUID, req basket.CartCheckout) (*domain.Order, error)

	GetWishlist(ctx context.Context, sessionID string) (*basket.ListView, error)
	AddToWishlist(ctx context.Context, sessionID string, productID uuid.UUID) (*basket.ListView, error)
	RemoveFromWishlist(ctx context.Context, sessionID string, productID uuid.UUID) (*basket.ListView, error)
	MoveToCart(ctx context.Context, sessionID string, productID uuid.UUID) (*basket.ListView, *basket.CartView, error)
	ClearWishlist(ctx context.Context, sessionID string) error

	GetComparison(ctx context.Context, sessionID string) (*basket.ListView, error)
	AddToComparison(ctx context.Context, sessionID string, productID uuid.UUID) (*basket.ListView, error)
	RemoveFromComparison(ctx context.Context, sessionID string, productID uuid.UUID) (*basket.ListView, error)
	ClearComparison(ctx context.Context, sessionID string) error
}

// BasketHandler serves the cart, wishlist and comparison of the X-Session-ID session
type BasketHandler struct {
	service BasketService
	logger  *logger.Logger
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(service BasketService, log *logger.Logger) *BasketHandler {
	return &BasketHandler{
		service: service,
		logger:  log,
	}
}

// AddItemRequest names the product to add
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

// QuantityRequest sets a cart line quantity; zero removes the line
type QuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// MoveToCartResponse is the state of both documents after a move
type MoveToCartResponse struct {
	Wishlist *basket.ListView `json:"wishlist"`
	Cart     *basket.CartView `json:"cart"`
}

// session extracts the session id, writing a 400 when it is missing
func (h *BasketHandler) session(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := request.SessionID(r)
	if sessionID == "" {
		response.Error(w, http.StatusBadRequest, "X-Session-ID header is required")
		return "", false
	}
	return sessionID, true
}

func (h *BasketHandler) productFromBody(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var req AddItemRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return uuid.Nil, false
	}
	if req.ProductID == uuid.Nil {
		response.ValidationError(w, []domain.FieldError{{Field: "product_id", Message: "is required"}})
		return uuid.Nil, false
	}
	return req.ProductID, true
}

func (h *BasketHandler) productFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := request.GetUUIDParam(r, "productId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return uuid.Nil, false
	}
	return id, true
}

// GetCart handles GET /api/v1/cart
// @Summary Get the session cart
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Success 200 {object} basket.CartView
// @Router /cart [get]
func (h *BasketHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetCart(r.Context(), sessionID)
	if err != nil {
		writeError(w, h.logger, "Cart", err)
		return
	}
	response.Success(w, view)
}

// AddToCart handles POST /api/v1/cart/items
// @Summary Add one unit of a product to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Param item body AddItemRequest true "Product"
// @Success 200 {object} basket.CartView
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 422 {object} map[string]string "Product unavailable"
// @Router /cart/items [post]
func (h *BasketHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID, ok := h.productFromBody(w, r)
	if !ok {
		return
	}

	view, err := h.service.AddToCart(r.Context(), sessionID, productID)
	if err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}
	response.Success(w, view)
}

// UpdateCartItem handles PUT /api/v1/cart/items/:productId
// @Summary Set a cart line quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Param productId path string true "Product ID (UUID)"
// @Param quantity body QuantityRequest true "Quantity; 0 removes the line"
// @Success 200 {object} basket.CartView
// @Failure 404 {object} map[string]string "Product not in cart"
// @Router /cart/items/{productId} [put]
func (h *BasketHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID, ok := h.productFromPath(w, r)
	if !ok {
		return
	}

	var req QuantityRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity == nil {
		response.ValidationError(w, []domain.FieldError{{Field: "quantity", Message: "is required"}})
		return
	}

	view, err := h.service.UpdateCartItem(r.Context(), sessionID, productID, *req.Quantity)
	if err != nil {
		writeError(w, h.logger, "Cart item", err)
		return
	}
	response.Success(w, view)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:productId
// @Summary Remove a cart line
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Param productId path string true "Product ID (UUID)"
// @Success 200 {object} basket.CartView
// @Router /cart/items/{productId} [delete]
func (h *BasketHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID, ok := h.productFromPath(w, r)
	if !ok {
		return
	}

	view, err := h.service.RemoveCartItem(r.Context(), sessionID, productID)
	if err != nil {
		writeError(w, h.logger, "Cart item", err)
		return
	}
	response.Success(w, view)
}

// ClearCart handles DELETE /api/v1/cart
// @Summary Empty the cart
// @Tags Cart
// @Param X-Session-ID header string true "Client session"
// @Success 204 "Cart cleared"
// @Router /cart [delete]
func (h *BasketHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearCart(r.Context(), sessionID); err != nil {
		writeError(w, h.logger, "Cart", err)
		return
	}
	response.NoContent(w)
}

// Checkout handles POST /api/v1/cart/checkout
// @Summary Place an order for the cart contents
// @Description The cart is cleared only when the order is placed
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Param X-User-ID header string false "Customer ID (UUID)"
// @Param checkout body basket.CartCheckout true "Addresses and payment method"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]any "Validation failed or empty cart"
// @Failure 422 {object} map[string]string "Insufficient stock or product unavailable"
// @Failure 503 {object} map[string]string "Temporary failure, please retry"
// @Router /cart/checkout [post]
func (h *BasketHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	userID, err := request.GetOptionalUUIDHeader(r, request.HeaderUserID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid X-User-ID header")
		return
	}

	var req basket.CartCheckout
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	placed, err := h.service.CheckoutCart(r.Context(), sessionID, userID, req)
	if err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}
	response.Created(w, placed)
}

// GetWishlist handles GET /api/v1/wishlist
// @Summary Get the session wishlist
// @Tags Wishlist
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Success 200 {object} basket.ListView
// @Router /wishlist [get]
func (h *BasketHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetWishlist(r.Context(), sessionID)
	if err != nil {
		writeError(w, h.logger, "Wishlist", err)
		return
	}
	response.Success(w, view)
}

// AddToWishlist handles POST /api/v1/wishlist/items
// @Summary Save a product to the wishlist
// @Description ok=false with a message when the product is already saved
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Param item body AddItemRequest true "Product"
// @Success 200 {object} basket.ListView
// @Router /wishlist/items [post]
func (h *BasketHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID, ok := h.productFromBody(w, r)
	if !ok {
		return
	}

	view, err := h.service.AddToWishlist(r.Context(), sessionID, productID)
	if err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}
	response.Success(w, view)
}

// RemoveFromWishlist handles DELETE /api/v1/wishlist/items/:productId
// @Summary Remove a product from the wishlist
// @Tags Wishlist
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Param productId path string true "Product ID (UUID)"
// @Success 200 {object} basket.ListView
// @Router /wishlist/items/{productId} [delete]
func (h *BasketHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID, ok := h.productFromPath(w, r)
	if !ok {
		return
	}

	view, err := h.service.RemoveFromWishlist(r.Context(), sessionID, productID)
	if err != nil {
		writeError(w, h.logger, "Wishlist", err)
		return
	}
	response.Success(w, view)
}

// MoveToCart handles POST /api/v1/wishlist/items/:productId/move-to-cart
// @Summary Move a wishlist product into the cart
// @Tags Wishlist
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Param productId path string true "Product ID (UUID)"
// @Success 200 {object} MoveToCartResponse
// @Router /wishlist/items/{productId}/move-to-cart [post]
func (h *BasketHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID, ok := h.productFromPath(w, r)
	if !ok {
		return
	}

	wishlist, cart, err := h.service.MoveToCart(r.Context(), sessionID, productID)
	if err != nil {
		writeError(w, h.logger, "Wishlist", err)
		return
	}
	response.Success(w, MoveToCartResponse{Wishlist: wishlist, Cart: cart})
}

// ClearWishlist handles DELETE /api/v1/wishlist
// @Summary Empty the wishlist
// @Tags Wishlist
// @Param X-Session-ID header string true "Client session"
// @Success 204 "Wishlist cleared"
// @Router /wishlist [delete]
func (h *BasketHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearWishlist(r.Context(), sessionID); err != nil {
		writeError(w, h.logger, "Wishlist", err)
		return
	}
	response.NoContent(w)
}

// GetComparison handles GET /api/v1/comparison
// @Summary Get the session comparison
// @Tags Comparison
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Success 200 {object} basket.ListView
// @Router /comparison [get]
func (h *BasketHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetComparison(r.Context(), sessionID)
	if err != nil {
		writeError(w, h.logger, "Comparison", err)
		return
	}
	response.Success(w, view)
}

// AddToComparison handles POST /api/v1/comparison/items
// @Summary Add a product to the comparison
// @Description ok=false with a message when the product is present or 4 products are compared
// @Tags Comparison
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Param item body AddItemRequest true "Product"
// @Success 200 {object} basket.ListView
// @Router /comparison/items [post]
func (h *BasketHandler) AddToComparison(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID, ok := h.productFromBody(w, r)
	if !ok {
		return
	}

	view, err := h.service.AddToComparison(r.Context(), sessionID, productID)
	if err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}
	response.Success(w, view)
}

// RemoveFromComparison handles DELETE /api/v1/comparison/items/:productId
// @Summary Remove a product from the comparison
// @Tags Comparison
// @Produce json
// @Param X-Session-ID header string true "Client session"
// @Param productId path string true "Product ID (UUID)"
// @Success 200 {object} basket.ListView
// @Router /comparison/items/{productId} [delete]
func (h *BasketHandler) RemoveFromComparison(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID, ok := h.productFromPath(w, r)
	if !ok {
		return
	}

	view, err := h.service.RemoveFromComparison(r.Context(), sessionID, productID)
	if err != nil {
		writeError(w, h.logger, "Comparison", err)
		return
	}
	response.Success(w, view)
}

// ClearComparison handles DELETE /api/v1/comparison
// @Summary Empty the comparison
// @Tags Comparison
// @Param X-Session-ID header string true "Client session"
// @Success 204 "Comparison cleared"
// @Router /comparison [delete]
func (h *BasketHandler) ClearComparison(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearComparison(r.Context(), sessionID); err != nil {
		writeError(w, h.logger, "Comparison", err)
		return
	}
	response.NoContent(w)
}
