package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Pesokrava/autospares/internal/delivery/http/request"
	"github.com/Pesokrava/autospares/internal/delivery/http/response"
	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/usecase/order"
)

// OrderService is the order use case behind the order endpoints
type OrderService interface {
	Checkout(ctx context.Context, req order.CheckoutRequest) (*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter, limit, offset int) ([]*domain.Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, update order.StatusUpdate, actorID *uuid.UUID) (*domain.Order, error)
}

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	service OrderService
	logger  *logger.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /api/v1/orders
// @Summary Place an order
// @Description Validates stock, prices the order and assigns its number in one transaction
// @Tags Orders
// @Accept json
// @Produce json
// @Param X-User-ID header string false "Customer ID (UUID)"
// @Param order body order.CheckoutRequest true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 422 {object} map[string]string "Insufficient stock or product unavailable"
// @Failure 503 {object} map[string]string "Temporary failure, please retry"
// @Router /orders [post]
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := request.GetOptionalUUIDHeader(r, request.HeaderUserID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid X-User-ID header")
		return
	}

	var req order.CheckoutRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = userID

	placed, err := h.service.Checkout(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}

	response.Created(w, placed)
}

// ListMine handles GET /api/v1/orders
// @Summary List the caller's orders
// @Tags Orders
// @Produce json
// @Param X-User-ID header string true "Customer ID (UUID)"
// @Param status query string false "Order status"
// @Param limit query int false "Number of items per page (max 100)" default(20)
// @Param offset query int false "Number of items to skip" default(0)
// @Success 200 {object} map[string]any "Paginated list of orders"
// @Failure 400 {object} map[string]string "Missing or invalid X-User-ID"
// @Router /orders [get]
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := request.GetOptionalUUIDHeader(r, request.HeaderUserID)
	if err != nil || userID == nil {
		response.Error(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	h.list(w, r, domain.OrderFilter{
		UserID: userID,
		Status: domain.OrderStatus(r.URL.Query().Get("status")),
	})
}

// ListAll handles GET /api/v1/admin/orders
// @Summary List all orders
// @Tags Admin
// @Produce json
// @Param status query string false "Order status"
// @Param payment_status query string false "Payment status"
// @Param limit query int false "Number of items per page (max 100)" default(20)
// @Param offset query int false "Number of items to skip" default(0)
// @Success 200 {object} map[string]any "Paginated list of orders"
// @Router /admin/orders [get]
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.OrderFilter{Status: domain.OrderStatus(q.Get("status"))}

	if raw := q.Get("payment_status"); raw != "" {
		ps, ok := domain.ParsePaymentStatus(raw)
		if !ok {
			response.ValidationError(w, []domain.FieldError{{Field: "payment_status", Message: "unknown payment status"}})
			return
		}
		filter.PaymentStatus = ps
	}

	h.list(w, r, filter)
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request, filter domain.OrderFilter) {
	limit, offset := request.GetPaginationParams(r)

	orders, total, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		writeError(w, h.logger, "Order", err)
		return
	}

	response.Paginated(w, orders, total, limit, offset)
}

// GetByID handles GET /api/v1/orders/:id
// @Summary Get an order by ID
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string "Invalid order ID"
// @Failure 404 {object} map[string]string "Order not found"
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	o, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, "Order", err)
		return
	}

	response.Success(w, o)
}

// GetByNumber handles GET /api/v1/orders/number/:number
// @Summary Get an order by its order number
// @Tags Orders
// @Produce json
// @Param number path string true "Order number, e.g. MSA2508150001"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string "Order not found"
// @Router /orders/number/{number} [get]
func (h *OrderHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, h.logger, "Order", err)
		return
	}

	response.Success(w, o)
}

// UpdateStatus handles PUT /api/v1/admin/orders/:id/status
// @Summary Change an order's status
// @Description Cancelling restores stock for every item in the same transaction
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param X-Actor-ID header string false "Admin user ID (UUID)"
// @Param update body order.StatusUpdate true "Status change"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	actorID, err := request.GetOptionalUUIDHeader(r, request.HeaderActorID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid X-Actor-ID header")
		return
	}

	var update order.StatusUpdate
	if err := request.DecodeJSON(r, &update); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, update, actorID)
	if err != nil {
		writeError(w, h.logger, "Order", err)
		return
	}

	response.Success(w, updated)
}
