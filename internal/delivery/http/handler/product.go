package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/autospares/internal/delivery/http/request"
	"github.com/Pesokrava/autospares/internal/delivery/http/response"
	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

// ProductService is the catalog use case behind the product endpoints
type ProductService interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]*domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStock(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error)
	ListLowStock(ctx context.Context, limit int) ([]*domain.Product, error)
}

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service ProductService
	logger  *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service ProductService, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  log,
	}
}

// ProductRequest is the body for creating or updating a product. Prices may
// be numbers or display strings such as "R 1,250.50".
type ProductRequest struct {
	ProductCode       string          `json:"product_code"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Brand             string          `json:"brand"`
	Price             json.RawMessage `json:"price" swaggertype:"string"`
	OriginalPrice     json.RawMessage `json:"original_price,omitempty" swaggertype:"string"`
	ImageURL          string          `json:"image_url"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold *int            `json:"low_stock_threshold,omitempty"`
	IsActive          *bool           `json:"is_active,omitempty"`
	IsFeatured        bool            `json:"is_featured"`
	Version           int             `json:"version,omitempty"`
}

// StockRequest sets the absolute stock level of a product
type StockRequest struct {
	StockQuantity *int `json:"stock_quantity"`
}

func (req ProductRequest) toProduct() (*domain.Product, error) {
	price, err := domain.ParsePriceJSON(req.Price)
	if err != nil {
		return nil, domain.NewValidationError(domain.FieldError{Field: "price", Message: err.Error()})
	}

	var original *decimal.Decimal
	if len(req.OriginalPrice) > 0 && string(req.OriginalPrice) != "null" {
		op, err := domain.ParsePriceJSON(req.OriginalPrice)
		if err != nil {
			return nil, domain.NewValidationError(domain.FieldError{Field: "original_price", Message: err.Error()})
		}
		original = &op
	}

	threshold := domain.DefaultLowStockThreshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return &domain.Product{
		ProductCode:       req.ProductCode,
		SKU:               req.SKU,
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		Brand:             req.Brand,
		Price:             price,
		OriginalPrice:     original,
		ImageURL:          req.ImageURL,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: threshold,
		IsActive:          active,
		IsFeatured:        req.IsFeatured,
		Version:           req.Version,
	}, nil
}

// Create handles POST /api/v1/products
// @Summary Create a new product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product details"
// @Success 201 {object} domain.Product "Product created successfully"
// @Failure 400 {object} map[string]any "Invalid request body"
// @Failure 409 {object} map[string]string "Duplicate product code or SKU"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := req.toProduct()
	if err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}

	if err := h.service.Create(r.Context(), product); err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}

	response.Created(w, product)
}

// GetByID handles GET /api/v1/products/:id
// @Summary Get a product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} domain.Product "Product details"
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}

	response.Success(w, product)
}

// List handles GET /api/v1/products
// @Summary List products
// @Description Active products only unless include_inactive=true
// @Tags Products
// @Produce json
// @Param category query string false "Category"
// @Param brand query string false "Brand"
// @Param in_stock query bool false "Only products in (or out of) stock"
// @Param include_inactive query bool false "Include deactivated products"
// @Param limit query int false "Number of items per page (max 100)" default(20)
// @Param offset query int false "Number of items to skip" default(0)
// @Success 200 {object} map[string]any "Paginated list of products"
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := request.GetPaginationParams(r)
	q := r.URL.Query()

	filter := domain.ProductFilter{
		Category:   q.Get("category"),
		Brand:      q.Get("brand"),
		InStock:    request.GetBoolQuery(r, "in_stock"),
		ActiveOnly: true,
	}
	if all := request.GetBoolQuery(r, "include_inactive"); all != nil && *all {
		filter.ActiveOnly = false
	}

	products, total, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}

	response.Paginated(w, products, total, limit, offset)
}

// Update handles PUT /api/v1/products/:id
// @Summary Update a product
// @Description Updates catalog fields. Stock is changed through the admin stock endpoint.
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param product body ProductRequest true "Updated product details"
// @Success 200 {object} domain.Product "Product updated successfully"
// @Failure 400 {object} map[string]any "Invalid request"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Conflict - product was modified"
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := req.toProduct()
	if err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}
	product.ID = id

	// without a version the update applies to whatever is stored now
	if product.Version == 0 {
		existing, err := h.service.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, h.logger, "Product", err)
			return
		}
		product.Version = existing.Version
	}

	if err := h.service.Update(r.Context(), product); err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}

	response.Success(w, product)
}

// Delete handles DELETE /api/v1/products/:id
// @Summary Deactivate a product
// @Description Products are never removed; they stop being orderable
// @Tags Products
// @Param id path string true "Product ID (UUID)"
// @Success 204 "Product deactivated"
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}

	response.NoContent(w)
}

// UpdateStock handles PUT /api/v1/admin/products/:id/stock
// @Summary Set product stock
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param stock body StockRequest true "New stock level"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]any "Invalid request"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /admin/products/{id}/stock [put]
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req StockRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.StockQuantity == nil {
		response.ValidationError(w, []domain.FieldError{{Field: "stock_quantity", Message: "is required"}})
		return
	}

	product, err := h.service.UpdateStock(r.Context(), id, *req.StockQuantity)
	if err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}

	response.Success(w, product)
}

// LowStock handles GET /api/v1/admin/products/low-stock
// @Summary List products at or below their low-stock threshold
// @Tags Admin
// @Produce json
// @Param limit query int false "Maximum products (max 100)" default(50)
// @Success 200 {array} domain.Product
// @Router /admin/products/low-stock [get]
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListLowStock(r.Context(), request.GetIntQuery(r, "limit", 0))
	if err != nil {
		writeError(w, h.logger, "Product", err)
		return
	}

	response.Success(w, products)
}
