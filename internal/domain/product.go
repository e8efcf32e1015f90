package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold applies when a product is created without a threshold
const DefaultLowStockThreshold = 5

// Stock status values derived from quantity and threshold
const (
	StockStatusOutOfStock = "out-of-stock"
	StockStatusLowStock   = "low-stock"
	StockStatusInStock    = "in-stock"
)

// Product represents a catalog product
type Product struct {
	ID                uuid.UUID        `json:"id" db:"id"`
	ProductCode       string           `json:"product_code" db:"product_code" validate:"required,min=1,max=64"`
	SKU               string           `json:"sku" db:"sku" validate:"required,min=1,max=64"`
	Name              string           `json:"name" db:"name" validate:"required,min=1,max=200"`
	Description       string           `json:"description" db:"description" validate:"max=2000"`
	Category          string           `json:"category" db:"category" validate:"max=100"`
	Brand             string           `json:"brand" db:"brand" validate:"max=100"`
	Price             decimal.Decimal  `json:"price" db:"price" validate:"gte=0"`
	OriginalPrice     *decimal.Decimal `json:"original_price,omitempty" db:"original_price"`
	ImageURL          string           `json:"image_url,omitempty" db:"image_url"`
	StockQuantity     int              `json:"stock_quantity" db:"stock_quantity" validate:"gte=0"`
	LowStockThreshold int              `json:"low_stock_threshold" db:"low_stock_threshold" validate:"gte=0"`
	InStock           bool             `json:"in_stock" db:"in_stock"`
	IsActive          bool             `json:"is_active" db:"is_active"`
	IsFeatured        bool             `json:"is_featured" db:"is_featured"`
	Version           int              `json:"version" db:"version"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
}

// StockStatus reports out-of-stock, low-stock or in-stock
func (p *Product) StockStatus() string {
	return StockStatus(p.StockQuantity, p.LowStockThreshold)
}

// StockStatus classifies a stock level against its low-stock threshold
func StockStatus(quantity, threshold int) string {
	switch {
	case quantity <= 0:
		return StockStatusOutOfStock
	case quantity <= threshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// ProductFilter narrows product listings
type ProductFilter struct {
	Category   string
	Brand      string
	InStock    *bool
	ActiveOnly bool
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// List retrieves a paginated list of products
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*Product, error)

	// Count returns the number of products matching the filter
	Count(ctx context.Context, filter ProductFilter) (int, error)

	// Update updates an existing product's catalog fields (optimistic on version)
	Update(ctx context.Context, product *Product) error

	// SetStock overwrites the stock quantity; in_stock is recomputed
	SetStock(ctx context.Context, id uuid.UUID, quantity int) (*Product, error)

	// Deactivate hides a product from checkout
	Deactivate(ctx context.Context, id uuid.UUID) error

	// ListLowStock returns active products at or below their low-stock threshold
	ListLowStock(ctx context.Context, limit int) ([]*Product, error)
}
