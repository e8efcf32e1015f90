package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/database"
)

const productColumns = `id, product_code, sku, name, description, category, brand, price, original_price,
	image_url, stock_quantity, low_stock_threshold, in_stock, is_active, is_featured, version,
	created_at, updated_at`

// ProductRepository implements domain.ProductRepository for PostgreSQL
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a product; in_stock is derived from stock_quantity
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (product_code, sku, name, description, category, brand, price, original_price,
			image_url, stock_quantity, low_stock_threshold, in_stock, is_active, is_featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $10 > 0, $12, $13, $14, $14)
		RETURNING id, in_stock, version, created_at, updated_at
	`

	now := time.Now()

	err := r.db.QueryRowxContext(
		ctx,
		query,
		product.ProductCode,
		product.SKU,
		product.Name,
		product.Description,
		product.Category,
		product.Brand,
		product.Price,
		product.OriginalPrice,
		product.ImageURL,
		product.StockQuantity,
		product.LowStockThreshold,
		product.IsActive,
		product.IsFeatured,
		now,
	).Scan(
		&product.ID,
		&product.InStock,
		&product.Version,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err, "") {
			return fmt.Errorf("product code or SKU already used: %w", domain.ErrAlreadyExists)
		}
		return err
	}

	return nil
}

// GetByID retrieves a product by ID, active or not
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// productWhere builds the WHERE clause for a filter, numbering placeholders from 1
func productWhere(filter domain.ProductFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.ActiveOnly {
		conds = append(conds, "is_active")
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Brand != "" {
		args = append(args, filter.Brand)
		conds = append(conds, fmt.Sprintf("brand = $%d", len(args)))
	}
	if filter.InStock != nil {
		args = append(args, *filter.InStock)
		conds = append(conds, fmt.Sprintf("in_stock = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List retrieves a paginated, newest-first list of products
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]*domain.Product, error) {
	where, args := productWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)-1, len(args))

	products := []*domain.Product{}
	err := r.db.SelectContext(ctx, &products, query, args...)
	if err != nil {
		return nil, err
	}

	return products, nil
}

// Count returns the number of products matching the filter
func (r *ProductRepository) Count(ctx context.Context, filter domain.ProductFilter) (int, error) {
	where, args := productWhere(filter)
	query := `SELECT COUNT(*) FROM products` + where

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Update writes catalog fields when the stored version still matches. Stock is
// not touched here; it changes only through SetStock and order transactions.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, category = $3, brand = $4, price = $5, original_price = $6,
			image_url = $7, low_stock_threshold = $8, is_active = $9, is_featured = $10,
			updated_at = $11, version = version + 1
		WHERE id = $12 AND version = $13
		RETURNING version, updated_at
	`

	err := r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Category,
		product.Brand,
		product.Price,
		product.OriginalPrice,
		product.ImageURL,
		product.LowStockThreshold,
		product.IsActive,
		product.IsFeatured,
		time.Now(),
		product.ID,
		product.Version,
	).Scan(&product.Version, &product.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrConflict
		}
		return err
	}

	return nil
}

// SetStock overwrites the stock level and recomputes in_stock in the same statement
func (r *ProductRepository) SetStock(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error) {
	query := `
		UPDATE products
		SET stock_quantity = $1, in_stock = $1 > 0, version = version + 1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + productColumns

	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, quantity, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// Deactivate hides a product from listings and checkout; products are never deleted
func (r *ProductRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE products
		SET is_active = FALSE, version = version + 1, updated_at = $1
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ListLowStock returns active products at or below their threshold, emptiest first
func (r *ProductRepository) ListLowStock(ctx context.Context, limit int) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND stock_quantity <= low_stock_threshold
		ORDER BY stock_quantity ASC, name ASC
		LIMIT $1`

	products := []*domain.Product{}
	err := r.db.SelectContext(ctx, &products, query, limit)
	if err != nil {
		return nil, err
	}

	return products, nil
}
