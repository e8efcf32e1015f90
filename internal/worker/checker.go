package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

type stockLevel struct {
	ID                uuid.UUID `db:"id"`
	ProductCode       string    `db:"product_code"`
	Name              string    `db:"name"`
	StockQuantity     int       `db:"stock_quantity"`
	LowStockThreshold int       `db:"low_stock_threshold"`
}

// StockChecker reads a product's current stock and decides whether it needs an alert
type StockChecker struct {
	db     *sqlx.DB
	logger *logger.Logger
	now    func() time.Time
}

// NewStockChecker creates a new stock checker
func NewStockChecker(db *sqlx.DB, log *logger.Logger) *StockChecker {
	return &StockChecker{
		db:     db,
		logger: log,
		now:    time.Now,
	}
}

// Check returns an alert when the product is low or out of stock, nil otherwise.
// Inactive and unknown products are skipped.
func (c *StockChecker) Check(ctx context.Context, productID uuid.UUID) (*domain.StockAlert, error) {
	query := `
		SELECT id, product_code, name, stock_quantity, low_stock_threshold
		FROM products
		WHERE id = $1 AND is_active = TRUE
	`

	var level stockLevel
	if err := c.db.GetContext(ctx, &level, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.logger.WithFields(logger.Fields{
				"product_id": productID.String(),
			}).Info("Product not found or inactive, skipping stock check")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read stock level: %w", err)
	}

	var alertType string
	switch domain.StockStatus(level.StockQuantity, level.LowStockThreshold) {
	case domain.StockStatusOutOfStock:
		alertType = domain.EventOutOfStock
	case domain.StockStatusLowStock:
		alertType = domain.EventLowStock
	default:
		return nil, nil
	}

	return &domain.StockAlert{
		Type:          alertType,
		ProductID:     level.ID,
		ProductCode:   level.ProductCode,
		Name:          level.Name,
		StockQuantity: level.StockQuantity,
		Threshold:     level.LowStockThreshold,
		Timestamp:     c.now(),
	}, nil
}
