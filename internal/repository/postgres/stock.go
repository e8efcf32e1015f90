package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Pesokrava/autospares/internal/domain"
)

// GetProducts loads products by ID without locking them
func (t *orderTx) GetProducts(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	products := []*domain.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::uuid[])`
	if err := t.tx.SelectContext(ctx, &products, query, pq.Array(raw)); err != nil {
		return nil, err
	}
	return products, nil
}

// DecrementStock subtracts quantity only while enough stock remains. The row
// count tells the caller whether the compare-and-swap applied.
func (t *orderTx) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, in_stock = stock_quantity - $1 > 0,
			version = version + 1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity >= $1
	`

	result, err := t.tx.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// RestoreStock adds quantity back and recomputes in_stock
func (t *orderTx) RestoreStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $1, in_stock = stock_quantity + $1 > 0,
			version = version + 1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := t.tx.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}

	return nil
}
