// Package inventory validates, decrements and restores product stock inside
// an order transaction.
package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pesokrava/autospares/internal/domain"
)

// Line is a requested quantity of one product
type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

// MergeLines sums quantities of lines that name the same product, keeping first-seen order
func MergeLines(lines []Line) []Line {
	merged := make([]Line, 0, len(lines))
	pos := make(map[uuid.UUID]int, len(lines))
	for _, l := range lines {
		if i, ok := pos[l.ProductID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		pos[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged
}

// Ledger applies stock movements through a domain.StockTx
type Ledger struct{}

// NewLedger creates a ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Reserve checks that every product exists, is active and has enough stock.
// The first failing line rejects the whole request. Lines must already be merged.
func (l *Ledger) Reserve(ctx context.Context, tx domain.StockTx, lines []Line) (map[uuid.UUID]*domain.Product, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, domain.NewValidationError(domain.FieldError{
				Field:   "items",
				Message: fmt.Sprintf("quantity for product %s must be greater than 0", line.ProductID),
			})
		}
		ids = append(ids, line.ProductID)
	}

	products, err := tx.GetProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	byID := make(map[uuid.UUID]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, domain.ErrNotFound)
		}
		if !p.IsActive {
			return nil, &domain.UnavailableError{ProductID: p.ID, Name: p.Name}
		}
		if p.StockQuantity < line.Quantity {
			return nil, &domain.StockError{
				ProductID: p.ID,
				Name:      p.Name,
				Available: p.StockQuantity,
				Requested: line.Quantity,
			}
		}
	}

	return byID, nil
}

// Decrement subtracts each line with a conditional update. A line that no
// longer fits fails with a *domain.StockError and the caller must roll back.
func (l *Ledger) Decrement(ctx context.Context, tx domain.StockTx, lines []Line) error {
	for _, line := range lines {
		ok, err := tx.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return fmt.Errorf("decrement stock for %s: %w", line.ProductID, err)
		}
		if ok {
			continue
		}

		stockErr := &domain.StockError{ProductID: line.ProductID, Requested: line.Quantity}
		if current, err := tx.GetProducts(ctx, []uuid.UUID{line.ProductID}); err == nil && len(current) == 1 {
			stockErr.Name = current[0].Name
			stockErr.Available = current[0].StockQuantity
		}
		return stockErr
	}
	return nil
}

// Restore credits every order item's quantity back to its product
func (l *Ledger) Restore(ctx context.Context, tx domain.StockTx, items domain.OrderItems) error {
	for _, item := range items {
		if err := tx.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("restore stock for %s: %w", item.ProductID, err)
		}
	}
	return nil
}
