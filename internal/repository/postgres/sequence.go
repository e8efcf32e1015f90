package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Pesokrava/autospares/internal/numbering"
)

// NextOrderSequence advances the counter for dayPrefix and returns the new value.
// The first counter of a day is seeded from the highest order number already
// carrying the prefix, so numbers written before the counter existed are
// continued. Suffixes are fixed width, so text order is numeric order.
// The upsert takes the row lock that serialises numbering within a day.
func (t *orderTx) NextOrderSequence(ctx context.Context, dayPrefix string) (int, error) {
	var last string
	err := t.tx.GetContext(ctx, &last, `
		SELECT order_number
		FROM orders
		WHERE order_number LIKE $1 || '%'
		ORDER BY order_number DESC
		LIMIT 1
	`, dayPrefix)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	seed := numbering.NextSequence(last)

	var next int
	err = t.tx.GetContext(ctx, &next, `
		INSERT INTO order_sequences (day_prefix, last_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (day_prefix) DO UPDATE
		SET last_value = GREATEST(order_sequences.last_value + 1, EXCLUDED.last_value), updated_at = NOW()
		RETURNING last_value
	`, dayPrefix, seed)
	if err != nil {
		return 0, err
	}

	return next, nil
}
