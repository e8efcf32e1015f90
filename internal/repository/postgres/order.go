package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/database"
)

// orderNumberConstraint is retried on conflict: a clash means another checkout
// took the number and a fresh attempt will draw the next one.
const orderNumberConstraint = "orders_order_number_key"

const orderColumns = `id, order_number, user_id, items, subtotal, tax, shipping, discount, total,
	status, payment_status, payment_method, payment_intent_id, payment_reference, paid_at,
	shipping_address, billing_address, tracking_number, carrier, customer_notes, admin_notes,
	order_date, confirmed_at, shipped_at, delivered_at, cancelled_at, status_history, version,
	created_at, updated_at`

// sqlxQuerier is the part of *sqlx.DB and *sqlx.Tx the order queries need
type sqlxQuerier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// OrderRepository implements domain.OrderRepository for PostgreSQL
type OrderRepository struct {
	db     *sqlx.DB
	txOpts database.TxOptions
}

// NewOrderRepository creates a new PostgreSQL order repository. maxRetries
// bounds how often a conflicting transaction is attempted again.
func NewOrderRepository(db *sqlx.DB, maxRetries int) *OrderRepository {
	opts := database.DefaultTxOptions()
	opts.MaxRetries = maxRetries
	opts.RetryableConstraints = []string{orderNumberConstraint}
	return &OrderRepository{db: db, txOpts: opts}
}

// WithinTx runs fn in a read committed transaction, retrying on serialization
// failures, deadlocks, lock timeouts and order number clashes. Running out of
// retries surfaces domain.ErrTransient.
func (r *OrderRepository) WithinTx(ctx context.Context, fn func(tx domain.OrderTx) error) error {
	err := database.WithRetry(ctx, r.db, r.txOpts, func(tx *sqlx.Tx) error {
		return fn(&orderTx{tx: tx})
	})
	if errors.Is(err, database.ErrRetriesExhausted) {
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	return err
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return getOrder(ctx, r.db, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetByNumber retrieves an order by its order number
func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	return getOrder(ctx, r.db, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number)
}

func getOrder(ctx context.Context, q sqlxQuerier, query string, arg interface{}) (*domain.Order, error) {
	var order domain.Order
	err := q.GetContext(ctx, &order, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func orderWhere(filter domain.OrderFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		conds = append(conds, fmt.Sprintf("payment_status = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List retrieves a paginated, newest-first list of orders
func (r *OrderRepository) List(ctx context.Context, filter domain.OrderFilter, limit, offset int) ([]*domain.Order, error) {
	where, args := orderWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)-1, len(args))

	orders := []*domain.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, err
	}
	return orders, nil
}

// Count returns the number of orders matching the filter
func (r *OrderRepository) Count(ctx context.Context, filter domain.OrderFilter) (int, error) {
	where, args := orderWhere(filter)

	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM orders`+where, args...); err != nil {
		return 0, err
	}
	return count, nil
}

// orderTx implements domain.OrderTx on one SQL transaction
type orderTx struct {
	tx *sqlx.Tx
}

// InsertOrder persists a new order with its items and history
func (t *orderTx) InsertOrder(ctx context.Context, o *domain.Order) error {
	query := `
		INSERT INTO orders (order_number, user_id, items, subtotal, tax, shipping, discount, total,
			status, payment_status, payment_method, shipping_address, billing_address, customer_notes,
			order_date, status_history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $15, $15)
		RETURNING id, version, created_at, updated_at
	`

	return t.tx.QueryRowxContext(
		ctx,
		query,
		o.OrderNumber,
		o.UserID,
		o.Items,
		o.Subtotal,
		o.Tax,
		o.Shipping,
		o.Discount,
		o.Total,
		o.Status,
		o.PaymentStatus,
		o.PaymentMethod,
		o.ShippingAddress,
		o.BillingAddress,
		o.CustomerNotes,
		o.OrderDate,
		o.StatusHistory,
	).Scan(&o.ID, &o.Version, &o.CreatedAt, &o.UpdatedAt)
}

// GetOrderForUpdate loads and row-locks an order by ID
func (t *orderTx) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return getOrder(ctx, t.tx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// GetOrderByNumberForUpdate loads and row-locks an order by number
func (t *orderTx) GetOrderByNumberForUpdate(ctx context.Context, number string) (*domain.Order, error) {
	return getOrder(ctx, t.tx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1 FOR UPDATE`, number)
}

// GetOrderByPaymentIntentForUpdate loads and row-locks an order by payment intent
func (t *orderTx) GetOrderByPaymentIntentForUpdate(ctx context.Context, intentID string) (*domain.Order, error) {
	return getOrder(ctx, t.tx, `SELECT `+orderColumns+` FROM orders WHERE payment_intent_id = $1 FOR UPDATE`, intentID)
}

// UpdateOrder writes the mutable fields and appends history entries to the
// stored array; entries already stored are never rewritten.
func (t *orderTx) UpdateOrder(ctx context.Context, o *domain.Order, appended ...domain.StatusHistoryEntry) error {
	query := `
		UPDATE orders
		SET status = $1, payment_status = $2, payment_intent_id = $3, payment_reference = $4, paid_at = $5,
			tracking_number = $6, carrier = $7, admin_notes = $8, confirmed_at = $9, shipped_at = $10,
			delivered_at = $11, cancelled_at = $12, status_history = status_history || $13::jsonb,
			version = version + 1, updated_at = NOW()
		WHERE id = $14 AND version = $15
		RETURNING version, updated_at
	`

	err := t.tx.QueryRowxContext(
		ctx,
		query,
		o.Status,
		o.PaymentStatus,
		o.PaymentIntentID,
		o.PaymentReference,
		o.PaidAt,
		o.TrackingNumber,
		o.Carrier,
		o.AdminNotes,
		o.ConfirmedAt,
		o.ShippedAt,
		o.DeliveredAt,
		o.CancelledAt,
		domain.StatusHistory(appended),
		o.ID,
		o.Version,
	).Scan(&o.Version, &o.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrConflict
		}
		if database.IsUniqueViolation(err, "orders_payment_intent_id_key") {
			return fmt.Errorf("payment intent already attached to another order: %w", domain.ErrAlreadyExists)
		}
		return err
	}

	return nil
}
