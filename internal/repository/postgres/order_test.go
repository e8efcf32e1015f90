package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/autospares/internal/domain"
)

var orderRowColumns = []string{
	"id", "order_number", "user_id", "items", "subtotal", "tax", "shipping", "discount", "total",
	"status", "payment_status", "payment_method", "payment_intent_id", "payment_reference", "paid_at",
	"shipping_address", "billing_address", "tracking_number", "carrier", "customer_notes", "admin_notes",
	"order_date", "confirmed_at", "shipped_at", "delivered_at", "cancelled_at", "status_history", "version",
	"created_at", "updated_at",
}

func orderRow(id, productID uuid.UUID, number string) *sqlmock.Rows {
	now := time.Now()
	items := `[{"product_id":"` + productID.String() + `","name":"Brake pads","price":"850","quantity":2,"total":"1700"}]`
	address := `{"first_name":"Thandi","last_name":"Mokoena","email":"t@example.com","phone":"0820000000",` +
		`"street":"1 Main Rd","city":"Pretoria","state":"Gauteng","zip_code":"0001","country":"South Africa"}`
	history := `[{"status":"pending","timestamp":"2025-08-15T10:00:00Z","note":"Order created"}]`

	return sqlmock.NewRows(orderRowColumns).AddRow(
		id.String(), number, nil, []byte(items), "1700.00", "255.00", "0.00", "0.00", "1955.00",
		"pending", "pending", "credit_card", nil, nil, nil,
		[]byte(address), []byte(address), "", "", "", "",
		now, nil, nil, nil, nil, []byte(history), 1,
		now, now,
	)
}

func TestOrderRepository_GetByIDScansEmbeddedDocuments(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)
	id, productID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(orderRow(id, productID, "MSA2508150001"))

	order, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "MSA2508150001", order.OrderNumber)
	assert.Nil(t, order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, productID, order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "1700.00", order.Items[0].Total.StringFixed(2))
	assert.Equal(t, "Pretoria", order.ShippingAddress.City)
	require.Len(t, order.StatusHistory, 1)
	assert.Equal(t, "Order created", order.StatusHistory[0].Note)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, domain.MethodCreditCard, order.PaymentMethod)
}

func TestOrderRepository_GetByNumberNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)

	mock.ExpectQuery("FROM orders WHERE order_number = \\$1").
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	_, err := repo.GetByNumber(context.Background(), "MSA0000000000")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderRepository_ListByUserAndStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)
	userID := uuid.New()

	mock.ExpectQuery("FROM orders WHERE user_id = \\$1 AND status = \\$2 ORDER BY created_at DESC LIMIT \\$3 OFFSET \\$4").
		WithArgs(userID, "shipped", 10, 0).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	orders, err := repo.List(context.Background(), domain.OrderFilter{UserID: &userID, Status: domain.StatusShipped}, 10, 0)

	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderTx_DecrementStockConditional(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products SET stock_quantity = stock_quantity - \\$1(.+)WHERE id = \\$2 AND stock_quantity >= \\$1").
		WithArgs(2, productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("WHERE id = \\$2 AND stock_quantity >= \\$1").
		WithArgs(5, productID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	var first, second bool
	err := repo.WithinTx(context.Background(), func(tx domain.OrderTx) error {
		var err error
		if first, err = tx.DecrementStock(context.Background(), productID, 2); err != nil {
			return err
		}
		second, err = tx.DecrementStock(context.Background(), productID, 5)
		return err
	})

	require.NoError(t, err)
	assert.True(t, first)
	assert.False(t, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderTx_RestoreStock(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("SET stock_quantity = stock_quantity \\+ \\$1, in_stock = stock_quantity \\+ \\$1 > 0").
		WithArgs(2, productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.WithinTx(context.Background(), func(tx domain.OrderTx) error {
		return tx.RestoreStock(context.Background(), productID, 2)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderTx_NextOrderSequenceSeedsFromLastOrder(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT order_number FROM orders WHERE order_number LIKE .+ ORDER BY order_number DESC LIMIT 1`).
		WithArgs("MSA250815").
		WillReturnRows(sqlmock.NewRows([]string{"order_number"}).AddRow("MSA25081500037"))
	mock.ExpectQuery("INSERT INTO order_sequences").
		WithArgs("MSA250815", 38).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(38))
	mock.ExpectCommit()

	var seq int
	err := repo.WithinTx(context.Background(), func(tx domain.OrderTx) error {
		var err error
		seq, err = tx.NextOrderSequence(context.Background(), "MSA250815")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 38, seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderTx_NextOrderSequenceFirstOfDay(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT order_number FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_number"}))
	mock.ExpectQuery("INSERT INTO order_sequences").
		WithArgs("MSA250816", 1).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(1))
	mock.ExpectCommit()

	var seq int
	err := repo.WithinTx(context.Background(), func(tx domain.OrderTx) error {
		var err error
		seq, err = tx.NextOrderSequence(context.Background(), "MSA250816")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, seq)
}

func TestOrderRepository_WithinTxExhaustedIsTransient(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 1)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	attempts := 0
	err := repo.WithinTx(context.Background(), func(tx domain.OrderTx) error {
		attempts++
		return &pq.Error{Code: "23505", Constraint: orderNumberConstraint}
	})

	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_WithinTxDomainErrorNotRetried(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)

	mock.ExpectBegin()
	mock.ExpectRollback()

	stockErr := &domain.StockError{Name: "Brake pads", Available: 1}
	err := repo.WithinTx(context.Background(), func(tx domain.OrderTx) error {
		return stockErr
	})

	var got *domain.StockError
	require.True(t, errors.As(err, &got))
	assert.Same(t, stockErr, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderTx_UpdateOrderAppendsHistory(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)
	order := &domain.Order{ID: uuid.New(), Status: domain.StatusCancelled, PaymentStatus: domain.PaymentPending, Version: 2}
	entry := domain.StatusHistoryEntry{Status: domain.StatusCancelled, Note: "Status changed to cancelled"}

	mock.ExpectBegin()
	mock.ExpectQuery("status_history = status_history \\|\\| \\$13::jsonb").
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(3, time.Now()))
	mock.ExpectCommit()

	err := repo.WithinTx(context.Background(), func(tx domain.OrderTx) error {
		return tx.UpdateOrder(context.Background(), order, entry)
	})

	require.NoError(t, err)
	assert.Equal(t, 3, order.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderTx_UpdateOrderVersionConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE orders").
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}))
	mock.ExpectRollback()

	err := repo.WithinTx(context.Background(), func(tx domain.OrderTx) error {
		return tx.UpdateOrder(context.Background(), &domain.Order{ID: uuid.New(), Version: 1})
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestOrderTx_InsertOrder(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)
	id := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "version", "created_at", "updated_at"}).AddRow(id.String(), 1, now, now))
	mock.ExpectCommit()

	order := &domain.Order{
		OrderNumber: "MSA2508150001",
		Items:       domain.OrderItems{{ProductID: uuid.New(), Quantity: 1, Price: decimal.RequireFromString("200"), Total: decimal.RequireFromString("200")}},
		Status:      domain.StatusPending,
	}
	err := repo.WithinTx(context.Background(), func(tx domain.OrderTx) error {
		return tx.InsertOrder(context.Background(), order)
	})

	require.NoError(t, err)
	assert.Equal(t, id, order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderTx_GetProducts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM products WHERE id = ANY\\(\\$1::uuid\\[\\]\\)").
		WillReturnRows(productRow(sqlmock.NewRows(productRowColumns), id, "Brake pads", 4))
	mock.ExpectCommit()

	var products []*domain.Product
	err := repo.WithinTx(context.Background(), func(tx domain.OrderTx) error {
		var err error
		products, err = tx.GetProducts(context.Background(), []uuid.UUID{id})
		return err
	})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, id, products[0].ID)
}

func TestOrderRepository_DashboardStats(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db, 3)
	productID := uuid.New()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) AS total_orders").
		WillReturnRows(sqlmock.NewRows([]string{"total_orders", "total_revenue", "month_revenue", "week_revenue"}).
			AddRow(4, "3000.50", "1500.00", "380.00"))
	mock.ExpectQuery("FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"active", "low_stock"}).AddRow(12, 2))
	mock.ExpectQuery("GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("pending", 3).AddRow("shipped", 1))
	mock.ExpectQuery("jsonb_array_elements").
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "quantity", "revenue"}).
			AddRow(productID.String(), "Brake pads", 5, "4250.00"))
	mock.ExpectQuery("customer_name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "total", "status", "payment_status", "customer_name"}).
			AddRow(uuid.New().String(), "MSA2508150001", "380.00", "pending", "pending", "Thandi Mokoena"))

	stats, err := repo.DashboardStats(context.Background(), time.Now().AddDate(0, -1, 0), time.Now().AddDate(0, 0, -7))

	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, "3000.50", stats.TotalRevenue.StringFixed(2))
	assert.Equal(t, 12, stats.TotalProducts)
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Equal(t, 3, stats.StatusBreakdown[domain.StatusPending])
	require.Len(t, stats.TopProducts, 1)
	assert.Equal(t, 5, stats.TopProducts[0].Quantity)
	require.Len(t, stats.RecentOrders, 1)
	assert.Equal(t, "Thandi Mokoena", stats.RecentOrders[0].CustomerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
