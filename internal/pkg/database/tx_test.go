package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func fastOptions(retries int, constraints ...string) TxOptions {
	opts := DefaultTxOptions()
	opts.MaxRetries = retries
	opts.InitialBackoff = time.Millisecond
	opts.RetryableConstraints = constraints
	return opts
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, ErrorClassSerialization, ClassifyError(&pq.Error{Code: CodeSerializationFailure}))
	assert.Equal(t, ErrorClassDeadlock, ClassifyError(&pq.Error{Code: CodeDeadlockDetected}))
	assert.Equal(t, ErrorClassTransient, ClassifyError(&pq.Error{Code: CodeLockNotAvailable}))
	assert.Equal(t, ErrorClassPermanent, ClassifyError(&pq.Error{Code: CodeUniqueViolation, Constraint: "products_sku_key"}))
	assert.Equal(t, ErrorClassTransient,
		ClassifyError(&pq.Error{Code: CodeUniqueViolation, Constraint: "orders_order_number_key"}, "orders_order_number_key"))
	assert.Equal(t, ErrorClassPermanent, ClassifyError(sql.ErrNoRows))
	assert.Equal(t, ErrorClassPermanent, ClassifyError(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	err := &pq.Error{Code: CodeUniqueViolation, Constraint: "products_sku_key"}
	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "products_sku_key"))
	assert.False(t, IsUniqueViolation(err, "orders_order_number_key"))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}

func TestWithRetry_Commits(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := WithRetry(context.Background(), db, fastOptions(3), func(tx *sqlx.Tx) error {
		_, err := tx.Exec("UPDATE products SET stock_quantity = 1")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithRetry_RetriesSerializationFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err := WithRetry(context.Background(), db, fastOptions(3), func(tx *sqlx.Tx) error {
		attempts++
		if attempts == 1 {
			return &pq.Error{Code: CodeSerializationFailure}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithRetry_PermanentErrorIsNotRetried(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	attempts := 0
	err := WithRetry(context.Background(), db, fastOptions(3), func(tx *sqlx.Tx) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithRetry_Exhausted(t *testing.T) {
	db, mock := setupMockDB(t)
	for i := 0; i < 3; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	dup := &pq.Error{Code: CodeUniqueViolation, Constraint: "orders_order_number_key"}
	err := WithRetry(context.Background(), db, fastOptions(2, "orders_order_number_key"), func(tx *sqlx.Tx) error {
		return dup
	})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.True(t, IsUniqueViolation(err, "orders_order_number_key"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	db, _ := setupMockDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, db, fastOptions(3), func(tx *sqlx.Tx) error { return nil })

	assert.ErrorIs(t, err, context.Canceled)
}
