package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrRetriesExhausted wraps the last transient error once every attempt failed
var ErrRetriesExhausted = errors.New("transaction retries exhausted")

// TxOptions configures WithRetry
type TxOptions struct {
	IsolationLevel       sql.IsolationLevel
	ReadOnly             bool
	MaxRetries           int
	InitialBackoff       time.Duration
	RetryableConstraints []string
}

// DefaultTxOptions is read committed with three retries
func DefaultTxOptions() TxOptions {
	return TxOptions{
		IsolationLevel: sql.LevelReadCommitted,
		MaxRetries:     3,
		InitialBackoff: 50 * time.Millisecond,
	}
}

// WithTransaction runs fn in a single transaction
func WithTransaction(ctx context.Context, db *sqlx.DB, opts TxOptions, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: opts.IsolationLevel,
		ReadOnly:  opts.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// WithRetry runs fn in a transaction and retries the whole transaction on
// serialization failures, deadlocks, lock timeouts and the configured unique
// constraints, backing off exponentially with jitter. Permanent errors are
// returned unchanged. When retries run out the result wraps both
// ErrRetriesExhausted and the last error.
func WithRetry(ctx context.Context, db *sqlx.DB, opts TxOptions, fn func(*sqlx.Tx) error) error {
	backoff := opts.InitialBackoff
	if backoff <= 0 {
		backoff = 50 * time.Millisecond
	}

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := WithTransaction(ctx, db, opts, fn)
		if err == nil {
			return nil
		}

		if !IsRetryable(err, opts.RetryableConstraints...) {
			return err
		}

		if attempt >= opts.MaxRetries {
			return fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempt+1, err)
		}

		jitter := time.Duration(rand.Int63n(int64(backoff/4) + 1))
		select {
		case <-time.After(backoff + jitter):
		case <-ctx.Done():
			return ctx.Err()
		}

		backoff *= 2
	}
}
