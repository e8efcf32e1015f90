package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Pesokrava/autospares/internal/config"
)

const maxConnectDelay = 15 * time.Second

// NewPostgresDB opens the pool, sizes it from config and pings it within ctx
func NewPostgresDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s@%s:%s: %w",
			cfg.Database.Name, cfg.Database.Host, cfg.Database.Port, err)
	}

	return db, nil
}

// WaitForDB retries NewPostgresDB, doubling the delay between attempts up to
// maxConnectDelay, until the database answers, retries run out or ctx ends.
func WaitForDB(ctx context.Context, cfg *config.Config, maxRetries int, retryDelay time.Duration) (*sqlx.DB, error) {
	var err error
	delay := retryDelay

	for attempt := 1; attempt <= maxRetries; attempt++ {
		var db *sqlx.DB
		db, err = NewPostgresDB(ctx, cfg)
		if err == nil {
			return db, nil
		}
		if attempt == maxRetries {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		delay = min(delay*2, maxConnectDelay)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}
