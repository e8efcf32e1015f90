package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		name       VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// RunMigrations applies every *.up.sql file in migrations that has not been
// applied yet, each in its own transaction, in file name order.
func RunMigrations(ctx context.Context, db *sqlx.DB, migrations fs.FS) error {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	names, err := fs.Glob(migrations, "*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		var applied bool
		if err := db.GetContext(ctx, &applied,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name); err != nil {
			return fmt.Errorf("failed to check migration %s: %w", name, err)
		}
		if applied {
			continue
		}

		sql, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		if err := executeMigration(ctx, db, name, string(sql)); err != nil {
			return fmt.Errorf("migration %s failed: %w", name, err)
		}
	}

	return nil
}

func executeMigration(ctx context.Context, db *sqlx.DB, name, sql string) error {
	return WithTransaction(ctx, db, DefaultTxOptions(), func(tx *sqlx.Tx) error {
		if strings.TrimSpace(sql) != "" {
			if _, err := tx.ExecContext(ctx, sql); err != nil {
				return fmt.Errorf("failed to execute SQL: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
}
