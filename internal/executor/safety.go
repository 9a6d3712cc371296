package executor

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SetLockTimeout sets the PostgreSQL lock_timeout for the given transaction.
// This causes the DDL to fail fast if it cannot acquire a lock within the
// specified duration, instead of blocking other queries.
func SetLockTimeout(ctx context.Context, tx *sql.Tx, timeout time.Duration) error {
	stmt := fmt.Sprintf("SET lock_timeout = '%dms'", timeout.Milliseconds())

	_, err := tx.ExecContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("setting lock_timeout: %w", err)
	}

	return nil
}

// SetStatementTimeout sets the PostgreSQL statement_timeout for the given
// transaction. This prevents a runaway statement from holding locks
// indefinitely.
func SetStatementTimeout(ctx context.Context, tx *sql.Tx, timeout time.Duration) error {
	stmt := fmt.Sprintf("SET statement_timeout = '%dms'", timeout.Milliseconds())

	_, err := tx.ExecContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("setting statement_timeout: %w", err)
	}

	return nil
}
