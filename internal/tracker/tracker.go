package tracker

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"
)

// Execer is the subset of database/sql used to record a version.
// Both *sql.DB and *sql.Tx satisfy it, so the version row can be written
// inside the same transaction as the DDL it describes.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Tracker manages the schema_migrations ledger.
type Tracker struct {
	db      *sql.DB
	dialect database.Dialect
}

// New creates a Tracker backed by the given database handle.
func New(db *sql.DB, dialect database.Dialect) *Tracker {
	return &Tracker{db: db, dialect: dialect}
}

// EnsureTable creates the schema_migrations table if it does not exist.
func (t *Tracker) EnsureTable(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, createLedgerSQL[t.dialect])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTableCreation, err)
	}

	return nil
}

// CurrentVersion returns the highest recorded schema version, or 0 when
// the ledger is empty or has not been created yet.
func (t *Tracker) CurrentVersion(ctx context.Context) (int, error) {
	exists, err := database.TableExists(ctx, t.db, t.dialect, LedgerTable)
	if err != nil {
		return 0, err
	}

	if !exists {
		return 0, nil
	}

	var version int

	err = t.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}

	return version, nil
}

// IsUpToDate reports whether the recorded schema version is at least expected.
func (t *Tracker) IsUpToDate(ctx context.Context, expected int) (bool, error) {
	current, err := t.CurrentVersion(ctx)
	if err != nil {
		return false, err
	}

	return current >= expected, nil
}

// Record writes a version row to the ledger through ex. The insert is
// idempotent: re-recording an existing version is a no-op.
func (t *Tracker) Record(ctx context.Context, ex Execer, version int) error {
	_, err := ex.ExecContext(ctx, recordSQL[t.dialect], version)
	if err != nil {
		return fmt.Errorf("recording schema version %d: %w", version, err)
	}

	return nil
}
