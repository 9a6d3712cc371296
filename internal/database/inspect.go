package database

import (
	"context"
	"database/sql"
	"fmt"
)

// TableExists reports whether a table is present in the connected store.
func TableExists(ctx context.Context, db *sql.DB, dialect Dialect, table string) (bool, error) {
	var (
		query  string
		exists bool
	)

	switch dialect {
	case Postgres:
		query = `SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = $1
		)`
	case SQLite:
		query = `SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = ?
		)`
	}

	if err := db.QueryRowContext(ctx, query, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking table %s: %w", table, err)
	}

	return exists, nil
}
