package database

import (
	"path/filepath"
	"strings"
)

// Dialect identifies the SQL dialect of the target store.
type Dialect string

// Supported dialects.
const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DetectDialect classifies a database URL. PostgreSQL URLs carry a
// postgres:// or postgresql:// scheme; everything else is treated as a
// SQLite file path, optionally behind a sqlite:// scheme.
func DetectDialect(databaseURL string) Dialect {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return Postgres
	}

	return SQLite
}

// SQLitePath resolves the filesystem path of a SQLite database URL.
// Accepts bare paths, sqlite://relative and sqlite:///absolute forms.
func SQLitePath(databaseURL string) (string, error) {
	path := databaseURL

	for _, prefix := range []string{"sqlite3://", "sqlite://", "file:"} {
		if strings.HasPrefix(path, prefix) {
			path = strings.TrimPrefix(path, prefix)
			break
		}
	}

	if path == "" {
		return "", ErrInvalidDatabaseURL
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return abs, nil
}
