package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	_ "modernc.org/sqlite"             // pure-Go sqlite driver
)

const defaultMaxConns = 5

// sqlitePragmas are applied to every SQLite connection at open time.
// WAL and busy_timeout keep concurrent readers from tripping over the
// one-shot writer; foreign_keys must be enabled per connection.
var sqlitePragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
}

// Open connects to the store identified by databaseURL, detecting the
// dialect from the URL. The connection is pinged before being returned.
func Open(ctx context.Context, databaseURL string) (*sql.DB, Dialect, error) {
	dialect := DetectDialect(databaseURL)

	var (
		db  *sql.DB
		err error
	)

	switch dialect {
	case Postgres:
		db, err = sql.Open("pgx", databaseURL)
	case SQLite:
		db, err = openSQLite(databaseURL)
	}

	if err != nil {
		return nil, dialect, fmt.Errorf("%w: %w", ErrInvalidDatabaseURL, err)
	}

	if dialect == SQLite {
		// Pragmas are set per connection; a single connection keeps them
		// in effect and sidesteps writer contention on the file.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(defaultMaxConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()

		return nil, dialect, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return db, dialect, nil
}

// openSQLite opens a SQLite database file and applies the startup pragmas.
func openSQLite(databaseURL string) (*sql.DB, error) {
	path, err := SQLitePath(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	for _, pragma := range sqlitePragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()

			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	return db, nil
}
