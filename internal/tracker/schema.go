package tracker

import "github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"

// LedgerTable is the name of the migrations ledger table.
const LedgerTable = "schema_migrations"

// createLedgerSQL is the per-dialect DDL for the migrations ledger.
var createLedgerSQL = map[database.Dialect]string{
	database.SQLite: `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
	database.Postgres: `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    applied_at TIMESTAMPTZ DEFAULT NOW()
)`,
}

// recordSQL is the per-dialect idempotent version insert.
var recordSQL = map[database.Dialect]string{
	database.SQLite:   `INSERT OR IGNORE INTO schema_migrations (version) VALUES (?)`,
	database.Postgres: `INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT (version) DO NOTHING`,
}
