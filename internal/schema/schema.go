// Package schema defines the tic-tac-toe application schema: the users,
// games, moves and scores tables plus their indices, in both supported
// SQL dialects. Every statement is written with IF NOT EXISTS so the set
// can be re-applied against a partially-initialized store.
package schema

import (
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"
)

// Version is the current schema version recorded in the migrations
// ledger. Increment when the statement sets below change.
const Version = 1

// Statement is a single named DDL statement.
type Statement struct {
	Name string
	SQL  string
}

// Statements returns the ordered DDL set for the given dialect.
// Order matters: referenced tables must exist before their foreign keys.
func Statements(dialect database.Dialect) []Statement {
	if dialect == database.Postgres {
		return postgresStatements
	}

	return sqliteStatements
}

// Tables lists the application tables created by Statements, in
// creation order. The migrations ledger itself is owned by the tracker.
func Tables() []string {
	return []string{"users", "games", "moves", "scores"}
}
