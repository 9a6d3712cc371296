package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/schema"
)

func TestStatements_bothDialectsCoverSameObjects(t *testing.T) {
	t.Parallel()

	sqlite := schema.Statements(database.SQLite)
	postgres := schema.Statements(database.Postgres)

	require.Len(t, postgres, len(sqlite))

	for i := range sqlite {
		assert.Equal(t, sqlite[i].Name, postgres[i].Name, "statement order must match across dialects")
	}
}

func TestStatements_everyStatementIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, dialect := range []database.Dialect{database.SQLite, database.Postgres} {
		for _, stmt := range schema.Statements(dialect) {
			assert.Contains(t, stmt.SQL, "IF NOT EXISTS",
				"%s/%s must be re-runnable", dialect, stmt.Name)
		}
	}
}

func TestStatements_tablesPrecedeTheirIndices(t *testing.T) {
	t.Parallel()

	position := map[string]int{}
	for i, stmt := range schema.Statements(database.SQLite) {
		position[stmt.Name] = i
	}

	assert.Less(t, position["users"], position["idx_users_username"])
	assert.Less(t, position["games"], position["idx_games_status"])
	assert.Less(t, position["moves"], position["idx_moves_gameid"])
	assert.Less(t, position["users"], position["games"], "games references users")
	assert.Less(t, position["games"], position["moves"], "moves references games")
	assert.Less(t, position["users"], position["scores"], "scores references users")
}

func TestTables_matchesStatementSet(t *testing.T) {
	t.Parallel()

	names := map[string]bool{}
	for _, stmt := range schema.Statements(database.SQLite) {
		names[stmt.Name] = true
	}

	for _, table := range schema.Tables() {
		assert.True(t, names[table], "table %s has no create statement", table)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, schema.Validate(database.SQLite))
	require.NoError(t, schema.Validate(database.Postgres))
}

func TestStatements_postgresQuotesRowColumn(t *testing.T) {
	t.Parallel()

	for _, stmt := range schema.Statements(database.Postgres) {
		if stmt.Name != "moves" {
			continue
		}

		// row is a reserved word in PostgreSQL.
		assert.True(t, strings.Contains(stmt.SQL, `"row"`))

		return
	}

	t.Fatal("moves statement not found")
}
