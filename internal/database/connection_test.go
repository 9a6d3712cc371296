package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"
)

func TestOpen_sqliteCreatesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")

	db, dialect, err := database.Open(context.Background(), path)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	assert.Equal(t, database.SQLite, dialect)

	// Startup pragmas must be in effect on the connection.
	var foreignKeys int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	assert.Equal(t, 1, foreignKeys)
}

func TestOpen_emptyURLReturnsError(t *testing.T) {
	t.Parallel()

	_, _, err := database.Open(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrInvalidDatabaseURL)
}

func TestOpen_unreachablePostgresReturnsConnectionFailed(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, dialect, err := database.Open(ctx, "postgres://nobody@127.0.0.1:1/ttt")
	require.Error(t, err)
	assert.Equal(t, database.Postgres, dialect)
	assert.ErrorIs(t, err, database.ErrConnectionFailed)
}

func TestTableExists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")

	db, dialect, err := database.Open(context.Background(), path)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	ctx := context.Background()

	exists, err := database.TableExists(ctx, db, dialect, "users")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = db.Exec("CREATE TABLE users (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)

	exists, err = database.TableExists(ctx, db, dialect, "users")
	require.NoError(t, err)
	assert.True(t, exists)
}
