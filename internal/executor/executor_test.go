package executor_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/executor"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/schema"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/tracker"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "exec.db")

	db, _, err := database.Open(context.Background(), path)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return db
}

func TestStatusConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "starting", executor.StatusStarting)
	assert.Equal(t, "completed", executor.StatusCompleted)
	assert.Equal(t, "failed", executor.StatusFailed)
	assert.Equal(t, "skipped", executor.StatusSkipped)
}

func TestApply_createsAllTablesAndRecordsVersion(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	tr := tracker.New(db, database.SQLite)
	ctx := context.Background()

	var completed []string

	exec := executor.New(db, database.SQLite, tr,
		executor.WithProgressCallback(func(e executor.ProgressEvent) {
			if e.Status == executor.StatusCompleted {
				completed = append(completed, e.Statement.Name)
			}
		}),
	)

	statements := schema.Statements(database.SQLite)
	require.NoError(t, exec.Apply(ctx, statements, schema.Version))

	assert.Len(t, completed, len(statements))

	for _, table := range schema.Tables() {
		exists, err := database.TableExists(ctx, db, database.SQLite, table)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}

	version, err := tr.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.Version, version)
}

func TestApply_isIdempotent(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	tr := tracker.New(db, database.SQLite)
	ctx := context.Background()

	exec := executor.New(db, database.SQLite, tr)
	statements := schema.Statements(database.SQLite)

	require.NoError(t, exec.Apply(ctx, statements, schema.Version))
	require.NoError(t, exec.Apply(ctx, statements, schema.Version))

	version, err := tr.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.Version, version)
}

func TestApply_failedStatementLeavesNoVersionRecord(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	tr := tracker.New(db, database.SQLite)
	ctx := context.Background()

	var failed bool

	exec := executor.New(db, database.SQLite, tr,
		executor.WithProgressCallback(func(e executor.ProgressEvent) {
			if e.Status == executor.StatusFailed {
				failed = true
			}
		}),
	)

	statements := []schema.Statement{
		{Name: "users", SQL: "CREATE TABLE IF NOT EXISTS users (id INTEGER PRIMARY KEY)"},
		{Name: "broken", SQL: "CREATE TABEL nope"},
	}

	err := exec.Apply(ctx, statements, schema.Version)
	require.Error(t, err)
	assert.ErrorIs(t, err, executor.ErrExecutionFailed)
	assert.True(t, failed, "failure progress event expected")

	version, verr := tr.CurrentVersion(ctx)
	require.NoError(t, verr)
	assert.Equal(t, 0, version)

	// The transaction must have rolled the earlier statement back too.
	exists, terr := database.TableExists(ctx, db, database.SQLite, "users")
	require.NoError(t, terr)
	assert.False(t, exists)
}

func TestApply_dryRunTouchesNothing(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	tr := tracker.New(db, database.SQLite)
	ctx := context.Background()

	var skipped int

	exec := executor.New(db, database.SQLite, tr,
		executor.WithDryRun(true),
		executor.WithProgressCallback(func(e executor.ProgressEvent) {
			if e.Status == executor.StatusSkipped {
				skipped++
			}
		}),
	)

	statements := schema.Statements(database.SQLite)
	require.NoError(t, exec.Apply(ctx, statements, schema.Version))

	assert.Len(t, statements, skipped)

	exists, err := database.TableExists(ctx, db, database.SQLite, tracker.LedgerTable)
	require.NoError(t, err)
	assert.False(t, exists, "dry run must not create the ledger")
}

func TestApply_postgresSetsSessionTimeouts(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec("SET lock_timeout = '5000ms'").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SET statement_timeout = '30000ms'").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tr := tracker.New(db, database.Postgres)

	exec := executor.New(db, database.Postgres, tr,
		executor.WithLockTimeout(5*time.Second),
		executor.WithStatementTimeout(30*time.Second),
	)

	statements := []schema.Statement{
		{Name: "users", SQL: "CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY)"},
	}

	require.NoError(t, exec.Apply(context.Background(), statements, 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_beginFailureIsWrapped(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin().WillReturnError(errors.New("boom"))

	tr := tracker.New(db, database.Postgres)
	exec := executor.New(db, database.Postgres, tr)

	applyErr := exec.Apply(context.Background(), []schema.Statement{{Name: "users", SQL: "CREATE TABLE users ()"}}, 1)
	require.Error(t, applyErr)
	assert.ErrorContains(t, applyErr, "beginning transaction")
}
