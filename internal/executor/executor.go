package executor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/schema"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/tracker"
)

// Progress status constants reported via ProgressEvent.
const (
	StatusStarting  = "starting"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// ProgressEvent is emitted by the executor for each schema statement processed.
type ProgressEvent struct {
	Statement *schema.Statement
	Status    string
	Duration  time.Duration
	Error     error
}

// VersionTracker abstracts schema_migrations operations for testability.
type VersionTracker interface {
	EnsureTable(ctx context.Context) error
	Record(ctx context.Context, ex tracker.Execer, version int) error
}

// Executor applies the schema DDL set inside a single transaction and
// records the schema version with it, so a failed statement leaves no
// version row behind.
type Executor struct {
	db               *sql.DB
	dialect          database.Dialect
	tracker          VersionTracker
	lockTimeout      time.Duration
	statementTimeout time.Duration
	dryRun           bool
	onProgress       func(ProgressEvent)
}

// Option configures an Executor.
type Option func(*Executor)

// WithLockTimeout sets the transaction lock_timeout (PostgreSQL only).
func WithLockTimeout(d time.Duration) Option {
	return func(e *Executor) { e.lockTimeout = d }
}

// WithStatementTimeout sets the transaction statement_timeout (PostgreSQL only).
func WithStatementTimeout(d time.Duration) Option {
	return func(e *Executor) { e.statementTimeout = d }
}

// WithDryRun enables dry-run mode where no SQL is executed.
func WithDryRun(b bool) Option {
	return func(e *Executor) { e.dryRun = b }
}

// WithProgressCallback sets a function called for each statement processed.
func WithProgressCallback(fn func(ProgressEvent)) Option {
	return func(e *Executor) { e.onProgress = fn }
}

// New creates an Executor with the given handle, tracker, and options.
func New(db *sql.DB, dialect database.Dialect, t VersionTracker, opts ...Option) *Executor {
	e := &Executor{
		db:      db,
		dialect: dialect,
		tracker: t,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Apply executes the statement set and records version in the same
// transaction. In dry-run mode every statement is reported as skipped
// and nothing is written, not even the ledger table.
func (e *Executor) Apply(ctx context.Context, statements []schema.Statement, version int) error {
	if e.dryRun {
		for i := range statements {
			e.fireProgress(ProgressEvent{Statement: &statements[i], Status: StatusSkipped})
		}

		return nil
	}

	if err := e.tracker.EnsureTable(ctx); err != nil {
		return err
	}

	return ExecInTransaction(ctx, e.db, func(tx *sql.Tx) error {
		if err := e.setTimeouts(ctx, tx); err != nil {
			return err
		}

		for i := range statements {
			if err := e.applyOne(ctx, tx, &statements[i]); err != nil {
				return err
			}
		}

		if err := e.tracker.Record(ctx, tx, version); err != nil {
			return err
		}

		return nil
	})
}

// setTimeouts applies the configured session timeouts. SQLite has no
// equivalent settings; its busy_timeout pragma is applied at open time.
func (e *Executor) setTimeouts(ctx context.Context, tx *sql.Tx) error {
	if e.dialect != database.Postgres {
		return nil
	}

	if e.lockTimeout > 0 {
		if err := SetLockTimeout(ctx, tx, e.lockTimeout); err != nil {
			return err
		}
	}

	if e.statementTimeout > 0 {
		if err := SetStatementTimeout(ctx, tx, e.statementTimeout); err != nil {
			return err
		}
	}

	return nil
}

// applyOne executes a single statement and fires progress events.
func (e *Executor) applyOne(ctx context.Context, tx *sql.Tx, stmt *schema.Statement) error {
	e.fireProgress(ProgressEvent{Statement: stmt, Status: StatusStarting})

	start := time.Now()
	_, execErr := tx.ExecContext(ctx, stmt.SQL)
	duration := time.Since(start)

	if execErr != nil {
		e.fireProgress(ProgressEvent{
			Statement: stmt,
			Status:    StatusFailed,
			Duration:  duration,
			Error:     execErr,
		})

		return fmt.Errorf("%w: %s: %w", ErrExecutionFailed, stmt.Name, execErr)
	}

	e.fireProgress(ProgressEvent{
		Statement: stmt,
		Status:    StatusCompleted,
		Duration:  duration,
	})

	return nil
}

func (e *Executor) fireProgress(event ProgressEvent) {
	if e.onProgress != nil {
		e.onProgress(event)
	}
}
