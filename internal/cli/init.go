package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/config"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/conninfo"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/executor"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/schema"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/tracker"
)

// errDatabaseURLRequired is returned when no database URL is configured.
var errDatabaseURLRequired = errors.New(
	"database URL is required (set --database-url, TTTDB_DATABASE_URL, or database_url in config)",
)

var initCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "init",
	Short: "Initialize the tic-tac-toe database schema",
	Long: `Create the application tables and indices if absent and record
the schema version. Safe to re-run: an up-to-date store is left untouched.
On success the connection metadata files are (re)written.`,
	RunE: runInit,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	initCmd.Flags().Bool("dry-run", false, "show what would be applied without executing")
	initCmd.Flags().Bool("skip-conninfo", false, "do not write connection metadata files")
	initCmd.Flags().Duration("lock-timeout", 0, "override lock timeout (PostgreSQL only)")
	initCmd.Flags().Duration("statement-timeout", 0, "override statement timeout (PostgreSQL only)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	cfg := AppConfig
	out := cmd.OutOrStdout()

	if cfg.DatabaseURL == "" {
		return errDatabaseURLRequired
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skipConnInfo, _ := cmd.Flags().GetBool("skip-conninfo")

	lockTimeout := cfg.LockTimeout
	if cmd.Flags().Changed("lock-timeout") {
		lockTimeout, _ = cmd.Flags().GetDuration("lock-timeout")
	}

	stmtTimeout := cfg.StatementTimeout
	if cmd.Flags().Changed("statement-timeout") {
		stmtTimeout, _ = cmd.Flags().GetDuration("statement-timeout")
	}

	dialect := database.DetectDialect(cfg.DatabaseURL)

	if err := schema.Validate(dialect); err != nil {
		return fmt.Errorf("validating schema: %w", err)
	}

	target, err := resolveTarget(dialect, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	reportTarget(out, target)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := connectDB(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := applySchema(ctx, out, db, dialect, applyOpts{
		lockTimeout: lockTimeout,
		stmtTimeout: stmtTimeout,
		dryRun:      dryRun,
	}); err != nil {
		return err
	}

	if dryRun {
		return nil
	}

	if !skipConnInfo {
		fmt.Fprintln(out, "Writing connection info ...")

		if err := conninfo.Write(target, cfg.ConnInfoPath, cfg.VisualizerDir); err != nil {
			return fmt.Errorf("writing connection info: %w", err)
		}
	}

	fmt.Fprintln(out, "Database initialization complete!")
	fmt.Fprintf(out, "Location: %s\n", targetLocation(target))

	return nil
}

type applyOpts struct {
	lockTimeout time.Duration
	stmtTimeout time.Duration
	dryRun      bool
}

// resolveTarget builds the conninfo target, resolving the SQLite file
// path where applicable.
func resolveTarget(dialect database.Dialect, databaseURL string) (conninfo.Target, error) {
	target := conninfo.Target{Dialect: dialect, URL: databaseURL}

	if dialect == database.SQLite {
		path, err := database.SQLitePath(databaseURL)
		if err != nil {
			return conninfo.Target{}, fmt.Errorf("resolving database path: %w", err)
		}

		target.Path = path
	}

	return target, nil
}

// reportTarget prints whether a SQLite database file already exists.
// Server-backed stores have nothing to report before connecting.
func reportTarget(out io.Writer, target conninfo.Target) {
	if target.Dialect != database.SQLite {
		return
	}

	fmt.Fprintln(out, "Checking for existing SQLite database ...")

	if _, err := os.Stat(target.Path); err != nil {
		fmt.Fprintf(out, "Database will be created at %s\n", target.Path)
	} else {
		fmt.Fprintf(out, "Database found at %s\n", target.Path)
	}
}

func connectDB(ctx context.Context, cfg *config.Config, out io.Writer) (*sql.DB, error) {
	fmt.Fprintf(out, "Connecting to %s\n", config.RedactURL(cfg.DatabaseURL))

	db, _, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return db, nil
}

// applySchema checks the ledger and applies the DDL set if outdated.
func applySchema(ctx context.Context, out io.Writer, db *sql.DB, dialect database.Dialect, opts applyOpts) error {
	t := tracker.New(db, dialect)

	upToDate, err := t.IsUpToDate(ctx, schema.Version)
	if err != nil {
		return fmt.Errorf("checking schema version: %w", err)
	}

	if upToDate {
		fmt.Fprintln(out, "Schema already up-to-date.")

		return nil
	}

	statements := schema.Statements(dialect)

	if opts.dryRun {
		fmt.Fprintln(out, "--- DRY RUN (no changes will be made) ---")

		for _, stmt := range statements {
			fmt.Fprintf(out, "  Would apply %s\n", stmt.Name)
		}

		fmt.Fprintf(out, "Dry run complete: %d statement(s) would be applied (schema version %d).\n",
			len(statements), schema.Version)

		return nil
	}

	fmt.Fprintln(out, "Applying database schema ...")

	exec := executor.New(db, dialect, t,
		executor.WithLockTimeout(opts.lockTimeout),
		executor.WithStatementTimeout(opts.stmtTimeout),
		executor.WithProgressCallback(func(event executor.ProgressEvent) {
			switch event.Status {
			case executor.StatusStarting:
				fmt.Fprintf(out, "  Applying %s ... ", event.Statement.Name)
			case executor.StatusCompleted:
				fmt.Fprintf(out, "done (%s)\n", event.Duration.Truncate(time.Millisecond))
			case executor.StatusFailed:
				fmt.Fprintf(out, "FAILED\n")
				fmt.Fprintf(out, "    Error: %v\n", event.Error)
			}
		}),
	)

	if err := exec.Apply(ctx, statements, schema.Version); err != nil {
		return err
	}

	fmt.Fprintln(out, "Schema created or updated successfully.")

	return nil
}

// targetLocation is the human-readable location printed in the summary.
func targetLocation(target conninfo.Target) string {
	if target.Dialect == database.SQLite {
		return target.Path
	}

	return config.RedactURL(target.URL)
}
