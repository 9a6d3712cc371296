package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/config"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/schema"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/tracker"
)

var statusCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "status",
	Short: "Show schema status",
	Long: `Display the recorded schema version against the expected one,
and whether each application table is present.`,
	RunE: runStatus,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg := AppConfig
	out := cmd.OutOrStdout()

	if cfg.DatabaseURL == "" {
		return errDatabaseURLRequired
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, dialect, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(out, "Store:    %s (%s)\n", config.RedactURL(cfg.DatabaseURL), dialect)

	current, err := tracker.New(db, dialect).CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	fmt.Fprintf(out, "Version:  %d (expected %d)\n", current, schema.Version)

	if current >= schema.Version {
		fmt.Fprintln(out, "Schema:   up-to-date")
	} else {
		fmt.Fprintln(out, "Schema:   outdated, run 'tttdb init'")
	}

	for _, table := range schema.Tables() {
		exists, err := database.TableExists(ctx, db, dialect, table)
		if err != nil {
			return err
		}

		mark := "missing"
		if exists {
			mark = "present"
		}

		fmt.Fprintf(out, "  %-12s %s\n", table, mark)
	}

	return nil
}
