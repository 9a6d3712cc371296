// Package conninfo writes the connection metadata files consumed by
// external tooling: a commented db_connection.txt describing how to reach
// the store, and a shell-style env file for the database visualizer.
package conninfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"
)

// EnvFileName is the visualizer env file written under the visualizer directory.
const EnvFileName = "sqlite.env"

const (
	connFileMode = os.FileMode(0o600)
	dirMode      = os.FileMode(0o755)
)

// Target describes the store the metadata files should point at.
type Target struct {
	Dialect database.Dialect
	URL     string // database URL as configured
	Path    string // absolute SQLite file path; empty for server-backed stores
}

// Write renders both metadata files. The visualizer directory is created
// if missing. Existing files are overwritten on every run.
func Write(t Target, connInfoPath, visualizerDir string) error {
	if err := os.WriteFile(connInfoPath, []byte(connectionText(t)), connFileMode); err != nil {
		return fmt.Errorf("writing %s: %w", connInfoPath, err)
	}

	if err := os.MkdirAll(visualizerDir, dirMode); err != nil {
		return fmt.Errorf("creating %s: %w", visualizerDir, err)
	}

	envPath := filepath.Join(visualizerDir, EnvFileName)
	if err := os.WriteFile(envPath, []byte(envText(t)), connFileMode); err != nil {
		return fmt.Errorf("writing %s: %w", envPath, err)
	}

	return nil
}

// connectionText renders db_connection.txt for the target.
func connectionText(t Target) string {
	var b strings.Builder

	if t.Dialect == database.Postgres {
		fmt.Fprintf(&b, "# PostgreSQL connection methods:\n")
		fmt.Fprintf(&b, "# Go: sql.Open(%q, %q)\n", "pgx", t.URL)
		fmt.Fprintf(&b, "# Connection string: %s\n", t.URL)

		return b.String()
	}

	fmt.Fprintf(&b, "# SQLite connection methods:\n")
	fmt.Fprintf(&b, "# Go: sql.Open(%q, %q)\n", "sqlite", t.Path)
	fmt.Fprintf(&b, "# Connection string: sqlite://%s\n", t.Path)
	fmt.Fprintf(&b, "# File path: %s\n", t.Path)

	return b.String()
}

// envText renders the visualizer env file for the target.
func envText(t Target) string {
	if t.Dialect == database.Postgres {
		return fmt.Sprintf("export DATABASE_URL=%q\n", t.URL)
	}

	return fmt.Sprintf("export SQLITE_DB=%q\n", t.Path)
}
