package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"
	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/parser"
)

// ErrInvalidStatement indicates a DDL statement failed the preflight check.
var ErrInvalidStatement = errors.New("invalid schema statement")

// Validate preflights the DDL set for a dialect before any of it is
// executed. PostgreSQL statements are run through the real PostgreSQL
// parser; SQLite statements get a shape check only, since no embeddable
// SQLite grammar ships with the toolchain.
func Validate(dialect database.Dialect) error {
	for _, stmt := range Statements(dialect) {
		if strings.TrimSpace(stmt.SQL) == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidStatement, stmt.Name)
		}

		if dialect != database.Postgres {
			continue
		}

		n, err := parser.StatementCount(stmt.SQL)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidStatement, stmt.Name, err)
		}

		if n != 1 {
			return fmt.Errorf("%w: %s contains %d statements, want 1", ErrInvalidStatement, stmt.Name, n)
		}
	}

	return nil
}
