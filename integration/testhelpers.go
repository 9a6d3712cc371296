//go:build integration

package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/database"
)

const (
	postgresImage = "postgres:16-alpine"
	testDB        = "tictactoe_test"
	testUser      = "tictactoe"
	testPassword  = "tictactoe"
)

// SetupPostgres starts a PostgreSQL 16 container and returns an open
// database handle plus the connection URL. Both are cleaned up when the
// test completes.
func SetupPostgres(t *testing.T) (*sql.DB, string) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       testDB,
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := "postgres://" + testUser + ":" + testPassword + "@" + host + ":" + port.Port() + "/" + testDB + "?sslmode=disable"

	db, dialect, err := database.Open(ctx, dsn)
	require.NoError(t, err)
	require.Equal(t, database.Postgres, dialect)

	t.Cleanup(func() {
		db.Close()
	})

	return db, dsn
}
