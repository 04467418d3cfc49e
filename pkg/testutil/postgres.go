package testutil

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/postgres"
)

// PostgresContainer is a throwaway audit database for integration tests.
type PostgresContainer struct {
	Container *tcpostgres.PostgresContainer
	DSN       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts PostgreSQL 16 and opens a pool on it. Pool and
// container are released by t.Cleanup.
func NewPostgresContainer(ctx context.Context, t *testing.T) *PostgresContainer {
	t.Helper()

	c, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("fraudalert"),
		tcpostgres.WithUsername("fraud"),
		tcpostgres.WithPassword("fraud"),
		testcontainers.WithWaitStrategy(
			// The server restarts once after initdb, hence two occurrences.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err, "start postgres container")

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "postgres connection string")

	pool, err := postgres.NewPool(ctx, postgres.Config{DSN: dsn, MaxConns: 4})
	require.NoError(t, err, "open pool")
	t.Cleanup(pool.Close)

	return &PostgresContainer{Container: c, DSN: dsn, Pool: pool}
}

// Migrate applies the migrations found in dir of fsys.
func (pc *PostgresContainer) Migrate(t *testing.T, fsys fs.FS, dir string) {
	t.Helper()
	require.NoError(t, postgres.RunMigrations(fsys, dir, pc.DSN), "run migrations")
}
