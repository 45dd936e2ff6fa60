package postgres_test

import (
	"context"
	"database/sql"
	"osintscan"
	"osintscan/pkg/domain"
	"osintscan/pkg/storage/postgres"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
	testDB       = "testdb"
)

// startPostgres runs a throwaway postgres:17 container and returns the
// options to reach it. The container is terminated when the test ends.
func startPostgres(t *testing.T) postgres.Options {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests are skipped in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       testDB,
			},
			// postgres restarts once after initdb, so wait for the second ready line
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err, "could not start postgres container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return postgres.Options{
		Username:           testUser,
		Password:           testPassword,
		Host:               host,
		Port:               port.Int(),
		Database:           testDB,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 1,
	}
}

// setupTestDB connects to a fresh container and applies the embedded migrations.
func setupTestDB(t *testing.T) (*postgres.PgSQL, func()) {
	t.Helper()

	pgSQL, err := postgres.New(context.Background(), startPostgres(t))
	require.NoError(t, err)

	goose.SetBaseFS(osintscan.Migrations)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(pgSQL.DB.(*sql.DB), "migrations"))

	return pgSQL, func() { _ = pgSQL.Close() }
}

// seedAccount creates an account with the given balance and members.
func seedAccount(t *testing.T, pg *postgres.PgSQL, balance int64, members ...domain.UserID) domain.AccountID {
	t.Helper()

	id := uuid.New()
	_, err := pg.DB.ExecContext(context.Background(),
		`INSERT INTO accounts (id, name, balance) VALUES ($1, $2, $3)`, id, "acme-"+id.String()[:8], balance)
	require.NoError(t, err)

	for _, m := range members {
		_, err = pg.DB.ExecContext(context.Background(),
			`INSERT INTO account_members (account_id, user_id) VALUES ($1, $2)`, id, uuid.UUID(m))
		require.NoError(t, err)
	}

	return domain.AccountID(id)
}
