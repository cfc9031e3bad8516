// Package testhelper provides a migrated PostgreSQL for integration tests.
//
// By default a postgres container is started once per test binary. Set
// TEST_DATABASE_DSN to run against an existing database instead; run such
// suites with -p 1 since Truncate is not safe across packages.
package testhelper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/arabizi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/arabizi-backend/migrations"
)

// DSNEnv names the variable that bypasses the container.
const DSNEnv = "TEST_DATABASE_DSN"

const (
	image     = "postgres:17-alpine"
	dbUser    = "arabizi"
	dbPass    = "arabizi"
	dbName    = "arabizi_test"
	bootLimit = 2 * time.Minute
)

var (
	once    sync.Once
	dsn     string
	bootErr error
)

// SetupTestDB returns a pool on a migrated database. The pool is closed
// through t.Cleanup. The test is skipped under -short.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("testhelper: database tests are skipped in -short mode")
	}

	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), bootLimit)
		defer cancel()
		dsn, bootErr = prepare(ctx)
	})
	if bootErr != nil {
		t.Fatalf("testhelper: %v", bootErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("testhelper: open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// Truncate empties tables and fails the test on error.
func Truncate(t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()

	if len(tables) == 0 {
		return
	}
	ident := make([]string, len(tables))
	for i, name := range tables {
		ident[i] = pgx.Identifier{name}.Sanitize()
	}

	_, err := pool.Exec(context.Background(), "TRUNCATE "+strings.Join(ident, ", "))
	if err != nil {
		t.Fatalf("testhelper: truncate %v: %v", tables, err)
	}
}

func prepare(ctx context.Context) (string, error) {
	target := os.Getenv(DSNEnv)
	if target == "" {
		var err error
		if target, err = startContainer(ctx); err != nil {
			return "", err
		}
	}

	pool, err := pgxpool.New(ctx, target)
	if err != nil {
		return "", fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return "", fmt.Errorf("ping: %w", err)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := postgres.Migrate(ctx, pool, migrations.FS, quiet); err != nil {
		return "", err
	}
	return target, nil
}

func startContainer(ctx context.Context) (string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbPass,
				"POSTGRES_DB":       dbName,
			},
			// postgres logs readiness twice: once for the init run, once for real.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start %s: %w", image, err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, host, port.Port(), dbName), nil
}
