// Package testutil provides helpers for integration tests against a local
// Postgres instance.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	// Import pgx driver for database/sql compatibility in tests.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// TestDBConfig holds configuration for the test database.
type TestDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DefaultTestDBConfig returns default test database configuration.
// Defaults to port 55432 (local test DB from docker-compose test profile).
// CI/CD environments should set TEST_DB_PORT=5432 explicitly.
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "55432"),
		User:     getEnvOrDefault("TEST_DB_USER", "perception"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "perception"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "perception_test"),
	}
}

// TestingTB is the subset of testing.TB the helpers need.
type TestingTB interface {
	Helper()
	Skip(args ...interface{})
	Skipf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

// SkipIfNoTestDB skips the test if the test database is not available.
// Set TEST_DB_REQUIRED=1 to fail instead of skipping (CI).
func SkipIfNoTestDB(t TestingTB) {
	t.Helper()

	db, err := sql.Open("pgx", dsn(DefaultTestDBConfig()))
	if err != nil {
		if requireDB() {
			t.Fatal("Test database not available:", err)
		}
		t.Skip("Test database not available:", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			t.Logf("test db close failed: %v", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if requireDB() {
			t.Fatal("Test database not reachable:", pingErr)
		}
		t.Skip("Test database not reachable:", pingErr)
	}
}

// SetupTestDB opens the test database, installs the report fixture schema,
// and clears any leftover data. The production schema belongs to the client
// processing application; the tables created here mirror the columns the
// report queries touch.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)

	db, err := sql.Open("pgx", dsn(DefaultTestDBConfig()))
	if err != nil {
		t.Fatal("Failed to open database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		t.Fatal("Failed to connect to test database. Make sure PostgreSQL is running (docker-compose up -d):", pingErr)
	}

	if schemaErr := ensureReportSchema(ctx, db); schemaErr != nil {
		t.Fatal("Failed to install fixture schema:", schemaErr)
	}

	CleanupTestDB(t, db)
	return db
}

// CleanupTestDB removes all fixture rows in FK dependency order.
func CleanupTestDB(t TestingTB, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "DELETE FROM process"); err != nil {
		t.Fatalf("Failed to clean up table process: %v", err)
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM source"); err != nil {
		t.Fatalf("Failed to clean up table source: %v", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM "USER"`); err != nil {
		t.Fatalf("Failed to clean up table USER: %v", err)
	}
}

// TeardownTestDB cleans up and closes the database connection.
func TeardownTestDB(t TestingTB, db *sql.DB) {
	t.Helper()
	if db != nil {
		CleanupTestDB(t, db)
		if err := db.Close(); err != nil {
			t.Fatal("Failed to close database:", err)
		}
	}
}

// WithTestDB is a helper that sets up and tears down a test database.
func WithTestDB(t TestingTB, fn func(*sql.DB)) {
	t.Helper()
	db := SetupTestDB(t)
	defer TeardownTestDB(t, db)
	fn(db)
}

// ensureReportSchema creates the subset of the client-processing schema the
// report reads, plus the status enum rows the classifier tests rely on.
func ensureReportSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS process_status (
			id   integer PRIMARY KEY,
			name text NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS "USER" (
			id      serial PRIMARY KEY,
			name    text NOT NULL,
			api_key text,
			role_id integer NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS source (
			id      serial PRIMARY KEY,
			user_id integer NOT NULL REFERENCES "USER"(id),
			uri     text,
			alias   text,
			uuid    text
		)`,
		`CREATE TABLE IF NOT EXISTS process (
			id                 serial PRIMARY KEY,
			source_id          integer NOT NULL REFERENCES source(id),
			status_id          integer REFERENCES process_status(id),
			uuid               text NOT NULL,
			start_time         timestamptz NOT NULL,
			ping_time          timestamptz,
			stop_time          timestamptz,
			user_configuration jsonb
		)`,
		`INSERT INTO process_status (id, name) VALUES
			(1, 'Finished'),
			(2, 'Failed with error'),
			(3, 'Running'),
			(4, 'Queued')
		ON CONFLICT (id) DO NOTHING`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("fixture schema: %w", err)
		}
	}
	return nil
}

func dsn(cfg TestDBConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, cfg.Port)
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		cfg.User, cfg.Password, hostPort, cfg.DBName)
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireDB() bool {
	v := strings.TrimSpace(os.Getenv("TEST_DB_REQUIRED"))
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
