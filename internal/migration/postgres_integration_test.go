package migration

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// setupPostgresTestDB connects to ESTUDAI_TEST_POSTGRES or skips.
func setupPostgresTestDB(t *testing.T) (*sql.DB, func()) {
	connStr := os.Getenv("ESTUDAI_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("ESTUDAI_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	cleanup := func() {
		db.Exec("DROP TABLE IF EXISTS test_posts")
		db.Exec("DROP TABLE IF EXISTS test_users")
		db.Exec("DROP TABLE IF EXISTS schema_version")
		db.Close()
	}
	return db, cleanup
}

// TestPostgresApplyMigrations checks the $1 placeholder path end to end.
func TestPostgresApplyMigrations(t *testing.T) {
	db, cleanup := setupPostgresTestDB(t)
	defer cleanup()

	runner := NewRunner(db, testMigrations(t, map[string]string{
		"001_init.sql":  "CREATE TABLE test_users (id SERIAL PRIMARY KEY, name TEXT NOT NULL);",
		"002_posts.sql": "CREATE TABLE test_posts (id SERIAL PRIMARY KEY, user_id INTEGER NOT NULL REFERENCES test_users(id));",
	}), DriverPostgres)

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}

	if err := runner.SetVersion(1); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1, got %d", version)
	}
}
