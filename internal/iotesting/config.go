// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gnames/papersdb/internal/iodb"
	"github.com/gnames/papersdb/internal/ioschema"
	"github.com/gnames/papersdb/pkg/config"
	"github.com/gnames/papersdb/pkg/db"
)

const (
	// TestDatabaseName is the PostgreSQL database used by integration
	// tests. Tests never run against a production database.
	TestDatabaseName = "papersdb_test"
)

// SQLiteConfig returns a configuration with a SQLite store in a temporary
// directory. The directory is removed when the test finishes.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	home := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptStorePath(filepath.Join(home, "papers.db")),
		config.OptLogDestination("stderr"),
	})
	return cfg
}

// PostgresConfig returns a configuration for the PostgreSQL test
// database. Connection settings are taken from PAPERSDB_STORE_*
// environment variables, the database name is always TestDatabaseName.
func PostgresConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	opts := []config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptStoreDriver("postgres"),
		config.OptStoreDatabase(TestDatabaseName),
		config.OptLogDestination("stderr"),
	}
	if s := os.Getenv("PAPERSDB_STORE_HOST"); s != "" {
		opts = append(opts, config.OptStoreHost(s))
	}
	if s := os.Getenv("PAPERSDB_STORE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptStorePort(port))
		}
	}
	if s := os.Getenv("PAPERSDB_STORE_USER"); s != "" {
		opts = append(opts, config.OptStoreUser(s))
	}
	if s := os.Getenv("PAPERSDB_STORE_PASSWORD"); s != "" {
		opts = append(opts, config.OptStorePassword(s))
	}
	cfg.Update(opts)
	return cfg
}

// OpenSQLite connects to a fresh SQLite store with a created schema.
// The connection is closed when the test finishes.
func OpenSQLite(t *testing.T) (db.Operator, *config.Config) {
	t.Helper()
	cfg := SQLiteConfig(t)
	op := Open(t, cfg)
	return op, cfg
}

// Open connects to the store of a configuration and creates its schema.
// The connection is closed when the test finishes.
func Open(t *testing.T, cfg *config.Config) db.Operator {
	t.Helper()
	ctx := context.Background()

	op := iodb.NewOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		t.Fatalf("Failed to connect to store: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })

	sm := ioschema.NewManager(op)
	if err := sm.Create(ctx, cfg); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return op
}
