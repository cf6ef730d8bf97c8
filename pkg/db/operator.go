package db

import (
	"context"

	"github.com/gnames/papersdb/pkg/config"
	"gorm.io/gorm"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the *gorm.DB for
// high-level components (SchemaManager, Store) to execute their
// specialized SQL operations internally.
type Operator interface {
	// Connect opens the store described by the configuration. The driver
	// is either "sqlite" or "postgres".
	Connect(context.Context, *config.Config) error

	// Close closes the database connections.
	Close() error

	// DB returns the GORM handle of the store.
	DB() *gorm.DB

	// Dialect returns the name of the driver in use.
	Dialect() string

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables of the store.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}

const (
	// SQLite is the dialect of a single-file store.
	SQLite = "sqlite"
	// Postgres is the dialect of a shared PostgreSQL store.
	Postgres = "postgres"
)
