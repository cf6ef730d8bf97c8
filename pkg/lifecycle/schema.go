package lifecycle

import (
	"context"

	"github.com/gnames/papersdb/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and migrations.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the initial database schema using GORM AutoMigrate.
	// On SQLite it also creates the full-text index of papers. Empty code
	// vocabularies are filled with default codes.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate updates the database schema to the latest version using GORM AutoMigrate.
	// It is used to open catalogs created by older versions.
	Migrate(ctx context.Context, cfg *config.Config) error
}
