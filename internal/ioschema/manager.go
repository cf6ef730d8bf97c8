// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/papersdb/pkg/config"
	"github.com/gnames/papersdb/pkg/db"
	"github.com/gnames/papersdb/pkg/lifecycle"
	"github.com/gnames/papersdb/pkg/schema"
	"gorm.io/gorm"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema using
// GORM AutoMigrate, the full-text index on SQLite and
// default code vocabularies.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	gdb, err := m.db()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gdb.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	if err := m.setup(ctx, gdb); err != nil {
		return err
	}

	slog.Info("Schema created", "dialect", m.operator.Dialect())
	return nil
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate. Catalogs made by older versions get
// fixed index triggers.
func (m *manager) Migrate(
	ctx context.Context,
	cfg *config.Config,
) error {
	gdb, err := m.db()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gdb.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	return m.setup(ctx, gdb)
}

func (m *manager) db() (*gorm.DB, error) {
	if m.operator == nil || m.operator.DB() == nil {
		return nil, NotConnectedError()
	}
	return m.operator.DB(), nil
}

func (m *manager) setup(ctx context.Context, gdb *gorm.DB) error {
	if m.operator.Dialect() == db.SQLite {
		if err := createFTS(ctx, gdb); err != nil {
			return err
		}
	}
	return seed(ctx, gdb)
}

// createFTS creates the full-text index of papers with its triggers and
// indexes papers that are already in the table.
func createFTS(ctx context.Context, gdb *gorm.DB) error {
	gdb = gdb.WithContext(ctx)

	stmts := append(schema.FTSDropTriggers(), schema.FTSDDL()...)
	stmts = append(stmts, schema.FTSRebuild())
	for _, q := range stmts {
		if err := gdb.Exec(q).Error; err != nil {
			return FTSError(err)
		}
	}
	return nil
}
