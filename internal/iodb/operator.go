// Package iodb implements database operations using GORM.
// This is an impure I/O package that implements contracts
// defined in pkg/.
//
// SQLite stores are opened with the pure Go modernc.org/sqlite driver,
// PostgreSQL stores through a pgxpool connection pool.
package iodb

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/papersdb/pkg/config"
	"github.com/gnames/papersdb/pkg/db"
	"github.com/gnames/papersdb/pkg/schema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

// gormOperator implements db.Operator interface using GORM on top of
// SQLite or PostgreSQL.
type gormOperator struct {
	db      *gorm.DB
	pool    *pgxpool.Pool
	dialect string
}

// NewOperator creates a new database operator
// (without connecting).
func NewOperator() db.Operator {
	return &gormOperator{}
}

// Connect opens the store. Uses sensible hardcoded pool settings that work
// well for a single operator.
func (o *gormOperator) Connect(
	ctx context.Context,
	cfg *config.Config,
) error {
	var err error
	switch cfg.Store.Driver {
	case db.SQLite:
		err = o.connectSQLite(ctx, cfg.StorePath())
	case db.Postgres:
		err = o.connectPostgres(ctx, &cfg.Store)
	default:
		err = UnknownDriverError(cfg.Store.Driver)
	}
	if err != nil {
		return err
	}
	o.dialect = cfg.Store.Driver
	return nil
}

func (o *gormOperator) connectSQLite(ctx context.Context, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return ConnectionError(db.SQLite, path, err)
		}
	}

	dsn := "file:" + path +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite"
	gdb, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: "sqlite",
		DSN:        dsn,
	}), gormConfig())
	if err != nil {
		return ConnectionError(db.SQLite, path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return ConnectionError(db.SQLite, path, err)
	}
	// SQLite allows one writer, a single connection avoids lock errors.
	sqlDB.SetMaxOpenConns(1)

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return ConnectionError(db.SQLite, path, err)
	}

	slog.Info("Opened SQLite store", "path", path)
	o.db = gdb
	return nil
}

func (o *gormOperator) connectPostgres(
	ctx context.Context,
	cfg *config.StoreConfig,
) error {
	target := fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)

	// Build connection string
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(db.Postgres, target, err)
	}

	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(db.Postgres, target, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(db.Postgres, target, err)
	}

	// Convert pgxpool to database/sql for GORM
	sqlDB := stdlib.OpenDBFromPool(pool)
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), gormConfig())
	if err != nil {
		pool.Close()
		return ConnectionError(db.Postgres, target, err)
	}

	slog.Info("Connected to PostgreSQL store", "target", target)
	o.db = gdb
	o.pool = pool
	return nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

// Close releases all database connections.
func (o *gormOperator) Close() error {
	if o.db != nil {
		if sqlDB, err := o.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		o.db = nil
	}
	if o.pool != nil {
		o.pool.Close()
		o.pool = nil
	}
	return nil
}

// DB returns the GORM handle of the store.
func (o *gormOperator) DB() *gorm.DB {
	return o.db
}

// Dialect returns "sqlite" or "postgres".
func (o *gormOperator) Dialect() string {
	return o.dialect
}

// TableExists checks if a table exists in the current
// database.
func (o *gormOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}
	return o.db.WithContext(ctx).Migrator().HasTable(tableName), nil
}

// HasTables checks if the database has any user tables.
func (o *gormOperator) HasTables(
	ctx context.Context,
) (bool, error) {
	tables, err := o.tables(ctx)
	if err != nil {
		return false, err
	}
	return len(tables) > 0, nil
}

// DropAllTables drops all tables of the store, including the full-text
// index.
func (o *gormOperator) DropAllTables(ctx context.Context) error {
	if o.db == nil {
		return NotConnectedError()
	}
	gdb := o.db.WithContext(ctx)

	if o.dialect == db.SQLite {
		// shadow tables of the index go away with the virtual table
		q := "DROP TABLE IF EXISTS " + schema.FTSTable
		if err := gdb.Exec(q).Error; err != nil {
			return DropTableError(schema.FTSTable, err)
		}
	}

	tables, err := o.tables(ctx)
	if err != nil {
		return err
	}

	for _, table := range tables {
		dropSQL := "DROP TABLE IF EXISTS " + quote(table)
		if o.dialect == db.Postgres {
			dropSQL += " CASCADE"
		}
		if err := gdb.Exec(dropSQL).Error; err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}

func (o *gormOperator) tables(ctx context.Context) ([]string, error) {
	if o.db == nil {
		return nil, NotConnectedError()
	}

	var query string
	switch o.dialect {
	case db.Postgres:
		query = `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'`
	default:
		query = `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
	}

	var res []string
	err := o.db.WithContext(ctx).Raw(query).Scan(&res).Error
	if err != nil {
		return nil, TableCheckError(err)
	}
	return res, nil
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
