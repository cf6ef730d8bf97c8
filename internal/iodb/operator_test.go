package iodb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/papersdb/internal/iodb"
	"github.com/gnames/papersdb/internal/iotesting"
	"github.com/gnames/papersdb/pkg/config"
	"github.com/gnames/papersdb/pkg/db"
	"github.com/gnames/papersdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PostgreSQL tests need a server. Connection settings come from
// PAPERSDB_STORE_* environment variables, the database name is always
// papersdb_test. They are skipped in short mode or when no server
// answers.

func TestConnectSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.SQLiteConfig(t)

	op := iodb.NewOperator()
	err := op.Connect(ctx, cfg)
	require.NoError(t, err)
	defer op.Close()

	assert.Equal(t, db.SQLite, op.Dialect())
	assert.NotNil(t, op.DB())
	assert.FileExists(t, cfg.StorePath())

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	exists, err := op.TableExists(ctx, "papers")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestConnectSQLiteCreatesDir(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.SQLiteConfig(t)
	path := filepath.Join(cfg.HomeDir, "nested", "dir", "papers.db")
	cfg.Update([]config.Option{config.OptStorePath(path)})

	op := iodb.NewOperator()
	require.NoError(t, op.Connect(ctx, cfg))
	defer op.Close()
	assert.FileExists(t, path)
}

func TestConnectUnknownDriver(t *testing.T) {
	cfg := iotesting.SQLiteConfig(t)
	cfg.Store.Driver = "mysql"

	op := iodb.NewOperator()
	err := op.Connect(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, op.DB())
}

func TestNotConnected(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewOperator()

	_, err := op.TableExists(ctx, "papers")
	assert.Error(t, err)
	_, err = op.HasTables(ctx)
	assert.Error(t, err)
	assert.Error(t, op.DropAllTables(ctx))
	assert.NoError(t, op.Close())
}

func TestDropAllTablesSQLite(t *testing.T) {
	ctx := context.Background()
	op, _ := iotesting.OpenSQLite(t)

	exists, err := op.TableExists(ctx, schema.Paper{}.TableName())
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, op.DropAllTables(ctx))

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestConnectPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	cfg := iotesting.PostgresConfig(t)

	op := iodb.NewOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	defer op.Close()

	assert.Equal(t, db.Postgres, op.Dialect())
	exists, err := op.TableExists(ctx, "nonexistent_table")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestConnectPostgresInvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	cfg := iotesting.PostgresConfig(t)
	cfg.Update([]config.Option{
		config.OptStoreHost("invalid-host-that-does-not-exist.local"),
	})

	op := iodb.NewOperator()
	err := op.Connect(context.Background(), cfg)
	assert.Error(t, err)
}
