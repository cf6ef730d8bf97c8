package cmd

import (
	"context"
	"testing"

	"github.com/gnames/papersdb/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMigrateCmd(t *testing.T) {
	cmd := getMigrateCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "migrate", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.Contains(t, cmd.Short, "schema")
	assert.Contains(t, cmd.Long, "non-destructive")
	assert.Contains(t, cmd.Long, "older versions")

	help, err := run(t, getMigrateCmd(), "--help")
	require.NoError(t, err)
	assert.Contains(t, help, "papersdb migrate --store")
}

func TestMigrateCommand(t *testing.T) {
	c := iotesting.SQLiteConfig(t)
	useConfig(t, c)

	// an empty catalog is left alone
	_, err := run(t, getMigrateCmd())
	require.NoError(t, err)

	_, err = run(t, getAddCmd(), "-t", "Cardiac models", "-c", "PHHD", "-p", "CALS")
	require.NoError(t, err)
	_, err = run(t, getMigrateCmd())
	require.NoError(t, err)

	st := openTestStore(t, c)
	papers, err := st.AllRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, papers, 1, "migration keeps records")
	assert.Equal(t, "Cardiac models", papers[0].Title)
}
