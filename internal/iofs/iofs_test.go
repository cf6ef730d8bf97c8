package iofs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	dirs := []string{
		filepath.Join(tmpDir, ".config", "papersdb"),
		filepath.Join(tmpDir, ".local", "share", "papersdb"),
		filepath.Join(tmpDir, ".local", "share", "papersdb", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err, v)
		assert.True(t, info.IsDir(), v)
	}
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureDirs(tmpDir))
}

func TestTouchDir_ExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.Error(t, touchDir(filepath.Join(path, "sub")))
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	require.NoError(t, EnsureConfigFile(tmpDir))
	configPath := filepath.Join(tmpDir, ".config", "papersdb", "config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

// TestEnsureConfigFile_Idempotent verifies that user edits survive.
func TestEnsureConfigFile_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	configPath := filepath.Join(tmpDir, ".config", "papersdb", "config.yaml")
	custom := "naming:\n  scheme: simple\n"
	require.NoError(t, os.WriteFile(configPath, []byte(custom), 0644))

	require.NoError(t, EnsureConfigFile(tmpDir))
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func TestConfigYAML_Embedded(t *testing.T) {
	assert.NotEmpty(t, ConfigYAML)
	for _, v := range []string{"store:", "artifacts:", "naming:", "search:", "log:"} {
		assert.Contains(t, ConfigYAML, v)
	}
}

func TestBackupFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "papers.db")
	require.NoError(t, os.WriteFile(path, []byte("store data"), 0600))
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	res, err := BackupFile(path)
	require.NoError(t, err)
	assert.Equal(t, path+".backup", res)

	content, err := os.ReadFile(res)
	require.NoError(t, err)
	assert.Equal(t, "store data", string(content))

	info, err := os.Stat(res)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(old))
	assert.False(t, Exists(res+".tmp"))

	// second backup overwrites the first one
	require.NoError(t, os.WriteFile(path, []byte("new data"), 0600))
	_, err = BackupFile(path)
	require.NoError(t, err)
	content, err = os.ReadFile(res)
	require.NoError(t, err)
	assert.Equal(t, "new data", string(content))
}

func TestBackupFile_Missing(t *testing.T) {
	_, err := BackupFile(filepath.Join(t.TempDir(), "none.db"))
	assert.Error(t, err)
}
