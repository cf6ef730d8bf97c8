package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/papersdb/pkg/config"
	"github.com/gnames/papersdb/pkg/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "papersdb"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "papersdb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "papersdb", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "papersdb", "config.yaml"),
		},
		{
			msg: "default store",
			fn:  config.DefaultStorePath,
			res: filepath.Join(tempHome, ".local", "share", "papersdb", "papers.db"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Store defaults
		assert.Equal(t, "sqlite", cfg.Store.Driver)
		assert.Empty(t, cfg.Store.Path)
		assert.Equal(t, "localhost", cfg.Store.Host)
		assert.Equal(t, 5432, cfg.Store.Port)
		assert.Equal(t, "papers", cfg.Store.Database)
		assert.Equal(t, "disable", cfg.Store.SSLMode)

		assert.Empty(t, cfg.Artifacts.Root)
		assert.Equal(t, "sequential", cfg.Naming.Scheme)
		assert.Equal(t, naming.Sequential, cfg.Scheme())
		assert.Equal(t, 1000, cfg.Search.Limit)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})
}

func TestStorePath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t,
		filepath.Join("/home/user", ".local", "share", "papersdb", "papers.db"),
		cfg.StorePath(),
	)

	cfg.Update([]config.Option{config.OptStorePath("/data/./papers.db")})
	assert.Equal(t, "/data/papers.db", cfg.StorePath())
}

func TestOptionStoreDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets postgres", "postgres", "postgres"},
		{"normalizes case", " SQLite ", "sqlite"},
		{"ignores unknown", "mysql", "sqlite"},
		{"ignores empty", "", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptStoreDriver(tt.input)})
			assert.Equal(t, tt.expected, cfg.Store.Driver)
		})
	}
}

func TestOptionStoreHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost", // Should keep default
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptStoreHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Store.Host)
		})
	}
}

func TestOptionStorePort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid port",
			input:    15432,
			expected: 15432,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 5432, // Should keep default
		},
		{
			name:     "ignores negative",
			input:    -100,
			expected: 5432, // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptStorePort(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Store.Port)
		})
	}
}

func TestOptionStoreSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets require", "require", "require"},
		{"sets verify-full", "verify-full", "verify-full"},
		{"normalizes to lowercase", "REQUIRE", "require"},
		{"ignores invalid value", "invalid", "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptStoreSSLMode(tt.input)})
			assert.Equal(t, tt.expected, cfg.Store.SSLMode)
		})
	}
}

func TestOptionNamingScheme(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		scheme   naming.Scheme
	}{
		{"sets hierarchical", "hierarchical", "hierarchical", naming.Hierarchical},
		{"normalizes dash", "Year-Based", "year_based", naming.YearBased},
		{"ignores unknown", "random", "sequential", naming.Sequential},
		{"ignores empty", "", "sequential", naming.Sequential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptNamingScheme(tt.input)})
			assert.Equal(t, tt.expected, cfg.Naming.Scheme)
			assert.Equal(t, tt.scheme, cfg.Scheme())
		})
	}
}

func TestOptionSearchLimit(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptSearchLimit(25)})
	assert.Equal(t, 25, cfg.Search.Limit)

	cfg.Update([]config.Option{config.OptSearchLimit(0)})
	assert.Equal(t, 25, cfg.Search.Limit)
}

func TestOptionLog(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptLogLevel("DEBUG"),
		config.OptLogFormat("text"),
		config.OptLogDestination("stderr"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{
		config.OptLogLevel("verbose"),
		config.OptLogFormat("xml"),
		config.OptLogDestination("stdin"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestToOptionsRoundTrip(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptStoreDriver("postgres"),
		config.OptStorePath("/data/papers.db"),
		config.OptStoreHost("db.local"),
		config.OptStorePort(6543),
		config.OptStoreUser("reader"),
		config.OptStorePassword("secret"),
		config.OptStoreDatabase("library"),
		config.OptStoreSSLMode("require"),
		config.OptArtifactsRoot("/data/pdfs"),
		config.OptNamingScheme("project_first"),
		config.OptSearchLimit(50),
		config.OptLogLevel("warn"),
		config.OptLogFormat("text"),
		config.OptLogDestination("stdout"),
		config.OptHomeDir("/home/user"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, src.Store, dst.Store)
	assert.Equal(t, src.Artifacts, dst.Artifacts)
	assert.Equal(t, src.Naming, dst.Naming)
	assert.Equal(t, src.Search, dst.Search)
	assert.Equal(t, src.Log, dst.Log)
	// HomeDir is runtime-only
	assert.Empty(t, dst.HomeDir)
}
