// Package config provides configuration management for papersdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
// - Config is passed explicitly to every component that needs it
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Store: driver, path, host, port, user, password, database, ssl_mode
//   - Artifacts: root
//   - Naming: scheme
//   - Search: limit
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use PAPERSDB_ prefix with underscores for nesting:
//
//	PAPERSDB_STORE_DRIVER=sqlite
//	PAPERSDB_STORE_PATH=/data/papers.db
//	PAPERSDB_ARTIFACTS_ROOT=/data/pdfs
//	PAPERSDB_NAMING_SCHEME=hierarchical
//	PAPERSDB_LOG_LEVEL=info
package config

// Config represents the complete papersdb configuration.
type Config struct {
	// Store contains settings of the relational store of records.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Artifacts contains settings of the PDF directory.
	Artifacts ArtifactsConfig `mapstructure:"artifacts" yaml:"artifacts"`

	// Naming contains settings of the key generation.
	Naming NamingConfig `mapstructure:"naming" yaml:"naming"`

	// Search contains settings of record listing.
	Search SearchConfig `mapstructure:"search" yaml:"search"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// StoreConfig contains connection parameters of the record store.
type StoreConfig struct {
	// Driver is either "sqlite" (a single file, the default) or
	// "postgres" (a shared server).
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the SQLite database file. Used only by the sqlite driver.
	// Empty value means papers.db in the data directory.
	Path string `mapstructure:"path" yaml:"path"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ArtifactsConfig describes where PDF files of records are kept.
type ArtifactsConfig struct {
	// Root is the directory with PDF files named <key>.pdf.
	// Empty value disables artifact operations.
	Root string `mapstructure:"root" yaml:"root"`
}

// NamingConfig determines how keys of records are generated.
type NamingConfig struct {
	// Scheme is one of "sequential", "year_based", "hierarchical",
	// "project_first", "simple". The scheme applies to the whole store.
	Scheme string `mapstructure:"scheme" yaml:"scheme"`
}

// SearchConfig contains settings of record listing.
type SearchConfig struct {
	// Limit is the maximum number of records returned by a search.
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Store: StoreConfig{
			Driver:   "sqlite",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "papers",
			SSLMode:  "disable",
		},
		Naming: NamingConfig{
			Scheme: "sequential",
		},
		Search: SearchConfig{
			Limit: 1000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// StorePath returns the SQLite file of the store. If no path is
// configured, the file is papers.db in the data directory.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return DefaultStorePath(c.HomeDir)
}
