package config

import (
	"path/filepath"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/naming"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptStoreDriver sets the store driver.
// Valid values: "sqlite", "postgres".
func OptStoreDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Store.Driver", s) {
			c.Store.Driver = s
		}
	}
}

// OptStorePath sets the SQLite file of the store.
func OptStorePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store Path", s) {
			c.Store.Path = filepath.Clean(s)
		}
	}
}

// OptStoreHost sets the PostgreSQL server hostname or IP address.
func OptStoreHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store Host", s) {
			c.Store.Host = s
		}
	}
}

// OptStorePort sets the PostgreSQL server port number.
func OptStorePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Store Port", i) {
			c.Store.Port = i
		}
	}
}

// OptStoreUser sets the PostgreSQL database username.
func OptStoreUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store User", s) {
			c.Store.User = s
		}
	}
}

// OptStorePassword sets the PostgreSQL database password.
func OptStorePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store Password", s) {
			c.Store.Password = s
		}
	}
}

// OptStoreDatabase sets the PostgreSQL database name to connect to.
func OptStoreDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store Database", s) {
			c.Store.Database = s
		}
	}
}

// OptStoreSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptStoreSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Store.SSLMode", s) {
			c.Store.SSLMode = s
		}
	}
}

// OptArtifactsRoot sets the directory with PDF files.
func OptArtifactsRoot(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Artifacts Root", s) {
			c.Artifacts.Root = filepath.Clean(s)
		}
	}
}

// OptNamingScheme sets the naming scheme of the store.
// The name is normalized, so "Year-Based" becomes "year_based".
func OptNamingScheme(s string) Option {
	return func(c *Config) {
		sc, err := naming.ParseScheme(s)
		if err != nil {
			gn.Warn(
				"<em>Naming Scheme</em> does not support '%s', "+
					"valid values are: %s. Ignoring...",
				s, strings.Join(naming.SchemeNames(), ", "),
			)
			return
		}
		c.Naming.Scheme = sc.String()
	}
}

// OptSearchLimit sets the maximum number of records in search results.
func OptSearchLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("Search Limit", i) {
			c.Search.Limit = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
