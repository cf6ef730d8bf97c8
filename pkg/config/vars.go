package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "papersdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/papersdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for the default SQLite store.
// Returns ~/.local/share/papersdb by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/papersdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/papersdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DefaultStorePath returns the SQLite file used when no store path is
// configured.
func DefaultStorePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "papers.db")
}
