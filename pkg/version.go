// Package papersdb keeps build information of the papersdb application.
package papersdb

var (
	// Version of papersdb, set during build.
	Version = "v0.1.0"

	// Build timestamp, set during build.
	Build = "n/a"
)
