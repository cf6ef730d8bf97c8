package rename

import (
	"time"

	"github.com/gnames/papersdb/pkg/naming"
)

// Options control a rename run.
type Options struct {
	// Scheme is the naming scheme of new keys.
	Scheme naming.Scheme

	// Execute writes keys and renames files. Without it the run only
	// reports what would change.
	Execute bool

	// ArtifactRoot is a directory with PDF files to rename. Empty value
	// leaves files alone.
	ArtifactRoot string

	// Backup copies the SQLite store file before any change.
	Backup bool
}

// Report is the outcome of a rename run.
type Report struct {
	Plan

	// DryRun is true when nothing was written.
	DryRun bool

	// Updated is the number of keys written, or keys that would be
	// written in a dry run.
	Updated int

	// Found is the number of artifact files that match old keys.
	Found int

	// Moves are file renames done, or planned in a dry run.
	Moves []Move

	// Errors are records whose key update or file rename failed.
	Errors []Failure

	// BackupPath is the copy of the store made before execution.
	BackupPath string

	Duration time.Duration
}

// OK is true when the run finished without per-record errors.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Preview shows keys of the first records under every scheme.
type Preview struct {
	// Total is the number of records in the store.
	Total int

	Rows []PreviewRow

	// Suggested is the scheme recommended for all records of the store.
	Suggested naming.Scheme
}
