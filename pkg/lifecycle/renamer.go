package lifecycle

import (
	"context"

	"github.com/gnames/papersdb/pkg/rename"
)

// Renamer moves a store to another naming scheme: it recomputes keys of
// all records and renames PDF files named after old keys. Records are
// processed one at a time, a file is renamed only after the new key of
// its record is saved.
type Renamer interface {
	// Preview shows keys of the first limit records under every scheme
	// and recommends a scheme. It changes nothing.
	Preview(ctx context.Context, limit int) (*rename.Preview, error)

	// Rename recomputes keys. Unless opts.Execute is set it only reports
	// what would change.
	Rename(ctx context.Context, opts rename.Options) (*rename.Report, error)
}
