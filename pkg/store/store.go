// Package store defines the contract of the record store: the catalog of
// papers and its two code vocabularies.
package store

import (
	"context"
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/errcode"
	"github.com/gnames/papersdb/pkg/schema"
)

// Store provides access to records and code vocabularies. Every method
// runs as a single statement, no transaction spans two calls.
type Store interface {
	// CreateRecord inserts a paper and returns its new ID.
	CreateRecord(ctx context.Context, p *schema.Paper) (uint, error)

	// GetRecord returns a paper by ID. If there is no such paper, it
	// returns nil and no error.
	GetRecord(ctx context.Context, id uint) (*schema.Paper, error)

	// UpdateRecord sets given columns of a paper. Keys of fields are
	// column names from schema.PaperColumns. A missing paper is an error.
	UpdateRecord(ctx context.Context, id uint, fields map[string]any) error

	// UpdateKey replaces the derived key of a paper.
	UpdateKey(ctx context.Context, id uint, key string) error

	// DeleteRecord removes a paper. A missing paper is an error.
	DeleteRecord(ctx context.Context, id uint) error

	// ListRecords returns papers that match a query, most recently
	// updated first.
	ListRecords(ctx context.Context, q Query) ([]schema.Paper, error)

	// AllRecords returns all papers in ID order.
	AllRecords(ctx context.Context) ([]schema.Paper, error)

	// DuplicateKeys returns groups of papers sharing a non-empty key.
	DuplicateKeys(ctx context.Context) ([]DuplicateKey, error)

	// MissingKeys returns the number of papers without a key.
	MissingKeys(ctx context.Context) (int64, error)

	// MissingKeyIDs returns IDs of papers without a key.
	MissingKeyIDs(ctx context.Context) ([]uint, error)

	// DistinctValues returns sorted distinct non-empty values of a column.
	DistinctValues(ctx context.Context, column string) ([]string, error)

	// Stats summarizes the catalog.
	Stats(ctx context.Context) (*Stats, error)

	// Codes returns all codes of a vocabulary sorted by name.
	Codes(ctx context.Context, v schema.Vocabulary) ([]schema.Code, error)

	// AddCode adds a new code to a vocabulary.
	AddCode(ctx context.Context, v schema.Vocabulary, c schema.Code) error

	// UpdateCode changes the name and description of an existing code.
	UpdateCode(ctx context.Context, v schema.Vocabulary, c schema.Code) error

	// DeleteCode removes a code that no paper refers to.
	DeleteCode(ctx context.Context, v schema.Vocabulary, code string) error
}

// Query describes a search of papers.
type Query struct {
	// Term is a free-text search term. Empty term matches everything.
	Term string

	// Filters restrict results by column. String values match as
	// substrings, other values match exactly.
	Filters map[string]any

	// Limit is the maximum number of results, 0 means no limit.
	Limit int
}

// DuplicateKey is a key shared by more than one paper.
type DuplicateKey struct {
	Key   string
	Count int
	IDs   []uint
}

// Count is a number of papers with some value of a column.
type Count struct {
	Value string
	Count int64
}

// Stats is a summary of the catalog.
type Stats struct {
	// Papers is the total number of papers.
	Papers     int64
	WithKey    int64
	WithoutKey int64

	// Recent is the number of papers added during the last 7 days.
	Recent int64

	// HasFTS is true when searches use the full-text index.
	HasFTS bool

	// Years are the 10 most recent publication years.
	Years      []Count
	Categories []Count
	Projects   []Count
}

// IsNotFound checks if an error reports a missing record or code.
func IsNotFound(err error) bool {
	return hasCode(err, errcode.RecordNotFoundError, errcode.CodeNotFoundError)
}

// IsInUse checks if an error reports a code that papers still refer to.
func IsInUse(err error) bool {
	return hasCode(err, errcode.CodeInUseError)
}

func hasCode(err error, codes ...gn.ErrorCode) bool {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return false
	}
	for _, v := range codes {
		if gnErr.Code == v {
			return true
		}
	}
	return false
}
