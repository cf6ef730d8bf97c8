// Package schema provides database schema models for papersdb.
// Table and column names are kept compatible with catalogs created by the
// desktop application, so existing database files can be opened directly.
package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/gnames/papersdb/pkg/naming"
)

// Paper is a record of the catalog: one scientific paper and its metadata.
type Paper struct {
	// ID is assigned by the store, it is immutable and never reused.
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Title of the paper.
	Title string `gorm:"type:text" fts:"title" json:"title"`

	// Authors of the paper, free text.
	Authors string `gorm:"type:text" fts:"authors" json:"authors,omitempty"`

	// Year of publication. Nil means unknown.
	Year *int `gorm:"index:idx_year" json:"year,omitempty"`

	// Journal where the paper was published.
	Journal string `gorm:"type:text;index:idx_journal" fts:"journal" json:"journal,omitempty"`

	// DOI is the Digital Object Identifier of the paper.
	DOI string `gorm:"column:doi;type:text" json:"doi,omitempty"`

	// URL of the paper.
	URL string `gorm:"column:url;type:text" json:"url,omitempty"`

	Abstract string `gorm:"type:text" fts:"abstract" json:"abstract,omitempty"`
	Keywords string `gorm:"type:text" fts:"keywords" json:"keywords,omitempty"`
	Tags     string `gorm:"type:text" fts:"tags" json:"tags,omitempty"`
	Notes    string `gorm:"type:text" fts:"notes" json:"notes,omitempty"`

	// RelatesTo is the category code, for example "BRNG".
	RelatesTo string `gorm:"column:relates_to;type:varchar(16);index:idx_relates_to" json:"relates_to"`

	// ProjectID is the project code, for example "SYEL".
	ProjectID string `gorm:"column:project_id;type:varchar(16);index:idx_project_id" json:"project_id"`

	// UniqueName is the derived key of the paper. It names the PDF file
	// of the paper. The index is not unique on purpose: duplicates are
	// reported to the user, not rejected.
	UniqueName string `gorm:"column:unique_name;type:varchar(64);index:idx_unique_name" json:"unique_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table of papers.
func (Paper) TableName() string {
	return "papers"
}

// YearValue returns the year of a paper or 0 if it is unknown.
func (p Paper) YearValue() int {
	if p.Year == nil {
		return 0
	}
	return *p.Year
}

// Fields returns the fields of a paper that take part in its key.
func (p Paper) Fields() naming.Fields {
	return naming.Fields{
		Title:    p.Title,
		Category: p.RelatesTo,
		Project:  p.ProjectID,
		Year:     p.YearValue(),
	}
}

// ShortTitle returns the title truncated to n characters.
func (p Paper) ShortTitle(n int) string {
	r := []rune(p.Title)
	if len(r) <= n {
		return p.Title
	}
	return string(r[:n]) + "..."
}

// PaperColumns are the columns of papers that can be set by users,
// searched or filtered.
var PaperColumns = []string{
	"title", "authors", "year", "journal", "doi", "url", "abstract",
	"keywords", "tags", "notes", "relates_to", "project_id", "unique_name",
}

// SearchColumns are the text columns used by substring search.
var SearchColumns = []string{
	"title", "authors", "journal", "abstract", "keywords", "tags", "notes",
	"doi", "url",
}

// IsPaperColumn checks if a name is one of PaperColumns.
func IsPaperColumn(name string) bool {
	for _, v := range PaperColumns {
		if v == name {
			return true
		}
	}
	return false
}

// Code is an entry of a code vocabulary: a short tag with its long name.
type Code struct {
	// Code is a short tag, for example "BRNG". Codes are kept uppercase.
	Code string `gorm:"column:id;primaryKey;type:varchar(16)" yaml:"code" json:"code"`

	// Name is the canonical long name of the code.
	Name string `gorm:"not null" yaml:"name" json:"name"`

	// Description is optional.
	Description string `gorm:"type:text" yaml:"description" json:"description,omitempty"`

	CreatedAt time.Time `yaml:"-" json:"created_at"`
}

// CategoryCode is an entry of the category vocabulary.
type CategoryCode struct {
	Code
}

// TableName returns the table of category codes.
func (CategoryCode) TableName() string {
	return Category.Table()
}

// ProjectCode is an entry of the project vocabulary.
type ProjectCode struct {
	Code
}

// TableName returns the table of project codes.
func (ProjectCode) TableName() string {
	return Project.Table()
}

// Vocabulary is one of the two independent code vocabularies.
type Vocabulary int

const (
	// Category classifies what a paper relates to (relates_to).
	Category Vocabulary = iota
	// Project classifies which project a paper belongs to (project_id).
	Project
)

// String returns the user-facing name of a vocabulary.
func (v Vocabulary) String() string {
	switch v {
	case Project:
		return "project"
	default:
		return "category"
	}
}

// Table returns the lookup table of a vocabulary.
func (v Vocabulary) Table() string {
	switch v {
	case Project:
		return "project_id_lookup"
	default:
		return "relates_to_lookup"
	}
}

// Column returns the column of papers that holds codes of a vocabulary.
func (v Vocabulary) Column() string {
	switch v {
	case Project:
		return "project_id"
	default:
		return "relates_to"
	}
}

// ParseVocabulary converts a user-facing name to a Vocabulary. Column
// names are accepted as well.
func ParseVocabulary(s string) (Vocabulary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category", "categories", "relates_to":
		return Category, nil
	case "project", "projects", "project_id":
		return Project, nil
	}
	return Category, fmt.Errorf("unknown vocabulary %q, use 'category' or 'project'", s)
}

// NormalizeCode trims and uppercases a code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
