// Package rename computes how keys of records change when a store switches
// to another naming scheme. It never touches a store or a file system, the
// plan is carried out by internal/iorename.
package rename

import (
	"path/filepath"
	"strings"

	"github.com/gnames/papersdb/pkg/naming"
	"github.com/gnames/papersdb/pkg/schema"
)

// TitleWidth is the maximum length of titles kept in plans and reports.
const TitleWidth = 50

// Change is a new key of a record.
type Change struct {
	ID     uint
	Title  string
	OldKey string
	NewKey string
}

// Failure is a record that could not be processed.
type Failure struct {
	ID     uint
	Title  string
	Reason string
}

// Collision is a key that more than one record would share.
type Collision struct {
	Key string
	IDs []uint
}

// Move is a rename of an artifact file that follows a key change.
type Move struct {
	ID   uint
	From string
	To   string
}

// Plan describes new keys of all records under a scheme.
type Plan struct {
	Scheme naming.Scheme

	// Total is the number of records.
	Total int

	// Changes are records with a new key that differs from the old one.
	Changes []Change

	// Failures are records for which no key can be generated. They keep
	// their old keys.
	Failures []Failure

	collisions []Collision
}

// NewPlan computes new keys of papers. Papers must be sorted by ID, the
// sequence number of a paper is its 1-based position in that order.
func NewPlan(papers []schema.Paper, scheme naming.Scheme) Plan {
	res := Plan{Scheme: scheme, Total: len(papers)}

	final := make(map[string][]uint)
	var keys []string
	addFinal := func(key string, id uint) {
		if key == "" {
			return
		}
		if _, ok := final[key]; !ok {
			keys = append(keys, key)
		}
		final[key] = append(final[key], id)
	}

	for i, p := range papers {
		f := p.Fields()
		key := naming.Generate(f, i+1, scheme)
		if key == "" {
			res.Failures = append(res.Failures, Failure{
				ID:     p.ID,
				Title:  p.ShortTitle(TitleWidth),
				Reason: Reason(f, scheme),
			})
			addFinal(p.UniqueName, p.ID)
			continue
		}
		addFinal(key, p.ID)
		if key == p.UniqueName {
			continue
		}
		res.Changes = append(res.Changes, Change{
			ID:     p.ID,
			Title:  p.ShortTitle(TitleWidth),
			OldKey: p.UniqueName,
			NewKey: key,
		})
	}

	for _, k := range keys {
		if ids := final[k]; len(ids) > 1 {
			res.collisions = append(res.collisions, Collision{Key: k, IDs: ids})
		}
	}
	return res
}

// Unchanged is the number of records that keep their keys.
func (p Plan) Unchanged() int {
	return p.Total - len(p.Changes) - len(p.Failures)
}

// Collisions returns keys that more than one record would have after the
// plan is carried out, in order of their first appearance.
func (p Plan) Collisions() []Collision {
	return p.collisions
}

// OldKeys returns non-empty old keys of all changes.
func (p Plan) OldKeys() []string {
	var res []string
	for _, v := range p.Changes {
		if v.OldKey != "" {
			res = append(res, v.OldKey)
		}
	}
	return res
}

// Reason explains why no key can be generated from fields.
func Reason(f naming.Fields, scheme naming.Scheme) string {
	var missing []string
	if strings.TrimSpace(f.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(f.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(f.Project) == "" {
		missing = append(missing, "project")
	}
	if scheme == naming.YearBased && f.Year <= 0 {
		missing = append(missing, "year")
	}
	if len(missing) > 0 {
		return "missing " + strings.Join(missing, ", ")
	}
	if scheme != naming.Simple && naming.TitleTag(f.Title) == "" {
		return "title has fewer than two letters"
	}
	return "cannot generate key"
}

// Moves returns renames of artifact files for changes. The found map
// connects old keys to paths of their files. A file keeps its directory
// and extension, only the base name changes to the new key.
func Moves(changes []Change, found map[string]string) []Move {
	var res []Move
	for _, v := range changes {
		if v.OldKey == "" {
			continue
		}
		from, ok := found[v.OldKey]
		if !ok {
			continue
		}
		to := filepath.Join(filepath.Dir(from), v.NewKey+filepath.Ext(from))
		res = append(res, Move{ID: v.ID, From: from, To: to})
	}
	return res
}

// PreviewRow shows keys of one record under every scheme.
type PreviewRow struct {
	ID       uint
	Title    string
	OldKey   string
	Category string
	Project  string
	Year     int
	Examples []naming.Example
}

// Previews returns preview rows for the first limit papers. Papers must be
// sorted by ID.
func Previews(papers []schema.Paper, limit int) []PreviewRow {
	if limit > 0 && len(papers) > limit {
		papers = papers[:limit]
	}

	res := make([]PreviewRow, len(papers))
	for i, p := range papers {
		f := p.Fields()
		res[i] = PreviewRow{
			ID:       p.ID,
			Title:    p.ShortTitle(TitleWidth),
			OldKey:   p.UniqueName,
			Category: p.RelatesTo,
			Project:  p.ProjectID,
			Year:     p.YearValue(),
			Examples: naming.Preview(f, i+1),
		}
	}
	return res
}
