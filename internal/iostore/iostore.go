// Package iostore implements store.Store on top of GORM. It works with
// SQLite and PostgreSQL stores opened by internal/iodb.
package iostore

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/gnames/papersdb/pkg/db"
	"github.com/gnames/papersdb/pkg/schema"
	"github.com/gnames/papersdb/pkg/store"
	"gorm.io/gorm"
)

type gormStore struct {
	operator db.Operator
}

// New creates a store that uses a connected operator.
func New(op db.Operator) store.Store {
	return &gormStore{operator: op}
}

func (s *gormStore) db(ctx context.Context) (*gorm.DB, error) {
	if s.operator == nil || s.operator.DB() == nil {
		return nil, NotConnectedError()
	}
	return s.operator.DB().WithContext(ctx), nil
}

// CreateRecord inserts a paper. Text is cleaned from broken UTF-8 and
// codes are uppercased.
func (s *gormStore) CreateRecord(
	ctx context.Context,
	p *schema.Paper,
) (uint, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return 0, err
	}

	p.ID = 0
	clean(p)
	if err = gdb.Create(p).Error; err != nil {
		return 0, RecordCreateError(err)
	}
	return p.ID, nil
}

func (s *gormStore) GetRecord(
	ctx context.Context,
	id uint,
) (*schema.Paper, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	var res schema.Paper
	err = gdb.First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("get record", err)
	}
	return &res, nil
}

func (s *gormStore) UpdateRecord(
	ctx context.Context,
	id uint,
	fields map[string]any,
) error {
	gdb, err := s.db(ctx)
	if err != nil {
		return err
	}

	vals := make(map[string]any, len(fields))
	for k, v := range fields {
		if !schema.IsPaperColumn(k) {
			return UnknownColumnError(k)
		}
		if str, ok := v.(string); ok {
			str = gnlib.FixUtf8(strings.TrimSpace(str))
			if k == "relates_to" || k == "project_id" {
				str = schema.NormalizeCode(str)
			}
			v = str
		}
		vals[k] = v
	}

	if len(vals) == 0 {
		var count int64
		err = gdb.Model(&schema.Paper{}).Where("id = ?", id).Count(&count).Error
		if err != nil {
			return QueryError("update record", err)
		}
		if count == 0 {
			return RecordNotFoundError(id)
		}
		return nil
	}

	res := gdb.Model(&schema.Paper{}).Where("id = ?", id).Updates(vals)
	if res.Error != nil {
		return RecordUpdateError(id, res.Error)
	}
	if res.RowsAffected == 0 {
		return RecordNotFoundError(id)
	}
	return nil
}

func (s *gormStore) UpdateKey(ctx context.Context, id uint, key string) error {
	gdb, err := s.db(ctx)
	if err != nil {
		return err
	}

	res := gdb.Model(&schema.Paper{}).Where("id = ?", id).
		Update("unique_name", key)
	if res.Error != nil {
		return RecordUpdateError(id, res.Error)
	}
	if res.RowsAffected == 0 {
		return RecordNotFoundError(id)
	}
	return nil
}

func (s *gormStore) DeleteRecord(ctx context.Context, id uint) error {
	gdb, err := s.db(ctx)
	if err != nil {
		return err
	}

	res := gdb.Delete(&schema.Paper{}, id)
	if res.Error != nil {
		return RecordDeleteError(id, res.Error)
	}
	if res.RowsAffected == 0 {
		return RecordNotFoundError(id)
	}
	return nil
}

// ListRecords searches papers. On SQLite with the full-text index every
// word of the term has to be present in indexed text. Otherwise the term
// is matched as a substring of title, authors, journal, abstract,
// keywords, tags, notes, doi or url.
func (s *gormStore) ListRecords(
	ctx context.Context,
	q store.Query,
) ([]schema.Paper, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	tx := gdb.Model(&schema.Paper{}).Select("papers.*")

	if term := strings.TrimSpace(q.Term); term != "" {
		if s.hasFTS(ctx) {
			tx = tx.
				Joins("JOIN papers_fts ON papers.id = papers_fts.rowid").
				Where("papers_fts MATCH ?", ftsQuery(term))
		} else {
			conds := make([]string, len(schema.SearchColumns))
			args := make([]any, len(schema.SearchColumns))
			for i, col := range schema.SearchColumns {
				conds[i] = "papers." + col + " " + s.like() + " ?"
				args[i] = "%" + term + "%"
			}
			tx = tx.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
	}

	for _, col := range slices.Sorted(maps.Keys(q.Filters)) {
		if !schema.IsPaperColumn(col) {
			return nil, UnknownColumnError(col)
		}
		switch v := q.Filters[col].(type) {
		case nil:
		case string:
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			tx = tx.Where("papers."+col+" "+s.like()+" ?", "%"+v+"%")
		default:
			tx = tx.Where("papers."+col+" = ?", v)
		}
	}

	tx = tx.Order("papers.updated_at DESC").Order("papers.id DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var res []schema.Paper
	if err = tx.Find(&res).Error; err != nil {
		return nil, QueryError("list records", err)
	}
	return res, nil
}

func (s *gormStore) AllRecords(ctx context.Context) ([]schema.Paper, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	var res []schema.Paper
	if err = gdb.Order("id").Find(&res).Error; err != nil {
		return nil, QueryError("all records", err)
	}
	return res, nil
}

// like returns a case-insensitive LIKE operator of the dialect.
func (s *gormStore) like() string {
	if s.operator.Dialect() == db.Postgres {
		return "ILIKE"
	}
	return "LIKE"
}

func (s *gormStore) hasFTS(ctx context.Context) bool {
	if s.operator.Dialect() != db.SQLite {
		return false
	}
	ok, err := s.operator.TableExists(ctx, schema.FTSTable)
	return err == nil && ok
}

// ftsQuery quotes every word of a term, so that FTS5 syntax characters
// are matched literally.
func ftsQuery(term string) string {
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = `"` + strings.ReplaceAll(w, `"`, `""`) + `"`
	}
	return strings.Join(words, " ")
}

func clean(p *schema.Paper) {
	for _, v := range []*string{
		&p.Title, &p.Authors, &p.Journal, &p.DOI, &p.URL, &p.Abstract,
		&p.Keywords, &p.Tags, &p.Notes, &p.UniqueName,
	} {
		*v = gnlib.FixUtf8(strings.TrimSpace(*v))
	}
	p.RelatesTo = schema.NormalizeCode(p.RelatesTo)
	p.ProjectID = schema.NormalizeCode(p.ProjectID)
}
