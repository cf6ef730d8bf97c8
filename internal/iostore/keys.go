package iostore

import (
	"context"
	"strconv"
	"time"

	"github.com/gnames/papersdb/pkg/schema"
	"github.com/gnames/papersdb/pkg/store"
)

const missingKey = "unique_name IS NULL OR unique_name = ''"

// DuplicateKeys returns groups of papers sharing a non-empty key, sorted
// by key. IDs of every group are sorted.
func (s *gormStore) DuplicateKeys(
	ctx context.Context,
) ([]store.DuplicateKey, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	var keys []string
	err = gdb.Model(&schema.Paper{}).
		Where("unique_name IS NOT NULL AND unique_name <> ''").
		Group("unique_name").
		Having("COUNT(*) > 1").
		Order("unique_name").
		Pluck("unique_name", &keys).Error
	if err != nil {
		return nil, QueryError("duplicate keys", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	var papers []schema.Paper
	err = gdb.Select("id", "unique_name").
		Where("unique_name IN ?", keys).
		Order("id").
		Find(&papers).Error
	if err != nil {
		return nil, QueryError("duplicate keys", err)
	}

	idx := make(map[string]int, len(keys))
	res := make([]store.DuplicateKey, len(keys))
	for i, k := range keys {
		idx[k] = i
		res[i].Key = k
	}
	for _, p := range papers {
		i := idx[p.UniqueName]
		res[i].IDs = append(res[i].IDs, p.ID)
		res[i].Count++
	}
	return res, nil
}

func (s *gormStore) MissingKeys(ctx context.Context) (int64, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return 0, err
	}

	var res int64
	err = gdb.Model(&schema.Paper{}).Where(missingKey).Count(&res).Error
	if err != nil {
		return 0, QueryError("missing keys", err)
	}
	return res, nil
}

func (s *gormStore) MissingKeyIDs(ctx context.Context) ([]uint, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	var res []uint
	err = gdb.Model(&schema.Paper{}).
		Where(missingKey).
		Order("id").
		Pluck("id", &res).Error
	if err != nil {
		return nil, QueryError("missing keys", err)
	}
	return res, nil
}

// DistinctValues returns sorted distinct values of a column, skipping
// empty ones.
func (s *gormStore) DistinctValues(
	ctx context.Context,
	column string,
) ([]string, error) {
	if !schema.IsPaperColumn(column) {
		return nil, UnknownColumnError(column)
	}
	gdb, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	if column == "year" {
		var years []int
		err = gdb.Model(&schema.Paper{}).
			Distinct("year").
			Where("year IS NOT NULL").
			Order("year").
			Pluck("year", &years).Error
		if err != nil {
			return nil, QueryError("distinct values", err)
		}
		res := make([]string, len(years))
		for i, v := range years {
			res[i] = strconv.Itoa(v)
		}
		return res, nil
	}

	var res []string
	err = gdb.Model(&schema.Paper{}).
		Distinct(column).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Order(column).
		Pluck(column, &res).Error
	if err != nil {
		return nil, QueryError("distinct values", err)
	}
	return res, nil
}

// Stats summarizes the catalog.
func (s *gormStore) Stats(ctx context.Context) (*store.Stats, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	res := store.Stats{HasFTS: s.hasFTS(ctx)}

	err = gdb.Model(&schema.Paper{}).Count(&res.Papers).Error
	if err != nil {
		return nil, QueryError("stats", err)
	}
	if res.WithoutKey, err = s.MissingKeys(ctx); err != nil {
		return nil, err
	}
	res.WithKey = res.Papers - res.WithoutKey

	weekAgo := time.Now().AddDate(0, 0, -7)
	err = gdb.Model(&schema.Paper{}).
		Where("created_at >= ?", weekAgo).
		Count(&res.Recent).Error
	if err != nil {
		return nil, QueryError("stats", err)
	}

	type yearCount struct {
		Year int
		Cnt  int64
	}
	var years []yearCount
	err = gdb.Model(&schema.Paper{}).
		Select("year, COUNT(*) AS cnt").
		Where("year IS NOT NULL").
		Group("year").
		Order("year DESC").
		Limit(10).
		Scan(&years).Error
	if err != nil {
		return nil, QueryError("stats", err)
	}
	for _, v := range years {
		res.Years = append(res.Years,
			store.Count{Value: strconv.Itoa(v.Year), Count: v.Cnt})
	}

	if res.Categories, err = s.countBy(ctx, "relates_to"); err != nil {
		return nil, err
	}
	if res.Projects, err = s.countBy(ctx, "project_id"); err != nil {
		return nil, err
	}
	return &res, nil
}

// countBy returns number of papers per non-empty value of a column, the
// most frequent values first.
func (s *gormStore) countBy(
	ctx context.Context,
	column string,
) ([]store.Count, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	type valueCount struct {
		Value string
		Cnt   int64
	}
	var rows []valueCount
	err = gdb.Model(&schema.Paper{}).
		Select(column + " AS value, COUNT(*) AS cnt").
		Where(column + " IS NOT NULL AND " + column + " <> ''").
		Group(column).
		Order("cnt DESC").
		Order(column).
		Scan(&rows).Error
	if err != nil {
		return nil, QueryError("stats", err)
	}

	res := make([]store.Count, len(rows))
	for i, v := range rows {
		res[i] = store.Count{Value: v.Value, Count: v.Cnt}
	}
	return res, nil
}
