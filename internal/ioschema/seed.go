package ioschema

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/gnames/papersdb/pkg/schema"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed vocabulary.yaml
var vocabularyYAML []byte

// Vocabularies keeps default codes of both vocabularies.
type Vocabularies struct {
	Categories []schema.Code `yaml:"categories"`
	Projects   []schema.Code `yaml:"projects"`
}

// DefaultVocabularies returns codes loaded into empty lookup tables.
func DefaultVocabularies() (*Vocabularies, error) {
	var res Vocabularies
	if err := yaml.Unmarshal(vocabularyYAML, &res); err != nil {
		return nil, fmt.Errorf("cannot parse vocabulary.yaml: %w", err)
	}
	return &res, nil
}

// seed fills empty lookup tables with default codes. Tables that already
// have codes are left alone.
func seed(ctx context.Context, gdb *gorm.DB) error {
	voc, err := DefaultVocabularies()
	if err != nil {
		return SeedError("vocabularies", err)
	}

	var cats []schema.CategoryCode
	for _, v := range voc.Categories {
		v.Code = schema.NormalizeCode(v.Code)
		cats = append(cats, schema.CategoryCode{Code: v})
	}
	var projs []schema.ProjectCode
	for _, v := range voc.Projects {
		v.Code = schema.NormalizeCode(v.Code)
		projs = append(projs, schema.ProjectCode{Code: v})
	}

	if err = seedTable(ctx, gdb, schema.Category.Table(), cats); err != nil {
		return err
	}
	return seedTable(ctx, gdb, schema.Project.Table(), projs)
}

func seedTable[T any](
	ctx context.Context,
	gdb *gorm.DB,
	table string,
	codes []T,
) error {
	var count int64
	err := gdb.WithContext(ctx).Table(table).Count(&count).Error
	if err != nil {
		return SeedError(table, err)
	}
	if count > 0 || len(codes) == 0 {
		return nil
	}

	err = gdb.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&codes).Error
	if err != nil {
		return SeedError(table, err)
	}
	slog.Info("Loaded default codes", "table", table, "count", len(codes))
	return nil
}
