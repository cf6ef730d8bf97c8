package iostore

import (
	"context"
	"strings"

	"github.com/gnames/papersdb/pkg/schema"
)

func (s *gormStore) Codes(
	ctx context.Context,
	v schema.Vocabulary,
) ([]schema.Code, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	var res []schema.Code
	err = gdb.Table(v.Table()).Order("name").Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError("codes", err)
	}
	return res, nil
}

// AddCode adds a code. The code is uppercased, code and name cannot be
// empty.
func (s *gormStore) AddCode(
	ctx context.Context,
	v schema.Vocabulary,
	c schema.Code,
) error {
	if err := normalize(&c); err != nil {
		return err
	}
	gdb, err := s.db(ctx)
	if err != nil {
		return err
	}

	exists, err := s.codeExists(ctx, v, c.Code)
	if err != nil {
		return err
	}
	if exists {
		return CodeExistsError(v, c.Code)
	}

	if err = gdb.Table(v.Table()).Create(&c).Error; err != nil {
		return QueryError("add code", err)
	}
	return nil
}

// UpdateCode changes name and description of a code.
func (s *gormStore) UpdateCode(
	ctx context.Context,
	v schema.Vocabulary,
	c schema.Code,
) error {
	if err := normalize(&c); err != nil {
		return err
	}
	gdb, err := s.db(ctx)
	if err != nil {
		return err
	}

	res := gdb.Table(v.Table()).
		Where("id = ?", c.Code).
		Updates(map[string]any{
			"name":        c.Name,
			"description": c.Description,
		})
	if res.Error != nil {
		return QueryError("update code", res.Error)
	}
	if res.RowsAffected == 0 {
		return CodeNotFoundError(v, c.Code)
	}
	return nil
}

// DeleteCode removes a code if no paper refers to it. Otherwise the
// vocabulary stays unchanged and the error reports how many papers use
// the code.
func (s *gormStore) DeleteCode(
	ctx context.Context,
	v schema.Vocabulary,
	code string,
) error {
	code = schema.NormalizeCode(code)
	gdb, err := s.db(ctx)
	if err != nil {
		return err
	}

	var used int64
	err = gdb.Model(&schema.Paper{}).
		Where(v.Column()+" = ?", code).
		Count(&used).Error
	if err != nil {
		return QueryError("delete code", err)
	}
	if used > 0 {
		return CodeInUseError(v, code, used)
	}

	res := gdb.Exec("DELETE FROM "+v.Table()+" WHERE id = ?", code)
	if res.Error != nil {
		return QueryError("delete code", res.Error)
	}
	if res.RowsAffected == 0 {
		return CodeNotFoundError(v, code)
	}
	return nil
}

func (s *gormStore) codeExists(
	ctx context.Context,
	v schema.Vocabulary,
	code string,
) (bool, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return false, err
	}

	var count int64
	err = gdb.Table(v.Table()).Where("id = ?", code).Count(&count).Error
	if err != nil {
		return false, QueryError("code exists", err)
	}
	return count > 0, nil
}

func normalize(c *schema.Code) error {
	c.Code = schema.NormalizeCode(c.Code)
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	if c.Code == "" {
		return CodeInvalidError("code cannot be empty")
	}
	if strings.ContainsAny(c.Code, " -\t") {
		return CodeInvalidError("code cannot contain spaces or dashes")
	}
	if c.Name == "" {
		return CodeInvalidError("name cannot be empty")
	}
	return nil
}
