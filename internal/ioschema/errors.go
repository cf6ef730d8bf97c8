package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.StoreNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - The store file is read-only

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check permissions of the store file`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate database schema

<em>Possible causes:</em>
  - Incompatible schema changes
  - Insufficient database permissions

<em>How to fix:</em>
  1. Backup the store before migration
  2. Check database user permissions`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// FTSError creates an error for failures of the full-text index setup.
func FTSError(err error) error {
	msg := "Cannot create full-text index <em>%s</em>"
	vars := []any{"papers_fts"}

	return &gn.Error{
		Code: errcode.SchemaFTSError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to create full-text index: %w", err),
	}
}

// SeedError creates an error for failures to load default codes.
func SeedError(table string, err error) error {
	msg := "Cannot load default codes into <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.SchemaSeedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to seed %s: %w", table, err),
	}
}
