package iorename

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/errcode"
)

// NoRecordsError is returned when the store has no records to rename.
func NoRecordsError() error {
	msg := `No records found in the store

<em>Tip:</em> add records with <em>papersdb add</em>`
	return &gn.Error{
		Code: errcode.RenameNoRecordsError,
		Msg:  msg,
		Err:  fmt.Errorf("no records found"),
	}
}

// LockError is returned when another process holds the lock of the store.
func LockError(path string, err error) error {
	msg := `Another papersdb process is changing the store

<em>Lock file:</em> %s`
	vars := []any{path}
	if err == nil {
		err = fmt.Errorf("lock is held by another process")
	}
	return &gn.Error{
		Code: errcode.StoreLockError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot lock %s: %w", path, err),
	}
}

// BackupError is returned when the store file cannot be copied.
func BackupError(path string, err error) error {
	msg := "Cannot back up the store <em>%s</em>, nothing was changed"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.RenameBackupError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot back up %s: %w", path, err),
	}
}
