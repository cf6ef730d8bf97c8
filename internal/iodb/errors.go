package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/errcode"
)

// ConnectionError is returned when the store cannot be opened. The target
// is a file path for SQLite and host:port/database for PostgreSQL.
func ConnectionError(driver, target string, err error) error {
	msg := `Cannot open <em>%s</em> store <em>%s</em>

<em>Possible causes:</em>
  - SQLite file directory does not exist or is not writable
  - PostgreSQL is not running or credentials are wrong
  - Network connectivity issues

<em>How to fix:</em>
  1. Check the store section of your configuration file:
     <em>~/.config/papersdb/config.yaml</em>
  2. For PostgreSQL check the server:
     <em>pg_isready</em>`
	vars := []any{driver, target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s %s: %w",
			fn.Name(), driver, target, err),
	}
}

// UnknownDriverError is returned for drivers other than sqlite and
// postgres.
func UnknownDriverError(driver string) error {
	msg := "Unknown store driver <em>%s</em>, use 'sqlite' or 'postgres'"
	return &gn.Error{
		Code: errcode.StoreConnectionError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("unknown store driver %q", driver),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	msg := "Store operation attempted without connection"
	return &gn.Error{
		Code: errcode.StoreNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to store"),
	}
}

// TableCheckError is returned when checking for tables fails.
func TableCheckError(err error) error {
	msg := "Could not verify the state of the store"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreTableCheckError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: failed to check tables: %w",
			fn.Name(), err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreDropTableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to drop table %s: %w",
			fn.Name(), table, err),
	}
}

// NotFoundError is returned when a SQLite file of the store does not
// exist and has to be opened, not created.
func NotFoundError(path string) error {
	msg := `Catalog file <em>%s</em> not found

<em>How to fix:</em>
  Use <em>--store</em> flag or <em>store.path</em> in the configuration file`
	return &gn.Error{
		Code: errcode.StoreNotFoundError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("store file %s not found", path),
	}
}

// EmptyError is returned when the store has no tables.
func EmptyError(target string) error {
	msg := `Catalog <em>%s</em> has no tables

<em>How to fix:</em>
  Run <em>papersdb create</em> first`
	return &gn.Error{
		Code: errcode.StoreEmptyError,
		Msg:  msg,
		Vars: []any{target},
		Err:  fmt.Errorf("store %s has no tables", target),
	}
}
