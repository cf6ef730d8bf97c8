package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/errcode"
	"github.com/gnames/papersdb/pkg/schema"
)

// NotConnectedError is returned when the store is used before the
// operator is connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.StoreNotConnectedError,
		Msg:  "Store operation attempted without connection",
		Err:  fmt.Errorf("not connected to store"),
	}
}

// QueryError wraps a failed statement.
func QueryError(op string, err error) error {
	msg := "Store query <em>%s</em> failed"
	vars := []any{op}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s failed: %w", fn.Name(), op, err),
	}
}

// UnknownColumnError is returned for columns that are not a part of
// papers.
func UnknownColumnError(col string) error {
	msg := "Unknown column <em>%s</em>"
	vars := []any{col}
	return &gn.Error{
		Code: errcode.StoreUnknownColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown column %q", col),
	}
}

func RecordNotFoundError(id uint) error {
	msg := "Record <em>%d</em> not found"
	vars := []any{id}
	return &gn.Error{
		Code: errcode.RecordNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("record %d not found", id),
	}
}

func RecordCreateError(err error) error {
	msg := "Cannot create record"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecordCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot create record: %w", fn.Name(), err),
	}
}

func RecordUpdateError(id uint, err error) error {
	msg := "Cannot update record <em>%d</em>"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecordUpdateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot update record %d: %w",
			fn.Name(), id, err),
	}
}

func RecordDeleteError(id uint, err error) error {
	msg := "Cannot delete record <em>%d</em>"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecordDeleteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot delete record %d: %w",
			fn.Name(), id, err),
	}
}

func CodeNotFoundError(v schema.Vocabulary, code string) error {
	msg := "There is no %s code <em>%s</em>"
	vars := []any{v, code}
	return &gn.Error{
		Code: errcode.CodeNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s code %s not found", v, code),
	}
}

func CodeExistsError(v schema.Vocabulary, code string) error {
	msg := "The %s code <em>%s</em> already exists"
	vars := []any{v, code}
	return &gn.Error{
		Code: errcode.CodeExistsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s code %s exists", v, code),
	}
}

// CodeInUseError is returned when papers still refer to a code that is
// being deleted.
func CodeInUseError(v schema.Vocabulary, code string, count int64) error {
	msg := "Cannot delete %s code <em>%s</em>: %d record(s) use it"
	vars := []any{v, code, count}
	return &gn.Error{
		Code: errcode.CodeInUseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s code %s is used by %d records", v, code, count),
	}
}

func CodeInvalidError(reason string) error {
	msg := "Invalid code: %s"
	vars := []any{reason}
	return &gn.Error{
		Code: errcode.CodeInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid code: %s", reason),
	}
}
