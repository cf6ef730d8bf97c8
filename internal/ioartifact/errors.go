package ioartifact

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/errcode"
)

// RootError is returned when the artifact root is not a readable
// directory.
func RootError(root string, err error) error {
	msg := `Cannot read PDF directory <em>%s</em>

<em>How to fix:</em>
  Set <em>artifacts.root</em> in the configuration file or use
  the <em>--pdf-root</em> flag`
	vars := []any{root}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArtifactRootError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read directory %s: %w",
			fn.Name(), root, err),
	}
}

// NotFoundError is returned when a source file does not exist.
func NotFoundError(path string, err error) error {
	msg := "File <em>%s</em> not found"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ArtifactNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("file %s not found: %w", path, err),
	}
}

// ExistsError is returned when the target of a rename or a copy already
// exists.
func ExistsError(path string) error {
	msg := "Target file already exists: <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ArtifactExistsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("target file already exists: %s", path),
	}
}

func RenameError(from, to string, err error) error {
	msg := "Cannot rename <em>%s</em> to <em>%s</em>"
	vars := []any{from, to}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArtifactRenameError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot rename %s: %w",
			fn.Name(), from, err),
	}
}

func CopyError(src, dst string, err error) error {
	msg := "Cannot copy <em>%s</em> to <em>%s</em>"
	vars := []any{src, dst}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArtifactCopyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot copy %s: %w",
			fn.Name(), src, err),
	}
}
