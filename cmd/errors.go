package cmd

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/errcode"
	"github.com/gnames/papersdb/pkg/naming"
)

// SchemeError is returned for unknown naming schemes.
func SchemeError(name string, err error) error {
	msg := `Unknown naming scheme <em>%s</em>

<em>Valid schemes:</em> %s`
	vars := []any{name, strings.Join(naming.SchemeNames(), ", ")}
	return &gn.Error{
		Code: errcode.NamingSchemeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse scheme: %w", err),
	}
}

// MissingSchemeError is returned when a rename runs without a scheme.
func MissingSchemeError() error {
	msg := `<em>--scheme</em> is required for updates

Use <em>papersdb rename --preview</em> to see options`
	return &gn.Error{
		Code: errcode.NamingSchemeError,
		Msg:  msg,
		Err:  fmt.Errorf("scheme is not set"),
	}
}

// MissingTitleError is returned when a paper is added without a title.
func MissingTitleError() error {
	msg := "Title of a paper is required, use <em>--title</em>"
	return &gn.Error{
		Code: errcode.RecordMissingTitleError,
		Msg:  msg,
		Err:  fmt.Errorf("title is empty"),
	}
}

// KeyError is returned when fields are not sufficient for a key.
func KeyError(reason string) error {
	msg := "Cannot generate key: %s"
	return &gn.Error{
		Code: errcode.NamingKeyError,
		Msg:  msg,
		Vars: []any{reason},
		Err:  fmt.Errorf("cannot generate key: %s", reason),
	}
}
