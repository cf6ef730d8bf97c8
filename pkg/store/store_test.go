package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/errcode"
	"github.com/gnames/papersdb/pkg/store"
	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	notFound := &gn.Error{Code: errcode.RecordNotFoundError, Err: errors.New("no")}
	codeNotFound := &gn.Error{Code: errcode.CodeNotFoundError, Err: errors.New("no")}
	inUse := &gn.Error{Code: errcode.CodeInUseError, Err: errors.New("used")}
	query := &gn.Error{Code: errcode.StoreQueryError, Err: errors.New("bad")}

	tests := []struct {
		msg      string
		err      error
		notFound bool
		inUse    bool
	}{
		{"record not found", notFound, true, false},
		{"code not found", codeNotFound, true, false},
		{"wrapped not found", fmt.Errorf("ctx: %w", notFound), true, false},
		{"in use", inUse, false, true},
		{"query", query, false, false},
		{"plain", errors.New("plain"), false, false},
		{"nil", nil, false, false},
	}

	for _, v := range tests {
		assert.Equal(t, v.notFound, store.IsNotFound(v.err), v.msg)
		assert.Equal(t, v.inUse, store.IsInUse(v.err), v.msg)
	}
}
