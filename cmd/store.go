/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/internal/iodb"
	"github.com/gnames/papersdb/internal/ioschema"
	"github.com/gnames/papersdb/internal/iostore"
	"github.com/gnames/papersdb/pkg/config"
	"github.com/gnames/papersdb/pkg/db"
	"github.com/gnames/papersdb/pkg/store"
)

// openStore connects to the catalog of the configuration. A catalog
// without tables gets its schema created, so the first command on a new
// file just works.
func openStore(
	ctx context.Context,
	cfg *config.Config,
) (db.Operator, store.Store, error) {
	op := iodb.NewOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, nil, err
	}

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		op.Close()
		return nil, nil, err
	}

	if !hasTables {
		gn.Info("Creating a new catalog at <em>%s</em>", storeName(cfg))
		sm := ioschema.NewManager(op)
		if err = sm.Create(ctx, cfg); err != nil {
			op.Close()
			return nil, nil, err
		}
	}

	return op, iostore.New(op), nil
}

// storeName describes the location of the catalog for messages.
func storeName(cfg *config.Config) string {
	if cfg.Store.Driver == db.Postgres {
		return fmt.Sprintf(
			"%s@%s:%d/%s",
			cfg.Store.User, cfg.Store.Host, cfg.Store.Port, cfg.Store.Database,
		)
	}
	return cfg.StorePath()
}
