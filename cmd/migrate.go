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

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/internal/iodb"
	"github.com/gnames/papersdb/internal/ioschema"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the command that upgrades an existing catalog.
func getMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate catalog schema to latest version",
		Long: `Migrate updates the catalog schema to the latest version.

This command:
  1. Connects to the store using configuration settings
  2. Checks if the catalog schema exists
  3. Runs GORM AutoMigrate to update schema
  4. Recreates full-text index triggers (SQLite only)
  5. Preserves existing data (non-destructive)

Use it to open catalogs made by older versions or by the desktop
application.

Examples:
  papersdb migrate
  papersdb migrate --store ~/papers/papers.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, args)
		},
	}

	return migrateCmd
}

func runMigrate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op := iodb.NewOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to catalog: <em>%s</em>", storeName(cfg))

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if !hasTables {
		gn.Warn("Catalog <em>%s</em> has no tables, run 'papersdb create'",
			storeName(cfg))
		return nil
	}

	sm := ioschema.NewManager(op)
	if err = sm.Migrate(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Catalog schema is up to date")
	return nil
}
