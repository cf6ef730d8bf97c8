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

// getCreateCmd returns the command that builds an empty catalog.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create catalog schema",
		Long: `Create the papers catalog from scratch.

This command:
  1. Connects to the store (SQLite file or PostgreSQL)
  2. Checks for existing tables and prompts for confirmation
  3. Creates all tables using GORM AutoMigrate
  4. Creates the full-text index of papers (SQLite only)
  5. Fills category and project vocabularies with default codes

Use --force to skip confirmation and drop existing tables.

Examples:
  papersdb create
  papersdb create --force
  papersdb create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, forceCreate)
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(
	_ *cobra.Command,
	_ []string,
	force bool,
) error {
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

	if hasTables {
		if !force {
			gn.Warn("The catalog already has tables.")
			gn.Warn("A new schema replaces ALL papers and codes.")
			if !confirm("\nReplace the catalog?") {
				gn.Info("Catalog left untouched.")
				return nil
			}
		}

		if err = op.DropAllTables(ctx); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("Old tables removed")
	}

	sm := ioschema.NewManager(op)
	if err = sm.Create(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Catalog <em>%s</em> is ready", storeName(cfg))
	gn.Info("Try 'papersdb vocab list category' or 'papersdb add --title ...'")

	return nil
}
