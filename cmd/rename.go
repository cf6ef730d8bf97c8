package cmd

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/papersdb/internal/iodb"
	"github.com/gnames/papersdb/internal/iofs"
	"github.com/gnames/papersdb/internal/iorename"
	"github.com/gnames/papersdb/internal/iostore"
	"github.com/gnames/papersdb/pkg/config"
	"github.com/gnames/papersdb/pkg/db"
	"github.com/gnames/papersdb/pkg/naming"
	"github.com/gnames/papersdb/pkg/rename"
	"github.com/spf13/cobra"
)

// renameFlags are options of the rename command.
type renameFlags struct {
	preview bool
	limit   int
	scheme  string
	dryRun  bool
	execute bool
	backup  bool
}

func getRenameCmd() *cobra.Command {
	var rf renameFlags

	renameCmd := &cobra.Command{
		Use:   "rename",
		Short: "Regenerate keys of all papers with a naming scheme",
		Long: `Regenerate keys of all papers and rename their PDF files.

Without --execute nothing is changed: the command shows what would change
(dry run). With --execute keys are saved one by one, and the PDF file of a
paper is renamed only after its new key is saved. Papers that fail are
reported, the rest of the catalog is processed.

PDF files are searched in the directory given by --pdf-root or by
artifacts.root of the configuration, including subdirectories. A file
keeps its directory and extension.

Schemes: sequential, year_based, hierarchical, project_first, simple.

Examples:
  # Show keys of the first papers under all schemes
  papersdb rename --preview
  papersdb rename --preview --limit 10

  # See what would change
  papersdb rename --scheme year_based --pdf-root ~/papers

  # Apply changes, keep a copy of the catalog file
  papersdb rename --scheme year_based --pdf-root ~/papers --execute --backup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRename(cmd, rf)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f := renameCmd.Flags()
	f.BoolVar(&rf.preview, "preview", false,
		"show keys of the first papers under all schemes")
	f.IntVarP(&rf.limit, "limit", "l", 5, "number of papers in preview")
	f.StringVar(&rf.scheme, "scheme", "", "naming scheme of new keys")
	f.BoolVar(&rf.dryRun, "dry-run", true,
		"show changes without applying them (default)")
	f.BoolVar(&rf.execute, "execute", false, "apply changes")
	f.BoolVar(&rf.backup, "backup", false,
		"copy the SQLite catalog file to <file>.backup before changes")
	renameCmd.MarkFlagsMutuallyExclusive("dry-run", "execute")

	return renameCmd
}

func runRename(cmd *cobra.Command, rf renameFlags) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	var scheme naming.Scheme
	if !rf.preview {
		if rf.scheme == "" {
			return MissingSchemeError()
		}
		var err error
		if scheme, err = naming.ParseScheme(rf.scheme); err != nil {
			return SchemeError(rf.scheme, err)
		}
	}

	op, err := openExisting(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	r := iorename.New(cfg, iostore.New(op), os.Stderr)

	if rf.preview {
		pr, err := r.Preview(ctx, rf.limit)
		if err != nil {
			return err
		}
		printPreview(out, pr)
		return nil
	}

	opts := rename.Options{
		Scheme:       scheme,
		Execute:      rf.execute,
		ArtifactRoot: cfg.Artifacts.Root,
		Backup:       rf.backup,
	}

	if !opts.Execute {
		gn.Info("DRY RUN: no changes will be made, use --execute to apply them")
	}

	res, err := r.Rename(ctx, opts)
	if err != nil {
		return err
	}
	printReport(out, res)

	switch {
	case res.DryRun && len(res.Changes) > 0:
		gn.Info("\nTo apply these changes, run with <em>--execute</em>")
	case !res.DryRun && res.OK():
		gn.Info("\nChanges completed successfully in %s",
			gnfmt.TimeString(res.Duration.Seconds()))
	case !res.DryRun:
		gn.Warn("\nChanges completed with %d errors", len(res.Errors))
	}

	if !res.DryRun && scheme != cfg.Scheme() {
		gn.Info("Set <em>naming.scheme: %s</em> in %s to use it for new papers",
			scheme, config.ConfigFilePath(cfg.HomeDir))
	}
	return nil
}

// openExisting connects to a catalog that has to exist already.
func openExisting(ctx context.Context, cfg *config.Config) (db.Operator, error) {
	if cfg.Store.Driver == db.SQLite && !iofs.Exists(cfg.StorePath()) {
		return nil, iodb.NotFoundError(cfg.StorePath())
	}

	op := iodb.NewOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, err
	}

	hasTables, err := op.HasTables(ctx)
	if err == nil && !hasTables {
		err = iodb.EmptyError(storeName(cfg))
	}
	if err != nil {
		op.Close()
		return nil, err
	}
	return op, nil
}

func printPreview(w io.Writer, pr *rename.Preview) {
	gn.Info("Previewing naming schemes for <em>%s</em> papers",
		humanize.Comma(int64(pr.Total)))

	for _, row := range pr.Rows {
		io.WriteString(w, "\n")
		header := [][]string{
			{"Paper", strconv.FormatUint(uint64(row.ID), 10) + ": " + row.Title},
			{"Current key", orDash(row.OldKey)},
			{"Category / Project / Year",
				strings.Join([]string{
					orDash(row.Category), orDash(row.Project),
					orDash(yearString(row.Year)),
				}, " / ")},
		}
		printTable(w, []string{"Field", "Value"}, header)
		printTable(w, []string{"Scheme", "Key"}, exampleRows(row.Examples))
	}

	gn.Info("\nRecommended scheme: <em>%s</em>", pr.Suggested)
	gn.Info("Reason: %s", naming.Describe(pr.Suggested))
}

func printReport(w io.Writer, res *rename.Report) {
	prefix := ""
	if res.DryRun {
		prefix = "DRY RUN - "
	}
	gn.Info("\n%sUpdating keys with scheme: <em>%s</em>", prefix, res.Scheme)

	if len(res.Changes) > 0 {
		rows := make([][]string, len(res.Changes))
		for i, v := range res.Changes {
			rows[i] = []string{
				strconv.FormatUint(uint64(v.ID), 10),
				orDash(v.OldKey),
				v.NewKey,
				shorten(v.Title, rename.TitleWidth),
			}
		}
		printTable(w, []string{"ID", "Old key", "New key", "Title"}, rows)
	}

	if len(res.Moves) > 0 {
		rows := make([][]string, len(res.Moves))
		for i, v := range res.Moves {
			rows[i] = []string{v.From, v.To}
		}
		printTable(w, []string{"PDF file", "New name"}, rows)
	}

	summary := [][]string{
		{"Total records", humanize.Comma(int64(res.Total))},
		{"Updates needed", humanize.Comma(int64(len(res.Changes)))},
		{"Keys updated", humanize.Comma(int64(res.Updated))},
		{"Unchanged", humanize.Comma(int64(res.Unchanged()))},
		{"Cannot generate", humanize.Comma(int64(len(res.Failures)))},
		{"PDFs found", humanize.Comma(int64(res.Found))},
		{"PDF renames", humanize.Comma(int64(len(res.Moves)))},
		{"Errors", humanize.Comma(int64(len(res.Errors)))},
	}
	if res.BackupPath != "" {
		summary = append(summary, []string{"Backup", res.BackupPath})
	}
	printTable(w, []string{"Summary", ""}, summary)

	for _, v := range res.Failures {
		gn.Warn("Record %d: %s - %s", v.ID, v.Reason, shorten(v.Title, rename.TitleWidth))
	}
	for _, v := range res.Collisions() {
		gn.Warn("<warn>Key %s would be shared by papers %s</warn>", v.Key, joinIDs(v.IDs, 0))
	}
	for _, v := range res.Errors {
		gn.Warn("<warn>Record %d: %s</warn>", v.ID, v.Reason)
	}
}
