package cmd

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/papersdb/internal/iofs"
	"github.com/gnames/papersdb/pkg/schema"
	"github.com/spf13/cobra"
)

func getExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export all papers to a CSV file",
		Long: `Export all papers to a CSV file, in ID order. The first row contains
column names.

Examples:
  papersdb export papers.csv
  papersdb export -     # write to STDOUT`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExport(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return exportCmd
}

func runExport(cmd *cobra.Command, path string) error {
	ctx := context.Background()

	op, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	papers, err := st.AllRecords(ctx)
	if err != nil {
		return err
	}

	if path == "-" {
		return writeCSV(cmd.OutOrStdout(), papers)
	}

	f, err := os.Create(path)
	if err != nil {
		return iofs.WriteFileError(path, err)
	}
	if err = writeCSV(f, papers); err != nil {
		f.Close()
		return iofs.WriteFileError(path, err)
	}
	if err = f.Close(); err != nil {
		return iofs.WriteFileError(path, err)
	}

	gn.Info("Exported <em>%s</em> papers to <em>%s</em>",
		humanize.Comma(int64(len(papers))), path)
	return nil
}

// csvHeader are columns of exported papers.
var csvHeader = append(
	append([]string{"id"}, schema.PaperColumns...),
	"created_at", "updated_at",
)

func writeCSV(w io.Writer, papers []schema.Paper) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range papers {
		if err := cw.Write(csvRecord(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// csvRecord follows the order of schema.PaperColumns.
func csvRecord(p schema.Paper) []string {
	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		p.Title,
		p.Authors,
		yearString(p.YearValue()),
		p.Journal,
		p.DOI,
		p.URL,
		p.Abstract,
		p.Keywords,
		p.Tags,
		p.Notes,
		p.RelatesTo,
		p.ProjectID,
		p.UniqueName,
		p.CreatedAt.Format(time.DateTime),
		p.UpdatedAt.Format(time.DateTime),
	}
}
