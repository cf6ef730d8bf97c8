package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/store"
	"github.com/spf13/cobra"
)

func getStatsCmd() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a summary of the catalog",
		Long: `Show numbers of papers, keys, recent additions, and counts per year,
category and project.

Examples:
  papersdb stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runStats(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return statsCmd
}

func runStats(cmd *cobra.Command) error {
	ctx := context.Background()

	op, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	stats, err := st.Stats(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	search := "substring"
	if stats.HasFTS {
		search = "full-text index"
	}
	printTable(out, []string{"Catalog", storeName(cfg)}, [][]string{
		{"Papers", humanize.Comma(stats.Papers)},
		{"With key", humanize.Comma(stats.WithKey)},
		{"Without key", humanize.Comma(stats.WithoutKey)},
		{"Added last 7 days", humanize.Comma(stats.Recent)},
		{"Search", search},
	})

	for _, v := range []struct {
		title  string
		counts []store.Count
	}{
		{"Year", stats.Years},
		{"Category", stats.Categories},
		{"Project", stats.Projects},
	} {
		if len(v.counts) == 0 {
			continue
		}
		printTable(out, []string{v.title, "Papers"}, countRows(v.counts))
	}
	return nil
}

func countRows(counts []store.Count) [][]string {
	rows := make([][]string, len(counts))
	for i, v := range counts {
		rows[i] = []string{v.Value, humanize.Comma(v.Count)}
	}
	return rows
}
