package cmd

import (
	"context"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/naming"
	"github.com/gnames/papersdb/pkg/rename"
	"github.com/gnames/papersdb/pkg/schema"
	"github.com/gnames/papersdb/pkg/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func getCheckCmd() *cobra.Command {
	var limit int

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check keys of the catalog",
		Long: `Check keys of all papers. Nothing is corrected automatically.

Reports:
  - papers without a key
  - keys shared by several papers
  - keys that do not follow the naming scheme of the catalog
  - keys in the legacy YEAR-TITLE-X-Y-Z format

Use 'papersdb rename' to regenerate keys.

Examples:
  papersdb check
  papersdb check --limit 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCheck(cmd, limit)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	checkCmd.Flags().IntVarP(&limit, "limit", "l", 20,
		"maximum number of papers shown per problem")
	return checkCmd
}

// keyCheck is the result of checking keys against a scheme.
type keyCheck struct {
	Scheme naming.Scheme

	// Mismatched papers have keys that do not follow the scheme.
	Mismatched []schema.Paper

	// Legacy is the number of mismatched keys in the legacy format.
	Legacy int
}

// checkKeys finds keys that do not follow a scheme. Papers without keys
// are skipped.
func checkKeys(papers []schema.Paper, scheme naming.Scheme) keyCheck {
	res := keyCheck{Scheme: scheme}
	for _, p := range papers {
		if p.UniqueName == "" || naming.MatchesScheme(p.UniqueName, scheme) {
			continue
		}
		res.Mismatched = append(res.Mismatched, p)
		if naming.IsLegacyKey(p.UniqueName) {
			res.Legacy++
		}
	}
	return res
}

func runCheck(cmd *cobra.Command, limit int) error {
	ctx := context.Background()

	op, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	var (
		missing []uint
		dups    []store.DuplicateKey
		papers  []schema.Paper
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		missing, err = st.MissingKeyIDs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		dups, err = st.DuplicateKeys(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		papers, err = st.AllRecords(gctx)
		return err
	})
	if err = g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	kc := checkKeys(papers, cfg.Scheme())

	gn.Info("Checked <em>%s</em> papers", humanize.Comma(int64(len(papers))))

	if len(missing) == 0 {
		gn.Info("All papers have keys")
	} else {
		gn.Warn("<warn>%s papers have no key</warn>: %s",
			humanize.Comma(int64(len(missing))), joinIDs(missing, limit))
	}

	if len(dups) == 0 {
		gn.Info("All keys are unique")
	} else {
		gn.Warn("<warn>%s keys are shared by several papers</warn>",
			humanize.Comma(int64(len(dups))))
		rows := make([][]string, 0, len(dups))
		for i, v := range dups {
			if i >= limit {
				break
			}
			rows = append(rows, []string{v.Key, strconv.Itoa(v.Count), joinIDs(v.IDs, 0)})
		}
		printTable(out, []string{"Key", "Papers", "IDs"}, rows)
	}

	if len(kc.Mismatched) == 0 {
		gn.Info("All keys follow the <em>%s</em> scheme", kc.Scheme)
		return nil
	}

	gn.Warn("<warn>%s keys do not follow the %s scheme</warn>, %s of them are legacy keys",
		humanize.Comma(int64(len(kc.Mismatched))), kc.Scheme,
		humanize.Comma(int64(kc.Legacy)))
	shown := kc.Mismatched
	if len(shown) > limit {
		shown = shown[:limit]
	}
	rows := make([][]string, len(shown))
	for i, p := range shown {
		rows[i] = []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.UniqueName,
			p.ShortTitle(rename.TitleWidth),
		}
	}
	printTable(out, []string{"ID", "Key", "Title"}, rows)
	gn.Info("Run 'papersdb rename --scheme %s' to regenerate keys", kc.Scheme)
	return nil
}

// joinIDs lists IDs separated by commas. With a positive limit the rest
// of the list is replaced by its size.
func joinIDs(ids []uint, limit int) string {
	n := len(ids)
	if limit > 0 && n > limit {
		ids = ids[:limit]
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	res := strings.Join(parts, ", ")
	if rest := n - len(ids); rest > 0 {
		res += ", ... " + strconv.Itoa(rest) + " more"
	}
	return res
}
