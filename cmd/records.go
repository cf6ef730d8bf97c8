package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/papersdb/internal/ioartifact"
	"github.com/gnames/papersdb/internal/iostore"
	"github.com/gnames/papersdb/pkg/naming"
	"github.com/gnames/papersdb/pkg/rename"
	"github.com/gnames/papersdb/pkg/schema"
	"github.com/gnames/papersdb/pkg/store"
	"github.com/spf13/cobra"
)

func getAddCmd() *cobra.Command {
	var (
		pf  paperFlags
		pdf string
	)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a paper to the catalog",
		Long: `Add a paper to the catalog.

The key of the paper is generated with the naming scheme of the catalog
right after the paper is saved. A key needs a title, a category code and a
project code (and a year for the year_based scheme). Papers without them
are saved without a key, unless --pdf is given: a PDF needs a key, so
such papers are refused.

Examples:
  papersdb add -t "Cardiac bioprinting at scale" -c BRNG -p CANG -y 2023
  papersdb add -t "Organoids" -c PHHD -p IBON --pdf ~/Downloads/org.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAdd(cmd, &pf, pdf)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	pf.bind(addCmd)
	addCmd.Flags().StringVar(&pdf, "pdf", "",
		"PDF file to copy into the PDF directory under the new key")

	return addCmd
}

func runAdd(cmd *cobra.Command, pf *paperFlags, pdf string) error {
	ctx := context.Background()

	if strings.TrimSpace(pf.title) == "" {
		return MissingTitleError()
	}

	p := pf.paper()
	if pdf != "" {
		if err := checkAttachable(p, pdf); err != nil {
			return err
		}
	}

	op, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	warnUnknownCodes(ctx, st, p)

	id, err := st.CreateRecord(ctx, &p)
	if err != nil {
		return err
	}

	key, err := assignKey(ctx, st, &p)
	if err != nil {
		return err
	}

	if key == "" {
		gn.Info("Added paper <em>%d</em> without a key", id)
		if pdf != "" {
			gn.Warn("PDF file <em>%s</em> was not attached", pdf)
		}
		return nil
	}
	gn.Info("Added paper <em>%d</em> with key <em>%s</em>", id, key)

	if pdf != "" {
		path, err := attachPDF(pdf, key, false)
		if err != nil {
			return err
		}
		gn.Info("PDF file saved to <em>%s</em>", path)
	}
	return nil
}

// checkAttachable refuses a PDF that could not be saved under the key of
// a new paper, so the paper is not created without it.
func checkAttachable(p schema.Paper, pdf string) error {
	if cfg.Artifacts.Root == "" {
		return ioartifact.RootError("", errors.New("PDF directory is not configured"))
	}
	scheme := cfg.Scheme()
	// any positive sequence number works, IDs start at 1
	if naming.Generate(p.Fields(), 1, scheme) == "" {
		return KeyError(rename.Reason(p.Fields(), scheme))
	}
	if _, err := os.Stat(pdf); err != nil {
		return ioartifact.NotFoundError(pdf, err)
	}
	return nil
}

// assignKey generates and saves the key of a paper under the scheme of
// the catalog. The sequence number is the ID of the paper, IDs are never
// reused. It returns an empty key when fields are not sufficient.
func assignKey(
	ctx context.Context,
	st store.Store,
	p *schema.Paper,
) (string, error) {
	scheme := cfg.Scheme()
	key := naming.Generate(p.Fields(), int(p.ID), scheme)
	if key == "" {
		gn.Warn("Cannot generate key: %s", rename.Reason(p.Fields(), scheme))
		return "", nil
	}
	if key == p.UniqueName {
		return key, nil
	}

	if err := st.UpdateKey(ctx, p.ID, key); err != nil {
		return "", err
	}
	p.UniqueName = key
	return key, nil
}

// warnUnknownCodes warns about codes that are missing from vocabularies.
func warnUnknownCodes(ctx context.Context, st store.Store, p schema.Paper) {
	check := []struct {
		v    schema.Vocabulary
		code string
	}{
		{schema.Category, p.RelatesTo},
		{schema.Project, p.ProjectID},
	}
	for _, c := range check {
		code := schema.NormalizeCode(c.code)
		if code == "" {
			continue
		}
		codes, err := st.Codes(ctx, c.v)
		if err != nil {
			continue
		}
		var found bool
		for _, v := range codes {
			if v.Code == code {
				found = true
				break
			}
		}
		if !found {
			gn.Warn(
				"<warn>%s code %s is not in the vocabulary</warn>, "+
					"add it with 'papersdb vocab add %s %s \"Name\"'",
				c.v, code, c.v, code,
			)
		}
	}
}

func getListCmd() *cobra.Command {
	var (
		category, project, year, journal, authors string
		limit                                     int
		asJSON                                    bool
	)

	listCmd := &cobra.Command{
		Use:     "list [search terms]",
		Aliases: []string{"search"},
		Short:   "List or search papers",
		Long: `List papers, most recently updated first.

Search terms are matched against title, authors, journal, abstract,
keywords, tags and notes. SQLite catalogs use the full-text index, where
every word has to be present. Filters match parts of values, years and
codes match exactly.

Examples:
  papersdb list
  papersdb list bioprinting
  papersdb list -c BRNG -y 2023
  papersdb search organoid perfusion --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := map[string]any{
				"relates_to": filterValue("relates_to", category),
				"project_id": filterValue("project_id", project),
				"year":       filterValue("year", year),
				"journal":    filterValue("journal", journal),
				"authors":    filterValue("authors", authors),
			}
			q := store.Query{
				Term:    strings.Join(args, " "),
				Filters: filters,
				Limit:   limit,
			}
			err := runList(cmd, q, asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f := listCmd.Flags()
	f.StringVarP(&category, "category", "c", "", "filter by category code")
	f.StringVarP(&project, "project", "p", "", "filter by project code")
	f.StringVarP(&year, "year", "y", "", "filter by publication year")
	f.StringVarP(&journal, "journal", "j", "", "filter by journal")
	f.StringVarP(&authors, "authors", "a", "", "filter by authors")
	f.IntVarP(&limit, "limit", "l", 0,
		"maximum number of papers (default from configuration)")
	f.BoolVar(&asJSON, "json", false, "print papers as JSON")

	return listCmd
}

func runList(cmd *cobra.Command, q store.Query, asJSON bool) error {
	ctx := context.Background()

	if q.Limit <= 0 {
		q.Limit = cfg.Search.Limit
	}

	op, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	papers, err := st.ListRecords(ctx, q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return printJSON(out, papers)
	}

	if len(papers) == 0 {
		gn.Info("No papers found")
		return nil
	}

	printTable(out, paperHeaders, paperRows(papers))
	gn.Info("Found <em>%s</em> papers", humanize.Comma(int64(len(papers))))
	return nil
}

var paperHeaders = []string{"ID", "Key", "Year", "Category", "Project", "Title"}

func paperRows(papers []schema.Paper) [][]string {
	rows := make([][]string, len(papers))
	for i, p := range papers {
		rows[i] = []string{
			strconv.FormatUint(uint64(p.ID), 10),
			orDash(p.UniqueName),
			yearString(p.YearValue()),
			p.RelatesTo,
			p.ProjectID,
			p.ShortTitle(rename.TitleWidth),
		}
	}
	return rows
}

func getShowCmd() *cobra.Command {
	var asJSON bool

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show all fields of a paper",
		Long: `Show all fields of a paper and the location of its PDF file.

Examples:
  papersdb show 42
  papersdb show 42 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runShow(cmd, args[0], asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	showCmd.Flags().BoolVar(&asJSON, "json", false, "print the paper as JSON")
	return showCmd
}

func runShow(cmd *cobra.Command, arg string, asJSON bool) error {
	ctx := context.Background()

	id, err := parseID(arg)
	if err != nil {
		return err
	}

	op, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	p, err := getPaper(ctx, st, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return printJSON(out, p)
	}

	pdf := "-"
	if path, ok := findPDF(p.UniqueName); ok {
		pdf = path
	}

	rows := [][]string{
		{"ID", strconv.FormatUint(uint64(p.ID), 10)},
		{"Key", orDash(p.UniqueName)},
		{"Title", p.Title},
		{"Authors", orDash(p.Authors)},
		{"Year", orDash(yearString(p.YearValue()))},
		{"Journal", orDash(p.Journal)},
		{"DOI", orDash(p.DOI)},
		{"URL", orDash(p.URL)},
		{"Category", orDash(p.RelatesTo)},
		{"Project", orDash(p.ProjectID)},
		{"Keywords", orDash(p.Keywords)},
		{"Tags", orDash(p.Tags)},
		{"Notes", orDash(p.Notes)},
		{"Abstract", orDash(shorten(p.Abstract, 200))},
		{"PDF", pdf},
		{"Added", p.CreatedAt.Format("2006-01-02 15:04")},
		{"Updated", p.UpdatedAt.Format("2006-01-02 15:04")},
	}
	printTable(out, []string{"Field", "Value"}, rows)
	return nil
}

func getUpdateCmd() *cobra.Command {
	var (
		pf    paperFlags
		rekey bool
	)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a paper",
		Long: `Update fields of a paper. Only fields given as flags change, an empty
value clears a field.

The key of the paper is not changed unless --rekey is given. With --rekey
the key is generated again with the scheme of the catalog, and the PDF
file of the paper is renamed to the new key.

Examples:
  papersdb update 42 --notes "read twice"
  papersdb update 42 -c PHHD --rekey`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runUpdate(cmd, args[0], &pf, rekey)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	pf.bind(updateCmd)
	updateCmd.Flags().BoolVarP(&rekey, "rekey", "r", false,
		"generate the key again and rename the PDF file")

	return updateCmd
}

func runUpdate(
	cmd *cobra.Command,
	arg string,
	pf *paperFlags,
	rekey bool,
) error {
	ctx := context.Background()

	id, err := parseID(arg)
	if err != nil {
		return err
	}

	changes := pf.changes(cmd)
	if len(changes) == 0 && !rekey {
		gn.Warn("Nothing to update, use flags to set fields")
		return nil
	}

	op, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = st.UpdateRecord(ctx, id, changes); err != nil {
		return err
	}
	gn.Info("Paper <em>%d</em> updated", id)

	if !rekey {
		if touchesKey(changes) {
			gn.Warn("The key is unchanged, use --rekey to generate it again")
		}
		return nil
	}

	p, err := getPaper(ctx, st, id)
	if err != nil {
		return err
	}
	oldKey := p.UniqueName
	key, err := assignKey(ctx, st, p)
	if err != nil || key == "" || key == oldKey {
		return err
	}
	gn.Info("Key changed from <em>%s</em> to <em>%s</em>", orDash(oldKey), key)

	if from, ok := findPDF(oldKey); ok {
		to := ioartifact.Path(cfg.Artifacts.Root, key)
		if err = ioartifact.Move(from, to); err != nil {
			return err
		}
		gn.Info("PDF file renamed to <em>%s</em>", to)
	}
	return nil
}

func getDeleteCmd() *cobra.Command {
	var yes bool

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a paper",
		Long: `Delete a paper from the catalog. The PDF file of the paper is kept.

Examples:
  papersdb delete 42
  papersdb delete 42 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDelete(args[0], yes)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false,
		"delete without confirmation")
	return deleteCmd
}

func runDelete(arg string, yes bool) error {
	ctx := context.Background()

	id, err := parseID(arg)
	if err != nil {
		return err
	}

	op, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	p, err := getPaper(ctx, st, id)
	if err != nil {
		return err
	}

	if !yes {
		prompt := fmt.Sprintf(
			"Delete paper %d \"%s\"?", p.ID, p.ShortTitle(rename.TitleWidth),
		)
		if !confirm(prompt) {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	if err = st.DeleteRecord(ctx, id); err != nil {
		return err
	}
	gn.Info("Paper <em>%d</em> deleted", id)

	if path, ok := findPDF(p.UniqueName); ok {
		gn.Info("PDF file is kept at <em>%s</em>", path)
	}
	return nil
}

// getPaper returns a paper or a not found error.
func getPaper(ctx context.Context, st store.Store, id uint) (*schema.Paper, error) {
	p, err := st.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, iostore.RecordNotFoundError(id)
	}
	return p, nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		gn.Warn("<warn>ID of a paper must be a positive number, got '%s'</warn>", s)
		return 0, fmt.Errorf("invalid paper id %q", s)
	}
	return uint(id), nil
}

// findPDF looks for the PDF file of a key in the configured directory.
func findPDF(key string) (string, bool) {
	if cfg.Artifacts.Root == "" || key == "" {
		return "", false
	}
	return ioartifact.Find(cfg.Artifacts.Root, key)
}

func confirm(prompt string) bool {
	fmt.Printf("%s (yes/no): ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}

func printJSON(w io.Writer, v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// shorten cuts text to n characters.
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
