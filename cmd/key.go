package cmd

import (
	"io"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/naming"
	"github.com/gnames/papersdb/pkg/rename"
	"github.com/spf13/cobra"
)

func getKeyCmd() *cobra.Command {
	var (
		title, category, project, year, scheme string
		seq                                    int
		all                                    bool
	)

	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Generate a key from fields without touching the catalog",
		Long: `Generate the key of a paper from its fields.

Without --scheme the scheme of the catalog configuration is used. With
--all keys of every scheme are shown.

Examples:
  papersdb key -t "Deep Learning" -c BRNG -p SYEL --seq 1
  papersdb key -t "Deep Learning" -c BRNG -p SYEL -y 2023 --scheme year_based
  papersdb key -t "Deep Learning" -c BRNG -p SYEL -y 2023 --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := naming.Fields{
				Title:    title,
				Category: category,
				Project:  project,
				Year:     naming.ParseYear(year),
			}
			err := runKey(cmd.OutOrStdout(), cmd, f, seq, scheme, all)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	fl := keyCmd.Flags()
	fl.StringVarP(&title, "title", "t", "", "title of the paper")
	fl.StringVarP(&category, "category", "c", "", "category code")
	fl.StringVarP(&project, "project", "p", "", "project code")
	fl.StringVarP(&year, "year", "y", "", "publication year")
	fl.IntVar(&seq, "seq", 1, "sequence number of the paper")
	fl.StringVar(&scheme, "scheme", "", "naming scheme")
	fl.BoolVarP(&all, "all", "a", false, "show keys of all schemes")

	return keyCmd
}

func runKey(
	w io.Writer,
	cmd *cobra.Command,
	f naming.Fields,
	seq int,
	schemeName string,
	all bool,
) error {
	if all {
		printTable(w, []string{"Scheme", "Key"}, exampleRows(naming.Preview(f, seq)))
		return nil
	}

	sc := naming.Sequential
	if cfg != nil {
		sc = cfg.Scheme()
	}
	if cmd.Flags().Changed("scheme") {
		var err error
		if sc, err = naming.ParseScheme(schemeName); err != nil {
			return SchemeError(schemeName, err)
		}
	}

	key := naming.Generate(f, seq, sc)
	if key == "" {
		return KeyError(rename.Reason(f, sc))
	}
	_, err := io.WriteString(w, key+"\n")
	return err
}

// exampleRows formats keys of every scheme. Schemes that cannot produce
// a key are marked.
func exampleRows(examples []naming.Example) [][]string {
	rows := make([][]string, len(examples))
	for i, v := range examples {
		key := v.Key
		if key == "" {
			key = "(cannot generate)"
		}
		rows[i] = []string{v.Scheme.String(), key}
	}
	return rows
}
