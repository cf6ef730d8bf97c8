package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/pkg/schema"
	"github.com/gnames/papersdb/pkg/store"
	"github.com/spf13/cobra"
)

func getVocabCmd() *cobra.Command {
	vocabCmd := &cobra.Command{
		Use:   "vocab",
		Short: "Manage category and project codes",
		Long: `Manage the two code vocabularies of the catalog.

Categories describe what a paper relates to (BRNG, PHHD, ...), projects
describe where it is used (SYEL, CANG, ...). Codes are stored uppercase.
A code used by papers cannot be deleted.

Examples:
  papersdb vocab list category
  papersdb vocab add project ORGN "Organoid models"
  papersdb vocab update project ORGN "Organoid models" -d "2025 grant"
  papersdb vocab delete project ORGN`,
	}

	vocabCmd.AddCommand(
		getVocabListCmd(),
		getVocabAddCmd(),
		getVocabUpdateCmd(),
		getVocabDeleteCmd(),
	)
	return vocabCmd
}

func getVocabListCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list <category|project>",
		Short:     "List codes of a vocabulary",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"category", "project"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withVocab(args[0], func(ctx context.Context, st store.Store, v schema.Vocabulary) error {
				codes, err := st.Codes(ctx, v)
				if err != nil {
					return err
				}
				rows := make([][]string, len(codes))
				for i, c := range codes {
					rows[i] = []string{c.Code, c.Name, c.Description}
				}
				printTable(cmd.OutOrStdout(), []string{"Code", "Name", "Description"}, rows)
				return nil
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func getVocabAddCmd() *cobra.Command {
	var description string
	addCmd := &cobra.Command{
		Use:   "add <category|project> <code> <name>",
		Short: "Add a code to a vocabulary",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := schema.Code{Code: args[1], Name: args[2], Description: description}
			err := withVocab(args[0], func(ctx context.Context, st store.Store, v schema.Vocabulary) error {
				if err := st.AddCode(ctx, v, c); err != nil {
					return err
				}
				gn.Info("Added %s code <em>%s</em>", v, schema.NormalizeCode(c.Code))
				return nil
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	addCmd.Flags().StringVarP(&description, "description", "d", "",
		"description of the code")
	return addCmd
}

func getVocabUpdateCmd() *cobra.Command {
	var description string
	updateCmd := &cobra.Command{
		Use:   "update <category|project> <code> <name>",
		Short: "Change the name and description of a code",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := schema.Code{Code: args[1], Name: args[2], Description: description}
			err := withVocab(args[0], func(ctx context.Context, st store.Store, v schema.Vocabulary) error {
				if err := st.UpdateCode(ctx, v, c); err != nil {
					return err
				}
				gn.Info("Updated %s code <em>%s</em>", v, schema.NormalizeCode(c.Code))
				return nil
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	updateCmd.Flags().StringVarP(&description, "description", "d", "",
		"description of the code")
	return updateCmd
}

func getVocabDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category|project> <code>",
		Short: "Delete a code that no paper uses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withVocab(args[0], func(ctx context.Context, st store.Store, v schema.Vocabulary) error {
				if err := st.DeleteCode(ctx, v, args[1]); err != nil {
					if store.IsInUse(err) {
						gn.Warn("Reassign papers to another %s code first", v)
					}
					return err
				}
				gn.Info("Deleted %s code <em>%s</em>", v, schema.NormalizeCode(args[1]))
				return nil
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

// withVocab parses the vocabulary name, opens the catalog and runs fn.
func withVocab(
	name string,
	fn func(context.Context, store.Store, schema.Vocabulary) error,
) error {
	ctx := context.Background()

	v, err := schema.ParseVocabulary(name)
	if err != nil {
		gn.Warn("<warn>Unknown vocabulary '%s'</warn>, use 'category' or 'project'", name)
		return err
	}

	op, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	return fn(ctx, st, v)
}
