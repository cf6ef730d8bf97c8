package cmd

import (
	"context"
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/internal/ioartifact"
	"github.com/gnames/papersdb/pkg/rename"
	"github.com/spf13/cobra"
)

func getAttachCmd() *cobra.Command {
	var replace bool

	attachCmd := &cobra.Command{
		Use:   "attach <id> <file.pdf>",
		Short: "Copy a PDF file into the PDF directory under the key of a paper",
		Long: `Copy a PDF file into the PDF directory as <key>.pdf.

A paper without a key gets its key first. The PDF directory is set by
artifacts.root in the configuration or by the --pdf-root flag.

Examples:
  papersdb attach 42 ~/Downloads/paper.pdf
  papersdb attach 42 new-version.pdf --replace`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAttach(args[0], args[1], replace)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	attachCmd.Flags().BoolVar(&replace, "replace", false,
		"replace an existing PDF file of the paper")
	return attachCmd
}

func runAttach(arg, src string, replace bool) error {
	ctx := context.Background()

	id, err := parseID(arg)
	if err != nil {
		return err
	}

	if cfg.Artifacts.Root == "" {
		return ioartifact.RootError("", errors.New("PDF directory is not configured"))
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

	key := p.UniqueName
	if key == "" {
		if key, err = assignKey(ctx, st, p); err != nil {
			return err
		}
		if key == "" {
			return KeyError(rename.Reason(p.Fields(), cfg.Scheme()))
		}
		gn.Info("Paper <em>%d</em> got key <em>%s</em>", id, key)
	}

	path, err := attachPDF(src, key, replace)
	if err != nil {
		return err
	}
	gn.Info("PDF file saved to <em>%s</em>", path)
	return nil
}

func attachPDF(src, key string, replace bool) (string, error) {
	root := cfg.Artifacts.Root
	if root == "" {
		return "", ioartifact.RootError(root, errors.New("PDF directory is not configured"))
	}
	return ioartifact.Attach(src, root, key, replace)
}
