package cmd

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/flytaly/scrapmd/pkg/convert"
	"github.com/flytaly/scrapmd/pkg/document"
)

var treeDump = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the syntax tree of a document after the heading pass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig(cmd)
			if err != nil {
				return err
			}

			path, err := target(cmd, args)
			if err != nil {
				return wrapLocateError(err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return wrapLocateError(err)
			}
			doc, err := document.Parse(path, data)
			if err != nil {
				return err
			}

			res := convert.New(converterOptions(cfg)).Convert(doc.Body)
			treeDump.Fdump(cmd.OutOrStdout(), res.Page)
			return nil
		},
	}
}
