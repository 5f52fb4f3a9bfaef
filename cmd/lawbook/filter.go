// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/lawbook/internal/stylemap"
)

var filterCmd = &cobra.Command{
	Use:   "filter [format]",
	Short: "Run as a pandoc JSON filter mapping law classes to custom styles",
	Long: `Filter reads a pandoc JSON document on stdin and writes it to stdout
with custom-style set on every Div, Span and Link that carries one of the law
classes. Divs recognise law-number, law-number1, law-number2, law-number3 and
law-desc; Links and Spans also recognise law-number-link. Pandoc passes the
target format as the only argument; it is accepted and ignored.

  pandoc law.htm --filter ./lawbook-filter -o law.docx`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			logger.Debug("Running style filter", zap.String("format", args[0]))
		}
		return stylemap.Run(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
}
