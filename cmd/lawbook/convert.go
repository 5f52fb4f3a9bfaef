// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lawbook/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert saved law HTML files to docx with custom styles",
	Long: `Convert turns .htm files into .docx files next to them using pandoc in
a Docker or Podman container. Law classes become named custom styles; pass
--reference-doc to control how those styles look.

With no arguments every .htm file in the output directory is converted.
Existing .docx files are kept unless --overwrite is given.`,
	RunE: runConvert,
}

func init() {
	addPandocFlags(convertCmd)
	convertCmd.Flags().Bool("overwrite", false, "replace existing .docx files")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	paths := args
	if len(paths) == 0 {
		found, err := convert.FindHTML(cfg.Crawl.OutputDir)
		if err != nil {
			return err
		}
		paths = found
	}
	if len(paths) == 0 {
		fmt.Printf("No .htm files in %s\n", cfg.Crawl.OutputDir)
		return nil
	}

	conv, err := newConverter(cfg.Conversion)
	if err != nil {
		return err
	}

	result := convert.ConvertBatch(cmd.Context(), conv, paths, overwrite, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
