// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lawbook/internal/ledger"
	"github.com/pdiddy/lawbook/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last synced revision and the saved documents",
	Long: `Status reads the ledger in the output directory and lists the revision
date of the last complete sync and every saved document. Use --export to
also write the ledger to documents.yaml.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().Bool("export", false, "write the ledger to documents.yaml in the output directory")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	ctx := cmd.Context()

	store, err := ledger.Open(cfg.Crawl.OutputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	date, ok, err := store.LastUpdated(ctx)
	if err != nil {
		return err
	}
	if !ok {
		date = "never"
	}
	docs, err := store.Documents(ctx)
	if err != nil {
		return err
	}
	printStatus(os.Stdout, date, docs)

	if export, _ := cmd.Flags().GetBool("export"); export {
		path, err := store.ExportYAML(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
	}
	return nil
}

func printStatus(w io.Writer, lastUpdated string, docs []types.LawDocument) {
	fmt.Fprintf(w, "Last synced revision: %s\n", lastUpdated)
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents saved.")
		return
	}

	fmt.Fprintf(w, "\n%-50s  %-20s  %-4s  %s\n", "Name", "Saved", "Docx", "SHA-256")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, d := range docs {
		docx := "no"
		if d.DocxPath != "" {
			docx = "yes"
		}
		sum := d.SHA256
		if len(sum) > 12 {
			sum = sum[:12]
		}
		fmt.Fprintf(w, "%-50s  %-20s  %-4s  %s\n", d.Name, d.SavedAt.Format("2006-01-02 15:04:05"), docx, sum)
	}
	fmt.Fprintf(w, "\n%d document(s)\n", len(docs))
}
