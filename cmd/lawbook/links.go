// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lawbook/internal/wikisource"
	"github.com/pdiddy/lawbook/pkg/types"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List the law pages linked from the law book index",
	Long: `Links fetches the law book index page, keeps the links that point at
laws, ordinances, regulations and similar instruments, prints them as a
numbered listing and saves the listing to the links file.`,
	RunE: runLinks,
}

func init() {
	addCrawlFlags(linksCmd)
	linksCmd.Flags().Bool("yaml", false, "print links as YAML instead of the numbered listing")
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	client, err := wikisource.NewClient(cfg.Crawl, logger)
	if err != nil {
		return err
	}

	links, err := client.LawLinks(cmd.Context())
	if err != nil {
		return err
	}

	asYAML, _ := cmd.Flags().GetBool("yaml")
	if err := printLinks(links, asYAML); err != nil {
		return err
	}

	if cfg.Crawl.LinksFile != "" {
		if err := wikisource.WriteLinksFile(cfg.Crawl.LinksFile, links); err != nil {
			logger.Warn("Could not save links file", zap.Error(err))
		} else if !asYAML {
			fmt.Printf("Links saved to: %s\n", cfg.Crawl.LinksFile)
		}
	}
	return nil
}

func printLinks(links []types.LawLink, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(links); err != nil {
			return fmt.Errorf("encoding links: %w", err)
		}
		return enc.Close()
	}

	if len(links) == 0 {
		fmt.Println("No law rule links found.")
		return nil
	}
	wikisource.PrintLinks(os.Stdout, links)
	fmt.Printf("Extracted %d law rule links\n", len(links))
	return nil
}
