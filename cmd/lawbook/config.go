// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lawbook/internal/convert"
	"github.com/pdiddy/lawbook/internal/secrets"
	"github.com/pdiddy/lawbook/internal/wikisource"
	"github.com/pdiddy/lawbook/pkg/types"
)

// setDefaults registers the built-in value of every config key.
func setDefaults() {
	def := wikisource.DefaultCrawlConfig()
	viper.SetDefault("crawl.base_url", def.BaseURL)
	viper.SetDefault("crawl.index_title", def.IndexTitle)
	viper.SetDefault("crawl.output_dir", def.OutputDir)
	viper.SetDefault("crawl.links_file", def.LinksFile)
	viper.SetDefault("crawl.timeout", def.Timeout)
	viper.SetDefault("crawl.user_agent", def.UserAgent)
	viper.SetDefault("crawl.download_delay", def.DownloadDelay)
	viper.SetDefault("crawl.max_retries", 0)
	viper.SetDefault("crawl.max_documents", 0)

	viper.SetDefault("conversion.enabled", true)
	viper.SetDefault("conversion.image", convert.DefaultImage)
	viper.SetDefault("conversion.reference_doc", "")

	viper.SetDefault("logging.level", "normal")
}

// loadConfig resolves settings for cmd: flags the user set win over config
// keys and environment variables, which win over defaults.
func loadConfig(cmd *cobra.Command) types.Config {
	cfg := types.Config{
		Crawl: types.CrawlConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    viper.GetDuration("crawl.timeout"),
				UserAgent:  viper.GetString("crawl.user_agent"),
				MaxRetries: viper.GetInt("crawl.max_retries"),
				Token:      viper.GetString("crawl.token"),
			},
			BaseURL:       viper.GetString("crawl.base_url"),
			IndexTitle:    viper.GetString("crawl.index_title"),
			OutputDir:     viper.GetString("crawl.output_dir"),
			LinksFile:     viper.GetString("crawl.links_file"),
			DownloadDelay: viper.GetDuration("crawl.download_delay"),
			MaxDocuments:  viper.GetInt("crawl.max_documents"),
		},
		Conversion: types.ConversionConfig{
			Enabled:      viper.GetBool("conversion.enabled"),
			Image:        viper.GetString("conversion.image"),
			ReferenceDoc: viper.GetString("conversion.reference_doc"),
		},
		Logging: types.LoggingConfig{
			Level: viper.GetString("logging.level"),
		},
	}

	f := cmd.Flags()
	if f.Changed("output-dir") {
		cfg.Crawl.OutputDir, _ = f.GetString("output-dir")
	}
	if f.Changed("base-url") {
		cfg.Crawl.BaseURL, _ = f.GetString("base-url")
	}
	if f.Changed("links-file") {
		cfg.Crawl.LinksFile, _ = f.GetString("links-file")
	}
	if f.Changed("timeout") {
		cfg.Crawl.Timeout, _ = f.GetDuration("timeout")
	}
	if f.Changed("delay") {
		cfg.Crawl.DownloadDelay, _ = f.GetDuration("delay")
	}
	if f.Changed("max") {
		cfg.Crawl.MaxDocuments, _ = f.GetInt("max")
	}
	if f.Changed("image") {
		cfg.Conversion.Image, _ = f.GetString("image")
	}
	if f.Changed("reference-doc") {
		cfg.Conversion.ReferenceDoc, _ = f.GetString("reference-doc")
	}
	if f.Changed("log-level") {
		cfg.Logging.Level, _ = f.GetString("log-level")
	}

	cfg.Crawl.Token = loadedSecrets.Value(secrets.WikimediaToken, cfg.Crawl.Token)
	return cfg
}

// addCrawlFlags registers the flags shared by commands that talk to the wiki.
func addCrawlFlags(cmd *cobra.Command) {
	cmd.Flags().String("base-url", "", "wiki origin (default https://he.wikisource.org)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	cmd.Flags().String("links-file", "", "numbered link listing to write (default extracted_law_links.txt)")
}

// addPandocFlags registers the flags shared by commands that produce docx.
func addPandocFlags(cmd *cobra.Command) {
	cmd.Flags().String("image", "", "pandoc container image (default pandoc/core:latest)")
	cmd.Flags().String("reference-doc", "", "docx whose styles define law-number, law-desc, ...")
}
