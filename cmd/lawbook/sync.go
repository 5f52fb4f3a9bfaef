// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/lawbook/internal/container"
	"github.com/pdiddy/lawbook/internal/convert"
	"github.com/pdiddy/lawbook/internal/ledger"
	"github.com/pdiddy/lawbook/internal/wikisource"
	"github.com/pdiddy/lawbook/pkg/types"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download every law page that changed since the last sync",
	Long: `Sync checks the revision history of the law book index. When the
newest revision is newer than the one recorded in the ledger (or --force is
given) it collects the law links, saves each law as RTL HTML, and converts
it to docx with custom styles unless --no-docx is given.

Pages whose HTML is unchanged on disk are skipped. The revision date is
recorded only when every document was saved, so an interrupted or partial
run is retried next time.`,
	RunE: runSync,
}

func init() {
	addCrawlFlags(syncCmd)
	addPandocFlags(syncCmd)
	syncCmd.Flags().Bool("force", false, "download even when the index is unchanged")
	syncCmd.Flags().Bool("no-docx", false, "save HTML only")
	syncCmd.Flags().Duration("delay", 0, "pause after each saved document (default 500ms)")
	syncCmd.Flags().Int("max", 0, "process at most this many links (0 = all)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	force, _ := cmd.Flags().GetBool("force")
	noDocx, _ := cmd.Flags().GetBool("no-docx")

	client, err := wikisource.NewClient(cfg.Crawl, logger)
	if err != nil {
		return err
	}

	store, err := ledger.Open(cfg.Crawl.OutputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	saver := &wikisource.Saver{
		Client:    client,
		OutputDir: cfg.Crawl.OutputDir,
		Recorder:  store,
		Delay:     cfg.Crawl.DownloadDelay,
		Max:       cfg.Crawl.MaxDocuments,
	}
	if cfg.Conversion.Enabled && !noDocx {
		conv, err := newConverter(cfg.Conversion)
		if err != nil {
			logger.Warn("Docx conversion disabled", zap.Error(err))
			fmt.Fprintf(os.Stderr, "warning: docx conversion disabled (%v)\n", err)
		} else {
			saver.Converter = conv
		}
	}

	result, err := wikisource.Sync(cmd.Context(), saver, store, wikisource.SyncOptions{
		Force:     force,
		LinksFile: cfg.Crawl.LinksFile,
	}, os.Stdout)
	if err != nil {
		if result.Save.HasFailures() {
			logger.Debug("Sync failures", zap.Error(err))
			return fmt.Errorf("%d document(s) failed", result.Save.Failed)
		}
		return err
	}
	return nil
}

// newConverter builds the pandoc converter on the first available
// container runtime.
func newConverter(conf types.ConversionConfig) (convert.Converter, error) {
	rt, err := container.DetectRuntime()
	if err != nil {
		return nil, err
	}
	return convert.NewPandocConverter(rt, conf.Image, conf.ReferenceDoc)
}
