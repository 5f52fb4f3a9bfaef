// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikisource

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Ledger is the state a sync reads and writes.
type Ledger interface {
	DateStore
	Recorder
	SetLastUpdated(ctx context.Context, date string) error
}

// SyncOptions configures a Sync run.
type SyncOptions struct {
	// Force downloads even when the index revision date is unchanged.
	Force bool

	// LinksFile receives the numbered link listing; empty skips it.
	LinksFile string
}

// SyncResult summarises a Sync run.
type SyncResult struct {
	// Skipped is set when the index was unchanged and nothing was fetched.
	Skipped bool
	Latest  string
	Links   int
	Save    SaveResult
}

// Sync runs the whole mirror: revision check, link extraction, link
// listing, and saving. The new revision date is recorded only after a run
// with no failed documents, so a partial run is retried next time.
func Sync(ctx context.Context, s *Saver, ledger Ledger, opts SyncOptions, w io.Writer) (SyncResult, error) {
	c := s.Client
	var result SyncResult

	latest, download, err := c.ShouldDownload(ctx, ledger, w)
	if err != nil {
		return result, err
	}
	result.Latest = latest
	if !download {
		if !opts.Force {
			fmt.Fprintln(w, "Version unchanged. Skipping download process.")
			result.Skipped = true
			return result, nil
		}
		fmt.Fprintln(w, "Version unchanged. Forcing download.")
	}

	links, err := c.LawLinks(ctx)
	if err != nil {
		return result, err
	}
	result.Links = len(links)

	if len(links) == 0 {
		fmt.Fprintln(w, "No law rule links found.")
	} else {
		PrintLinks(w, links)
	}
	fmt.Fprintf(w, "Extracted %d law rule links\n", len(links))

	if opts.LinksFile != "" {
		if err := WriteLinksFile(opts.LinksFile, links); err != nil {
			c.log.Warn("Could not save links file", zap.String("path", opts.LinksFile), zap.Error(err))
		} else {
			fmt.Fprintf(w, "Links saved to: %s\n", opts.LinksFile)
		}
	}

	fmt.Fprintln(w, "\nExtracting law contents")
	if s.Recorder == nil {
		s.Recorder = ledger
	}
	result.Save = s.SaveContents(ctx, links, w)

	if latest != "" && !result.Save.HasFailures() && ctx.Err() == nil {
		if err := ledger.SetLastUpdated(ctx, latest); err != nil {
			return result, err
		}
	}
	return result, result.Save.Err
}
