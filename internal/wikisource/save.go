// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikisource

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pdiddy/lawbook/internal/convert"
	"github.com/pdiddy/lawbook/pkg/types"
)

// Recorder stores a saved document. ledger.Store implements it.
type Recorder interface {
	RecordDocument(ctx context.Context, doc types.LawDocument) error
}

// Saver writes law pages to disk.
type Saver struct {
	Client *Client

	// OutputDir receives <name>.htm and <name>.docx.
	OutputDir string

	// Converter produces docx files; nil skips conversion.
	Converter convert.Converter

	// Recorder is told about every saved document; nil skips recording.
	Recorder Recorder

	// Delay is the pause after each saved document.
	Delay time.Duration

	// Max limits how many links are processed (0 = all).
	Max int
}

// SaveResult holds the outcome of a save run.
type SaveResult struct {
	Saved     int
	Unchanged int
	Failed    int
	Documents []types.LawDocument

	// Err combines the per-document failures.
	Err error
}

// Total returns the number of links processed.
func (r SaveResult) Total() int {
	return r.Saved + r.Unchanged + r.Failed
}

// HasFailures reports whether any document failed.
func (r SaveResult) HasFailures() bool {
	return r.Failed > 0
}

// ContentHash is the hex SHA-256 of content.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// SaveContents saves each link's content, skipping documents whose HTML is
// byte-identical to the file already on disk. Failures are reported and
// counted; the run continues with the next link.
func (s *Saver) SaveContents(ctx context.Context, links []types.LawLink, w io.Writer) SaveResult {
	var result SaveResult

	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		result.Failed = len(links)
		result.Err = fmt.Errorf("creating output directory: %w", err)
		fmt.Fprintf(w, "failed:  %s (%v)\n", s.OutputDir, err)
		return result
	}

	if s.Max > 0 && s.Max < len(links) {
		links = links[:s.Max]
	}

	for _, link := range links {
		if err := ctx.Err(); err != nil {
			result.Err = multierr.Append(result.Err, err)
			break
		}

		doc, status, err := s.saveOne(ctx, link, w)
		switch status {
		case types.SaveDone:
			fmt.Fprintf(w, "saved: %s\n", doc.Name)
			result.Saved++
			result.Documents = append(result.Documents, doc)
		case types.SaveUnchanged:
			fmt.Fprintf(w, "unchanged: %s\n", doc.Name)
			result.Unchanged++
			continue
		case types.SaveFailed:
			fmt.Fprintf(w, "failed:  %s (%v)\n", link.URL, err)
			result.Failed++
			result.Err = multierr.Append(result.Err, fmt.Errorf("%s: %w", link.URL, err))
			continue
		}

		if s.Delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.Delay):
			}
		}
	}

	fmt.Fprintf(w, "\nSave summary: %d saved, %d unchanged, %d failed (total: %d)\n",
		result.Saved, result.Unchanged, result.Failed, result.Total())
	return result
}

func (s *Saver) saveOne(ctx context.Context, link types.LawLink, w io.Writer) (types.LawDocument, types.SaveStatus, error) {
	name, err := DocumentName(link.URL)
	if err != nil {
		return types.LawDocument{}, types.SaveFailed, err
	}

	content, err := s.Client.LawContent(ctx, link.URL)
	if err != nil {
		return types.LawDocument{}, types.SaveFailed, err
	}

	doc := types.LawDocument{
		Name:     name,
		URL:      link.URL,
		SHA256:   ContentHash(content),
		HTMLPath: filepath.Join(s.OutputDir, name+".htm"),
	}

	if existing, err := os.ReadFile(doc.HTMLPath); err == nil && ContentHash(string(existing)) == doc.SHA256 {
		return doc, types.SaveUnchanged, nil
	}

	if err := writeFileAtomic(doc.HTMLPath, []byte(content)); err != nil {
		return doc, types.SaveFailed, err
	}

	if s.Converter != nil {
		docxPath := convert.DocxPath(doc.HTMLPath)
		if err := convert.WriteDocx(ctx, s.Converter, []byte(content), docxPath); err != nil {
			fmt.Fprintf(w, "  warning: docx conversion failed for %s: %v\n", name, err)
		} else {
			doc.DocxPath = docxPath
		}
	}

	doc.SavedAt = time.Now().UTC()
	if s.Recorder != nil {
		if err := s.Recorder.RecordDocument(ctx, doc); err != nil {
			s.Client.log.Warn("Could not record document", zap.String("name", name), zap.Error(err))
		}
	}
	return doc, types.SaveDone, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".lawbook-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
