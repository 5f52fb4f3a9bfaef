// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns saved law HTML pages into docx files whose law
// numbering and descriptions carry named custom styles.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	htmlExt = ".htm"
	docxExt = ".docx"
)

// Converter transforms an HTML document into docx bytes. The pandoc container
// backend implements it; tests use fakes.
type Converter interface {
	Convert(ctx context.Context, html []byte) ([]byte, error)
}

// Status is the outcome of converting one file.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DocxPath returns the docx path that belongs next to an .htm file.
func DocxPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + docxExt
}

// ConvertFile converts one .htm file, writing the docx next to it. An existing
// docx is kept unless overwrite is set.
func ConvertFile(ctx context.Context, c Converter, htmlPath string, overwrite bool, w io.Writer) Status {
	docxPath := DocxPath(htmlPath)
	base := filepath.Base(docxPath)

	if !overwrite {
		if _, err := os.Stat(docxPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			return StatusSkipped
		}
	}

	html, err := os.ReadFile(htmlPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	if err := WriteDocx(ctx, c, html, docxPath); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return StatusConverted
}

// WriteDocx converts html and writes the result to docxPath.
func WriteDocx(ctx context.Context, c Converter, html []byte, docxPath string) error {
	data, err := c.Convert(ctx, html)
	if err != nil {
		return err
	}
	if err := os.WriteFile(docxPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", docxPath, err)
	}
	return nil
}

// ConvertBatch converts each path, printing per-file status to w and
// returning a summary. It stops early only when ctx is cancelled.
func ConvertBatch(ctx context.Context, c Converter, htmlPaths []string, overwrite bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range htmlPaths {
		if ctx.Err() != nil {
			break
		}
		switch ConvertFile(ctx, c, p, overwrite, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// FindHTML lists the .htm files directly under dir, sorted by name.
func FindHTML(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != htmlExt {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
