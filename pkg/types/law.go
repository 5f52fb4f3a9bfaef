// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SaveStatus is the outcome of saving one law document.
type SaveStatus string

const (
	SaveDone      SaveStatus = "saved"
	SaveUnchanged SaveStatus = "unchanged"
	SaveFailed    SaveStatus = "failed"
)

// LawLink is a link from the index page that points at a law.
type LawLink struct {
	// URL is the absolute URL of the law page.
	URL string `json:"url" yaml:"url"`

	// Text is the trimmed link text, often the law's name.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// OriginalHref is the href as written on the index page.
	OriginalHref string `json:"original_href" yaml:"original_href"`
}

// LawDocument records a saved law page.
type LawDocument struct {
	// Name is the decoded last path segment of the URL, used as file stem.
	Name string `json:"name" yaml:"name"`

	URL string `json:"url" yaml:"url"`

	// SHA256 is the hex digest of the saved HTML.
	SHA256 string `json:"sha256" yaml:"sha256"`

	HTMLPath string `json:"html_path" yaml:"html_path"`

	// DocxPath is empty when conversion was disabled or failed.
	DocxPath string `json:"docx_path,omitempty" yaml:"docx_path,omitempty"`

	SavedAt time.Time `json:"saved_at" yaml:"saved_at"`
}
