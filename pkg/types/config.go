package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to WikiSource.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lawbook/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on rate-limited responses (0 = default).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Token is an optional Wikimedia API bearer token for higher rate limits.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// CrawlConfig holds settings for downloading the law book.
type CrawlConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the wiki origin (default https://he.wikisource.org).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// IndexTitle is the title of the page that lists all laws.
	IndexTitle string `json:"index_title" yaml:"index_title"`

	// OutputDir receives the .htm and .docx files and the ledger database.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// LinksFile is the path of the numbered link listing.
	LinksFile string `json:"links_file" yaml:"links_file"`

	// DownloadDelay is the pause after each saved document (default 500ms).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// MaxDocuments caps how many links are processed (0 = all).
	MaxDocuments int `json:"max_documents" yaml:"max_documents"`
}

// ConversionConfig holds settings for HTML-to-docx conversion.
type ConversionConfig struct {
	// Enabled controls whether .docx files are produced next to .htm files.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Image is the pandoc container image (default pandoc/core:latest).
	Image string `json:"image" yaml:"image"`

	// ReferenceDoc is an optional docx whose styles define law-number,
	// law-desc and the other custom styles.
	ReferenceDoc string `json:"reference_doc,omitempty" yaml:"reference_doc,omitempty"`
}

// LoggingConfig selects the diagnostic log level: none, normal, or debug.
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

// Config groups all settings.
type Config struct {
	Crawl      CrawlConfig      `json:"crawl" yaml:"crawl"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
}
