// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wikisource mirrors the Hebrew WikiSource law book: it detects new
// revisions of the index page, collects links to law pages, and saves each
// law's content as standalone RTL HTML (and docx, through package convert).
package wikisource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/lawbook/internal/httputil"
	"github.com/pdiddy/lawbook/pkg/types"
)

const (
	// DefaultBaseURL is the Hebrew WikiSource origin.
	DefaultBaseURL = "https://he.wikisource.org"
	// DefaultIndexTitle is the page listing all laws ("the open law book").
	DefaultIndexTitle = "ספר_החוקים_הפתוח"

	defaultTimeout   = 30 * time.Second
	defaultDelay     = 500 * time.Millisecond
	defaultUserAgent = "lawbook/0.1"
	defaultOutputDir = "extracted_rules"
	defaultLinksFile = "extracted_law_links.txt"
)

// DefaultCrawlConfig returns the settings used when nothing is configured.
func DefaultCrawlConfig() types.CrawlConfig {
	return types.CrawlConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		BaseURL:       DefaultBaseURL,
		IndexTitle:    DefaultIndexTitle,
		OutputDir:     defaultOutputDir,
		LinksFile:     defaultLinksFile,
		DownloadDelay: defaultDelay,
	}
}

// Client fetches pages from a MediaWiki site.
type Client struct {
	http *http.Client
	cfg  types.CrawlConfig
	base *url.URL
	log  *zap.Logger
}

// NewClient builds a client for cfg. Empty fields fall back to
// DefaultCrawlConfig. A nil logger discards diagnostics.
func NewClient(cfg types.CrawlConfig, log *zap.Logger) (*Client, error) {
	def := DefaultCrawlConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.IndexTitle == "" {
		cfg.IndexTitle = def.IndexTitle
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if log == nil {
		log = zap.NewNop()
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", cfg.BaseURL)
	}

	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
		base: base,
		log:  log,
	}, nil
}

// IndexURL is the URL of the law book index page.
func (c *Client) IndexURL() string {
	u := *c.base
	u.Path = "/wiki/" + c.cfg.IndexTitle
	u.RawPath = ""
	return u.String()
}

// HistoryURL is the revision history of the index page.
func (c *Client) HistoryURL() string {
	u := *c.base
	u.Path = "/w/index.php"
	u.RawQuery = "title=" + url.QueryEscape(c.cfg.IndexTitle) + "&action=history"
	return u.String()
}

// Fetch returns the body of pageURL as text. Throttled responses are
// retried; any other non-200 status is an error.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.Token != "" && c.sameHost(req.URL) {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	c.log.Debug("Fetching page", zap.String("url", pageURL))
	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries, c.log)
	if err != nil {
		return "", fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response from %s: %w", pageURL, err)
	}
	c.log.Debug("Fetched page", zap.String("url", pageURL), zap.Int("bytes", len(body)))
	return string(body), nil
}

// sameHost reports whether u is on the configured wiki. The API token is
// only sent there; law links may point at other sites.
func (c *Client) sameHost(u *url.URL) bool {
	return u.Scheme == c.base.Scheme && strings.EqualFold(u.Host, c.base.Host)
}
