// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikisource

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/lawbook/pkg/types"
)

// lawKeywords are stems that mark an index link as a law, ordinance,
// regulation, order, notice or similar legal instrument.
var lawKeywords = []string{
	"חוק",   // law
	"פקודת", // ordinance
	"תקנות", // regulations
	"צו",    // order
	"הודע",  // notice
	"כללי",  // rules
	"נוהל",  // procedure
	"הורא",  // instructions
	"הנחיות",
	"תקנון",
	"החלט", // decision
	"הנחי",
	"היתר",
	"הכרז", // declaration
	"אכרז",
	"דבר",
	"נורמ",
	"רשימ",
	"דריש",
	"קוו",
	"קביע",
	"פרט",
}

// encodedLawKeywords are the percent-encoded forms of חוק, פקודת and תקנות
// as they appear in /wiki/ hrefs.
var encodedLawKeywords = []string{
	"%D7%97%D7%95%D7%A7",
	"%D7%A4%D7%A7%D7%95%D7%93%D7%AA",
	"%D7%AA%D7%A7%D7%A0%D7%95%D7%AA",
}

var navigationPatterns = []string{
	"action=edit",
	"action=history",
	"oldid=",
	"#",
	"Special:",
	"Help:",
	"Template:",
	"Category:",
	"File:",
	"MediaWiki:",
	"/w/index.php",
}

// IsLawLink reports whether an index link points at a law. An empty href
// counts as a law so that callers filtering on the negation drop it.
func IsLawLink(href, text string) bool {
	if href == "" {
		return true
	}

	combined := strings.ToLower(href + " " + text)
	for _, k := range lawKeywords {
		if strings.Contains(combined, k) {
			return true
		}
	}

	if strings.Contains(href, "/wiki/") {
		for _, k := range encodedLawKeywords {
			if strings.Contains(href, k) {
				return true
			}
		}
	}
	return false
}

// IsNavigationLink reports whether href is wiki chrome (edit, history,
// anchors, special namespaces) rather than content.
func IsNavigationLink(href string) bool {
	for _, p := range navigationPatterns {
		if strings.Contains(href, p) {
			return true
		}
	}
	return false
}

// ExtractLawLinks collects law links from an index page in document order.
// Root-relative hrefs are resolved against base; other relative hrefs are
// ignored.
func ExtractLawLinks(doc *goquery.Document, base *url.URL) []types.LawLink {
	var links []types.LawLink
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || IsNavigationLink(href) {
			return
		}

		var full string
		switch {
		case strings.HasPrefix(href, "/"):
			ref, err := url.Parse(href)
			if err != nil {
				return
			}
			full = base.ResolveReference(ref).String()
		case strings.HasPrefix(href, "http"):
			full = href
		default:
			return
		}

		text := norm.NFC.String(strings.TrimSpace(sel.Text()))
		if IsLawLink(href, text) {
			links = append(links, types.LawLink{URL: full, Text: text, OriginalHref: href})
		}
	})
	return links
}

// LawLinks fetches the index page and returns its law links.
func (c *Client) LawLinks(ctx context.Context) ([]types.LawLink, error) {
	body, err := c.Fetch(ctx, c.IndexURL())
	if err != nil {
		return nil, fmt.Errorf("fetching index page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing index page: %w", err)
	}

	links := ExtractLawLinks(doc, c.base)
	c.log.Info("Extracted law links",
		zap.Int("total", doc.Find("a[href]").Length()),
		zap.Int("laws", len(links)))
	return links, nil
}

// PrintLinks writes the numbered listing used both on screen and in the
// links file: "N. URL", "   Text: ..." when present, "   Original href: ...".
func PrintLinks(w io.Writer, links []types.LawLink) {
	for i, l := range links {
		fmt.Fprintf(w, "%d. %s\n", i+1, l.URL)
		if l.Text != "" {
			fmt.Fprintf(w, "   Text: %s\n", l.Text)
		}
		fmt.Fprintf(w, "   Original href: %s\n\n", l.OriginalHref)
	}
}

// WriteLinksFile saves the numbered listing to path.
func WriteLinksFile(path string, links []types.LawLink) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating links file: %w", err)
	}
	PrintLinks(f, links)
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing links file: %w", err)
	}
	return nil
}
