// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikisource

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// ErrNoContent is returned when a page has no div#mw-content-text.
var ErrNoContent = errors.New("main content not found")

const defaultTitle = "Law Document"

const pageTemplate = `<!DOCTYPE html>
<html lang="he" dir="rtl">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <link rel="stylesheet" href="style.css">
</head>
<body>
    %s
</body>
</html>`

// ExtractContent returns a standalone HTML page holding the article body of
// a wiki page, without images and section edit links.
func ExtractContent(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	article := doc.Find("div#mw-content-text").First()
	if article.Length() == 0 {
		return "", ErrNoContent
	}
	article.Find("img").Remove()
	article.Find("span.mw-editsection").Remove()

	body, err := goquery.OuterHtml(article)
	if err != nil {
		return "", fmt.Errorf("rendering content: %w", err)
	}

	title := defaultTitle
	if t := doc.Find("title").First(); t.Length() > 0 {
		title = t.Text()
	}
	return fmt.Sprintf(pageTemplate, html.EscapeString(title), body), nil
}

// LawContent fetches a law page and extracts its content.
func (c *Client) LawContent(ctx context.Context, pageURL string) (string, error) {
	body, err := c.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	return ExtractContent(body)
}

// DocumentName derives the file stem for a law URL: the last non-empty path
// segment, percent-decoded and NFC-normalised.
func DocumentName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}

	parts := strings.Split(u.EscapedPath(), "/")
	seg := parts[len(parts)-1]
	if seg == "" && len(parts) > 1 {
		seg = parts[len(parts)-2]
	}
	name, err := url.PathUnescape(seg)
	if err != nil {
		return "", fmt.Errorf("decoding %q: %w", seg, err)
	}
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(norm.NFC.String(name))
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("no document name in URL %q", rawURL)
	}
	return name, nil
}
