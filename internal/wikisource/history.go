// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikisource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// DateLayout is how revision dates are stored and compared (dd/MM/yyyy).
const DateLayout = "02/01/2006"

var (
	ErrNoChangeDate = errors.New("no changes list date element")
	ErrDateFormat   = errors.New("unexpected date format")
	ErrUnknownMonth = errors.New("unknown month name")
)

var hebrewMonths = map[string]time.Month{
	"ינואר":   time.January,
	"פברואר":  time.February,
	"מרץ":     time.March,
	"אפריל":   time.April,
	"מאי":     time.May,
	"יוני":    time.June,
	"יולי":    time.July,
	"אוגוסט":  time.August,
	"ספטמבר":  time.September,
	"אוקטובר": time.October,
	"נובמבר":  time.November,
	"דצמבר":   time.December,
}

// changeDateRe matches "28 במרץ 2025": day, month name after the ב prefix, year.
var changeDateRe = regexp.MustCompile(`(\d{1,2})[\s\pZ]+ב(\S+)[\s\pZ]+(\d{4})`)

// ParseChangeDate parses a MediaWiki history timestamp such as
// "16:50, 28 במרץ 2025". The time of day is ignored.
func ParseChangeDate(text string) (time.Time, error) {
	datePart := text
	if _, after, ok := strings.Cut(text, ","); ok {
		datePart = strings.TrimSpace(after)
	}

	m := changeDateRe.FindStringSubmatch(datePart)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, text)
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	month, ok := hebrewMonths[m[2]]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownMonth, m[2])
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// LatestChangeDate finds the first revision date on a history page.
func LatestChangeDate(r io.Reader) (time.Time, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing history page: %w", err)
	}
	sel := doc.Find(".mw-changeslist-date").First()
	if sel.Length() == 0 {
		return time.Time{}, ErrNoChangeDate
	}
	return ParseChangeDate(strings.TrimSpace(sel.Text()))
}

// LatestUpdate fetches the index history and returns the newest revision
// date formatted with DateLayout.
func (c *Client) LatestUpdate(ctx context.Context) (string, error) {
	body, err := c.Fetch(ctx, c.HistoryURL())
	if err != nil {
		return "", fmt.Errorf("fetching history page: %w", err)
	}
	t, err := LatestChangeDate(strings.NewReader(body))
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// DateStore remembers the last revision date a sync completed for.
type DateStore interface {
	LastUpdated(ctx context.Context) (string, bool, error)
}

// ShouldDownload reports whether the law book changed since the stored
// date, together with the latest date ("" when it could not be determined).
// An unknown latest date or an empty store both mean a download is needed.
func (c *Client) ShouldDownload(ctx context.Context, store DateStore, w io.Writer) (latest string, download bool, err error) {
	latest, err = c.LatestUpdate(ctx)
	if err != nil {
		c.log.Warn("Could not determine latest update date", zap.Error(err))
		fmt.Fprintln(w, "Could not determine latest date. Assuming download needed.")
		return "", true, nil
	}

	stored, ok, err := store.LastUpdated(ctx)
	if err != nil {
		return latest, false, err
	}
	if ok && stored == latest {
		return latest, false, nil
	}
	return latest, true, nil
}
