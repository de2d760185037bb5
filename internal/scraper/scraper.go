package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/daas/portwatch/internal/maneuver"
)

const (
	// UserAgent mimics a desktop browser; the port authority page rejects bare clients.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	Timeout   = 30 * time.Second
)

// Scraper handles fetching and parsing the maneuver listing
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a new Scraper for the given page URL.
// A zero timeout falls back to Timeout.
func New(url string, timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// URL returns the page the scraper reads from.
func (s *Scraper) URL() string {
	return s.url
}

// FetchManeuvers fetches the page and parses all maneuvers listed on it
func (s *Scraper) FetchManeuvers(ctx context.Context) ([]maneuver.Maneuver, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return ParseManeuvers(resp.Body)
}

// ParseManeuvers extracts maneuvers from the first table of an HTML document.
// The first row of the table is the header and is skipped.
func ParseManeuvers(r io.Reader) ([]maneuver.Maneuver, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	maneuvers := make([]maneuver.Maneuver, 0)

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return maneuvers, nil
	}

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}

		cells := row.Find("td")
		cols := make([]string, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			cols = append(cols, strings.TrimSpace(cell.Text()))
		})

		if m, ok := maneuver.FromColumns(cols); ok {
			maneuvers = append(maneuvers, m)
		}
	})

	return maneuvers, nil
}
