package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/quantsift/quantsift/internal/core"
)

const (
	defaultTimeout = 10 * time.Second

	// Wikipedia blocks the default Go client user agent.
	defaultUserAgent = "Mozilla/5.0"
)

// indexPages maps index names to their Wikipedia constituent pages.
var indexPages = map[core.Index]string{
	core.IndexSP500: "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies",
}

// Provider resolves index constituents by scraping the Wikipedia
// constituent table for the index.
type Provider struct {
	client    *http.Client
	userAgent string
	baseURLs  map[core.Index]string
}

// Option configures the provider.
type Option func(*Provider)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.client = c }
}

// WithPageURL overrides the constituent page URL for an index.
func WithPageURL(index core.Index, url string) Option {
	return func(p *Provider) { p.baseURLs[index] = url }
}

// New creates a new Wikipedia universe provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		baseURLs:  make(map[core.Index]string),
	}
	for k, v := range indexPages {
		p.baseURLs[k] = v
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return "wikipedia" }

// Resolve fetches and parses the constituent table, returning symbols
// in page order. Any retrieval or parse failure is SOURCE_UNAVAILABLE.
func (p *Provider) Resolve(ctx context.Context, index core.Index) ([]string, error) {
	url, ok := p.baseURLs[index]
	if !ok {
		return nil, core.WrapError(core.ErrUnknownIndex, fmt.Errorf("index %q has no constituent page", index))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrSourceUnavailable,
			fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceUnavailable, fmt.Errorf("parsing html: %w", err))
	}

	symbols := parseConstituents(doc)
	if len(symbols) == 0 {
		return nil, core.WrapError(core.ErrSourceUnavailable,
			fmt.Errorf("no constituent table with a Symbol column found"))
	}

	return symbols, nil
}

// parseConstituents finds the first wikitable whose leading header cell
// is "Symbol" and collects the first column of its body rows.
func parseConstituents(doc *goquery.Document) []string {
	var symbols []string

	doc.Find("table.wikitable").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		header := strings.TrimSpace(table.Find("tr th").First().Text())
		if !strings.EqualFold(header, "Symbol") {
			return true // keep looking
		}

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cell := row.Find("td").First()
			if cell.Length() == 0 {
				return // header row
			}
			symbol := strings.TrimSpace(cell.Text())
			if symbol != "" {
				symbols = append(symbols, symbol)
			}
		})
		return false
	})

	return symbols
}
