package fetcher

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/screener-cli/pkg/firecrawl"
)

// FirecrawlFetcher retrieves pages through Firecrawl's scrape endpoint,
// which renders them from its own egress. It is the fallback when the
// board blocks direct requests.
type FirecrawlFetcher struct {
	client  firecrawl.Client
	headers map[string]string
}

// NewFirecrawlFetcher creates a fetcher. headers are forwarded to the target
// site, e.g. a Referer.
func NewFirecrawlFetcher(client firecrawl.Client, headers map[string]string) *FirecrawlFetcher {
	return &FirecrawlFetcher{client: client, headers: headers}
}

// Name implements Named.
func (f *FirecrawlFetcher) Name() string { return "firecrawl" }

// Fetch implements PageFetcher.
func (f *FirecrawlFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.Scrape(ctx, firecrawl.ScrapeRequest{
		URL:     url,
		Formats: []string{"rawHtml"},
		Headers: f.headers,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: firecrawl scrape %s", url)
	}
	if !resp.Success || resp.Data.RawHTML == "" {
		return nil, eris.Errorf("fetcher: firecrawl returned no html for %s", url)
	}
	return []byte(resp.Data.RawHTML), nil
}
