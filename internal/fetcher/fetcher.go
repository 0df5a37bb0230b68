// Package fetcher retrieves web pages for the discussion-board source,
// directly over HTTP or through a scraping API.
package fetcher

import "context"

// PageFetcher returns the body of a page as UTF-8 HTML.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Named is implemented by fetchers that report a name in logs.
type Named interface {
	Name() string
}

func nameOf(f PageFetcher) string {
	if n, ok := f.(Named); ok {
		return n.Name()
	}
	return "fetcher"
}
