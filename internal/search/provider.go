// Package search runs a query against an ordered set of search providers,
// returning the first usable response.
package search

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/sells-group/screener-cli/internal/model"
)

// Options tunes a single search call.
type Options struct {
	MaxResults  int
	RecencyDays int
}

// Provider is one search backend.
type Provider interface {
	Name() string
	// Available reports whether the provider can be called at all, e.g. its
	// credentials are configured and its breaker is closed.
	Available() bool
	Search(ctx context.Context, query string, opts Options) (*model.SearchResponse, error)
}

// Searcher is satisfied by Chain; the pipeline depends on this.
type Searcher interface {
	Search(ctx context.Context, query string, opts Options) model.SearchResponse
}

const maxSnippetRunes = 400

// hostOf returns the host of rawURL without a www. prefix, or fallback.
func hostOf(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return fallback
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// clip trims s to at most n runes.
func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
