package search

import (
	"context"

	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/pkg/google"
)

const googleLanguage = "lang_zh-CN"

// Google adapts Google Custom Search to Provider.
type Google struct {
	client google.Client
	guard  *guard
}

// NewGoogle returns a Google provider. A nil client makes it unavailable.
func NewGoogle(client google.Client, cfg GuardConfig) *Google {
	return &Google{client: client, guard: newGuard("google", cfg)}
}

// Name implements Provider.
func (g *Google) Name() string { return "google" }

// Available implements Provider.
func (g *Google) Available() bool { return g.client != nil && !g.guard.open() }

// Search implements Provider.
func (g *Google) Search(ctx context.Context, query string, opts Options) (*model.SearchResponse, error) {
	req := google.SearchRequest{
		Query:            query,
		Num:              opts.MaxResults,
		DateRestrictDays: opts.RecencyDays,
		Language:         googleLanguage,
	}
	resp, err := call(ctx, g.guard, func(ctx context.Context) (*google.SearchResponse, error) {
		return g.client.Search(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	out := &model.SearchResponse{Success: true, Provider: g.Name()}
	for _, it := range resp.Items {
		src := it.DisplayLink
		if src == "" {
			src = hostOf(it.Link, g.Name())
		}
		out.Results = append(out.Results, model.SearchResult{
			Title:   clip(it.Title, maxSnippetRunes),
			Source:  src,
			Snippet: clip(it.Snippet, maxSnippetRunes),
			URL:     it.Link,
		})
	}
	return out, nil
}
