package search

import (
	"context"

	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/pkg/perplexity"
)

// Perplexity adapts the Perplexity search API to Provider.
type Perplexity struct {
	client perplexity.Client
	guard  *guard
}

// NewPerplexity returns a Perplexity provider. A nil client makes it unavailable.
func NewPerplexity(client perplexity.Client, cfg GuardConfig) *Perplexity {
	return &Perplexity{client: client, guard: newGuard("perplexity", cfg)}
}

// Name implements Provider.
func (p *Perplexity) Name() string { return "perplexity" }

// Available implements Provider.
func (p *Perplexity) Available() bool { return p.client != nil && !p.guard.open() }

// Search implements Provider.
func (p *Perplexity) Search(ctx context.Context, query string, opts Options) (*model.SearchResponse, error) {
	req := perplexity.SearchRequest{
		Query:      query,
		MaxResults: opts.MaxResults,
		Recency:    perplexity.RecencyFilter(opts.RecencyDays),
		Country:    "CN",
	}
	resp, err := call(ctx, p.guard, func(ctx context.Context) (*perplexity.SearchResponse, error) {
		return p.client.Search(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	out := &model.SearchResponse{Success: true, Provider: p.Name()}
	for _, r := range resp.Results {
		out.Results = append(out.Results, model.SearchResult{
			Title:   clip(r.Title, maxSnippetRunes),
			Source:  hostOf(r.URL, p.Name()),
			Snippet: clip(r.Snippet, maxSnippetRunes),
			URL:     r.URL,
		})
	}
	return out, nil
}
