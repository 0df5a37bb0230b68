package search

import (
	"context"

	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/pkg/firecrawl"
)

// Firecrawl adapts Firecrawl's search endpoint to Provider.
type Firecrawl struct {
	client firecrawl.Client
	guard  *guard
}

// NewFirecrawl returns a Firecrawl provider. A nil client makes it unavailable.
func NewFirecrawl(client firecrawl.Client, cfg GuardConfig) *Firecrawl {
	return &Firecrawl{client: client, guard: newGuard("firecrawl", cfg)}
}

// Name implements Provider.
func (f *Firecrawl) Name() string { return "firecrawl" }

// Available implements Provider.
func (f *Firecrawl) Available() bool { return f.client != nil && !f.guard.open() }

// Search implements Provider.
func (f *Firecrawl) Search(ctx context.Context, query string, opts Options) (*model.SearchResponse, error) {
	req := firecrawl.SearchRequest{
		Query: query,
		Limit: opts.MaxResults,
		TBS:   firecrawl.TimeFilter(opts.RecencyDays),
		Lang:  "zh",
	}
	resp, err := call(ctx, f.guard, func(ctx context.Context) (*firecrawl.SearchResponse, error) {
		return f.client.Search(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	out := &model.SearchResponse{Success: resp.Success, Provider: f.Name()}
	for _, h := range resp.Data {
		out.Results = append(out.Results, model.SearchResult{
			Title:   clip(h.Title, maxSnippetRunes),
			Source:  hostOf(h.URL, f.Name()),
			Snippet: clip(h.Description, maxSnippetRunes),
			URL:     h.URL,
		})
	}
	return out, nil
}
