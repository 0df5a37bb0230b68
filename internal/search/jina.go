package search

import (
	"context"

	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/pkg/jina"
)

// Jina adapts the Jina search API to Provider.
type Jina struct {
	client jina.Client
	guard  *guard
}

// NewJina returns a Jina provider. A nil client makes it unavailable.
func NewJina(client jina.Client, cfg GuardConfig) *Jina {
	return &Jina{client: client, guard: newGuard("jina", cfg)}
}

// Name implements Provider.
func (j *Jina) Name() string { return "jina" }

// Available implements Provider.
func (j *Jina) Available() bool { return j.client != nil && !j.guard.open() }

// Search implements Provider. Jina has no recency filter.
func (j *Jina) Search(ctx context.Context, query string, opts Options) (*model.SearchResponse, error) {
	resp, err := call(ctx, j.guard, func(ctx context.Context) (*jina.SearchResponse, error) {
		return j.client.Search(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	out := &model.SearchResponse{Success: true, Provider: j.Name()}
	for _, r := range resp.Data {
		out.Results = append(out.Results, model.SearchResult{
			Title:   clip(r.Title, maxSnippetRunes),
			Source:  hostOf(r.URL, j.Name()),
			Snippet: clip(firstNonEmpty(r.Description, r.Content), maxSnippetRunes),
			URL:     r.URL,
		})
		if opts.MaxResults > 0 && len(out.Results) == opts.MaxResults {
			break
		}
	}
	return out, nil
}
