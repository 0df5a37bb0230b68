package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/internal/resilience"
)

// Provider outcomes reported to an Observer.
const (
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
	OutcomeEmpty   = "empty"
	OutcomeServed  = "served"
)

// Observer is told how each provider fared for each query.
type Observer func(provider, outcome string)

// Chain tries providers in priority order and returns the first response
// that succeeded with at least one result.
type Chain struct {
	providers []Provider
	observe   Observer
}

// NewChain creates a Chain. Providers are tried in the order given.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// WithObserver sets a callback for per-provider outcomes.
func (c *Chain) WithObserver(o Observer) *Chain {
	c.observe = o
	return c
}

// Providers returns the names of the configured providers in order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Search runs query through the chain. Unavailable providers are skipped
// without being called; a provider that errors or panics is logged and the
// next one is tried. When nothing succeeds an empty, unsuccessful response
// is returned.
func (c *Chain) Search(ctx context.Context, query string, opts Options) model.SearchResponse {
	for _, p := range c.providers {
		if !p.Available() {
			c.report(p.Name(), OutcomeSkipped)
			continue
		}

		var failed bool
		resp := resilience.AbsorbDebug("search:"+p.Name(), func() (*model.SearchResponse, error) {
			r, err := p.Search(ctx, query, opts)
			failed = err != nil
			return r, err
		})
		if resp == nil && !failed {
			// A recovered panic leaves failed unset.
			failed = true
		}

		if !resp.Usable() {
			outcome := OutcomeEmpty
			if failed {
				outcome = OutcomeFailed
			}
			zap.L().Debug("search: provider returned nothing usable, trying next",
				zap.String("provider", p.Name()),
				zap.String("query", query),
				zap.String("outcome", outcome),
			)
			c.report(p.Name(), outcome)
			continue
		}

		c.report(p.Name(), OutcomeServed)
		out := model.SearchResponse{
			Success:  true,
			Provider: p.Name(),
			Results:  resp.Results,
		}
		if opts.MaxResults > 0 && len(out.Results) > opts.MaxResults {
			out.Results = out.Results[:opts.MaxResults]
		}
		return out
	}

	zap.L().Debug("search: all providers exhausted", zap.String("query", query))
	return model.SearchResponse{}
}

func (c *Chain) report(provider, outcome string) {
	if c.observe != nil {
		c.observe(provider, outcome)
	}
}
