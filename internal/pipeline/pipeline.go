// Package pipeline runs one query end to end: search, prompt the model,
// extract validated stock signals.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screener-cli/internal/extract"
	"github.com/sells-group/screener-cli/internal/llm"
	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/internal/resilience"
	"github.com/sells-group/screener-cli/internal/search"
)

// DefaultMaxResults is the per-query search cap.
const DefaultMaxResults = 5

// errModelUnavailable is absorbed like any other model failure.
var errModelUnavailable = eris.New("pipeline: model unavailable")

// Pipeline turns a query into stock signals.
type Pipeline struct {
	search      search.Searcher
	model       llm.Model
	maxResults  int
	recencyDays int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxResults overrides the per-query search cap.
func WithMaxResults(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxResults = n
		}
	}
}

// WithRecencyDays restricts search to recent news where providers support it.
func WithRecencyDays(days int) Option {
	return func(p *Pipeline) { p.recencyDays = days }
}

// New creates a Pipeline.
func New(s search.Searcher, m llm.Model, opts ...Option) *Pipeline {
	p := &Pipeline{search: s, model: m, maxResults: DefaultMaxResults}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Discover runs one query. It never fails: any stage that errors or panics
// yields an empty result, so one bad query cannot abort a batch.
func (p *Pipeline) Discover(ctx context.Context, query string) []model.StockSignal {
	return resilience.Absorb("pipeline", func() ([]model.StockSignal, error) {
		return p.discover(ctx, query), nil
	})
}

func (p *Pipeline) discover(ctx context.Context, query string) []model.StockSignal {
	log := zap.L().With(zap.String("query", query))
	start := time.Now()

	resp := p.search.Search(ctx, query, search.Options{
		MaxResults:  p.maxResults,
		RecencyDays: p.recencyDays,
	})
	if !resp.Usable() {
		log.Debug("pipeline: no usable search results")
		return nil
	}

	text := resilience.Absorb("model", func() (string, error) {
		if p.model == nil || !p.model.Available() {
			return "", errModelUnavailable
		}
		prompt, err := BuildPrompt(FormatResults(resp.Results))
		if err != nil {
			return "", err
		}
		return p.model.Generate(ctx, prompt)
	})
	if text == "" {
		return nil
	}

	signals := extract.Signals(text, resp.Results)
	log.Info("pipeline: query complete",
		zap.String("provider", resp.Provider),
		zap.Int("results", len(resp.Results)),
		zap.Int("signals", len(signals)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return signals
}
