package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screener-cli/internal/board"
	"github.com/sells-group/screener-cli/internal/config"
	"github.com/sells-group/screener-cli/internal/fetcher"
	"github.com/sells-group/screener-cli/internal/llm"
	"github.com/sells-group/screener-cli/internal/monitoring"
	"github.com/sells-group/screener-cli/internal/pipeline"
	"github.com/sells-group/screener-cli/internal/resilience"
	"github.com/sells-group/screener-cli/internal/screener"
	"github.com/sells-group/screener-cli/internal/search"
	"github.com/sells-group/screener-cli/pkg/firecrawl"
	"github.com/sells-group/screener-cli/pkg/google"
	"github.com/sells-group/screener-cli/pkg/jina"
	"github.com/sells-group/screener-cli/pkg/perplexity"
)

// Breaker settings shared by every search provider.
const (
	breakerThreshold = 5
	breakerCooldown  = time.Minute
)

// screenEnv holds the screener and the metrics it reports into.
type screenEnv struct {
	Screener *screener.Screener
	Recorder *monitoring.Recorder
	Registry *prometheus.Registry
}

// Close detaches the process-wide failure hook.
func (e *screenEnv) Close() {
	resilience.OnAbsorb(nil)
}

// initScreener validates cfg for mode and builds the screener with all of
// its providers. Providers without credentials are kept in the chain and
// skipped at search time.
func initScreener(ctx context.Context, c *config.Config, mode string, queriesFile string) (*screenEnv, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	recorder := monitoring.NewRecorder(reg).WithAlerter(monitoring.NewAlerter(c.Monitoring))
	resilience.OnAbsorb(recorder.ObserveStageFailure)

	chain := search.NewChain(buildProviders(c)...).WithObserver(recorder.ObserveProvider)
	zap.L().Info("search providers configured", zap.Strings("order", chain.Providers()))

	model, err := llm.New(ctx, llm.Config{
		Provider:       c.LLM.Provider,
		MaxTokens:      c.LLM.MaxTokens,
		Retries:        c.LLM.Retries,
		Temperature:    c.LLM.Temperature,
		AnthropicKey:   c.Anthropic.Key,
		AnthropicModel: c.Anthropic.Model,
		OpenAIKey:      c.OpenAI.Key,
		OpenAIBaseURL:  c.OpenAI.BaseURL,
		OpenAIModel:    c.OpenAI.Model,
	})
	if err != nil {
		resilience.OnAbsorb(nil)
		return nil, eris.Wrap(err, "init llm")
	}
	if !model.Available() {
		zap.L().Warn("language model has no API key, news screens will be empty",
			zap.String("provider", c.LLM.Provider),
		)
	}

	pipe := pipeline.New(chain, model,
		pipeline.WithMaxResults(c.Screen.MaxResults),
		pipeline.WithRecencyDays(c.Screen.RecencyDays),
	)

	queries := c.Screen.Queries
	if queriesFile != "" {
		queries, err = screener.LoadQueries(queriesFile)
		if err != nil {
			resilience.OnAbsorb(nil)
			return nil, err
		}
	}

	s := screener.New(pipe, buildBoard(c),
		screener.WithQueries(queries),
		screener.WithConcurrency(c.Screen.MaxConcurrency),
		screener.WithRecorder(recorder),
	)

	return &screenEnv{Screener: s, Recorder: recorder, Registry: reg}, nil
}

// buildProviders returns the search adapters in the configured order.
func buildProviders(c *config.Config) []search.Provider {
	guard := search.GuardConfig{
		RatePerSec:       c.Search.RatePerSec,
		Retries:          c.Search.Retries,
		Timeout:          time.Duration(c.Search.TimeoutSecs) * time.Second,
		BreakerThreshold: breakerThreshold,
		BreakerCooldown:  breakerCooldown,
	}

	var providers []search.Provider
	for _, name := range c.Search.Providers {
		switch name {
		case "jina":
			var client jina.Client
			if c.Jina.Key != "" {
				client = jina.NewClient(c.Jina.Key, jina.WithSearchBaseURL(c.Jina.SearchBaseURL))
			}
			providers = append(providers, search.NewJina(client, guard))
		case "google":
			var client google.Client
			if c.Google.Key != "" && c.Google.CX != "" {
				client = google.NewClient(c.Google.Key, c.Google.CX, google.WithBaseURL(c.Google.BaseURL))
			}
			providers = append(providers, search.NewGoogle(client, guard))
		case "perplexity":
			var client perplexity.Client
			if c.Perplexity.Key != "" {
				client = perplexity.NewClient(c.Perplexity.Key, perplexity.WithBaseURL(c.Perplexity.BaseURL))
			}
			providers = append(providers, search.NewPerplexity(client, guard))
		case "firecrawl":
			var client firecrawl.Client
			if c.Firecrawl.Key != "" {
				client = firecrawl.NewClient(c.Firecrawl.Key, firecrawl.WithBaseURL(c.Firecrawl.BaseURL))
			}
			providers = append(providers, search.NewFirecrawl(client, guard))
		default:
			zap.L().Warn("ignoring unknown search provider", zap.String("provider", name))
		}
	}
	return providers
}

// buildBoard wires the board source to a direct HTTP fetcher, falling back
// to Firecrawl when a key is configured.
func buildBoard(c *config.Config) *board.Source {
	fetchers := []fetcher.PageFetcher{
		fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  c.Board.UserAgent,
			Referer:    c.Board.Referer,
			Timeout:    time.Duration(c.Board.TimeoutSecs) * time.Second,
			RatePerSec: c.Board.RatePerSec,
		}),
	}
	if c.Firecrawl.Key != "" {
		client := firecrawl.NewClient(c.Firecrawl.Key, firecrawl.WithBaseURL(c.Firecrawl.BaseURL))
		var headers map[string]string
		if c.Board.Referer != "" {
			headers = map[string]string{"Referer": c.Board.Referer}
		}
		fetchers = append(fetchers, fetcher.NewFirecrawlFetcher(client, headers))
	}
	return board.NewSource(fetcher.NewChain(fetchers...), c.Board.Pages...)
}
