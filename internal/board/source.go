// Package board scrapes a public stock discussion board for tickers that
// are being talked about. It is a best-effort source: every failure
// degrades to fewer signals.
package board

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/screener-cli/internal/fetcher"
	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/internal/resilience"
)

// DefaultPage is the board's front page.
const DefaultPage = "https://guba.eastmoney.com/"

// Source produces neutral signals from board post links.
type Source struct {
	fetcher fetcher.PageFetcher
	pages   []string
}

// NewSource creates a Source reading pages through f. With no pages,
// DefaultPage is used.
func NewSource(f fetcher.PageFetcher, pages ...string) *Source {
	if len(pages) == 0 {
		pages = []string{DefaultPage}
	}
	return &Source{fetcher: f, pages: pages}
}

// Fetch returns up to limit signals (all of them when limit <= 0). A page
// that fails to load or parse is logged and skipped.
func (s *Source) Fetch(ctx context.Context, limit int) []model.StockSignal {
	seen := make(map[string]struct{})
	var out []model.StockSignal

	for _, page := range s.pages {
		if ctx.Err() != nil {
			break
		}
		signals := resilience.Absorb("board", func() ([]model.StockSignal, error) {
			body, err := s.fetcher.Fetch(ctx, page)
			if err != nil {
				return nil, err
			}
			return ParseLinks(body, seen)
		})
		zap.L().Debug("board: page parsed",
			zap.String("page", page),
			zap.Int("signals", len(signals)),
		)

		out = append(out, signals...)
		if limit > 0 && len(out) >= limit {
			return out[:limit]
		}
	}
	return out
}
