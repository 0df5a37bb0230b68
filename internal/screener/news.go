package screener

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/screener-cli/internal/model"
)

// discoverAll runs every query with at most limit in flight and returns the
// per-query results in query order.
func discoverAll(ctx context.Context, d Discoverer, queries []string, limit int) [][]model.StockSignal {
	perQuery := make([][]model.StockSignal, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, limit))
	for i, q := range queries {
		g.Go(func() error {
			perQuery[i] = d.Discover(gctx, q)
			return nil
		})
	}
	_ = g.Wait()

	return perQuery
}

// mergeNews flattens per-query results in query order, keeps the first
// signal seen for each code and ranks the rest.
func mergeNews(perQuery [][]model.StockSignal) []model.StockSignal {
	var all []model.StockSignal
	for _, signals := range perQuery {
		all = append(all, signals...)
	}
	all = dedup(all)
	Rank(all)
	return all
}

func (s *Screener) screenNews(ctx context.Context, topN int, queries []string) []model.StockSignal {
	if len(queries) == 0 {
		queries = s.queries
	}
	log := loggerFrom(ctx)
	log.Info("screener: news screen starting",
		zap.Int("queries", len(queries)),
		zap.Int("concurrency", s.concurrency),
	)

	merged := mergeNews(discoverAll(ctx, s.discoverer, queries, s.concurrency))
	result := truncate(merged, topN)

	log.Info("screener: news screen complete",
		zap.Int("found", len(merged)),
		zap.Int("returned", len(result)),
	)
	return result
}
