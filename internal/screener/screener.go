// Package screener discovers A-share tickers worth watching from financial
// news and a discussion board, ranked for a watch list.
package screener

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/screener-cli/internal/model"
)

// Defaults applied by New.
const (
	DefaultTopN        = 10
	DefaultConcurrency = 3
)

// Screening modes, used for run logs and metrics.
const (
	ModeNews     = "news"
	ModeBoard    = "board"
	ModeCombined = "combined"
)

// Discoverer turns one query into signals. *pipeline.Pipeline satisfies it.
type Discoverer interface {
	Discover(ctx context.Context, query string) []model.StockSignal
}

// BoardSource produces supplementary signals. *board.Source satisfies it.
type BoardSource interface {
	Fetch(ctx context.Context, limit int) []model.StockSignal
}

// Recorder observes completed runs.
type Recorder interface {
	ObserveRun(mode string, duration time.Duration, signals []model.StockSignal)
}

// Screener exposes the screening modes. None of them fails: an empty list
// is a valid outcome.
type Screener struct {
	discoverer  Discoverer
	board       BoardSource
	recorder    Recorder
	queries     []string
	concurrency int
}

// Option configures a Screener.
type Option func(*Screener)

// WithQueries sets the default query list. An empty list keeps DefaultQueries.
func WithQueries(q []string) Option {
	return func(s *Screener) {
		if len(q) > 0 {
			s.queries = q
		}
	}
}

// WithConcurrency caps how many queries run at once.
func WithConcurrency(n int) Option {
	return func(s *Screener) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithRecorder attaches a run recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Screener) { s.recorder = r }
}

// New creates a Screener. board may be nil, in which case the supplementary
// modes return only what news yields.
func New(d Discoverer, board BoardSource, opts ...Option) *Screener {
	s := &Screener{
		discoverer:  d,
		board:       board,
		queries:     DefaultQueries,
		concurrency: DefaultConcurrency,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ScreenFromNews runs the news pipeline over queries (the configured list
// when none are given) and returns the top signals, one per code.
func (s *Screener) ScreenFromNews(ctx context.Context, topN int, queries ...string) []model.StockSignal {
	ctx, done := s.begin(ctx, ModeNews)
	out := s.screenNews(ctx, normalizeTopN(topN), queries)
	done(out)
	return out
}

// ScreenFromSupplementary returns the top board signals.
func (s *Screener) ScreenFromSupplementary(ctx context.Context, topN int) []model.StockSignal {
	ctx, done := s.begin(ctx, ModeBoard)
	out := s.screenBoard(ctx, normalizeTopN(topN))
	done(out)
	return out
}

// ScreenCombined merges an oversampled news screen with the board under
// Combine's priority policy. The two sources run concurrently.
func (s *Screener) ScreenCombined(ctx context.Context, topN int) []model.StockSignal {
	ctx, done := s.begin(ctx, ModeCombined)
	topN = normalizeTopN(topN)

	var news, board []model.StockSignal
	var g errgroup.Group
	g.Go(func() error {
		news = s.screenNews(ctx, topN*2, nil)
		return nil
	})
	g.Go(func() error {
		board = s.screenBoard(ctx, topN)
		return nil
	})
	_ = g.Wait()

	out := Combine(news, board, topN)
	done(out)
	return out
}

// StockCodes returns the codes of ScreenFromNews, in rank order.
func (s *Screener) StockCodes(ctx context.Context, topN int, queries ...string) []string {
	return model.Codes(s.ScreenFromNews(ctx, topN, queries...))
}

func (s *Screener) screenBoard(ctx context.Context, topN int) []model.StockSignal {
	if s.board == nil {
		return nil
	}
	signals := s.board.Fetch(ctx, topN)
	loggerFrom(ctx).Info("screener: board screen complete", zap.Int("returned", len(signals)))
	return truncate(signals, topN)
}

type loggerKey struct{}

// begin tags ctx with a run-scoped logger and returns a callback that
// records the finished run.
func (s *Screener) begin(ctx context.Context, mode string) (context.Context, func([]model.StockSignal)) {
	runID := RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = WithRunID(ctx, runID)
	}
	log := zap.L().With(zap.String("run_id", runID), zap.String("mode", mode))
	ctx = context.WithValue(ctx, loggerKey{}, log)
	start := time.Now()

	return ctx, func(out []model.StockSignal) {
		elapsed := time.Since(start)
		log.Info("screener: run complete",
			zap.Int("signals", len(out)),
			zap.Duration("elapsed", elapsed),
		)
		if s.recorder != nil {
			s.recorder.ObserveRun(mode, elapsed, out)
		}
	}
}

type runIDKey struct{}

// WithRunID attaches a caller-chosen run ID to ctx. Screening calls made
// with it log under that ID instead of generating one.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run ID attached to ctx, or "".
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

func loggerFrom(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.L()
}

func normalizeTopN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	return n
}
