package search

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/screener-cli/internal/resilience"
)

// GuardConfig bounds the calls an adapter makes to its upstream.
type GuardConfig struct {
	// RatePerSec limits requests per second. Zero disables limiting.
	RatePerSec float64
	// Retries is the total attempt count per query.
	Retries int
	// Timeout bounds a single attempt. Zero means no per-attempt timeout.
	Timeout time.Duration
	// BreakerThreshold is the consecutive failure count that opens the breaker.
	BreakerThreshold int
	// BreakerCooldown is how long the breaker stays open.
	BreakerCooldown time.Duration
}

// guard wraps upstream calls with rate limiting, retry and a circuit breaker.
type guard struct {
	name    string
	limiter *rate.Limiter
	breaker *resilience.Breaker
	retry   resilience.RetryConfig
	timeout time.Duration
}

func newGuard(name string, cfg GuardConfig) *guard {
	limit := rate.Inf
	burst := 1
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
		burst = max(1, int(cfg.RatePerSec))
	}

	retry := resilience.WithAttempts(cfg.Retries)
	retry.ShouldRetry = shouldRetry
	retry.OnRetry = resilience.RetryLogger(name, "search")

	return &guard{
		name:    name,
		limiter: rate.NewLimiter(limit, burst),
		breaker: resilience.NewBreaker(name, cfg.BreakerThreshold, cfg.BreakerCooldown),
		retry:   retry,
		timeout: cfg.Timeout,
	}
}

// open reports whether the breaker is currently rejecting calls.
func (g *guard) open() bool {
	return g.breaker.Open()
}

// call runs fn under the guard. The breaker sees one outcome per call, not
// per attempt.
func call[T any](ctx context.Context, g *guard, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if !g.breaker.Allow() {
		return zero, resilience.ErrCircuitOpen
	}

	val, err := resilience.DoVal(ctx, g.retry, func(ctx context.Context) (T, error) {
		if err := g.limiter.Wait(ctx); err != nil {
			return zero, err
		}
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}
		return fn(ctx)
	})
	g.breaker.Record(err)
	if err != nil {
		zap.L().Debug("search: upstream call failed",
			zap.String("provider", g.name),
			zap.Error(err),
		)
	}
	return val, err
}

type statusCoder interface {
	HTTPStatus() int
}

// shouldRetry retries retryable HTTP statuses and transient network errors.
func shouldRetry(err error) bool {
	var sc statusCoder
	if errors.As(err, &sc) {
		return resilience.IsTransientHTTPStatus(sc.HTTPStatus())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return resilience.IsTransient(err)
}
