package fetcher

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Chain tries each fetcher in order until one returns a page.
type Chain struct {
	fetchers []PageFetcher
}

// NewChain creates a Chain. Nil fetchers are dropped.
func NewChain(fetchers ...PageFetcher) *Chain {
	c := &Chain{}
	for _, f := range fetchers {
		if f != nil {
			c.fetchers = append(c.fetchers, f)
		}
	}
	return c
}

// Fetch implements PageFetcher. The last error is returned when every
// fetcher fails.
func (c *Chain) Fetch(ctx context.Context, url string) ([]byte, error) {
	lastErr := eris.New("fetcher: no fetchers configured")
	for _, f := range c.fetchers {
		body, err := f.Fetch(ctx, url)
		if err == nil && len(body) > 0 {
			return body, nil
		}
		if err == nil {
			err = eris.Errorf("fetcher: %s returned an empty page", nameOf(f))
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		zap.L().Debug("fetcher: falling back",
			zap.String("fetcher", nameOf(f)),
			zap.String("url", url),
			zap.Error(err),
		)
	}
	return nil, lastErr
}
