package resilience

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned when a call is rejected because the breaker is open.
var ErrCircuitOpen = eris.New("circuit breaker is open")

// Breaker stops calling a flaky upstream after a run of consecutive failures.
// Once the cool-down has passed it goes half-open: exactly one trial call is
// let through, and everyone else is rejected until that call is recorded.
type Breaker struct {
	name      string
	threshold int
	cooldown  time.Duration

	mu       sync.Mutex
	failures int
	openedAt time.Time
	trial    bool // a half-open trial call is in flight

	now func() time.Time
}

// NewBreaker creates a breaker that opens after threshold consecutive
// failures and stays open for cooldown. Zero values fall back to 3 and 1m.
func NewBreaker(name string, threshold int, cooldown time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = 3
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &Breaker{
		name:      name,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a call may go through right now. A true answer in
// the half-open state claims the trial slot, so the caller must Record the
// outcome.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rejecting() {
		return false
	}
	if b.failures >= b.threshold {
		b.trial = true
	}
	return true
}

func (b *Breaker) rejecting() bool {
	if b.failures < b.threshold {
		return false
	}
	return b.trial || b.now().Sub(b.openedAt) < b.cooldown
}

// Record feeds the outcome of a call into the breaker.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trial = false
	if err == nil {
		b.failures = 0
		return
	}
	b.failures++
	if b.failures >= b.threshold {
		if b.failures == b.threshold {
			zap.L().Warn("circuit opened",
				zap.String("service", b.name),
				zap.Int("failures", b.failures),
			)
		}
		b.openedAt = b.now()
	}
}

// Open reports whether the breaker is currently rejecting calls. Unlike
// Allow it never claims the trial slot.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rejecting()
}
