// Package monitoring exports screening metrics to Prometheus and raises
// webhook alerts on runs that come back empty or slow.
package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sells-group/screener-cli/internal/model"
)

// Recorder records screening metrics.
type Recorder struct {
	providerOutcomes *prometheus.CounterVec
	stageFailures    *prometheus.CounterVec
	signals          *prometheus.CounterVec
	runDuration      *prometheus.HistogramVec
	lastRunSignals   *prometheus.GaugeVec

	alerter *Alerter
	// sendTimeout bounds an alert dispatch.
	sendTimeout time.Duration
}

// NewRecorder registers the screener metrics with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics
// handler, or a fresh registry in tests.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		providerOutcomes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_provider_outcomes_total",
				Help: "Search provider attempts by outcome (served, empty, failed, skipped)",
			},
			[]string{"provider", "outcome"},
		),
		stageFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_stage_failures_total",
				Help: "Stage failures absorbed into empty results",
			},
			[]string{"stage"},
		),
		signals: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_signals_total",
				Help: "Signals returned by screening runs",
			},
			[]string{"mode", "signal"},
		),
		runDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screener_run_duration_seconds",
				Help:    "Duration of screening runs in seconds",
				Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 120, 300},
			},
			[]string{"mode"},
		),
		lastRunSignals: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "screener_last_run_signals",
				Help: "Number of signals in the most recent run",
			},
			[]string{"mode"},
		),
		sendTimeout: 15 * time.Second,
	}
}

// WithAlerter attaches an alerter that is consulted after every run.
func (r *Recorder) WithAlerter(a *Alerter) *Recorder {
	r.alerter = a
	return r
}

// ObserveProvider records one provider outcome for one query.
func (r *Recorder) ObserveProvider(provider, outcome string) {
	r.providerOutcomes.WithLabelValues(provider, outcome).Inc()
}

// ObserveStageFailure records an absorbed stage failure.
func (r *Recorder) ObserveStageFailure(stage string) {
	r.stageFailures.WithLabelValues(stage).Inc()
}

// ObserveRun records a finished run and dispatches any alerts in the
// background.
func (r *Recorder) ObserveRun(mode string, duration time.Duration, signals []model.StockSignal) {
	r.runDuration.WithLabelValues(mode).Observe(duration.Seconds())
	r.lastRunSignals.WithLabelValues(mode).Set(float64(len(signals)))
	for _, s := range signals {
		r.signals.WithLabelValues(mode, string(s.Type)).Inc()
	}

	if !r.alerter.Enabled() {
		return
	}
	snap := RunSnapshot{
		Mode:     mode,
		Signals:  len(signals),
		Duration: duration,
	}
	alerts := r.alerter.Evaluate(snap)
	if len(alerts) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.sendTimeout)
		defer cancel()
		r.alerter.SendAlerts(ctx, alerts)
	}()
}
