package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screener-cli/internal/config"
	"github.com/sells-group/screener-cli/internal/resilience"
)

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertEmptyRun AlertType = "empty_run"
	AlertSlowRun  AlertType = "slow_run"
)

// Alert represents a single alert to be sent.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// RunSnapshot summarises one finished screening run. Absorbed stage
// failures are not part of it; they are only counted in
// screener_stage_failures_total, which is process-wide.
type RunSnapshot struct {
	Mode     string
	Signals  int
	Duration time.Duration
}

// Alerter evaluates finished runs against configured thresholds and sends
// alerts via webhook when thresholds are breached.
type Alerter struct {
	cfg    config.MonitoringConfig
	client *http.Client
	retry  resilience.RetryConfig
}

// NewAlerter creates a new Alerter with the given monitoring config.
func NewAlerter(cfg config.MonitoringConfig) *Alerter {
	return &Alerter{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		retry: resilience.RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: 250 * time.Millisecond,
			MaxBackoff:     2 * time.Second,
			ShouldRetry:    resilience.IsTransient,
			OnRetry:        resilience.RetryLogger("webhook", "send_alert"),
		},
	}
}

// Enabled reports whether a webhook is configured.
func (a *Alerter) Enabled() bool {
	return a != nil && a.cfg.WebhookURL != ""
}

// Evaluate checks the snapshot against thresholds and returns any alerts.
func (a *Alerter) Evaluate(snap RunSnapshot) []Alert {
	var alerts []Alert
	now := time.Now().UTC()

	// An empty watch list usually means every provider or the model is down.
	if snap.Signals == 0 {
		alerts = append(alerts, Alert{
			Type:     AlertEmptyRun,
			Severity: "high",
			Message:  fmt.Sprintf("%s screen returned no signals", snap.Mode),
			Details: map[string]any{
				"mode":          snap.Mode,
				"duration_secs": snap.Duration.Seconds(),
			},
			Timestamp: now,
		})
	}

	limit := time.Duration(a.cfg.SlowRunSecs) * time.Second
	if limit > 0 && snap.Duration > limit {
		alerts = append(alerts, Alert{
			Type:     AlertSlowRun,
			Severity: "medium",
			Message: fmt.Sprintf("%s screen took %s, over the %s threshold",
				snap.Mode, snap.Duration.Round(time.Millisecond), limit),
			Details: map[string]any{
				"mode":           snap.Mode,
				"duration_secs":  snap.Duration.Seconds(),
				"threshold_secs": a.cfg.SlowRunSecs,
			},
			Timestamp: now,
		})
	}

	return alerts
}

// SendAlerts delivers alerts to the configured webhook URL.
// Returns the number of alerts successfully sent.
func (a *Alerter) SendAlerts(ctx context.Context, alerts []Alert) int {
	if !a.Enabled() || len(alerts) == 0 {
		return 0
	}

	sent := 0
	for _, alert := range alerts {
		err := resilience.Do(ctx, a.retry, func(ctx context.Context) error {
			return a.sendWebhook(ctx, alert)
		})
		if err != nil {
			zap.L().Error("monitoring: failed to send alert",
				zap.String("type", string(alert.Type)),
				zap.Error(err),
			)
			continue
		}
		zap.L().Info("monitoring: alert sent",
			zap.String("type", string(alert.Type)),
			zap.String("severity", alert.Severity),
		)
		sent++
	}
	return sent
}

// sendWebhook posts a single alert to the webhook URL. 408, 429 and 5xx
// answers come back as transient errors.
func (a *Alerter) sendWebhook(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return eris.Wrap(err, "monitoring: marshal alert")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "monitoring: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "monitoring: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return resilience.StatusError("monitoring: webhook", resp.StatusCode, body)
	}
	return nil
}
