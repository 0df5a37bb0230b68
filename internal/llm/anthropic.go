package llm

import (
	"context"
	"strings"

	"github.com/sells-group/screener-cli/internal/resilience"
	"github.com/sells-group/screener-cli/pkg/anthropic"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-haiku-4-5-20251001"

// Anthropic is a Model backed by the Anthropic Messages API.
type Anthropic struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	temp      *float64
	retry     resilience.RetryConfig
}

// NewAnthropic creates an Anthropic model. An empty apiKey leaves it unavailable.
func NewAnthropic(apiKey, model string, maxTokens int, retry resilience.RetryConfig) *Anthropic {
	a := &Anthropic{
		model:     model,
		maxTokens: int64(maxTokens),
		retry:     retry,
	}
	if a.model == "" {
		a.model = DefaultAnthropicModel
	}
	if apiKey != "" {
		a.client = anthropic.NewClient(apiKey, anthropic.WithMaxRetries(0))
	}
	a.retry.OnRetry = resilience.RetryLogger("anthropic", "generate")
	a.retry.ShouldRetry = func(err error) bool {
		return anthropic.IsOverloaded(err) || resilience.IsTransient(err)
	}
	return a
}

// WithClient replaces the underlying client.
func (a *Anthropic) WithClient(c anthropic.Client) *Anthropic {
	a.client = c
	return a
}

// WithTemperature sets the sampling temperature sent with each request.
func (a *Anthropic) WithTemperature(t float64) *Anthropic {
	a.temp = &t
	return a
}

// Available implements Model.
func (a *Anthropic) Available() bool { return a.client != nil }

// Generate implements Model.
func (a *Anthropic) Generate(ctx context.Context, prompt string) (string, error) {
	req := anthropic.MessageRequest{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		System:      SystemPrompt,
		Temperature: a.temp,
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
	}
	resp, err := resilience.DoVal(ctx, a.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return a.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return "", err
	}
	resp.Usage.LogCost(a.model, "discover")

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
