// Package llm adapts chat-completion backends to the single prompt-in,
// text-out call the discovery pipeline needs.
package llm

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/screener-cli/internal/resilience"
)

// Providers accepted by New.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// DefaultMaxTokens bounds a reply when the config leaves it unset.
const DefaultMaxTokens = 2000

// SystemPrompt frames every discovery call. The user prompt carries the
// articles and the exact output schema.
const SystemPrompt = "You are an analyst of China A-share equities. Read financial news and identify listed companies it affects. Reply with JSON only."

// Model is a language model that turns a prompt into text.
type Model interface {
	// Available reports whether the model is configured well enough to call.
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config selects and configures a backend.
type Config struct {
	Provider    string
	MaxTokens   int
	Retries     int
	Temperature float64

	AnthropicKey   string
	AnthropicModel string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
}

// New builds the Model named by cfg.Provider. A backend with no API key is
// returned as-is and reports itself unavailable.
func New(ctx context.Context, cfg Config) (Model, error) {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	retry := resilience.WithAttempts(cfg.Retries)

	switch strings.ToLower(cfg.Provider) {
	case ProviderAnthropic, "":
		return NewAnthropic(cfg.AnthropicKey, cfg.AnthropicModel, cfg.MaxTokens, retry).
			WithTemperature(cfg.Temperature), nil
	case ProviderOpenAI:
		o, err := NewOpenAI(ctx, cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.MaxTokens, retry)
		if err != nil {
			return nil, err
		}
		return o.WithTemperature(cfg.Temperature), nil
	default:
		return nil, eris.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

// ErrEmptyReply is returned when a backend answers with no text.
var ErrEmptyReply = eris.New("llm: empty reply")
