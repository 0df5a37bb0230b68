package llm

import (
	"context"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rotisserie/eris"

	"github.com/sells-group/screener-cli/internal/resilience"
)

// Defaults for OpenAI-compatible endpoints.
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
)

// generator is the part of an eino chat model we call.
type generator interface {
	Generate(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}

// OpenAI is a Model backed by any OpenAI-compatible chat endpoint,
// including DeepSeek.
type OpenAI struct {
	chat  generator
	model string
	opts  []einomodel.Option
	retry resilience.RetryConfig
}

// NewOpenAI creates an OpenAI-compatible model. An empty apiKey leaves it
// unavailable.
func NewOpenAI(ctx context.Context, apiKey, baseURL, model string, maxTokens int, retry resilience.RetryConfig) (*OpenAI, error) {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	o := &OpenAI{model: model, retry: retry}
	o.retry.OnRetry = resilience.RetryLogger("openai", "generate")
	if apiKey == "" {
		return o, nil
	}

	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		Model:     model,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return nil, eris.Wrap(err, "llm: create openai chat model")
	}
	o.chat = chat
	return o, nil
}

// WithTemperature sets the sampling temperature passed on each call.
func (o *OpenAI) WithTemperature(t float64) *OpenAI {
	o.opts = append(o.opts, einomodel.WithTemperature(float32(t)))
	return o
}

// Available implements Model.
func (o *OpenAI) Available() bool { return o.chat != nil }

// Generate implements Model.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := resilience.DoVal(ctx, o.retry, func(ctx context.Context) (*schema.Message, error) {
		return o.chat.Generate(ctx, []*schema.Message{
			schema.SystemMessage(SystemPrompt),
			schema.UserMessage(prompt),
		}, o.opts...)
	})
	if err != nil {
		return "", eris.Wrapf(err, "llm: %s generate", o.model)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", ErrEmptyReply
	}
	return strings.TrimSpace(msg.Content), nil
}
