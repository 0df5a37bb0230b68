package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Screen     ScreenConfig     `yaml:"screen" mapstructure:"screen"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	Jina       JinaConfig       `yaml:"jina" mapstructure:"jina"`
	Google     GoogleConfig     `yaml:"google" mapstructure:"google"`
	Perplexity PerplexityConfig `yaml:"perplexity" mapstructure:"perplexity"`
	Firecrawl  FirecrawlConfig  `yaml:"firecrawl" mapstructure:"firecrawl"`
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai" mapstructure:"openai"`
	Board      BoardConfig      `yaml:"board" mapstructure:"board"`
	Monitoring MonitoringConfig `yaml:"monitoring" mapstructure:"monitoring"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=json console"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port" validate:"gte=1,lte=65535"`
}

// ScreenConfig tunes a screening run.
type ScreenConfig struct {
	TopN           int      `yaml:"top_n" mapstructure:"top_n" validate:"gte=1"`
	MaxConcurrency int      `yaml:"max_concurrency" mapstructure:"max_concurrency" validate:"gte=1,lte=32"`
	MaxResults     int      `yaml:"max_results" mapstructure:"max_results" validate:"gte=1,lte=10"`
	RecencyDays    int      `yaml:"recency_days" mapstructure:"recency_days" validate:"gte=0"`
	Queries        []string `yaml:"queries" mapstructure:"queries"`
}

// SearchConfig orders and bounds the search providers.
type SearchConfig struct {
	// Providers is the fallback order. Unknown names are ignored.
	Providers   []string `yaml:"providers" mapstructure:"providers" validate:"min=1,dive,oneof=jina google perplexity firecrawl"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs" validate:"gte=1"`
	Retries     int      `yaml:"retries" mapstructure:"retries" validate:"gte=1,lte=10"`
	RatePerSec  float64  `yaml:"rate_per_sec" mapstructure:"rate_per_sec" validate:"gte=0"`
}

// JinaConfig holds Jina AI search settings.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// GoogleConfig holds Custom Search settings.
type GoogleConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	CX      string `yaml:"cx" mapstructure:"cx"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// PerplexityConfig holds Perplexity API settings.
type PerplexityConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// FirecrawlConfig holds Firecrawl API settings.
type FirecrawlConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// LLMConfig selects the language-model backend.
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider" validate:"oneof=anthropic openai"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens" validate:"gte=1"`
	Retries     int     `yaml:"retries" mapstructure:"retries" validate:"gte=1,lte=10"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=1"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// OpenAIConfig holds settings for any OpenAI-compatible endpoint,
// DeepSeek included.
type OpenAIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// BoardConfig configures the discussion-board scrape.
type BoardConfig struct {
	Pages       []string `yaml:"pages" mapstructure:"pages" validate:"dive,url"`
	Referer     string   `yaml:"referer" mapstructure:"referer"`
	UserAgent   string   `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs" validate:"gte=1"`
	RatePerSec  float64  `yaml:"rate_per_sec" mapstructure:"rate_per_sec" validate:"gt=0"`
}

// MonitoringConfig configures run alerts.
type MonitoringConfig struct {
	WebhookURL  string `yaml:"webhook_url" mapstructure:"webhook_url" validate:"omitempty,url"`
	SlowRunSecs int    `yaml:"slow_run_secs" mapstructure:"slow_run_secs" validate:"gte=0"`
}

// Load reads configuration from .env, file and environment, in increasing
// precedence.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, eris.Wrap(err, "config: read .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCREENER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("screen.top_n", 10)
	v.SetDefault("screen.max_concurrency", 3)
	v.SetDefault("screen.max_results", 5)
	v.SetDefault("screen.recency_days", 3)
	v.SetDefault("screen.queries", []string{})
	v.SetDefault("search.providers", []string{"jina", "google", "perplexity", "firecrawl"})
	v.SetDefault("search.timeout_secs", 15)
	v.SetDefault("search.retries", 2)
	v.SetDefault("search.rate_per_sec", 2)
	v.SetDefault("jina.key", "")
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("google.key", "")
	v.SetDefault("google.cx", "")
	v.SetDefault("google.base_url", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("perplexity.key", "")
	v.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("firecrawl.key", "")
	v.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev/v2")
	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.max_tokens", 2000)
	v.SetDefault("llm.retries", 3)
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("openai.key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("board.pages", []string{"https://guba.eastmoney.com/"})
	v.SetDefault("board.referer", "https://guba.eastmoney.com/")
	v.SetDefault("board.user_agent", "")
	v.SetDefault("board.timeout_secs", 10)
	v.SetDefault("board.rate_per_sec", 1)
	v.SetDefault("monitoring.webhook_url", "")
	v.SetDefault("monitoring.slow_run_secs", 0)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks field constraints. mode is the command being run; "serve"
// additionally requires a usable port.
func (c *Config) Validate(mode string) error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return eris.Wrap(err, "config: validate")
		}
		for _, fe := range fieldErrs {
			if fe.StructNamespace() == "Config.Server.Port" && mode != "serve" {
				continue
			}
			problems = append(problems, describe(fe))
		}
	}

	if mode != "serve" && mode != "screen" {
		problems = append(problems, fmt.Sprintf("unknown mode %q", mode))
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// describe renders a field error using the config key, e.g. llm.provider.
func describe(fe validator.FieldError) string {
	key := configKey(fe.Namespace())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", key)
	default:
		return fmt.Sprintf("%s failed validation: %s", key, fe.Tag())
	}
}

// configKey maps a validator namespace such as Config.LLM.Provider to the
// yaml key path llm.provider.
func configKey(ns string) string {
	if tag, ok := yamlKeys[ns]; ok {
		return tag
	}
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}

// yamlKeys covers the namespaces whose Go name does not lower-case to the key.
var yamlKeys = map[string]string{
	"Config.Screen.TopN":            "screen.top_n",
	"Config.Screen.MaxConcurrency":  "screen.max_concurrency",
	"Config.Screen.MaxResults":      "screen.max_results",
	"Config.Screen.RecencyDays":     "screen.recency_days",
	"Config.Search.TimeoutSecs":     "search.timeout_secs",
	"Config.Search.RatePerSec":      "search.rate_per_sec",
	"Config.LLM.MaxTokens":          "llm.max_tokens",
	"Config.OpenAI.BaseURL":         "openai.base_url",
	"Config.Board.TimeoutSecs":      "board.timeout_secs",
	"Config.Board.RatePerSec":       "board.rate_per_sec",
	"Config.Monitoring.WebhookURL":  "monitoring.webhook_url",
	"Config.Monitoring.SlowRunSecs": "monitoring.slow_run_secs",
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
