// Package llm provides a provider-neutral text completion client.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/config"
	"github.com/jonathan/job-assistant/internal/logger"
	"github.com/jonathan/job-assistant/internal/metrics"
)

// Default models and endpoints per provider.
const (
	DefaultMistralModel    = "mistral-large-latest"
	DefaultOpenAIModel     = "gpt-4o-mini"
	DefaultGeminiModel     = "gemini-2.5-flash"
	DefaultOpenRouterModel = "openai/gpt-4o-mini"

	MistralBaseURL    = "https://api.mistral.ai/v1"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	DefaultTimeout = 60 * time.Second
)

// Client sends a single prompt and returns the model's text reply.
type Client interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// APICallError represents a failed call to an LLM provider.
type APICallError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s API call failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s API call failed: %s", e.Provider, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// NewClient creates a client for the configured provider, wrapped with
// request timing and logging.
func NewClient(ctx context.Context, cfg config.LLMConfig, log *zap.Logger) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = config.ProviderMistral
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required for llm provider %q", provider)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	var (
		client Client
		err    error
	)
	switch provider {
	case config.ProviderMistral:
		client = NewOpenAICompatClient(provider, cfg.APIKey, orDefault(cfg.BaseURL, MistralBaseURL), orDefault(cfg.Model, DefaultMistralModel), cfg.Timeout)
	case config.ProviderOpenAI:
		client = NewOpenAICompatClient(provider, cfg.APIKey, cfg.BaseURL, orDefault(cfg.Model, DefaultOpenAIModel), cfg.Timeout)
	case config.ProviderGemini:
		client, err = NewGeminiClient(ctx, cfg.APIKey, orDefault(cfg.Model, DefaultGeminiModel))
	case config.ProviderOpenRouter:
		client = NewOpenRouterClient(cfg.APIKey, orDefault(cfg.BaseURL, OpenRouterBaseURL), orDefault(cfg.Model, DefaultOpenRouterModel), cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
	if err != nil {
		return nil, err
	}

	return Instrument(client, provider, log), nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// instrumented records latency and outcome of every completion.
type instrumented struct {
	next     Client
	provider string
	logger   *zap.Logger
}

// Instrument wraps a client so each call is timed into the LLM request
// histogram and logged.
func Instrument(next Client, provider string, log *zap.Logger) Client {
	return &instrumented{next: next, provider: provider, logger: logger.OrNop(log)}
}

func (c *instrumented) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	start := time.Now()
	text, err := c.next.Complete(ctx, prompt, temperature)
	elapsed := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.LLMRequestDuration.WithLabelValues(c.provider, status).Observe(elapsed.Seconds())

	fields := []zap.Field{
		zap.String("provider", c.provider),
		zap.Duration("duration", elapsed),
		zap.Int("prompt_chars", len(prompt)),
	}
	if err != nil {
		c.logger.Warn("llm completion failed", append(fields, zap.Error(err))...)
		return "", err
	}
	c.logger.Debug("llm completion", append(fields, zap.String("reply", logger.Truncate(text, 200)))...)
	return text, nil
}

func (c *instrumented) Close() error {
	return c.next.Close()
}
