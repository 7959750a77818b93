// Package config provides configuration loading and validation for the job assistant.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for every environment variable read by Load.
const EnvPrefix = "JOB_ASSISTANT"

// Supported LLM providers.
const (
	ProviderMistral    = "mistral"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// Config represents the application configuration.
// Values come from defaults, then an optional config file, then the environment.
type Config struct {
	Port        int           `mapstructure:"port"`
	DatabaseURL string        `mapstructure:"database_url"`
	RedisURL    string        `mapstructure:"redis_url"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	LogFormat   string        `mapstructure:"log_format"`
	LogLevel    string        `mapstructure:"log_level"`

	LLM       LLMConfig       `mapstructure:"llm"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Jobs      JobsConfig      `mapstructure:"jobs"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// LLMConfig selects and configures the language model provider.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// FetchConfig configures job description fetching.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// JobsConfig configures the live job source.
type JobsConfig struct {
	SearchURL  string        `mapstructure:"search_url"`
	Delay      time.Duration `mapstructure:"delay"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxResults int           `mapstructure:"max_results"`
}

// RateLimitConfig configures per-client request throttling for the HTTP API.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
	LLMPerHour        int  `mapstructure:"llm_per_hour"`
}

// providerKeyEnv maps providers to the conventional environment variable for their API key.
var providerKeyEnv = map[string]string{
	ProviderMistral:    "MISTRAL_API_KEY",
	ProviderOpenAI:     "OPENAI_API_KEY",
	ProviderGemini:     "GEMINI_API_KEY",
	ProviderOpenRouter: "OPENROUTER_API_KEY",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("cache_ttl", 24*time.Hour)
	v.SetDefault("log_format", "console")
	v.SetDefault("log_level", "info")

	v.SetDefault("llm.provider", ProviderMistral)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("fetch.timeout", 15*time.Second)
	v.SetDefault("fetch.user_agent", "")

	v.SetDefault("jobs.search_url", "https://www.linkedin.com/jobs/search")
	v.SetDefault("jobs.delay", 500*time.Millisecond)
	v.SetDefault("jobs.timeout", 10*time.Second)
	v.SetDefault("jobs.max_results", 15)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 120)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.llm_per_hour", 60)
}

// Load reads configuration. path may be empty, in which case only defaults and
// environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional names win only when the prefixed variable is unset.
	if err := v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}
	if err := v.BindEnv("redis_url", EnvPrefix+"_REDIS_URL", "REDIS_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind REDIS_URL: %w", err)
	}
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind PORT: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.APIKey == "" {
		if env, ok := providerKeyEnv[cfg.LLM.Provider]; ok {
			cfg.LLM.APIKey = os.Getenv(env)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// It does not require credentials; commands that need them check separately.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if _, ok := providerKeyEnv[c.LLM.Provider]; !ok {
		return fmt.Errorf("config error: unknown llm provider %q", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("config error: 'llm.temperature' must be within [0, 2]")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("config error: 'fetch.timeout' must be positive")
	}
	if c.Jobs.Timeout <= 0 {
		return fmt.Errorf("config error: 'jobs.timeout' must be positive")
	}
	if c.Jobs.Delay < 0 {
		return fmt.Errorf("config error: 'jobs.delay' must be non-negative")
	}
	if c.Jobs.MaxResults <= 0 {
		return fmt.Errorf("config error: 'jobs.max_results' must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("config error: rate limit requires positive 'requests_per_minute' and 'burst'")
	}
	return nil
}

// APIKeyEnv returns the conventional environment variable name for the configured provider's key.
func (c *Config) APIKeyEnv() string {
	return providerKeyEnv[c.LLM.Provider]
}
