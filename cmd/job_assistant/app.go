package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/analysis"
	"github.com/jonathan/job-assistant/internal/config"
	"github.com/jonathan/job-assistant/internal/fetch"
	"github.com/jonathan/job-assistant/internal/jobs"
	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/logger"
	"github.com/jonathan/job-assistant/internal/matching"
	"github.com/jonathan/job-assistant/internal/skills"
)

// app holds the configuration and shared collaborators for one command invocation.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	closers []func()
}

func newApp(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &app{cfg: cfg, logger: log}, nil
}

// Close releases everything opened by the builders, newest first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.logger.Sync()
}

// textFetcher returns the page fetcher, cached in Redis when a URL is configured.
// An unreachable Redis only disables the cache.
func (a *app) textFetcher(ctx context.Context) fetch.TextFetcher {
	base := fetch.New(&fetch.Options{
		Timeout:   a.cfg.Fetch.Timeout,
		UserAgent: a.cfg.Fetch.UserAgent,
	})
	if a.cfg.RedisURL == "" {
		return base
	}

	cache, err := fetch.NewRedisCache(ctx, a.cfg.RedisURL)
	if err != nil {
		a.logger.Warn("Page cache disabled", zap.Error(err))
		return base
	}
	a.closers = append(a.closers, func() { _ = cache.Close() })

	a.logger.Info("Page cache enabled", zap.Duration("ttl", a.cfg.CacheTTL))
	return fetch.NewCachedFetcher(base, cache, a.cfg.CacheTTL, a.logger)
}

// analyzer builds the resume analyzer for the configured LLM provider.
func (a *app) analyzer(ctx context.Context) (*analysis.Analyzer, error) {
	client, err := llm.NewClient(ctx, a.cfg.LLM, a.logger)
	if err != nil {
		if a.cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("%w (set %s)", err, a.cfg.APIKeyEnv())
		}
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = client.Close() })

	return analysis.NewAnalyzer(a.textFetcher(ctx), client, a.logger).
		WithTemperature(a.cfg.LLM.Temperature), nil
}

// pipeline builds the job matching pipeline. offline skips the live search.
func (a *app) pipeline(offline bool) (*matching.Pipeline, error) {
	vocab := skills.DefaultVocabulary()

	var live jobs.Source
	if !offline {
		delay := a.cfg.Jobs.Delay
		if delay == 0 {
			delay = -1 // zero in config means no pause
		}
		src, err := jobs.NewLinkedInSource(jobs.LinkedInOptions{
			SearchURL: a.cfg.Jobs.SearchURL,
			Timeout:   a.cfg.Jobs.Timeout,
			Delay:     delay,
			UserAgent: a.cfg.Fetch.UserAgent,
		}, vocab, a.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create job source: %w", err)
		}
		live = src
	}

	return matching.NewPipeline(live, jobs.NewFallbackSource(),
		matching.WithMaxResults(a.cfg.Jobs.MaxResults),
		matching.WithVocabulary(vocab),
		matching.WithLogger(a.logger),
	), nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}
