package analysis

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/fetch"
	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/logger"
	"github.com/jonathan/job-assistant/internal/prompts"
	"github.com/jonathan/job-assistant/internal/types"
)

// Temperature is the default sampling temperature; low values keep scoring stable.
const Temperature float32 = 0.2

// ErrEmptyAnswer is returned when the model produces only whitespace.
var ErrEmptyAnswer = errors.New("LLM returned an empty answer")

// Analyzer runs the fetch, prompt, complete and interpret steps for a single request.
type Analyzer struct {
	fetcher     fetch.TextFetcher
	llm         llm.Client
	temperature float32
	logger      *zap.Logger
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(fetcher fetch.TextFetcher, client llm.Client, log *zap.Logger) *Analyzer {
	return &Analyzer{
		fetcher:     fetcher,
		llm:         client,
		temperature: Temperature,
		logger:      logger.OrNop(log),
	}
}

// WithTemperature sets the sampling temperature used for completions.
func (a *Analyzer) WithTemperature(t float32) *Analyzer {
	a.temperature = t
	return a
}

// AnalyzeResume scores a resume against the job description at jdURL.
func (a *Analyzer) AnalyzeResume(ctx context.Context, resume, jdURL string) (*types.ResumeScoreResult, error) {
	jd, err := a.fetcher.FetchCleanText(ctx, jdURL)
	if err != nil {
		return nil, err
	}

	raw, err := a.llm.Complete(ctx, prompts.ResumeScore(resume, jd), a.temperature)
	if err != nil {
		return nil, err
	}

	result, err := ExtractStructuredResult(raw)
	if err != nil {
		a.logger.Warn("unusable resume score reply",
			zap.String("jd_url", jdURL),
			zap.String("raw", logger.Truncate(raw, 500)),
			zap.Error(err),
		)
		return nil, err
	}

	a.logger.Info("resume scored",
		zap.String("jd_url", jdURL),
		zap.Int("score", result.Score),
		zap.Int("missing_skills", len(result.MissingSkills)),
	)
	return result, nil
}

// GenerateAnswer drafts an answer to an application question for the job at jdURL.
func (a *Analyzer) GenerateAnswer(ctx context.Context, profile, jdURL, question string) (string, error) {
	jd, err := a.fetcher.FetchCleanText(ctx, jdURL)
	if err != nil {
		return "", err
	}

	answer, err := a.llm.Complete(ctx, prompts.TailoredAnswer(profile, jd, question), a.temperature)
	if err != nil {
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	a.logger.Info("answer generated", zap.String("jd_url", jdURL), zap.Int("chars", len(answer)))
	return answer, nil
}
