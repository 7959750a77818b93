package matching

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/jobs"
	"github.com/jonathan/job-assistant/internal/logger"
	"github.com/jonathan/job-assistant/internal/metrics"
	"github.com/jonathan/job-assistant/internal/skills"
	"github.com/jonathan/job-assistant/internal/types"
)

// DefaultMaxResults is how many postings are requested from the live source.
const DefaultMaxResults = 15

// Pipeline ranks postings from a live source, or the fallback when the live
// source yields nothing, against a resume.
type Pipeline struct {
	live       jobs.Source
	fallback   jobs.Source
	vocab      skills.Vocabulary
	maxResults int
	logger     *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxResults overrides how many postings the live source is asked for.
func WithMaxResults(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxResults = n
		}
	}
}

// WithVocabulary overrides the skill vocabulary used on resumes.
func WithVocabulary(v skills.Vocabulary) Option {
	return func(p *Pipeline) { p.vocab = v }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = logger.OrNop(l) }
}

// NewPipeline builds a pipeline. A nil live source means only the fallback is used.
func NewPipeline(live, fallback jobs.Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		live:       live,
		fallback:   fallback,
		vocab:      skills.DefaultVocabulary(),
		maxResults: DefaultMaxResults,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FindMatches returns postings that match the query and score at least
// query.MinMatchScore against the resume, best first. Ties keep source order.
// A resume with no recognizable skills is valid input. The query is matched
// as given, so an empty query keeps every posting.
func (p *Pipeline) FindMatches(ctx context.Context, resumeText string, query types.Query) ([]types.ScoredJobPosting, error) {
	candidate := p.vocab.Extract(resumeText)
	postings, source := p.collect(ctx, query.JobQuery, query.Location)

	metrics.JobSourceTotal.WithLabelValues(source).Inc()
	p.logger.Info("job postings collected",
		zap.String("source", source),
		zap.Int("postings", len(postings)),
		zap.Int("candidate_skills", len(candidate)),
	)

	needle := strings.ToLower(query.JobQuery)
	location := strings.ToLower(strings.TrimSpace(query.Location))
	filterLocation := query.FiltersLocation()

	results := []types.ScoredJobPosting{}
	for _, posting := range postings {
		if !strings.Contains(strings.ToLower(posting.Title), needle) &&
			!strings.Contains(strings.ToLower(posting.Description), needle) {
			continue
		}
		if filterLocation && !strings.Contains(strings.ToLower(posting.Location), location) {
			continue
		}

		m := Compare(candidate, posting.RequiredSkills)
		if m.Score < query.MinMatchScore {
			continue
		}

		results = append(results, types.ScoredJobPosting{
			Title:          posting.Title,
			Company:        posting.Company,
			Location:       posting.Location,
			Description:    posting.Description,
			URL:            posting.URL,
			Score:          m.Score,
			MatchingSkills: m.MatchingSkills,
			MissingSkills:  m.MissingSkills,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

func (p *Pipeline) collect(ctx context.Context, query, location string) ([]types.JobPosting, string) {
	if p.live != nil {
		if postings := p.live.ListPostings(ctx, query, location, p.maxResults); len(postings) > 0 {
			return postings, p.live.Name()
		}
		p.logger.Info("live job source returned nothing, using fallback catalog", zap.String("source", p.live.Name()))
	}
	return p.fallback.ListPostings(ctx, query, location, 0), p.fallback.Name()
}
