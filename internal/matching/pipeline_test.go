package matching

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-assistant/internal/jobs"
	"github.com/jonathan/job-assistant/internal/metrics"
	"github.com/jonathan/job-assistant/internal/skills"
	"github.com/jonathan/job-assistant/internal/types"
)

type fakeSource struct {
	name     string
	postings []types.JobPosting
	calls    int
	gotMax   int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) ListPostings(_ context.Context, _, _ string, maxResults int) []types.JobPosting {
	f.calls++
	f.gotMax = maxResults
	return f.postings
}

func intPtr(v int) *int { return &v }

const devopsResume = "Python, FastAPI, PostgreSQL, Docker, AWS, CI/CD, Microservices, Kubernetes, Terraform, Linux"

func TestFindMatches_FallbackCatalog(t *testing.T) {
	live := &fakeSource{name: "live"}
	p := NewPipeline(live, jobs.NewFallbackSource())

	before := testutil.ToFloat64(metrics.JobSourceTotal.WithLabelValues(jobs.FallbackName))

	got, err := p.FindMatches(context.Background(), devopsResume, types.NewQuery("engineer", "", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, live.calls)
	assert.Equal(t, DefaultMaxResults, live.gotMax)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.JobSourceTotal.WithLabelValues(jobs.FallbackName)))

	require.Len(t, got, 2)
	assert.Equal(t, "DevOps Engineer", got[0].Title)
	assert.Equal(t, 100, got[0].Score)
	assert.Empty(t, got[0].MissingSkills)
	assert.Equal(t, "Platform Engineer", got[1].Title)
	assert.Equal(t, 85, got[1].Score)
	assert.Equal(t, []string{"Automation"}, got[1].MissingSkills)
}

func TestFindMatches_LiveSourceWins(t *testing.T) {
	live := &fakeSource{name: "live", postings: []types.JobPosting{
		{Title: "Go Developer", Company: "A", Location: "Remote", Description: "Go", RequiredSkills: []string{"Python", "Docker", "AWS"}},
	}}
	fallback := &fakeSource{name: "fallback"}
	p := NewPipeline(live, fallback)

	before := testutil.ToFloat64(metrics.JobSourceTotal.WithLabelValues("live"))

	got, err := p.FindMatches(context.Background(), "I use Python and Docker daily", types.NewQuery("developer", "", nil))
	require.NoError(t, err)

	assert.Zero(t, fallback.calls)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.JobSourceTotal.WithLabelValues("live")))
	require.Len(t, got, 1)
	assert.Equal(t, 66, got[0].Score)
	assert.Equal(t, []string{"Python", "Docker"}, got[0].MatchingSkills)
	assert.Equal(t, []string{"AWS"}, got[0].MissingSkills)
}

func TestFindMatches_Filters(t *testing.T) {
	tests := []struct {
		name      string
		query     types.Query
		wantTitle []string
	}{
		{
			name:      "location narrows results",
			query:     types.NewQuery("engineer", "austin", intPtr(0)),
			wantTitle: []string{"Data Engineer"},
		},
		{
			name:      "remote does not filter",
			query:     types.NewQuery("engineer", "Remote", nil),
			wantTitle: []string{"DevOps Engineer", "Platform Engineer"},
		},
		{
			name:      "query matches description",
			query:     types.NewQuery("terraform", "", intPtr(0)),
			wantTitle: []string{"DevOps Engineer", "Cloud Solutions Architect"},
		},
		{
			name:      "min score excludes everything",
			query:     types.NewQuery("engineer", "", intPtr(101)),
			wantTitle: []string{},
		},
		{
			name:      "no postings match query",
			query:     types.NewQuery("chef", "", intPtr(0)),
			wantTitle: []string{},
		},
	}

	p := NewPipeline(nil, jobs.NewFallbackSource())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.FindMatches(context.Background(), devopsResume, tt.query)
			require.NoError(t, err)

			titles := []string{}
			for _, g := range got {
				titles = append(titles, g.Title)
				assert.GreaterOrEqual(t, g.Score, tt.query.MinMatchScore)
			}
			assert.Equal(t, tt.wantTitle, titles)
		})
	}
}

func TestFindMatches_StableOrdering(t *testing.T) {
	live := &fakeSource{name: "live", postings: []types.JobPosting{
		{Title: "Engineer A", RequiredSkills: []string{"Python", "AWS"}},
		{Title: "Engineer B", RequiredSkills: []string{"Python"}},
		{Title: "Engineer C", RequiredSkills: []string{"Python", "Go"}},
		{Title: "Engineer D", RequiredSkills: []string{"AWS"}},
		{Title: "Engineer E", RequiredSkills: nil},
	}}
	p := NewPipeline(live, jobs.NewFallbackSource())

	got, err := p.FindMatches(context.Background(), "Python AWS", types.NewQuery("engineer", "", intPtr(0)))
	require.NoError(t, err)

	titles := []string{}
	for _, g := range got {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"Engineer A", "Engineer B", "Engineer D", "Engineer C", "Engineer E"}, titles)
	assert.Equal(t, 50, got[3].Score)
	assert.Equal(t, 50, got[4].Score)
}

func TestFindMatches_EmptyResume(t *testing.T) {
	p := NewPipeline(nil, jobs.NewFallbackSource())

	got, err := p.FindMatches(context.Background(), "", types.NewQuery("engineer", "", nil))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindMatches_EmptyQuery(t *testing.T) {
	p := NewPipeline(nil, jobs.NewFallbackSource())
	catalog := jobs.NewFallbackSource().ListPostings(context.Background(), "", "", 0)

	all, err := p.FindMatches(context.Background(), devopsResume, types.NewQuery("", "", intPtr(0)))
	require.NoError(t, err)
	assert.Len(t, all, len(catalog))

	candidate := skills.Extract(devopsResume)
	want := 0
	for _, posting := range catalog {
		if Compare(candidate, posting.RequiredSkills).Score >= types.DefaultMinMatchScore {
			want++
		}
	}

	filtered, err := p.FindMatches(context.Background(), devopsResume, types.NewQuery("", "", nil))
	require.NoError(t, err)
	assert.Len(t, filtered, want)
	for _, job := range filtered {
		assert.GreaterOrEqual(t, job.Score, types.DefaultMinMatchScore)
	}
}

func TestFindMatches_DoesNotMutateSource(t *testing.T) {
	p := NewPipeline(nil, jobs.NewFallbackSource())

	got, err := p.FindMatches(context.Background(), devopsResume, types.NewQuery("engineer", "", nil))
	require.NoError(t, err)
	require.NotEmpty(t, got)
	got[0].MatchingSkills[0] = "mutated"

	again := jobs.NewFallbackSource().ListPostings(context.Background(), "", "", 0)
	for _, posting := range again {
		assert.NotContains(t, posting.RequiredSkills, "mutated")
	}
}

func TestWithMaxResults(t *testing.T) {
	live := &fakeSource{name: "live"}
	p := NewPipeline(live, jobs.NewFallbackSource(), WithMaxResults(5), WithMaxResults(0))

	_, err := p.FindMatches(context.Background(), "", types.NewQuery("x", "", nil))
	require.NoError(t, err)
	assert.Equal(t, 5, live.gotMax)
}
