// Package types provides type definitions for structured data used throughout the job assistant.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// DefaultMinMatchScore is the minimum match score applied when a query does not set one.
const DefaultMinMatchScore = 60

// JobPosting represents a single job listing from a live or fallback source.
// Postings are treated as immutable once produced.
type JobPosting struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	URL            string   `json:"url"`
	RequiredSkills []string `json:"required_skills"`
}

// Clone returns a deep copy so callers never share the skills slice.
func (p JobPosting) Clone() JobPosting {
	out := p
	out.RequiredSkills = append([]string(nil), p.RequiredSkills...)
	return out
}

// ScoredJobPosting is a JobPosting annotated with its match against a candidate.
// It is derived per request and never persisted.
type ScoredJobPosting struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	URL            string   `json:"url"`
	Score          int      `json:"score"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
}

// Query is the input to the job matching pipeline.
type Query struct {
	JobQuery      string `json:"job_query"`
	Location      string `json:"location,omitempty"`
	MinMatchScore int    `json:"min_match_score"`
}

// NewQuery builds a Query. The job query is kept verbatim; a nil minScore
// selects DefaultMinMatchScore.
func NewQuery(jobQuery, location string, minScore *int) Query {
	q := Query{
		JobQuery:      jobQuery,
		Location:      strings.TrimSpace(location),
		MinMatchScore: DefaultMinMatchScore,
	}
	if minScore != nil {
		q.MinMatchScore = *minScore
	}
	return q
}

// FiltersLocation reports whether the location should restrict results.
// An empty location or "remote" matches every posting.
func (q Query) FiltersLocation() bool {
	loc := strings.ToLower(q.Location)
	return loc != "" && loc != "remote"
}
