// Package jobs provides the sources of job postings fed to the matching pipeline.
package jobs

import (
	"context"

	"github.com/jonathan/job-assistant/internal/types"
)

// Source lists job postings for a search. Implementations never fail: a source
// that cannot produce postings returns an empty slice.
type Source interface {
	Name() string
	ListPostings(ctx context.Context, query, location string, maxResults int) []types.JobPosting
}
