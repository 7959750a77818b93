// Package matching scores job postings against a candidate's skills and ranks them.
package matching

import "strings"

// NeutralScore is returned when a posting lists no required skills.
const NeutralScore = 50

// Match is the comparison of candidate skills against one posting's requirements.
type Match struct {
	Score          int
	MatchingSkills []string
	MissingSkills  []string
}

// Score returns the percentage of required skills the candidate has, rounded down.
// Comparison is case-insensitive. An empty requirement list scores NeutralScore.
func Score(candidate, required []string) int {
	return Compare(candidate, required).Score
}

// Compare partitions required into skills the candidate has and skills they lack,
// preserving the order and spelling of required. Repeated requirements count once per listing.
func Compare(candidate, required []string) Match {
	m := Match{
		MatchingSkills: []string{},
		MissingSkills:  []string{},
	}
	if len(required) == 0 {
		m.Score = NeutralScore
		return m
	}

	have := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	for _, s := range required {
		if _, ok := have[strings.ToLower(strings.TrimSpace(s))]; ok {
			m.MatchingSkills = append(m.MatchingSkills, s)
		} else {
			m.MissingSkills = append(m.MissingSkills, s)
		}
	}

	m.Score = 100 * len(m.MatchingSkills) / len(required)
	if m.Score > 100 {
		m.Score = 100
	}
	return m
}
