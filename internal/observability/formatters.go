// Package observability provides formatted output utilities for the CLI text mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for text mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to width runes, marking the cut with "...".
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-3]) + "..."
}

// PrintResumeScore outputs the fit score, missing skills and suggestions.
func (p *Printer) PrintResumeScore(result *types.ResumeScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:    %d/100\n", result.Score))

	if len(result.MissingSkills) > 0 {
		sb.WriteString("\nMissing Skills:\n")
		writeList(&sb, result.MissingSkills)
	}

	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		writeList(&sb, result.Suggestions)
	}

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the top ranked job postings with their scores and skill gaps.
func (p *Printer) PrintMatches(matches []types.ScoredJobPosting) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matching jobs: %d\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("\n#%d  %s (%d)\n", i+1, m.Title, m.Score))
		sb.WriteString(fmt.Sprintf("    %s, %s\n", m.Company, m.Location))
		if len(m.MatchingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Have:    %s\n", strings.Join(m.MatchingSkills, ", ")))
		}
		if len(m.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", strings.Join(m.MissingSkills, ", ")))
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(matches)-maxItemsToShow))
	}

	p.printBox("JOB MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
