package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assistant/internal/observability"
	"github.com/jonathan/job-assistant/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank job postings against a resume",
	Long:  "Search for postings matching a job query and print them ranked by skill overlap with the resume, as JSON.",
	RunE:  runMatch,
}

var (
	matchResumeFile string
	matchQuery      string
	matchLocation   string
	matchMinScore   int
	matchOffline    bool
	matchOutput     string
)

func init() {
	matchCmd.Flags().StringVar(&matchResumeFile, "resume", "", "Path to the resume text file, or - for stdin (required)")
	matchCmd.Flags().StringVarP(&matchQuery, "query", "q", "", "Job title or keyword to search for; empty matches every posting (required)")
	matchCmd.Flags().StringVarP(&matchLocation, "location", "l", "", "Location filter; empty or Remote matches everywhere")
	matchCmd.Flags().IntVar(&matchMinScore, "min-score", types.DefaultMinMatchScore, "Minimum match score (0-100)")
	matchCmd.Flags().BoolVar(&matchOffline, "offline", false, "Skip the live search and use the built-in catalog")
	matchCmd.Flags().StringVarP(&matchOutput, "output", "o", outputJSON, "Output format: json or text")

	_ = matchCmd.MarkFlagRequired("resume")
	_ = matchCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if matchMinScore < 0 || matchMinScore > 100 {
		return fmt.Errorf("--min-score must be between 0 and 100, got %d", matchMinScore)
	}
	if err := checkOutput(matchOutput); err != nil {
		return err
	}

	resume, err := readInput(matchResumeFile)
	if err != nil {
		return err
	}

	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	pipeline, err := a.pipeline(matchOffline)
	if err != nil {
		return err
	}

	minScore := matchMinScore
	results, err := pipeline.FindMatches(cmd.Context(), resume, types.NewQuery(matchQuery, matchLocation, &minScore))
	if err != nil {
		return err
	}

	if matchOutput == outputText {
		observability.NewPrinter(cmd.OutOrStdout()).PrintMatches(results)
		return nil
	}
	return printJSON(cmd, map[string]any{"jobs": results, "total": len(results)})
}

// Supported --output formats.
const (
	outputJSON = "json"
	outputText = "text"
)

func checkOutput(format string) error {
	if format != outputJSON && format != outputText {
		return fmt.Errorf("unknown output format %q (want json or text)", format)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
