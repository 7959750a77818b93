package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assistant/internal/analysis"
	"github.com/jonathan/job-assistant/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long:  "Fetch the job description at --jd-url, ask the configured LLM to score the resume against it, and print the result as JSON.",
	RunE:  runAnalyze,
}

var (
	analyzeResumeFile string
	analyzeJDURL      string
	analyzeOutput     string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResumeFile, "resume", "", "Path to the resume text file, or - for stdin (required)")
	analyzeCmd.Flags().StringVar(&analyzeJDURL, "jd-url", "", "URL of the job description (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", outputJSON, "Output format: json or text")

	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("jd-url")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if err := checkOutput(analyzeOutput); err != nil {
		return err
	}

	resume, err := readInput(analyzeResumeFile)
	if err != nil {
		return err
	}

	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	analyzer, err := a.analyzer(cmd.Context())
	if err != nil {
		return err
	}

	result, err := analyzer.AnalyzeResume(cmd.Context(), resume, analyzeJDURL)
	if err != nil {
		if me, ok := analysis.IsMalformed(err); ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Model reply:\n%s\n", me.Raw)
		}
		return err
	}
	if analyzeOutput == outputText {
		observability.NewPrinter(cmd.OutOrStdout()).PrintResumeScore(result)
		return nil
	}
	return printJSON(cmd, result)
}
