package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Draft an answer to an application question",
	Long:  "Fetch the job description at --jd-url and have the configured LLM draft a first-person answer to --question from the candidate profile.",
	RunE:  runAnswer,
}

var (
	answerProfileFile string
	answerJDURL       string
	answerQuestion    string
)

func init() {
	answerCmd.Flags().StringVar(&answerProfileFile, "profile", "", "Path to the candidate profile text file, or - for stdin (required)")
	answerCmd.Flags().StringVar(&answerJDURL, "jd-url", "", "URL of the job description (required)")
	answerCmd.Flags().StringVar(&answerQuestion, "question", "", "Application question to answer (required)")

	_ = answerCmd.MarkFlagRequired("profile")
	_ = answerCmd.MarkFlagRequired("jd-url")
	_ = answerCmd.MarkFlagRequired("question")

	rootCmd.AddCommand(answerCmd)
}

func runAnswer(cmd *cobra.Command, _ []string) error {
	profile, err := readInput(answerProfileFile)
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

	answer, err := analyzer.GenerateAnswer(cmd.Context(), profile, answerJDURL, answerQuestion)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
	return err
}
