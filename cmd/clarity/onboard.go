package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/homebridge-ai/clarity/internal/onboarding"
)

var (
	answersPath string
	onboardJSON bool

	// answerFlags maps a flag name to the question it answers.
	answerFlags = []struct {
		flag     string
		question string
	}{
		{"who", onboarding.QuestionWhoAreYou},
		{"where", onboarding.QuestionWhereIsPerson},
		{"home", onboarding.QuestionHomeSetup},
		{"concern", onboarding.QuestionBiggestConcern},
		{"timeline", onboarding.QuestionTimeline},
		{"move", onboarding.QuestionMoveOrStay},
		{"anything-else", onboarding.QuestionAnythingElse},
	}
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Turn onboarding answers into a situation analysis",
	Long: `Builds the onboarding narrative from questionnaire answers and analyzes it.
Answers come from a YAML or JSON file, from per-question flags, or both
(flags win).

Example:
  clarity onboard --concern "Safety and falls" --timeline "We have a little time, but it’s starting to feel pressing"
  clarity onboard --answers answers.yaml --json`,
	RunE: runOnboard,
}

func init() {
	onboardCmd.Flags().StringVar(&answersPath, "answers", "", "YAML or JSON file mapping question ids to answers")
	onboardCmd.Flags().BoolVar(&onboardJSON, "json", false, "print the full result as JSON")
	for _, af := range answerFlags {
		q, _ := onboarding.Lookup(af.question)
		onboardCmd.Flags().String(af.flag, "", q.Label)
	}
}

func runOnboard(cmd *cobra.Command, args []string) error {
	responses := onboarding.Responses{}
	if answersPath != "" {
		loaded, err := loadAnswers(answersPath)
		if err != nil {
			return err
		}
		responses = loaded
	}
	for _, af := range answerFlags {
		if cmd.Flags().Changed(af.flag) {
			v, _ := cmd.Flags().GetString(af.flag)
			responses[af.question] = v
		}
	}
	if cfg.Onboarding.Strict {
		if err := onboarding.Validate(responses); err != nil {
			return err
		}
	}

	res := onboarding.AnalyzeResponses(responses)
	out := cmd.OutOrStdout()
	if onboardJSON {
		return writeJSON(out, res)
	}
	if res.OnboardingSummary.Narrative != "" {
		fmt.Fprintf(out, "%s\n\n", res.OnboardingSummary.Narrative)
	}
	fmt.Fprintf(out, "%s\n\n%s\n", res.Situation.Summary, res.OnboardingSummary.Promise)
	return nil
}

// loadAnswers reads a flat id -> answer mapping. JSON files parse as YAML.
func loadAnswers(path string) (onboarding.Responses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	responses := onboarding.Responses{}
	if err := yaml.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	return responses, nil
}
