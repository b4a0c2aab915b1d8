package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homebridge-ai/clarity/internal/clarity"
	"github.com/homebridge-ai/clarity/internal/onboarding"
)

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()

	analyzeJSON, analyzePretty, onboardJSON, categoriesYAML = false, false, false, false
	answersPath = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestReadInput(t *testing.T) {
	got, err := readInput([]string{"she", "fell"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "she fell", got)

	got, err = readInput(nil, strings.NewReader("i'm exhausted\n"))
	require.NoError(t, err)
	assert.Equal(t, "i'm exhausted", got)

	_, err = readInput(nil, nil)
	assert.Error(t, err)
}

func TestAnalyzePrintsSummary(t *testing.T) {
	out := execute(t, "", "analyze", "She", "fell", "last", "night")
	assert.Equal(t, clarity.AnalyzeSituation("She fell last night").Summary+"\n", out)
}

func TestAnalyzeJSONFromStdin(t *testing.T) {
	out := execute(t, "We can't afford care.\n", "analyze", "--json")

	var res clarity.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "We can't afford care.", res.RawInput)
	assert.Equal(t, clarity.CategoryFinancialPressure, res.IssueCategory)
}

func TestResultMarkdownListsEverything(t *testing.T) {
	res := clarity.AnalyzeSituation("she fell and my brother won't help")
	md := resultMarkdown(res)

	assert.Contains(t, md, res.Issue)
	for _, c := range res.Constraints {
		assert.Contains(t, md, "- "+c)
	}
	for _, c := range res.Choices {
		assert.Contains(t, md, c)
	}
	assert.Contains(t, md, string(res.Confidence))
}

func TestOnboardFromFlagsAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeline: We have a little time, but it’s starting to feel pressing\nbiggest_concern: Memory or confusion\n"), 0o600))

	out := execute(t, "", "onboard", "--answers", path, "--concern", "Safety and falls", "--json")

	var res onboarding.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Contains(t, res.OnboardingSummary.Narrative, "What’s weighing on you most is safety and falls.")
	assert.Equal(t, clarity.CategoryFallRisk, res.Situation.IssueCategory)
}

func TestLoadAnswersAcceptsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"biggest_concern":"Safety and falls"}`), 0o600))

	got, err := loadAnswers(path)
	require.NoError(t, err)
	assert.Equal(t, onboarding.Responses{onboarding.QuestionBiggestConcern: "Safety and falls"}, got)

	_, err = loadAnswers(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCategoriesYAML(t *testing.T) {
	out := execute(t, "", "categories", "--yaml")
	for _, c := range clarity.DefaultRegistry().Categories() {
		assert.Contains(t, out, "id: "+c.ID)
	}
}

func TestQuestionsListsCatalog(t *testing.T) {
	out := execute(t, "", "questions")
	for _, q := range onboarding.Questions() {
		assert.Contains(t, out, q.Label)
	}
}

func TestCategoriesTable(t *testing.T) {
	out := execute(t, "", "categories")
	for _, c := range clarity.DefaultRegistry().Categories() {
		assert.Contains(t, out, c.ID)
	}
	assert.Contains(t, out, "requires=hospital")
}

func TestOnboardExamplesUseCatalogOptions(t *testing.T) {
	flagQuestion := map[string]string{}
	for _, af := range answerFlags {
		flagQuestion[af.flag] = af.question
	}

	examples := regexp.MustCompile(`--([a-z-]+) "([^"]+)"`).FindAllStringSubmatch(onboardCmd.Long, -1)
	require.NotEmpty(t, examples)

	responses := onboarding.Responses{}
	for _, m := range examples {
		id, ok := flagQuestion[m[1]]
		require.True(t, ok, "flag --%s", m[1])
		responses[id] = m[2]
	}
	assert.NoError(t, onboarding.Validate(responses))
}
