// Package onboarding turns answers to the fixed onboarding questionnaire into
// a short narrative and runs it through the clarity engine.
package onboarding

import (
	"fmt"
	"strings"

	"github.com/homebridge-ai/clarity/internal/clarity"
)

// Promise is attached to every onboarding result.
const Promise = "You don’t have to figure this out alone. This just gives us a clearer picture so we can talk about real options, not guesses."

// Responses maps question id to answer.
type Responses map[string]string

// Summary is the onboarding-specific wrapper around the narrative.
type Summary struct {
	Narrative string `json:"narrative"`
	Promise   string `json:"promise"`
}

// Result is the output of one onboarding analysis.
type Result struct {
	OnboardingSummary Summary        `json:"onboardingSummary"`
	Situation         clarity.Result `json:"situation"`
}

type sentence struct {
	id       string
	format   string
	keepCase bool
}

// narrativeOrder fixes both which answers are used and the order of sentences.
var narrativeOrder = []sentence{
	{id: QuestionWhoAreYou, format: "You’re coming to this as %s."},
	{id: QuestionWhereIsPerson, format: "Right now, your family member is %s."},
	{id: QuestionHomeSetup, format: "Their current home setup is: %s."},
	{id: QuestionBiggestConcern, format: "What’s weighing on you most is %s."},
	{id: QuestionTimeline, format: "In terms of timing, it feels like: %s."},
	{id: QuestionMoveOrStay, format: "You’re mostly trying to %s."},
	{id: QuestionAnythingElse, format: "In your own words: %s", keepCase: true},
}

// Narrative builds one sentence per answered question and joins them with
// single spaces. Missing or empty answers and unknown ids are ignored.
func Narrative(responses Responses) string {
	parts := make([]string, 0, len(narrativeOrder))
	for _, s := range narrativeOrder {
		answer := responses[s.id]
		if answer == "" {
			continue
		}
		if !s.keepCase {
			answer = strings.ToLower(answer)
		}
		parts = append(parts, fmt.Sprintf(s.format, answer))
	}
	return strings.Join(parts, " ")
}

// Adapter feeds onboarding narratives into an engine.
type Adapter struct {
	engine *clarity.Engine
}

// New returns an adapter over engine, or over the default engine when nil.
func New(engine *clarity.Engine) *Adapter {
	if engine == nil {
		engine = clarity.Default()
	}
	return &Adapter{engine: engine}
}

// Analyze builds the narrative for responses and classifies it.
func (a *Adapter) Analyze(responses Responses) Result {
	narrative := Narrative(responses)
	return Result{
		OnboardingSummary: Summary{
			Narrative: narrative,
			Promise:   Promise,
		},
		Situation: a.engine.Analyze(narrative),
	}
}

var defaultAdapter = New(nil)

// AnalyzeResponses runs the default adapter.
func AnalyzeResponses(responses Responses) Result {
	return defaultAdapter.Analyze(responses)
}
