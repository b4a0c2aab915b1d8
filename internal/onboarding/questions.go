package onboarding

import (
	"errors"
	"fmt"
	"slices"
)

const (
	QuestionWhoAreYou      = "who_are_you"
	QuestionWhereIsPerson  = "where_is_person"
	QuestionHomeSetup      = "home_setup"
	QuestionBiggestConcern = "biggest_concern"
	QuestionTimeline       = "timeline"
	QuestionMoveOrStay     = "move_or_stay"
	QuestionAnythingElse   = "anything_else"
)

const (
	TypeSingleChoice = "single-choice"
	TypeText         = "text"
)

var (
	ErrUnknownQuestion = errors.New("unknown onboarding question")
	ErrUnknownOption   = errors.New("answer is not one of the question's options")
)

// Question is one entry of the onboarding questionnaire.
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Label   string   `json:"label" yaml:"label"`
	Type    string   `json:"type" yaml:"type"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

var questions = []Question{
	{
		ID:    QuestionWhoAreYou,
		Label: "Which one sounds most like you?",
		Type:  TypeSingleChoice,
		Options: []string{
			"Adult daughter in Denver trying to manage this",
			"Spouse or partner who’s overwhelmed",
			"Adult child who lives out of state",
			"Other",
		},
	},
	{
		ID:    QuestionWhereIsPerson,
		Label: "Where is your family member right now?",
		Type:  TypeSingleChoice,
		Options: []string{
			"At home in the Denver area",
			"In a Denver hospital",
			"In rehab or a skilled nursing facility",
			"In assisted living or memory care",
			"Out of state",
		},
	},
	{
		ID:    QuestionHomeSetup,
		Label: "What best describes their current home setup?",
		Type:  TypeSingleChoice,
		Options: []string{
			"Split-level or two-story with stairs",
			"Single-level home or condo",
			"Apartment or senior community",
			"I’m not sure / it’s complicated",
		},
	},
	{
		ID:    QuestionBiggestConcern,
		Label: "What is weighing on you the most right now?",
		Type:  TypeSingleChoice,
		Options: []string{
			"Safety and falls",
			"Memory or confusion",
			"Getting in and out of the house (snow/ice, stairs, mobility)",
			"Keeping up with the house",
			"Family not on the same page",
			"Money and what care will cost",
		},
	},
	{
		ID:    QuestionTimeline,
		Label: "How urgent does this feel?",
		Type:  TypeSingleChoice,
		Options: []string{
			"We have to make decisions in the next day or two",
			"We have a little time, but it’s starting to feel pressing",
			"We’re trying to think ahead before it becomes a crisis",
		},
	},
	{
		ID:    QuestionMoveOrStay,
		Label: "Are you mostly trying to:",
		Type:  TypeSingleChoice,
		Options: []string{
			"Keep them safely in their current home",
			"Figure out if a different home or setting would be better",
			"I honestly don’t know yet",
		},
	},
	{
		ID:    QuestionAnythingElse,
		Label: "In a sentence or two, what would you say if you could only explain this once?",
		Type:  TypeText,
	},
}

// Questions returns a copy of the questionnaire in presentation order.
func Questions() []Question {
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		q.Options = slices.Clone(q.Options)
		out = append(out, q)
	}
	return out
}

// Lookup returns the question with the given id.
func Lookup(id string) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			q.Options = slices.Clone(q.Options)
			return q, true
		}
	}
	return Question{}, false
}

// Validate checks that every answered id is a known question and that
// single-choice answers are one of the listed options. Empty answers are
// accepted since they are skipped when building the narrative.
func Validate(responses Responses) error {
	ids := make([]string, 0, len(responses))
	for id := range responses {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		q, ok := Lookup(id)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
		}
		answer := responses[id]
		if answer == "" || q.Type != TypeSingleChoice {
			continue
		}
		if !slices.Contains(q.Options, answer) {
			return fmt.Errorf("%w: %s=%q", ErrUnknownOption, id, answer)
		}
	}
	return nil
}
