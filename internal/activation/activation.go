// Package activation records one event per analysis and ships it to the
// configured sinks without blocking the request path.
package activation

import (
	"encoding/json"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/homebridge-ai/clarity/internal/clarity"
	"github.com/homebridge-ai/clarity/internal/redact"
)

// Decision is the outcome of an analysis from the service's perspective.
type Decision string

const (
	DecisionClassified Decision = "classified"
	DecisionUnclear    Decision = "unclear"
	DecisionRejected   Decision = "rejected"
)

const (
	EndpointClarity    = "clarity"
	EndpointOnboarding = "onboarding"
)

const (
	LevelMetadata = "metadata"
	LevelRedacted = "redacted"
	LevelFull     = "full"
)

const previewLimit = 500

type Meta struct {
	ClientID string `json:"client_id,omitempty"`
	Endpoint string `json:"endpoint"`
}

type Summary struct {
	Decision      Decision           `json:"decision"`
	IssueCategory string             `json:"issue_category,omitempty"`
	Confidence    clarity.Confidence `json:"confidence,omitempty"`
	Categories    []string           `json:"categories,omitempty"`
	Reason        string             `json:"reason,omitempty"`
}

type InputPreview struct {
	Text string `json:"text,omitempty"`
}

type AnalysisPayload struct {
	InputChars        int          `json:"input_chars"`
	AnsweredQuestions []string     `json:"answered_questions,omitempty"`
	ConstraintCount   int          `json:"constraint_count"`
	ChoiceCount       int          `json:"choice_count"`
	Preview           InputPreview `json:"preview"`
}

type TimingMs struct {
	Analysis float64 `json:"analysis"`
	Total    float64 `json:"total"`
}

// Event is the canonical activation payload.
type Event struct {
	Version   string          `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"request_id"`
	Meta      Meta            `json:"meta"`
	Summary   Summary         `json:"summary"`
	Analysis  AnalysisPayload `json:"analysis"`
	TimingMs  TimingMs        `json:"timing_ms"`
}

// BuildParams collects inputs needed to assemble an activation event.
type BuildParams struct {
	Result            *clarity.Result
	Input             string
	AnsweredQuestions []string
	ClientID          string
	Endpoint          string
	LoggingLevel      string
	RequestID         string
	RejectReason      string
	AnalysisDuration  time.Duration
	TotalDuration     time.Duration
}

// BuildEvent creates an activation event for one analysis. A nil Result
// produces a rejected event carrying RejectReason.
func BuildEvent(params BuildParams) *Event {
	ev := &Event{
		Version:   "1",
		Timestamp: time.Now().UTC(),
		RequestID: ensureRequestID(params.RequestID),
		Meta: Meta{
			ClientID: params.ClientID,
			Endpoint: params.Endpoint,
		},
		Analysis: AnalysisPayload{
			InputChars:        len([]rune(params.Input)),
			AnsweredQuestions: sortedCopy(params.AnsweredQuestions),
			Preview: InputPreview{
				Text: buildPreview(params.LoggingLevel, params.Input),
			},
		},
		TimingMs: TimingMs{
			Analysis: durationMillis(params.AnalysisDuration),
			Total:    durationMillis(params.TotalDuration),
		},
	}

	res := params.Result
	if res == nil {
		ev.Summary = Summary{Decision: DecisionRejected, Reason: params.RejectReason}
		return ev
	}

	decision := DecisionClassified
	if res.Unclear() {
		decision = DecisionUnclear
	}
	ev.Summary = Summary{
		Decision:      decision,
		IssueCategory: res.IssueCategory,
		Confidence:    res.Confidence,
		Categories:    slices.Clone(res.MatchedCategories),
	}
	ev.Analysis.ConstraintCount = len(res.Constraints)
	ev.Analysis.ChoiceCount = len(res.Choices)
	return ev
}

// LogEvent prints a redacted JSON representation of the activation event.
func LogEvent(ev *Event) {
	if ev == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		redact.Logf("activation: failed to marshal event: %v", err)
		return
	}
	redact.Logf("activation: %s", string(data))
}

func ensureRequestID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func sortedCopy(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}

var (
	digitsRegex = regexp.MustCompile(`\d+`)
	tokenRegex  = regexp.MustCompile(`[A-Za-z0-9_\-]{20,}`)
)

// buildPreview applies the configured activation level to the analysed
// text. Secrets and contact details are always scrubbed, even at "full".
func buildPreview(level, text string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelFull:
		return redact.Preview(text, previewLimit)
	case LevelRedacted:
		return redact.Preview(simpleRedact(text), previewLimit)
	default:
		// metadata-only: no previews
		return ""
	}
}

// simpleRedact masks digit runs (ages, dates, room numbers) and long
// opaque tokens on top of the shared redaction rules.
func simpleRedact(s string) string {
	s = redact.String(s)
	s = tokenRegex.ReplaceAllString(s, "[REDACTED_TOKEN]")
	s = digitsRegex.ReplaceAllString(s, "#")
	return s
}
