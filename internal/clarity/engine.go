// Package clarity turns a free-text description of a family caregiving
// situation into a triage result: the one issue to name, the constraints in
// the way, next-step choices, a confidence level and a readable summary.
//
// Everything here is a pure function of the input text and an immutable
// category Registry.
package clarity

const (
	FallbackIssue      = "The primary issue is not fully clear yet and needs a bit more information."
	FallbackConstraint = "There are likely real limits here, but they are not fully clear yet from what’s been shared."
)

// fallbackChoices are offered when no category matches.
var fallbackChoices = []string{
	"Gather a bit more detail about what has changed recently and what feels most urgent.",
	"Name the one thing that worries you most when you think about the next few weeks.",
}

// FallbackChoices returns a copy of the clarifying prompts used when nothing matches.
func FallbackChoices() []string {
	return append([]string(nil), fallbackChoices...)
}

// Result is the full output of one analysis.
type Result struct {
	RawInput              string     `json:"rawInput"`
	Issue                 string     `json:"issue"`
	Constraints           []string   `json:"constraints"`
	Choices               []string   `json:"choices"`
	Confidence            Confidence `json:"confidence"`
	ConfidenceExplanation string     `json:"confidenceExplanation"`
	Summary               string     `json:"summary"`

	// IssueCategory is empty when the fallback issue was used.
	IssueCategory     string   `json:"issueCategory,omitempty"`
	MatchedCategories []string `json:"matchedCategories,omitempty"`
}

// Unclear reports whether the analysis fell back to the "not fully clear" issue.
func (r Result) Unclear() bool {
	return r.Issue == FallbackIssue
}

// Engine runs the triage pipeline against a Registry.
type Engine struct {
	registry *Registry
}

// New returns an engine over reg, or over the default registry when reg is nil.
func New(reg *Registry) *Engine {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Engine{registry: reg}
}

var defaultEngine = New(nil)

// Default returns the engine over the built-in registry.
func Default() *Engine {
	return defaultEngine
}

// AnalyzeSituation runs the default engine over text.
func AnalyzeSituation(text string) Result {
	return defaultEngine.Analyze(text)
}

// Registry returns the engine's category table.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Analyze runs the whole pipeline over raw text.
func (e *Engine) Analyze(text string) Result {
	normalized := Normalize(text)

	issueCat, issue := e.classify(normalized)
	constraints := e.CollectConstraints(normalized)
	choices := e.GenerateChoices(normalized)
	assessment := Score(issue, constraints, choices)

	return Result{
		RawInput:              text,
		Issue:                 issue,
		Constraints:           constraints,
		Choices:               choices,
		Confidence:            assessment.Confidence,
		ConfidenceExplanation: assessment.Explanation,
		Summary:               Compose(issue, constraints, choices),
		IssueCategory:         issueCat,
		MatchedCategories:     e.registry.Matched(normalized),
	}
}

// ClassifyIssue returns the issue sentence of the highest-priority matching
// category, or FallbackIssue.
func (e *Engine) ClassifyIssue(normalized string) string {
	_, issue := e.classify(normalized)
	return issue
}

func (e *Engine) classify(normalized string) (string, string) {
	c, ok := firstMatch(e.registry.byPriority, normalized)
	if !ok {
		return "", FallbackIssue
	}
	return c.ID, c.Issue
}

// CollectConstraints returns the constraint sentence of every matching
// category in declaration order. It never returns an empty slice.
func (e *Engine) CollectConstraints(normalized string) []string {
	var out []string
	for _, c := range allMatches(e.registry.declared, normalized) {
		if c.Constraint != "" {
			out = append(out, c.Constraint)
		}
	}
	if len(out) == 0 {
		return []string{FallbackConstraint}
	}
	return out
}

// GenerateChoices concatenates the choice lists of every matching category in
// declaration order. It never returns an empty slice.
func (e *Engine) GenerateChoices(normalized string) []string {
	var out []string
	for _, c := range allMatches(e.registry.declared, normalized) {
		out = append(out, c.Choices...)
	}
	if len(out) == 0 {
		return FallbackChoices()
	}
	return out
}
