package clarity

// Confidence is the coarse self-assessed clarity of a result.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

const (
	explanationLow    = "This situation needs a bit more detail before the next steps become obvious. A clearer picture will make the options easier to see."
	explanationHigh   = "This situation is fairly clear. The main issue and what’s getting in the way are both visible, which makes it easier to talk about real options."
	explanationMedium = "This situation is partly clear. We can see some of the picture, but a few more details would help sharpen the next steps."
)

// Assessment pairs a confidence level with its fixed explanation.
type Assessment struct {
	Confidence  Confidence `json:"confidence"`
	Explanation string     `json:"confidenceExplanation"`
}

// Score derives confidence from the classified issue and the number of
// constraints and choices found. The first matching rule wins:
//
//	fallback issue                    -> low
//	constraints >= 1 and choices >= 2 -> high
//	otherwise                         -> medium
func Score(issue string, constraints, choices []string) Assessment {
	if issue == FallbackIssue {
		return Assessment{Confidence: ConfidenceLow, Explanation: explanationLow}
	}
	if len(constraints) >= 1 && len(choices) >= 2 {
		return Assessment{Confidence: ConfidenceHigh, Explanation: explanationHigh}
	}
	return Assessment{Confidence: ConfidenceMedium, Explanation: explanationMedium}
}
