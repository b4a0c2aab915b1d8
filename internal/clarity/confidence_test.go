package clarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreDecisionTable(t *testing.T) {
	cases := []struct {
		name        string
		issue       string
		constraints []string
		choices     []string
		want        Confidence
		explanation string
	}{
		{"fallback issue wins", FallbackIssue, []string{"a"}, []string{"a", "b"}, ConfidenceLow, explanationLow},
		{"one constraint two choices", "issue", []string{"a"}, []string{"a", "b"}, ConfidenceHigh, explanationHigh},
		{"single choice", "issue", []string{"a"}, []string{"a"}, ConfidenceMedium, explanationMedium},
		{"no constraints", "issue", nil, []string{"a", "b"}, ConfidenceMedium, explanationMedium},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.issue, tc.constraints, tc.choices)
			assert.Equal(t, tc.want, got.Confidence)
			assert.Equal(t, tc.explanation, got.Explanation)
		})
	}
}
