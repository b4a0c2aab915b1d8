package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeAttributesFiltersSecrets(t *testing.T) {
	kvs := map[string]interface{}{
		"text":             "Mom fell",
		"narrative":        "drop",
		"question_count":   4,
		"answer.timeline":  "drop",
		"api_key":          "sk-123",
		"token":            "abc",
		"authorization":    "secret",
		"client_name":      "drop",
		"long_string":      string(make([]byte, 600)),
		"clarity.endpoint": "clarity",
		"clarity.matched":  []string{"fall_risk"},
		"clarity.count":    3,
		"unsupported":      struct{}{},
	}

	attrs := SafeAttributes(kvs)

	var keys []string
	for _, a := range attrs {
		keys = append(keys, string(a.Key))
	}
	assert.Equal(t, []string{"clarity.count", "clarity.endpoint", "clarity.matched", "question_count"}, keys)
}

func TestSafeAttributesEmpty(t *testing.T) {
	assert.Nil(t, SafeAttributes(nil))
}
