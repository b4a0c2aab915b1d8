package redact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringRedaction(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		disallow []string
		require  []string
	}{
		{
			name:     "bearer header",
			input:    "Authorization: Bearer sk-secret-123",
			disallow: []string{"sk-secret-123"},
			require:  []string{"[REDACTED]"},
		},
		{
			name:     "api keys slice",
			input:    "api_keys=[client-key-1 client-key-2]",
			disallow: []string{"client-key-1", "client-key-2"},
			require:  []string{"api_keys=[REDACTED]"},
		},
		{
			name:     "webhook url",
			input:    "webhook=https://hooks.example.com/services/T000/B000/secretpath?sig=abc123",
			disallow: []string{"T000/B000", "sig=abc123"},
			require:  []string{"https://hooks.example.com/secretpath"},
		},
		{
			name:     "email and phone in a narrative",
			input:    "Call me at (303) 555-0142 or write to jane.doe+care@example.org about Mom.",
			disallow: []string{"555-0142", "jane.doe", "example.org"},
			require:  []string{"[PHONE]", "[EMAIL]", "about Mom."},
		},
		{
			name:     "mixed token",
			input:    "Bearer abc key=supersecret token=anotherone base=https://ex.test/files/base/",
			disallow: []string{"abc", "supersecret", "anotherone", "files/base/"},
			require:  []string{"[REDACTED]", "https://ex.test/[REDACTED_PATH]"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := String(tc.input)
			for _, bad := range tc.disallow {
				if bad != "" && contains(out, bad) {
					t.Fatalf("output still contains %q: %s", bad, out)
				}
			}
			for _, want := range tc.require {
				if want == "" {
					continue
				}
				if !contains(out, want) {
					t.Fatalf("output missing required substring %q: %s", want, out)
				}
			}
		})
	}
}

func TestStringLeavesPlainTextAlone(t *testing.T) {
	in := "Mom fell on 2024-01-01 and the hospital can't keep her past Friday."
	assert.Equal(t, in, String(in))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "", Preview("", 10))
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "abcde…", Preview("abcdefghij", 5))
	assert.Equal(t, "[EMAIL]", Preview("a@b.co", 0))
	assert.Equal(t, "héllo…", Preview("héllo wörld", 5))
}

func TestLogfGoesThroughZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	Logf("client key=%s", "supersecretvalue")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.NotContains(t, entries[0].Message, "supersecretvalue")
		assert.Contains(t, entries[0].Message, "[REDACTED]")
	}
}

func TestWarnfGoesThroughZapAtWarnLevel(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	Warnf("upload to %s failed", "https://collector.example.com/v1/metrics?token=abc123")

	entries := logs.FilterLevelExact(zap.WarnLevel).All()
	if assert.Len(t, entries, 1) {
		assert.NotContains(t, entries[0].Message, "abc123")
	}
}

func contains(s, sub string) bool {
	return s != "" && sub != "" && strings.Contains(s, sub)
}
