package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/homebridge-ai/clarity/internal/activation"
	"github.com/homebridge-ai/clarity/internal/clarity"
)

func TestHandleActivationLogsEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := handleActivation(zap.New(core), false)

	res := clarity.AnalyzeSituation("she fell")
	ev := activation.BuildEvent(activation.BuildParams{
		Result:   &res,
		Input:    res.RawInput,
		ClientID: "c1",
		Endpoint: activation.EndpointClarity,
	})
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/activation", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	entries := logs.FilterMessage("received activation event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, ev.RequestID, fields["request_id"])
	assert.Equal(t, "c1", fields["client_id"])
	assert.Equal(t, clarity.CategoryFallRisk, fields["issue_category"])
}

func TestHandleActivationRejectsGarbage(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := handleActivation(zap.New(core), false)

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/activation", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 1, logs.FilterMessage("undecodable activation event").Len())

	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/activation", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandleActivationDumpsRedactedEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	restore := zap.ReplaceGlobals(logger)
	defer restore()
	h := handleActivation(logger, true)

	ev := activation.Event{
		Version:   "1",
		RequestID: "req-1",
		Analysis: activation.AnalysisPayload{
			Preview: activation.InputPreview{Text: "reach me at jane@example.com"},
		},
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/activation", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	var dumped []string
	for _, e := range logs.All() {
		if strings.HasPrefix(e.Message, "activation: ") {
			dumped = append(dumped, e.Message)
		}
	}
	require.Len(t, dumped, 1)
	assert.Contains(t, dumped[0], `"request_id":"req-1"`)
	assert.NotContains(t, dumped[0], "jane@example.com")
}
