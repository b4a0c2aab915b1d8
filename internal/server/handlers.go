package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/homebridge-ai/clarity/internal/activation"
	"github.com/homebridge-ai/clarity/internal/auth"
	"github.com/homebridge-ai/clarity/internal/clarity"
	"github.com/homebridge-ai/clarity/internal/onboarding"
	"github.com/homebridge-ai/clarity/internal/telemetry"
)

type clarityRequest struct {
	Text string `json:"text"`
}

type clarityResponse struct {
	RequestID string         `json:"request_id"`
	Output    string         `json:"output"`
	Result    clarity.Result `json:"result"`
}

type onboardingRequest struct {
	Responses onboarding.Responses `json:"responses"`
}

type onboardingResponse struct {
	RequestID string `json:"request_id"`
	onboarding.Result
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		writeError(w, http.StatusServiceUnavailable, "Service is not ready", "not_ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ready",
		"categories": s.engine.Registry().Len(),
	})
}

func (s *Server) handleClarity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	client, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	requestID := newRequestID()
	w.Header().Set("X-Request-Id", requestID)
	s.requestStore.Start(requestID, client.ID)

	var body clarityRequest
	if status, reason, err := s.decodeJSON(w, r, &body); err != nil {
		s.reject(r.Context(), rejection{requestID: requestID, client: client, endpoint: activation.EndpointClarity, reason: reason, start: start})
		writeError(w, status, err.Error(), "invalid_request_error")
		return
	}

	ctx, span := s.telemetry.StartSpan(r.Context(), "clarity.analyze", map[string]interface{}{
		"clarity.endpoint":   activation.EndpointClarity,
		"clarity.request_id": requestID,
		"clarity.client_id":  client.ID,
	})
	defer span.End()

	analysisStart := time.Now()
	res := s.engine.Analyze(body.Text)
	analysisDur := time.Since(analysisStart)

	s.complete(ctx, completion{
		requestID: requestID,
		client:    client,
		endpoint:  activation.EndpointClarity,
		input:     body.Text,
		result:    &res,
		analysis:  analysisDur,
		start:     start,
	})

	writeJSON(w, http.StatusOK, clarityResponse{
		RequestID: requestID,
		Output:    res.Summary,
		Result:    res,
	})
}

func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	client, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	requestID := newRequestID()
	w.Header().Set("X-Request-Id", requestID)
	s.requestStore.Start(requestID, client.ID)

	var body onboardingRequest
	if status, reason, err := s.decodeJSON(w, r, &body); err != nil {
		s.reject(r.Context(), rejection{requestID: requestID, client: client, endpoint: activation.EndpointOnboarding, reason: reason, start: start})
		writeError(w, status, err.Error(), "invalid_request_error")
		return
	}
	if s.cfg.Onboarding.Strict {
		if err := onboarding.Validate(body.Responses); err != nil {
			reason := "unknown_option"
			if errors.Is(err, onboarding.ErrUnknownQuestion) {
				reason = "unknown_question"
			}
			s.reject(r.Context(), rejection{requestID: requestID, client: client, endpoint: activation.EndpointOnboarding, reason: reason, start: start})
			writeError(w, http.StatusUnprocessableEntity, err.Error(), "invalid_onboarding_response")
			return
		}
	}

	ctx, span := s.telemetry.StartSpan(r.Context(), "clarity.onboarding", map[string]interface{}{
		"clarity.endpoint":       activation.EndpointOnboarding,
		"clarity.request_id":     requestID,
		"clarity.client_id":      client.ID,
		"clarity.question_count": len(body.Responses),
	})
	defer span.End()

	analysisStart := time.Now()
	res := s.onboarding.Analyze(body.Responses)
	analysisDur := time.Since(analysisStart)

	s.complete(ctx, completion{
		requestID: requestID,
		client:    client,
		endpoint:  activation.EndpointOnboarding,
		input:     res.OnboardingSummary.Narrative,
		answered:  answeredQuestions(body.Responses),
		result:    &res.Situation,
		analysis:  analysisDur,
		start:     start,
	})

	writeJSON(w, http.StatusOK, onboardingResponse{
		RequestID: requestID,
		Result:    res,
	})
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, onboarding.Questions())
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Registry().Categories())
}

type completion struct {
	requestID string
	client    auth.Client
	endpoint  string
	input     string
	answered  []string
	result    *clarity.Result
	analysis  time.Duration
	start     time.Time
}

// complete records a served analysis: activation event, request store,
// metrics and one log line without any of the submitted text.
func (s *Server) complete(ctx context.Context, c completion) {
	total := time.Since(c.start)
	ev := activation.BuildEvent(activation.BuildParams{
		Result:            c.result,
		Input:             c.input,
		AnsweredQuestions: c.answered,
		ClientID:          c.client.ID,
		Endpoint:          c.endpoint,
		LoggingLevel:      s.loggingLevel,
		RequestID:         c.requestID,
		AnalysisDuration:  c.analysis,
		TotalDuration:     total,
	})
	s.activation.Emit(ctx, ev)
	s.requestStore.Complete(c.requestID, ev)

	s.telemetry.RecordAnalysis(ctx, telemetry.Analysis{
		Endpoint:      c.endpoint,
		Decision:      string(ev.Summary.Decision),
		IssueCategory: ev.Summary.IssueCategory,
		Confidence:    string(ev.Summary.Confidence),
		Categories:    ev.Summary.Categories,
		DurationMs:    ev.TimingMs.Analysis,
	})

	s.log.Info("analysis served",
		zap.String("request_id", c.requestID),
		zap.String("client_id", c.client.ID),
		zap.String("endpoint", c.endpoint),
		zap.String("decision", string(ev.Summary.Decision)),
		zap.String("issue_category", ev.Summary.IssueCategory),
		zap.String("confidence", string(ev.Summary.Confidence)),
		zap.Strings("categories", ev.Summary.Categories),
		zap.Duration("duration", total),
	)
}

type rejection struct {
	requestID string
	client    auth.Client
	endpoint  string
	reason    string
	start     time.Time
}

func (s *Server) reject(ctx context.Context, rj rejection) {
	ev := activation.BuildEvent(activation.BuildParams{
		ClientID:      rj.client.ID,
		Endpoint:      rj.endpoint,
		RequestID:     rj.requestID,
		RejectReason:  rj.reason,
		TotalDuration: time.Since(rj.start),
	})
	s.activation.Emit(ctx, ev)
	s.requestStore.Complete(rj.requestID, ev)
	s.telemetry.RecordAnalysis(ctx, telemetry.Analysis{
		Endpoint: rj.endpoint,
		Decision: string(activation.DecisionRejected),
	})
	s.log.Info("request rejected",
		zap.String("request_id", rj.requestID),
		zap.String("client_id", rj.client.ID),
		zap.String("endpoint", rj.endpoint),
		zap.String("reason", rj.reason),
	)
}

// decodeJSON reads a size-capped JSON body into dst. On failure it returns
// the HTTP status and a short machine-readable reason.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) (int, string, error) {
	if limit := s.cfg.Server.MaxRequestBodyBytes; limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, "body_too_large", fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return http.StatusBadRequest, "invalid_json", errors.New("invalid JSON body")
	}
	return 0, "", nil
}

func answeredQuestions(responses onboarding.Responses) []string {
	var ids []string
	for id, answer := range responses {
		if answer != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("failed to write response", zap.Error(err))
	}
}

// writeError writes a JSON error body: {"error":{"message","type"}}.
func writeError(w http.ResponseWriter, status int, message, typ string) {
	writeJSON(w, status, errorBody{
		Error: errorDetail{
			Message: message,
			Type:    typ,
		},
	})
}
