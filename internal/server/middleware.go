package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/homebridge-ai/clarity/internal/auth"
)

// limit rejects requests beyond server.max_in_flight_requests with 429.
func (s *Server) limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.inFlight == nil {
			next(w, r)
			return
		}
		if !s.inFlight.TryAcquire(1) {
			s.log.Warn("in-flight limit reached", zap.String("path", r.URL.Path))
			writeError(w, http.StatusTooManyRequests, "Too many requests in flight, retry shortly", "rate_limit_error")
			return
		}
		defer s.inFlight.Release(1)
		next(w, r)
	}
}

// authenticate resolves the calling client. With auth disabled every caller
// is anonymous and accepted. On failure the error response has been written.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (auth.Client, bool) {
	if !s.auth.Enabled() {
		return auth.Client{}, true
	}
	apiKey, ok := auth.ParseBearerToken(r.Header.Get("Authorization"))
	if !ok || apiKey == "" {
		writeError(w, http.StatusUnauthorized, "Invalid or missing API key", "authentication_error")
		return auth.Client{}, false
	}
	client, ok := s.auth.Lookup(apiKey)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid API key", "authentication_error")
		return auth.Client{}, false
	}
	return client, true
}
