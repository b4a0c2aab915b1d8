package server

import (
	"net/http"
	"strings"
)

type requestStatusResponse struct {
	Status     string `json:"status"`
	Activation any    `json:"activation"`
}

func (s *Server) handleRequestStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/requests/"))
	if requestID == "" {
		http.NotFound(w, r)
		return
	}

	client, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	// Another client's request id looks exactly like an unknown one.
	entry, ok := s.requestStore.Get(requestID)
	if !ok || (s.auth.Enabled() && entry.clientID != client.ID) {
		http.NotFound(w, r)
		return
	}

	resp := requestStatusResponse{Status: entry.status}
	if entry.status == statusCompleted && entry.activation != nil {
		resp.Activation = entry.activation
	}
	writeJSON(w, http.StatusOK, resp)
}
