package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/homebridge-ai/clarity/internal/activation"
)

const (
	statusPending   = "pending"
	statusCompleted = "completed"
)

// requestStore keeps the activation event of recent requests so callers can
// look them up by request id until the entry expires.
type requestStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]requestEntry
}

type requestEntry struct {
	clientID   string
	status     string
	activation *activation.Event
	expiresAt  time.Time
}

func newRequestStore(ttl time.Duration) *requestStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &requestStore{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]requestEntry),
	}
}

func (s *requestStore) Start(requestID, clientID string) {
	if s == nil || requestID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
	s.data[requestID] = requestEntry{
		clientID:  clientID,
		status:    statusPending,
		expiresAt: s.now().Add(s.ttl),
	}
}

func (s *requestStore) Complete(requestID string, ev *activation.Event) {
	if s == nil || requestID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
	entry := requestEntry{
		status:     statusCompleted,
		activation: ev,
		expiresAt:  s.now().Add(s.ttl),
	}
	if existing, ok := s.data[requestID]; ok {
		entry.clientID = existing.clientID
	} else if ev != nil {
		entry.clientID = ev.Meta.ClientID
	}
	s.data[requestID] = entry
}

func (s *requestStore) Get(requestID string) (requestEntry, bool) {
	if s == nil || requestID == "" {
		return requestEntry{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
	entry, ok := s.data[requestID]
	return entry, ok
}

func (s *requestStore) cleanupLocked() {
	now := s.now()
	for k, v := range s.data {
		if now.After(v.expiresAt) {
			delete(s.data, k)
		}
	}
}

func newRequestID() string {
	return uuid.NewString()
}
