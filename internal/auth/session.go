package auth

import (
	"context"
	"sync"

	"github.com/trackerhq/project-tracker/internal/domain"
)

// SessionCookieName is the cookie carrying the browser session identifier.
const SessionCookieName = "session_id"

// SessionStore holds session records keyed by session ID. The store owns
// record lifecycle and expiry; the gateway only reads, replaces and deletes
// entries. Get returns (nil, nil) when no record exists. Put must replace an
// existing record atomically with respect to concurrent reads of the same key.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.SessionRecord, error)
	Put(ctx context.Context, sessionID string, record *domain.SessionRecord) error
	Delete(ctx context.Context, sessionID string) error
}

// MemorySessionStore is a process-local store used in tests and single-node
// development runs. Production deployments use the Redis-backed store from
// the persistence package.
type MemorySessionStore struct {
	mu      sync.RWMutex
	records map[string]domain.SessionRecord
}

// NewMemorySessionStore builds an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{records: make(map[string]domain.SessionRecord)}
}

// Get returns the record for sessionID, or nil when absent.
func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*domain.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[sessionID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores or replaces the record for sessionID.
func (s *MemorySessionStore) Put(_ context.Context, sessionID string, record *domain.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionID] = *record
	return nil
}

// Delete removes the record for sessionID, if any.
func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
	return nil
}
