package presence

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a process-local Store for single-node deployments and
// tests. Expiry is checked on read against the store's clock, so entries
// lapse without any sweeper goroutine.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// WithClock overrides the store's clock. Tests use it to step time past TTLs.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) MarkOnline(_ context.Context, profileID uuid.UUID) error {
	s.set(onlineKey(profileID), OnlineTTL)
	return nil
}

func (s *MemoryStore) IsOnline(_ context.Context, profileID uuid.UUID) (bool, error) {
	return s.get(onlineKey(profileID)), nil
}

func (s *MemoryStore) SetTyping(_ context.Context, conversationID, profileID uuid.UUID) error {
	s.set(typingKey(conversationID, profileID), TypingTTL)
	return nil
}

func (s *MemoryStore) IsTyping(_ context.Context, conversationID, profileID uuid.UUID) (bool, error) {
	return s.get(typingKey(conversationID, profileID)), nil
}

func (s *MemoryStore) set(key string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = s.now().Add(ttl)
}

func (s *MemoryStore) get(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline, ok := s.entries[key]
	if !ok {
		return false
	}
	if s.now().After(deadline) {
		delete(s.entries, key)
		return false
	}
	return true
}
