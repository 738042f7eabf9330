package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Austionian/gathering-surf/internal/domain/readthrough"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a process-local cache used when no valkey server is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   clockwork.Clock
}

// NewMemoryStore constructs an empty store. A nil clock uses wall time.
func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{entries: make(map[string]entry), clock: clock}
}

// Get returns the live value under key.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if s.expired(e) {
		s.mu.Lock()
		if cur, still := s.entries[key]; still && s.expired(cur) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores value under key; ttl <= 0 keeps it until overwritten.
func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = s.clock.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: exp}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.clock.Now().Before(e.expiresAt)
}

var _ readthrough.Store = (*MemoryStore)(nil)
