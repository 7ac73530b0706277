package cache

import (
	"context"
	"sync"
	"time"

	"github.com/akau-shop/backend/internal/domain/shared"
)

// sessionEntry represents a stored session ID with expiration
type sessionEntry struct {
	expiresAt time.Time
}

// InMemorySessionStore implements SessionStore using an in-memory map.
// Suitable for single-instance deployments and testing; sessions do not
// survive a restart.
type InMemorySessionStore struct {
	mu        sync.RWMutex
	entries   map[string]sessionEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySessionStore creates a new in-memory session store.
// It starts a background goroutine to clean up expired entries.
func NewInMemorySessionStore() *InMemorySessionStore {
	store := &InMemorySessionStore{
		entries:  make(map[string]sessionEntry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Put records a session ID with the given TTL
func (s *InMemorySessionStore) Put(ctx context.Context, id string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = sessionEntry{expiresAt: time.Now().Add(ttl)}
	return nil
}

// Exists reports whether a session ID is present and unexpired
func (s *InMemorySessionStore) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[id]
	if !exists {
		return false, nil
	}
	if time.Now().After(e.expiresAt) {
		return false, nil
	}
	return true, nil
}

// Revoke removes a session ID
func (s *InMemorySessionStore) Revoke(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemorySessionStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (s *InMemorySessionStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemorySessionStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemorySessionStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ shared.SessionStore = (*InMemorySessionStore)(nil)
