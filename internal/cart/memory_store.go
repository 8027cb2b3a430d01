package cart

import (
	"context"
	"sync"
	"time"
)

const (
	// SessionTTL is how long an untouched cart survives before cleanup.
	SessionTTL = 24 * time.Hour

	// CleanupInterval is how often the background cleanup runs
	CleanupInterval = 10 * time.Minute
)

// MemoryStore implements Store with in-memory storage.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*Cart // sessionID -> cart

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

// NewMemoryStore creates a new in-memory cart store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		carts:       make(map[string]*Cart),
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// cleanupLoop periodically drops carts idle past their TTL.
func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireCarts()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) expireCarts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-SessionTTL)
	for id, cart := range s.carts {
		if cart.UpdatedAt.Before(cutoff) {
			delete(s.carts, id)
		}
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[sessionID]
	if !exists {
		return nil, ErrCartNotFound
	}

	// Copy so callers mutate their own snapshot, not the stored cart.
	return cart.clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.SessionID] = cart.clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

// Close stops the background cleanup and waits for it to finish.
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
