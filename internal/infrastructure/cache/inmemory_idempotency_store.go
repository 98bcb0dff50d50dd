package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bayup/backend/internal/domain/shared"
)

// sweepEvery is how many inserts pass between purges of expired keys
const sweepEvery = 256

// InMemoryIdempotencyStore keeps processed webhook keys in process memory.
// Keys expire lazily; expired ones are purged every sweepEvery inserts.
// Only correct for a single API instance.
type InMemoryIdempotencyStore struct {
	mu       sync.Mutex
	deadline map[string]time.Time
	inserts  int
	now      func() time.Time
}

func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{
		deadline: make(map[string]time.Time),
		now:      time.Now,
	}
}

// MarkProcessed claims key for ttl and reports whether this caller won it
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if until, ok := s.deadline[key]; ok && now.Before(until) {
		return false, nil
	}
	s.deadline[key] = now.Add(ttl)

	s.inserts++
	if s.inserts%sweepEvery == 0 {
		s.sweep(now)
	}
	return true, nil
}

func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.deadline, key)
	s.mu.Unlock()
	return nil
}

func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.deadline[key]
	return ok && s.now().Before(until), nil
}

// Close drops every key
func (s *InMemoryIdempotencyStore) Close() error {
	s.mu.Lock()
	s.deadline = make(map[string]time.Time)
	s.mu.Unlock()
	return nil
}

// Len counts stored keys, expired ones included until the next sweep
func (s *InMemoryIdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deadline)
}

// sweep must be called with mu held
func (s *InMemoryIdempotencyStore) sweep(now time.Time) {
	for key, until := range s.deadline {
		if !now.Before(until) {
			delete(s.deadline, key)
		}
	}
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
