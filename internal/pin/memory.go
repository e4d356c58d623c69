package pin

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/study-service/internal/domain"
)

type memoryEntry struct {
	ticket  domain.PinTicket
	evictAt time.Time
}

// memoryStore is a single-process Store used when Redis is not
// configured, and by tests. The mutex gives the same single-winner
// semantics the Redis primitives provide.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore builds an in-process store.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (s *memoryStore) Reserve(_ context.Context, pin string, ticket domain.PinTicket, physicalTTL time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.sweep(now)

	if _, ok := s.entries[pin]; ok {
		return false, nil
	}
	s.entries[pin] = memoryEntry{ticket: ticket, evictAt: now.Add(physicalTTL)}
	return true, nil
}

// sweep purges entries past their physical TTL. Caller holds the lock.
func (s *memoryStore) sweep(now time.Time) {
	for pin, entry := range s.entries {
		if !now.Before(entry.evictAt) {
			delete(s.entries, pin)
		}
	}
}

func (s *memoryStore) Claim(_ context.Context, pin string) (domain.PinTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[pin]
	if !ok {
		return domain.PinTicket{}, ErrPinNotFound
	}
	delete(s.entries, pin)

	if !time.Now().Before(entry.evictAt) {
		// Physically expired but not yet purged.
		return domain.PinTicket{}, ErrPinNotFound
	}
	return entry.ticket, nil
}
