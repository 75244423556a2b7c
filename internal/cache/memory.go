package cache

import (
	"context"
	"sync"

	"github.com/wellgym/wellgym-backend/internal/domain"
)

// MemoryStore is the in-process Store used in tests and when no Redis is
// configured. Snapshots are copied on the way in and out so callers never
// share mutable state with the cache.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]domain.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]domain.Profile)}
}

func (s *MemoryStore) Read(_ context.Context, userID string) (*domain.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.snapshots[userID]
	if !ok {
		return nil, false
	}
	cp := p
	return &cp, true
}

func (s *MemoryStore) Write(_ context.Context, userID string, p *domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[userID] = *p
}

func (s *MemoryStore) Patch(ctx context.Context, userID, column string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.snapshots[userID]
	if !ok {
		p = domain.Profile{ID: userID}
	}
	if err := p.ApplyField(column, value); err != nil {
		return
	}
	s.snapshots[userID] = p
}
