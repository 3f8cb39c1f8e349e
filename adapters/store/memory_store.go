package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reconnectedcc/kromer/core"
	"github.com/reconnectedcc/kromer/ports"
)

// MemoryStore is an in-memory implementation of the TokenStore interface
type MemoryStore struct {
	pending map[uuid.UUID]pendingToken
	mu      sync.Mutex
}

type pendingToken struct {
	data      core.TokenData
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory token store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pending: make(map[uuid.UUID]pendingToken),
	}
}

// Put stores a pending token and schedules its expiry
func (s *MemoryStore) Put(ctx context.Context, id uuid.UUID, data core.TokenData, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)

	s.mu.Lock()
	s.pending[id] = pendingToken{data: data, expiresAt: expiresAt}
	s.mu.Unlock()

	// Cleanup goroutine so never-redeemed tokens don't accumulate
	go func() {
		time.Sleep(ttl)

		s.mu.Lock()
		defer s.mu.Unlock()

		// Only delete if the entry wasn't replaced in the meantime
		if stored, exists := s.pending[id]; exists && !stored.expiresAt.After(expiresAt) {
			delete(s.pending, id)
		}
	}()

	return nil
}

// Take atomically removes and returns a pending token
func (s *MemoryStore) Take(ctx context.Context, id uuid.UUID) (core.TokenData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.pending[id]
	if !exists {
		return core.TokenData{}, core.ErrTokenNotFound
	}
	delete(s.pending, id)

	// A token the cleanup goroutine hasn't collected yet is still expired
	if time.Now().After(stored.expiresAt) {
		return core.TokenData{}, core.ErrTokenNotFound
	}

	return stored.data, nil
}

var _ ports.TokenStore = (*MemoryStore)(nil)
