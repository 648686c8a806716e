package memory

import (
	"context"
	"sort"
	"sync"

	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

// TokenSnapshotStore is an in-memory implementation of storage.TokenSnapshotStore.
type TokenSnapshotStore struct {
	mu   sync.RWMutex
	data map[string]*domain.TokenSnapshot // keyed by pair_address
}

// NewTokenSnapshotStore creates a new in-memory token snapshot store.
func NewTokenSnapshotStore() *TokenSnapshotStore {
	return &TokenSnapshotStore{
		data: make(map[string]*domain.TokenSnapshot),
	}
}

// Upsert inserts or replaces the snapshot for a pair.
func (s *TokenSnapshotStore) Upsert(_ context.Context, snap *domain.TokenSnapshot) error {
	if snap == nil || snap.PairAddress == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy to prevent external mutation
	snapCopy := *snap
	s.data[snap.PairAddress] = &snapCopy
	return nil
}

// GetByAddress retrieves a snapshot. Returns ErrNotFound if not exists.
func (s *TokenSnapshotStore) GetByAddress(_ context.Context, pairAddress string) (*domain.TokenSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, exists := s.data[pairAddress]
	if !exists {
		return nil, storage.ErrNotFound
	}

	snapCopy := *snap
	return &snapCopy, nil
}

// GetByChain retrieves all snapshots for a chain, ordered by last_updated ASC.
func (s *TokenSnapshotStore) GetByChain(_ context.Context, chainID string) ([]*domain.TokenSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TokenSnapshot
	for _, snap := range s.data {
		if snap.ChainID == chainID {
			snapCopy := *snap
			result = append(result, &snapCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].LastUpdated < result[j].LastUpdated
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.TokenSnapshotStore = (*TokenSnapshotStore)(nil)
