package memory

import (
	"context"
	"sort"
	"sync"

	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

// BlacklistStore is an in-memory implementation of storage.BlacklistStore.
type BlacklistStore struct {
	mu   sync.RWMutex
	data map[blacklistKey]*domain.BlacklistEntry
}

type blacklistKey struct {
	kind  domain.BlacklistKind
	value string
}

// NewBlacklistStore creates a new in-memory blacklist store.
func NewBlacklistStore() *BlacklistStore {
	return &BlacklistStore{
		data: make(map[blacklistKey]*domain.BlacklistEntry),
	}
}

// Add records a blacklist entry. Adding an existing (kind, value) pair
// is a no-op: the original added_at is kept.
func (s *BlacklistStore) Add(_ context.Context, e *domain.BlacklistEntry) error {
	if e == nil || e.Value == "" || !e.Kind.IsValid() {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := blacklistKey{kind: e.Kind, value: e.Value}
	if _, exists := s.data[key]; exists {
		return nil
	}

	entryCopy := *e
	s.data[key] = &entryCopy
	return nil
}

// GetByKind retrieves all entries of one kind, ordered by added_at ASC.
func (s *BlacklistStore) GetByKind(_ context.Context, kind domain.BlacklistKind) ([]*domain.BlacklistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.BlacklistEntry
	for _, e := range s.data {
		if e.Kind == kind {
			entryCopy := *e
			result = append(result, &entryCopy)
		}
	}

	sortEntries(result)
	return result, nil
}

// GetAll retrieves every entry, ordered by added_at ASC.
func (s *BlacklistStore) GetAll(_ context.Context) ([]*domain.BlacklistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.BlacklistEntry, 0, len(s.data))
	for _, e := range s.data {
		entryCopy := *e
		result = append(result, &entryCopy)
	}

	sortEntries(result)
	return result, nil
}

func sortEntries(entries []*domain.BlacklistEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AddedAt != entries[j].AddedAt {
			return entries[i].AddedAt < entries[j].AddedAt
		}
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind < entries[j].Kind
		}
		return entries[i].Value < entries[j].Value
	})
}

// Verify interface compliance at compile time.
var _ storage.BlacklistStore = (*BlacklistStore)(nil)
