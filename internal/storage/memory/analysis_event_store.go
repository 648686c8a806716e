package memory

import (
	"context"
	"sort"
	"sync"

	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

// AnalysisEventStore is an in-memory implementation of storage.AnalysisEventStore.
type AnalysisEventStore struct {
	mu   sync.RWMutex
	data []*domain.AnalysisEvent
}

// NewAnalysisEventStore creates a new in-memory analysis event store.
func NewAnalysisEventStore() *AnalysisEventStore {
	return &AnalysisEventStore{}
}

// Insert adds a new analysis event.
func (s *AnalysisEventStore) Insert(_ context.Context, e *domain.AnalysisEvent) error {
	if e == nil || e.PairAddress == "" || !e.Category.IsValid() {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	eventCopy := *e
	s.data = append(s.data, &eventCopy)
	return nil
}

// GetByAddress retrieves all events for a pair, ordered by timestamp ASC.
func (s *AnalysisEventStore) GetByAddress(_ context.Context, pairAddress string) ([]*domain.AnalysisEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.AnalysisEvent
	for _, e := range s.data {
		if e.PairAddress == pairAddress {
			eventCopy := *e
			result = append(result, &eventCopy)
		}
	}

	sortByTimestamp(result)
	return result, nil
}

// GetByCategory retrieves all events with a given category, ordered by timestamp ASC.
func (s *AnalysisEventStore) GetByCategory(_ context.Context, category domain.Category) ([]*domain.AnalysisEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.AnalysisEvent
	for _, e := range s.data {
		if e.Category == category {
			eventCopy := *e
			result = append(result, &eventCopy)
		}
	}

	sortByTimestamp(result)
	return result, nil
}

func sortByTimestamp(events []*domain.AnalysisEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
}

// Verify interface compliance at compile time.
var _ storage.AnalysisEventStore = (*AnalysisEventStore)(nil)
