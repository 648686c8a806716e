package memory

import (
	"context"
	"sort"
	"sync"

	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

// TradeEventStore is an in-memory implementation of storage.TradeEventStore.
type TradeEventStore struct {
	mu   sync.RWMutex
	data map[string]*domain.TradeEvent // keyed by trade_id
}

// NewTradeEventStore creates a new in-memory trade event store.
func NewTradeEventStore() *TradeEventStore {
	return &TradeEventStore{
		data: make(map[string]*domain.TradeEvent),
	}
}

// Insert adds a new trade. Returns ErrDuplicateKey if trade_id exists.
func (s *TradeEventStore) Insert(_ context.Context, t *domain.TradeEvent) error {
	if t == nil || t.TradeID == "" || t.Action == domain.ActionHold {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.TradeID]; exists {
		return storage.ErrDuplicateKey
	}

	tradeCopy := *t
	s.data[t.TradeID] = &tradeCopy
	return nil
}

// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
func (s *TradeEventStore) GetByID(_ context.Context, tradeID string) (*domain.TradeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[tradeID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	tradeCopy := *t
	return &tradeCopy, nil
}

// GetByAddress retrieves all trades for a pair, ordered by timestamp ASC.
func (s *TradeEventStore) GetByAddress(_ context.Context, pairAddress string) ([]*domain.TradeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TradeEvent
	for _, t := range s.data {
		if t.PairAddress == pairAddress {
			tradeCopy := *t
			result = append(result, &tradeCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp != result[j].Timestamp {
			return result[i].Timestamp < result[j].Timestamp
		}
		return result[i].TradeID < result[j].TradeID
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.TradeEventStore = (*TradeEventStore)(nil)
