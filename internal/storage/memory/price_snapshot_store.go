package memory

import (
	"context"
	"sort"
	"sync"

	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

// PriceSnapshotStore is an in-memory implementation of storage.PriceSnapshotStore.
type PriceSnapshotStore struct {
	mu   sync.RWMutex
	data map[snapshotKey]*domain.PriceSnapshot
}

type snapshotKey struct {
	pairAddress string
	timestampMs int64
}

// NewPriceSnapshotStore creates a new in-memory price snapshot store.
func NewPriceSnapshotStore() *PriceSnapshotStore {
	return &PriceSnapshotStore{
		data: make(map[snapshotKey]*domain.PriceSnapshot),
	}
}

// InsertBulk adds multiple points. Fails entire batch on duplicate
// (pair_address, timestamp_ms).
func (s *PriceSnapshotStore) InsertBulk(_ context.Context, points []*domain.PriceSnapshot) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[snapshotKey]struct{}, len(points))

	// First pass: validate and check for duplicates
	for _, p := range points {
		if p == nil || p.PairAddress == "" {
			return storage.ErrInvalidInput
		}

		key := snapshotKey{pairAddress: p.PairAddress, timestampMs: p.TimestampMs}
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	// Second pass: insert all
	for _, p := range points {
		pointCopy := *p
		s.data[snapshotKey{pairAddress: p.PairAddress, timestampMs: p.TimestampMs}] = &pointCopy
	}

	return nil
}

// GetByAddress retrieves all points for a pair, ordered by timestamp ASC.
func (s *PriceSnapshotStore) GetByAddress(_ context.Context, pairAddress string) ([]*domain.PriceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.PriceSnapshot
	for _, p := range s.data {
		if p.PairAddress == pairAddress {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}

	sortPoints(result)
	return result, nil
}

// GetByTimeRange retrieves points for a pair within [start, end] (inclusive).
func (s *PriceSnapshotStore) GetByTimeRange(_ context.Context, pairAddress string, start, end int64) ([]*domain.PriceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.PriceSnapshot
	for _, p := range s.data {
		if p.PairAddress == pairAddress && p.TimestampMs >= start && p.TimestampMs <= end {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}

	sortPoints(result)
	return result, nil
}

func sortPoints(points []*domain.PriceSnapshot) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].TimestampMs < points[j].TimestampMs
	})
}

// Verify interface compliance at compile time.
var _ storage.PriceSnapshotStore = (*PriceSnapshotStore)(nil)
