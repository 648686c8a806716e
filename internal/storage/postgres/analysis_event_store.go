package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

// AnalysisEventStore implements storage.AnalysisEventStore using PostgreSQL.
type AnalysisEventStore struct {
	pool *Pool
}

// NewAnalysisEventStore creates a new AnalysisEventStore.
func NewAnalysisEventStore(pool *Pool) *AnalysisEventStore {
	return &AnalysisEventStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AnalysisEventStore = (*AnalysisEventStore)(nil)

// Insert adds a new analysis event.
func (s *AnalysisEventStore) Insert(ctx context.Context, e *domain.AnalysisEvent) error {
	if e == nil || e.PairAddress == "" || !e.Category.IsValid() {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO analysis (pair_address, category, timestamp_ms, details)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.pool.Exec(ctx, query,
		e.PairAddress,
		string(e.Category),
		e.Timestamp,
		e.Details,
	)
	if err != nil {
		return fmt.Errorf("insert analysis event: %w", err)
	}
	return nil
}

// GetByAddress retrieves all events for a pair, ordered by timestamp ASC.
func (s *AnalysisEventStore) GetByAddress(ctx context.Context, pairAddress string) ([]*domain.AnalysisEvent, error) {
	query := `
		SELECT pair_address, category, timestamp_ms, details
		FROM analysis
		WHERE pair_address = $1
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.pool.Query(ctx, query, pairAddress)
	if err != nil {
		return nil, fmt.Errorf("get analysis events by address: %w", err)
	}
	defer rows.Close()

	return collectAnalysisEvents(rows)
}

// GetByCategory retrieves all events with a given category, ordered by timestamp ASC.
func (s *AnalysisEventStore) GetByCategory(ctx context.Context, category domain.Category) ([]*domain.AnalysisEvent, error) {
	query := `
		SELECT pair_address, category, timestamp_ms, details
		FROM analysis
		WHERE category = $1
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.pool.Query(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("get analysis events by category: %w", err)
	}
	defer rows.Close()

	return collectAnalysisEvents(rows)
}

// collectAnalysisEvents scans all rows into AnalysisEvents.
func collectAnalysisEvents(rows pgx.Rows) ([]*domain.AnalysisEvent, error) {
	var result []*domain.AnalysisEvent
	for rows.Next() {
		var e domain.AnalysisEvent
		var category string
		if err := rows.Scan(&e.PairAddress, &category, &e.Timestamp, &e.Details); err != nil {
			return nil, fmt.Errorf("scan analysis event: %w", err)
		}
		e.Category = domain.Category(category)
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis events: %w", err)
	}

	return result, nil
}
