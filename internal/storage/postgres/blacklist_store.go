package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

// BlacklistStore implements storage.BlacklistStore using PostgreSQL.
type BlacklistStore struct {
	pool *Pool
}

// NewBlacklistStore creates a new BlacklistStore.
func NewBlacklistStore(pool *Pool) *BlacklistStore {
	return &BlacklistStore{pool: pool}
}

// Compile-time interface check.
var _ storage.BlacklistStore = (*BlacklistStore)(nil)

// Add records a blacklist entry. Adding an existing (kind, value) pair
// is a no-op: the original added_at is kept.
func (s *BlacklistStore) Add(ctx context.Context, e *domain.BlacklistEntry) error {
	if e == nil || e.Value == "" || !e.Kind.IsValid() {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO blacklists (kind, value, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, value) DO NOTHING
	`

	_, err := s.pool.Exec(ctx, query, string(e.Kind), e.Value, e.AddedAt)
	if err != nil {
		return fmt.Errorf("add blacklist entry: %w", err)
	}
	return nil
}

// GetByKind retrieves all entries of one kind, ordered by added_at ASC.
func (s *BlacklistStore) GetByKind(ctx context.Context, kind domain.BlacklistKind) ([]*domain.BlacklistEntry, error) {
	query := `
		SELECT kind, value, added_at
		FROM blacklists
		WHERE kind = $1
		ORDER BY added_at ASC, value ASC
	`

	rows, err := s.pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("get blacklist entries by kind: %w", err)
	}
	defer rows.Close()

	return collectBlacklistEntries(rows)
}

// GetAll retrieves every entry, ordered by added_at ASC.
func (s *BlacklistStore) GetAll(ctx context.Context) ([]*domain.BlacklistEntry, error) {
	query := `
		SELECT kind, value, added_at
		FROM blacklists
		ORDER BY added_at ASC, kind ASC, value ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all blacklist entries: %w", err)
	}
	defer rows.Close()

	return collectBlacklistEntries(rows)
}

// collectBlacklistEntries scans all rows into BlacklistEntries.
func collectBlacklistEntries(rows pgx.Rows) ([]*domain.BlacklistEntry, error) {
	var result []*domain.BlacklistEntry
	for rows.Next() {
		var e domain.BlacklistEntry
		var kind string
		if err := rows.Scan(&kind, &e.Value, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan blacklist entry: %w", err)
		}
		e.Kind = domain.BlacklistKind(kind)
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blacklist entries: %w", err)
	}

	return result, nil
}
