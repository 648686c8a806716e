package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

// TokenSnapshotStore implements storage.TokenSnapshotStore using PostgreSQL.
type TokenSnapshotStore struct {
	pool *Pool
}

// NewTokenSnapshotStore creates a new TokenSnapshotStore.
func NewTokenSnapshotStore(pool *Pool) *TokenSnapshotStore {
	return &TokenSnapshotStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenSnapshotStore = (*TokenSnapshotStore)(nil)

// Upsert inserts or replaces the snapshot for a pair (latest wins).
func (s *TokenSnapshotStore) Upsert(ctx context.Context, snap *domain.TokenSnapshot) error {
	if snap == nil || snap.PairAddress == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO tokens (
			pair_address, chain_id, symbol, liquidity_usd, volume_24h,
			price_usd, created_at, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (pair_address) DO UPDATE SET
			chain_id = EXCLUDED.chain_id,
			symbol = EXCLUDED.symbol,
			liquidity_usd = EXCLUDED.liquidity_usd,
			volume_24h = EXCLUDED.volume_24h,
			price_usd = EXCLUDED.price_usd,
			created_at = EXCLUDED.created_at,
			last_updated = EXCLUDED.last_updated
	`

	_, err := s.pool.Exec(ctx, query,
		snap.PairAddress,
		snap.ChainID,
		snap.Symbol,
		snap.LiquidityUSD,
		snap.Volume24h,
		snap.PriceUSD,
		snap.CreatedAt,
		snap.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert token snapshot: %w", err)
	}
	return nil
}

// GetByAddress retrieves a snapshot. Returns ErrNotFound if not exists.
func (s *TokenSnapshotStore) GetByAddress(ctx context.Context, pairAddress string) (*domain.TokenSnapshot, error) {
	query := `
		SELECT pair_address, chain_id, symbol, liquidity_usd, volume_24h,
		       price_usd, created_at, last_updated
		FROM tokens
		WHERE pair_address = $1
	`

	row := s.pool.QueryRow(ctx, query, pairAddress)
	snap, err := scanTokenSnapshot(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get token snapshot by address: %w", err)
	}
	return snap, nil
}

// GetByChain retrieves all snapshots for a chain, ordered by last_updated ASC.
func (s *TokenSnapshotStore) GetByChain(ctx context.Context, chainID string) ([]*domain.TokenSnapshot, error) {
	query := `
		SELECT pair_address, chain_id, symbol, liquidity_usd, volume_24h,
		       price_usd, created_at, last_updated
		FROM tokens
		WHERE chain_id = $1
		ORDER BY last_updated ASC
	`

	rows, err := s.pool.Query(ctx, query, chainID)
	if err != nil {
		return nil, fmt.Errorf("get token snapshots by chain: %w", err)
	}
	defer rows.Close()

	var result []*domain.TokenSnapshot
	for rows.Next() {
		snap, err := scanTokenSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan token snapshot: %w", err)
		}
		result = append(result, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token snapshots: %w", err)
	}

	return result, nil
}

// scanTokenSnapshot scans a single row into TokenSnapshot.
func scanTokenSnapshot(row pgx.Row) (*domain.TokenSnapshot, error) {
	var snap domain.TokenSnapshot

	err := row.Scan(
		&snap.PairAddress,
		&snap.ChainID,
		&snap.Symbol,
		&snap.LiquidityUSD,
		&snap.Volume24h,
		&snap.PriceUSD,
		&snap.CreatedAt,
		&snap.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	return &snap, nil
}
