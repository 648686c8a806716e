package clickhouse

import (
	"context"
	"fmt"

	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

// PriceSnapshotStore implements storage.PriceSnapshotStore using ClickHouse.
type PriceSnapshotStore struct {
	conn *Conn
}

// NewPriceSnapshotStore creates a new PriceSnapshotStore.
func NewPriceSnapshotStore(conn *Conn) *PriceSnapshotStore {
	return &PriceSnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.PriceSnapshotStore = (*PriceSnapshotStore)(nil)

// InsertBulk adds multiple points. Fails entire batch on duplicate
// (pair_address, timestamp_ms). MergeTree does not enforce uniqueness,
// so duplicates are detected with explicit checks before insert.
func (s *PriceSnapshotStore) InsertBulk(ctx context.Context, points []*domain.PriceSnapshot) error {
	if len(points) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		pairAddress string
		timestampMs int64
	}
	seen := make(map[key]struct{}, len(points))
	for _, p := range points {
		if p == nil || p.PairAddress == "" {
			return storage.ErrInvalidInput
		}
		k := key{p.PairAddress, p.TimestampMs}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing rows
	for _, p := range points {
		exists, err := s.exists(ctx, p.PairAddress, p.TimestampMs)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO price_snapshots (
			pair_address, timestamp_ms, price_usd, liquidity_usd, volume_24h
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		err = batch.Append(
			p.PairAddress, uint64(p.TimestampMs),
			p.PriceUSD, p.LiquidityUSD, p.Volume24h,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByAddress retrieves all points for a pair, ordered by timestamp ASC.
func (s *PriceSnapshotStore) GetByAddress(ctx context.Context, pairAddress string) ([]*domain.PriceSnapshot, error) {
	query := `
		SELECT pair_address, timestamp_ms, price_usd, liquidity_usd, volume_24h
		FROM price_snapshots
		WHERE pair_address = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, pairAddress)
	if err != nil {
		return nil, fmt.Errorf("query price snapshots: %w", err)
	}
	defer rows.Close()

	return collectSnapshots(rows)
}

// GetByTimeRange retrieves points for a pair within [start, end] (inclusive).
func (s *PriceSnapshotStore) GetByTimeRange(ctx context.Context, pairAddress string, start, end int64) ([]*domain.PriceSnapshot, error) {
	query := `
		SELECT pair_address, timestamp_ms, price_usd, liquidity_usd, volume_24h
		FROM price_snapshots
		WHERE pair_address = ? AND timestamp_ms >= ? AND timestamp_ms <= ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, pairAddress, uint64(start), uint64(end))
	if err != nil {
		return nil, fmt.Errorf("query price snapshots by range: %w", err)
	}
	defer rows.Close()

	return collectSnapshots(rows)
}

// exists checks whether a point with this key is already stored.
func (s *PriceSnapshotStore) exists(ctx context.Context, pairAddress string, timestampMs int64) (bool, error) {
	query := `
		SELECT count() FROM price_snapshots
		WHERE pair_address = ? AND timestamp_ms = ?
	`

	var count uint64
	row := s.conn.QueryRow(ctx, query, pairAddress, uint64(timestampMs))
	if err := row.Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

// chRows abstracts the row iteration surface of a ClickHouse result set.
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// collectSnapshots scans multiple rows into a slice.
func collectSnapshots(rows chRows) ([]*domain.PriceSnapshot, error) {
	var result []*domain.PriceSnapshot
	for rows.Next() {
		var p domain.PriceSnapshot
		var timestampMs uint64
		if err := rows.Scan(&p.PairAddress, &timestampMs, &p.PriceUSD, &p.LiquidityUSD, &p.Volume24h); err != nil {
			return nil, fmt.Errorf("scan price snapshot: %w", err)
		}
		p.TimestampMs = int64(timestampMs)
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price snapshots: %w", err)
	}

	return result, nil
}
