package storage

import (
	"context"

	"dexwatch/internal/domain"
)

// TokenSnapshotStore provides access to tokens storage.
// Snapshots are keyed by pair_address with latest-wins semantics.
type TokenSnapshotStore interface {
	// Upsert inserts or replaces the snapshot for a pair.
	Upsert(ctx context.Context, s *domain.TokenSnapshot) error

	// GetByAddress retrieves a snapshot. Returns ErrNotFound if not exists.
	GetByAddress(ctx context.Context, pairAddress string) (*domain.TokenSnapshot, error)

	// GetByChain retrieves all snapshots for a chain, ordered by last_updated ASC.
	GetByChain(ctx context.Context, chainID string) ([]*domain.TokenSnapshot, error)
}

// AnalysisEventStore provides access to analysis storage.
// Events are append-only; one row per non-normal classification.
type AnalysisEventStore interface {
	// Insert adds a new analysis event.
	Insert(ctx context.Context, e *domain.AnalysisEvent) error

	// GetByAddress retrieves all events for a pair, ordered by timestamp ASC.
	GetByAddress(ctx context.Context, pairAddress string) ([]*domain.AnalysisEvent, error)

	// GetByCategory retrieves all events with a given category, ordered by timestamp ASC.
	GetByCategory(ctx context.Context, category domain.Category) ([]*domain.AnalysisEvent, error)
}

// TradeEventStore provides access to trades storage.
// Events are append-only; one row per buy/sell decision.
type TradeEventStore interface {
	// Insert adds a new trade. Returns ErrDuplicateKey if trade_id exists.
	Insert(ctx context.Context, t *domain.TradeEvent) error

	// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, tradeID string) (*domain.TradeEvent, error)

	// GetByAddress retrieves all trades for a pair, ordered by timestamp ASC.
	GetByAddress(ctx context.Context, pairAddress string) ([]*domain.TradeEvent, error)
}

// BlacklistStore provides access to blacklist storage. Entries are
// monotonic: Add is idempotent and entries are never removed, so a
// restart reloads every symbol and developer accumulated so far.
type BlacklistStore interface {
	// Add records a blacklist entry. Adding an existing (kind, value)
	// pair is a no-op, not an error.
	Add(ctx context.Context, e *domain.BlacklistEntry) error

	// GetByKind retrieves all entries of one kind, ordered by added_at ASC.
	GetByKind(ctx context.Context, kind domain.BlacklistKind) ([]*domain.BlacklistEntry, error)

	// GetAll retrieves every entry, ordered by added_at ASC.
	GetAll(ctx context.Context) ([]*domain.BlacklistEntry, error)
}

// PriceSnapshotStore provides access to price_snapshots storage.
type PriceSnapshotStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate
	// (pair_address, timestamp_ms).
	InsertBulk(ctx context.Context, points []*domain.PriceSnapshot) error

	// GetByAddress retrieves all points for a pair, ordered by timestamp ASC.
	GetByAddress(ctx context.Context, pairAddress string) ([]*domain.PriceSnapshot, error)

	// GetByTimeRange retrieves points for a pair within [start, end] (inclusive).
	GetByTimeRange(ctx context.Context, pairAddress string, start, end int64) ([]*domain.PriceSnapshot, error)
}
