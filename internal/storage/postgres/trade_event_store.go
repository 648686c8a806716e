package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

// TradeEventStore implements storage.TradeEventStore using PostgreSQL.
type TradeEventStore struct {
	pool *Pool
}

// NewTradeEventStore creates a new TradeEventStore.
func NewTradeEventStore(pool *Pool) *TradeEventStore {
	return &TradeEventStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TradeEventStore = (*TradeEventStore)(nil)

// Insert adds a new trade. Returns ErrDuplicateKey if trade_id exists.
func (s *TradeEventStore) Insert(ctx context.Context, t *domain.TradeEvent) error {
	if t == nil || t.TradeID == "" || t.Action == domain.ActionHold {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO trades (trade_id, pair_address, action, amount_usd, price_usd, timestamp_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		t.TradeID,
		t.PairAddress,
		string(t.Action),
		t.AmountUSD,
		t.PriceUSD,
		t.Timestamp,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert trade event: %w", err)
	}
	return nil
}

// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
func (s *TradeEventStore) GetByID(ctx context.Context, tradeID string) (*domain.TradeEvent, error) {
	query := `
		SELECT trade_id, pair_address, action, amount_usd, price_usd, timestamp_ms
		FROM trades
		WHERE trade_id = $1
	`

	row := s.pool.QueryRow(ctx, query, tradeID)
	t, err := scanTradeEvent(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get trade event by id: %w", err)
	}
	return t, nil
}

// GetByAddress retrieves all trades for a pair, ordered by timestamp ASC.
func (s *TradeEventStore) GetByAddress(ctx context.Context, pairAddress string) ([]*domain.TradeEvent, error) {
	query := `
		SELECT trade_id, pair_address, action, amount_usd, price_usd, timestamp_ms
		FROM trades
		WHERE pair_address = $1
		ORDER BY timestamp_ms ASC, trade_id ASC
	`

	rows, err := s.pool.Query(ctx, query, pairAddress)
	if err != nil {
		return nil, fmt.Errorf("get trade events by address: %w", err)
	}
	defer rows.Close()

	var result []*domain.TradeEvent
	for rows.Next() {
		t, err := scanTradeEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trade event: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade events: %w", err)
	}

	return result, nil
}

// scanTradeEvent scans a single row into TradeEvent.
func scanTradeEvent(row pgx.Row) (*domain.TradeEvent, error) {
	var t domain.TradeEvent
	var action string

	err := row.Scan(
		&t.TradeID,
		&t.PairAddress,
		&action,
		&t.AmountUSD,
		&t.PriceUSD,
		&t.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	t.Action = domain.TradeAction(action)
	return &t, nil
}
