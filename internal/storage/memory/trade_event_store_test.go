package memory

import (
	"context"
	"errors"
	"testing"

	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

func TestTradeEventStore_InsertAndGet(t *testing.T) {
	store := NewTradeEventStore()
	ctx := context.Background()

	trade := &domain.TradeEvent{
		TradeID:     "t1",
		PairAddress: "pair1",
		Action:      domain.ActionBuy,
		AmountUSD:   100,
		PriceUSD:    0.5,
		Timestamp:   1704067200000,
	}

	if err := store.Insert(ctx, trade); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Action != domain.ActionBuy {
		t.Errorf("Action mismatch: got %s, want buy", got.Action)
	}
}

func TestTradeEventStore_DuplicateKey(t *testing.T) {
	store := NewTradeEventStore()
	ctx := context.Background()

	trade := &domain.TradeEvent{TradeID: "t1", PairAddress: "pair1", Action: domain.ActionSell, Timestamp: 1000}

	if err := store.Insert(ctx, trade); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	err := store.Insert(ctx, trade)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestTradeEventStore_RejectsHold(t *testing.T) {
	store := NewTradeEventStore()

	err := store.Insert(context.Background(), &domain.TradeEvent{
		TradeID:     "t1",
		PairAddress: "pair1",
		Action:      domain.ActionHold,
	})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for hold action, got %v", err)
	}
}

func TestTradeEventStore_GetByAddress(t *testing.T) {
	store := NewTradeEventStore()
	ctx := context.Background()

	trades := []*domain.TradeEvent{
		{TradeID: "t1", PairAddress: "pair1", Action: domain.ActionBuy, Timestamp: 2000},
		{TradeID: "t2", PairAddress: "pair1", Action: domain.ActionSell, Timestamp: 1000},
		{TradeID: "t3", PairAddress: "pair2", Action: domain.ActionBuy, Timestamp: 1500},
	}
	for _, tr := range trades {
		if err := store.Insert(ctx, tr); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	result, err := store.GetByAddress(ctx, "pair1")
	if err != nil {
		t.Fatalf("GetByAddress failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(result))
	}
	if result[0].TradeID != "t2" || result[1].TradeID != "t1" {
		t.Errorf("Wrong order: got %s, %s", result[0].TradeID, result[1].TradeID)
	}
}

func TestTradeEventStore_NotFound(t *testing.T) {
	store := NewTradeEventStore()

	_, err := store.GetByID(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
