// Package trading implements the simulated trading state machine:
// per-pair bounded price history and a threshold decision on each
// sample.
package trading

import (
	"sync"

	"dexwatch/internal/config"
	"dexwatch/internal/domain"
)

// Decider maps price samples to buy/sell/hold decisions. Each pair
// address owns an independent bounded history; there is no transition
// back to the empty state.
type Decider struct {
	mu        sync.Mutex
	cfg       config.TradingConfig
	histories map[string]*history
}

// NewDecider creates a decider with empty history for every pair.
func NewDecider(cfg config.TradingConfig) *Decider {
	return &Decider{
		cfg:       cfg,
		histories: make(map[string]*history),
	}
}

// OnSample records a price observation and returns the action. The
// first sample for a pair is always hold. Afterwards the fractional
// change against the most recent retained price decides: buy at or
// above the buy threshold, sell at or below the negated sell
// threshold, hold otherwise. The sample is appended regardless of the
// action.
func (d *Decider) OnSample(pairAddress string, price float64) domain.TradeAction {
	d.mu.Lock()
	defer d.mu.Unlock()

	h, ok := d.histories[pairAddress]
	if !ok {
		h = newHistory(d.cfg.HistorySize)
		d.histories[pairAddress] = h
	}

	previous, has := h.last()
	h.push(price)
	if !has {
		return domain.ActionHold
	}

	var change float64
	if previous != 0 {
		change = (price - previous) / previous
	}

	switch {
	case change >= d.cfg.BuyThreshold:
		return domain.ActionBuy
	case change <= -d.cfg.SellThreshold:
		return domain.ActionSell
	default:
		return domain.ActionHold
	}
}

// HistoryLen returns the number of retained samples for a pair.
func (d *Decider) HistoryLen(pairAddress string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if h, ok := d.histories[pairAddress]; ok {
		return h.len()
	}
	return 0
}
