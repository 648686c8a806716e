package domain

// TradeAction is the decision produced by the trading state machine.
type TradeAction string

const (
	ActionBuy  TradeAction = "buy"
	ActionSell TradeAction = "sell"
	ActionHold TradeAction = "hold"
)

// String returns the string representation of TradeAction.
func (a TradeAction) String() string {
	return string(a)
}

// TradeEvent records one simulated buy or sell. Write-once, immutable
// after creation. Hold decisions produce no event.
type TradeEvent struct {
	TradeID     string      // deterministic hash, see idhash
	PairAddress string
	Action      TradeAction // buy or sell, never hold
	AmountUSD   float64     // configured notional amount
	PriceUSD    float64     // price at decision time
	Timestamp   int64       // Unix milliseconds
}
