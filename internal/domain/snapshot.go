package domain

// PriceSnapshot is one observed price point for a pair.
// Corresponds to the price_snapshots table in ClickHouse; one point is
// written per classified pair per poll cycle.
type PriceSnapshot struct {
	PairAddress  string
	TimestampMs  int64 // Unix milliseconds
	PriceUSD     float64
	LiquidityUSD float64
	Volume24h    float64
}
