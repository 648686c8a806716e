package domain

// AnalysisResult is the outcome of classifying one pair in one poll cycle.
// Created once per classified pair; the category never changes afterwards.
type AnalysisResult struct {
	PairAddress  string
	ChainID      string
	Symbol       string
	LiquidityUSD float64
	Volume24h    float64
	PriceUSD     float64
	CreatedAt    int64    // pair creation time, Unix milliseconds
	AnalyzedAt   int64    // classification time, Unix milliseconds
	Category     Category // exactly one of the seven categories
}

// TokenSnapshot is the latest-wins persisted view of a pair.
// Corresponds to the tokens table (keyed by pair_address).
type TokenSnapshot struct {
	PairAddress  string
	ChainID      string
	Symbol       string
	LiquidityUSD float64
	Volume24h    float64
	PriceUSD     float64
	CreatedAt    int64 // pair creation time, Unix milliseconds
	LastUpdated  int64 // last upsert time, Unix milliseconds
}

// AnalysisEvent is one append-only analysis row. Written only for
// non-normal classifications.
type AnalysisEvent struct {
	PairAddress string
	Category    Category
	Timestamp   int64  // Unix milliseconds
	Details     string // JSON payload: liquidity and volume at detection
}

// Snapshot builds the token snapshot row from an analysis result.
func (r *AnalysisResult) Snapshot() *TokenSnapshot {
	return &TokenSnapshot{
		PairAddress:  r.PairAddress,
		ChainID:      r.ChainID,
		Symbol:       r.Symbol,
		LiquidityUSD: r.LiquidityUSD,
		Volume24h:    r.Volume24h,
		PriceUSD:     r.PriceUSD,
		CreatedAt:    r.CreatedAt,
		LastUpdated:  r.AnalyzedAt,
	}
}
