package domain

import "time"

// Holder is one entry of a pair's holder distribution.
type Holder struct {
	Address string  // holder wallet address
	Amount  float64 // token amount held
}

// PairRecord is one raw market-data record for a tradable pair,
// as returned by the market-data feed. Immutable per poll cycle.
// Missing numeric fields default to zero, missing addresses to "".
type PairRecord struct {
	PairAddress  string   // pool/contract address (primary identifier)
	ChainID      string   // chain identifier, e.g. "solana"
	Symbol       string   // base token symbol
	LiquidityUSD float64  // USD value locked in the pool
	Volume24h    float64  // 24h volume in USD
	PriceUSD     float64  // current price in USD
	TxCount24h   int      // 24h transaction count (buys+sells), 0 when the feed omits it
	CreatedAt    int64    // pair creation time, Unix milliseconds
	Holders      []Holder // holder distribution (optional)
	DevAddress   string   // maker/developer address (optional)
}

// AgeHours returns the pair age in hours relative to now.
func (p *PairRecord) AgeHours(now time.Time) float64 {
	created := time.UnixMilli(p.CreatedAt)
	return now.Sub(created).Hours()
}
