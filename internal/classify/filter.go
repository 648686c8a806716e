package classify

import (
	"time"

	"dexwatch/internal/config"
	"dexwatch/internal/domain"
)

// Filter is the admission test run before classification. A rejected
// pair is never classified, stored, or traded in that cycle.
type Filter struct {
	cfg        config.FilterConfig
	blacklists *Blacklists
}

// NewFilter creates an admission filter.
func NewFilter(cfg config.FilterConfig, blacklists *Blacklists) *Filter {
	return &Filter{cfg: cfg, blacklists: blacklists}
}

// Admit reports whether the pair passes all admission conditions:
// not blacklisted, liquidity and volume at or above the floors, age at
// or below the ceiling. Missing numeric fields are zero and fail their
// comparisons on their own.
func (f *Filter) Admit(pair *domain.PairRecord, now time.Time) bool {
	if f.blacklists.ContainsSymbol(pair.Symbol) {
		return false
	}
	if pair.DevAddress != "" && f.blacklists.Contains(domain.BlacklistDevelopers, pair.DevAddress) {
		return false
	}
	if pair.LiquidityUSD < f.cfg.MinLiquidityUSD {
		return false
	}
	if pair.Volume24h < f.cfg.MinVolume24h {
		return false
	}
	if pair.AgeHours(now) > f.cfg.MaxAgeHours {
		return false
	}
	return true
}
