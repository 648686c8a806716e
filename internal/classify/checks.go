package classify

import (
	"context"
	"time"

	"dexwatch/internal/config"
	"dexwatch/internal/domain"
)

// Check is one step of the classification chain. Run returns the
// terminal category and true when the check fires; the chain stops at
// the first match. PatternDetector always fires, so every admitted
// pair ends with exactly one category.
type Check interface {
	Name() string
	Run(ctx context.Context, pair *domain.PairRecord, now time.Time) (domain.Category, bool)
}

// SafetyReporter fetches the safety report for a pair address.
type SafetyReporter interface {
	Report(ctx context.Context, address string) (domain.SafetyReport, error)
}

// SafetyCheck flags pairs whose safety report is not a clean "GOOD".
// A fetch failure is treated the same as a bad report: unsafe.
type SafetyCheck struct {
	reporter SafetyReporter
}

// NewSafetyCheck creates the safety check.
func NewSafetyCheck(reporter SafetyReporter) *SafetyCheck {
	return &SafetyCheck{reporter: reporter}
}

func (c *SafetyCheck) Name() string { return "safety" }

func (c *SafetyCheck) Run(ctx context.Context, pair *domain.PairRecord, now time.Time) (domain.Category, bool) {
	report, err := c.reporter.Report(ctx, pair.PairAddress)
	if err != nil {
		// Fails closed: no report means unsafe.
		return domain.CategoryUnsafe, true
	}
	if !report.Safe() {
		return domain.CategoryUnsafe, true
	}
	return "", false
}

// SupplyConcentrationCheck flags pairs where one holder owns more than
// half the summed holder amounts. Without holder data it cannot prove
// concentration and lets the pair continue.
type SupplyConcentrationCheck struct{}

// NewSupplyConcentrationCheck creates the supply concentration check.
func NewSupplyConcentrationCheck() *SupplyConcentrationCheck {
	return &SupplyConcentrationCheck{}
}

func (c *SupplyConcentrationCheck) Name() string { return "supply_concentration" }

func (c *SupplyConcentrationCheck) Run(ctx context.Context, pair *domain.PairRecord, now time.Time) (domain.Category, bool) {
	if len(pair.Holders) == 0 {
		return "", false
	}

	var total float64
	for _, h := range pair.Holders {
		total += h.Amount
	}
	if total <= 0 {
		return "", false
	}

	for _, h := range pair.Holders {
		if h.Amount/total > 0.5 {
			return domain.CategoryBundled, true
		}
	}
	return "", false
}

// VolumeAuthenticityCheck flags volume that liquidity and transaction
// count cannot plausibly support.
type VolumeAuthenticityCheck struct {
	cfg config.FakeVolumePattern
}

// NewVolumeAuthenticityCheck creates the volume authenticity check.
func NewVolumeAuthenticityCheck(cfg config.FakeVolumePattern) *VolumeAuthenticityCheck {
	return &VolumeAuthenticityCheck{cfg: cfg}
}

func (c *VolumeAuthenticityCheck) Name() string { return "volume_authenticity" }

func (c *VolumeAuthenticityCheck) Run(ctx context.Context, pair *domain.PairRecord, now time.Time) (domain.Category, bool) {
	// Zero liquidity makes the ratio unbounded, which always exceeds
	// the threshold when any volume is reported.
	exceeds := pair.LiquidityUSD == 0 && pair.Volume24h > 0
	if pair.LiquidityUSD > 0 {
		exceeds = pair.Volume24h/pair.LiquidityUSD > c.cfg.VolumeLiquidityRatio
	}

	if exceeds && pair.TxCount24h < c.cfg.MinTransactions {
		return domain.CategoryFakeVolume, true
	}
	return "", false
}

// PatternDetector assigns the final category for pairs that survived
// the hazard checks. Always fires; precedence is rugged, pumped,
// new_pair, then normal.
type PatternDetector struct {
	filters  config.FilterConfig
	patterns config.PatternConfig
}

// NewPatternDetector creates the pattern detector.
func NewPatternDetector(filters config.FilterConfig, patterns config.PatternConfig) *PatternDetector {
	return &PatternDetector{filters: filters, patterns: patterns}
}

func (c *PatternDetector) Name() string { return "pattern" }

func (c *PatternDetector) Run(ctx context.Context, pair *domain.PairRecord, now time.Time) (domain.Category, bool) {
	liquidity := pair.LiquidityUSD
	volume := pair.Volume24h
	ageHours := pair.AgeHours(now)

	if liquidity < c.filters.MinLiquidityUSD*c.patterns.Rugged.LiquidityThreshold &&
		volume > liquidity*c.patterns.Rugged.VolumeMultiplier {
		return domain.CategoryRugged, true
	}
	if volume > liquidity*c.patterns.Pumped.VolumeMultiplier &&
		ageHours < c.patterns.Pumped.MaxAgeHours {
		return domain.CategoryPumped, true
	}
	if ageHours < c.patterns.NewPair.MaxAgeHours {
		return domain.CategoryNewPair, true
	}
	return domain.CategoryNormal, true
}
