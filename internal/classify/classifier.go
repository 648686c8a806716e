// Package classify implements the admission filter and the ordered
// classification chain: safety, supply concentration, volume
// authenticity, then pattern detection. The first check that fires
// decides the category; later checks never override it.
package classify

import (
	"context"
	"log"
	"time"

	"dexwatch/internal/domain"
)

// Classifier runs the check chain over one admitted pair and applies
// the blacklist side effects for bundled and fake_volume verdicts.
type Classifier struct {
	checks     []Check
	blacklists *Blacklists
	logger     *log.Logger
}

// Options configures the Classifier.
type Options struct {
	// Logger for blacklist side effect failures. Defaults to log.Default().
	Logger *log.Logger
}

// NewClassifier creates a classifier running checks in the given order.
func NewClassifier(checks []Check, blacklists *Blacklists, opts *Options) *Classifier {
	logger := log.Default()
	if opts != nil && opts.Logger != nil {
		logger = opts.Logger
	}
	return &Classifier{
		checks:     checks,
		blacklists: blacklists,
		logger:     logger,
	}
}

// Classify assigns exactly one category to the pair, running checks in
// order and stopping at the first match. Newly detected bundled and
// fake_volume symbols are appended to their blacklists so the next
// cycle rejects them at admission.
func (c *Classifier) Classify(ctx context.Context, pair *domain.PairRecord, now time.Time) *domain.AnalysisResult {
	result := &domain.AnalysisResult{
		PairAddress:  pair.PairAddress,
		ChainID:      pair.ChainID,
		Symbol:       pair.Symbol,
		LiquidityUSD: pair.LiquidityUSD,
		Volume24h:    pair.Volume24h,
		PriceUSD:     pair.PriceUSD,
		CreatedAt:    pair.CreatedAt,
		AnalyzedAt:   now.UnixMilli(),
	}

	for _, check := range c.checks {
		category, matched := check.Run(ctx, pair, now)
		if !matched {
			continue
		}
		result.Category = category
		c.applySideEffects(ctx, result)
		return result
	}

	// The pattern detector terminates every chain; reaching here means
	// the chain was built without one.
	result.Category = domain.CategoryNormal
	return result
}

// applySideEffects appends the symbol to the blacklist matching the
// category, if any. Persistence failures are logged and swallowed; the
// in-memory set is already updated, so the current run stays correct.
func (c *Classifier) applySideEffects(ctx context.Context, result *domain.AnalysisResult) {
	var kind domain.BlacklistKind
	switch result.Category {
	case domain.CategoryBundled:
		kind = domain.BlacklistBundled
	case domain.CategoryFakeVolume:
		kind = domain.BlacklistFakeVolume
	default:
		return
	}

	if err := c.blacklists.Add(ctx, kind, result.Symbol); err != nil {
		c.logger.Printf("blacklist %s add %q: %v", kind, result.Symbol, err)
	}
}
