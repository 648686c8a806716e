package classify

import (
	"context"
	"testing"
	"time"

	"dexwatch/internal/config"
	"dexwatch/internal/domain"
	"dexwatch/internal/storage/memory"
)

func testChain(reporter SafetyReporter) []Check {
	return []Check{
		NewSafetyCheck(reporter),
		NewSupplyConcentrationCheck(),
		NewVolumeAuthenticityCheck(config.FakeVolumePattern{VolumeLiquidityRatio: 10, MinTransactions: 100}),
		NewPatternDetector(
			config.FilterConfig{MinLiquidityUSD: 5000},
			config.PatternConfig{
				Rugged:  config.RuggedPattern{LiquidityThreshold: 0.5, VolumeMultiplier: 3},
				Pumped:  config.PumpedPattern{VolumeMultiplier: 5, MaxAgeHours: 24},
				NewPair: config.NewPairPattern{MaxAgeHours: 6},
			},
		),
	}
}

func goodReporter() SafetyReporter {
	return &stubReporter{report: domain.SafetyReport{Status: "GOOD"}}
}

func TestClassifier_UnsafeShortCircuits(t *testing.T) {
	blacklists := NewBlacklists(config.BlacklistSeeds{}, memory.NewBlacklistStore())
	c := NewClassifier(testChain(&stubReporter{report: domain.SafetyReport{Status: "BAD"}}), blacklists, nil)
	now := time.Now()

	// Holder data that would otherwise classify as bundled.
	pair := &domain.PairRecord{
		PairAddress: "PairAddr1",
		Symbol:      "WIF",
		Holders:     []domain.Holder{{Amount: 900}, {Amount: 100}},
	}

	result := c.Classify(context.Background(), pair, now)
	if result.Category != domain.CategoryUnsafe {
		t.Fatalf("expected unsafe, got %s", result.Category)
	}
	// Unsafe classification has no blacklist side effects.
	if blacklists.ContainsSymbol("WIF") {
		t.Error("unsafe must not mutate blacklists")
	}
}

func TestClassifier_BundledMutatesBlacklist(t *testing.T) {
	store := memory.NewBlacklistStore()
	blacklists := NewBlacklists(config.BlacklistSeeds{}, store)
	c := NewClassifier(testChain(goodReporter()), blacklists, nil)
	now := time.Now()

	pair := &domain.PairRecord{
		PairAddress: "PairAddr1",
		Symbol:      "BUNDLE",
		Holders:     []domain.Holder{{Amount: 600}, {Amount: 400}},
	}

	result := c.Classify(context.Background(), pair, now)
	if result.Category != domain.CategoryBundled {
		t.Fatalf("expected bundled, got %s", result.Category)
	}
	if !blacklists.Contains(domain.BlacklistBundled, "BUNDLE") {
		t.Error("expected symbol in bundled blacklist")
	}

	entries, err := store.GetByKind(context.Background(), domain.BlacklistBundled)
	if err != nil {
		t.Fatalf("GetByKind: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one persisted entry, got %d", len(entries))
	}
}

func TestClassifier_FakeVolumeMutatesBlacklist(t *testing.T) {
	blacklists := NewBlacklists(config.BlacklistSeeds{}, memory.NewBlacklistStore())
	c := NewClassifier(testChain(goodReporter()), blacklists, nil)
	now := time.Now()

	pair := &domain.PairRecord{
		PairAddress:  "PairAddr1",
		Symbol:       "WASH",
		LiquidityUSD: 1000,
		Volume24h:    20000,
		TxCount24h:   50,
	}

	result := c.Classify(context.Background(), pair, now)
	if result.Category != domain.CategoryFakeVolume {
		t.Fatalf("expected fake_volume, got %s", result.Category)
	}
	if !blacklists.Contains(domain.BlacklistFakeVolume, "WASH") {
		t.Error("expected symbol in fake volume blacklist")
	}
}

func TestClassifier_PatternCategoriesNoSideEffects(t *testing.T) {
	blacklists := NewBlacklists(config.BlacklistSeeds{}, memory.NewBlacklistStore())
	c := NewClassifier(testChain(goodReporter()), blacklists, nil)
	now := time.Now()

	pair := &domain.PairRecord{
		PairAddress:  "PairAddr1",
		Symbol:       "OK",
		LiquidityUSD: 10000,
		Volume24h:    20000,
		TxCount24h:   500,
		CreatedAt:    now.Add(-30 * time.Hour).UnixMilli(),
	}

	result := c.Classify(context.Background(), pair, now)
	if result.Category != domain.CategoryNormal {
		t.Fatalf("expected normal, got %s", result.Category)
	}
	if blacklists.ContainsSymbol("OK") {
		t.Error("pattern categories must not mutate blacklists")
	}
}

func TestClassifier_ResultCarriesPairFields(t *testing.T) {
	blacklists := NewBlacklists(config.BlacklistSeeds{}, memory.NewBlacklistStore())
	c := NewClassifier(testChain(goodReporter()), blacklists, nil)
	now := time.Now()

	pair := &domain.PairRecord{
		PairAddress:  "PairAddr1",
		ChainID:      "solana",
		Symbol:       "OK",
		LiquidityUSD: 10000,
		Volume24h:    20000,
		PriceUSD:     0.5,
		TxCount24h:   500,
		CreatedAt:    now.Add(-2 * time.Hour).UnixMilli(),
	}

	result := c.Classify(context.Background(), pair, now)
	if result.PairAddress != "PairAddr1" || result.ChainID != "solana" || result.Symbol != "OK" {
		t.Errorf("identity fields not carried: %+v", result)
	}
	if result.LiquidityUSD != 10000 || result.Volume24h != 20000 || result.PriceUSD != 0.5 {
		t.Errorf("numeric fields not carried: %+v", result)
	}
	if result.AnalyzedAt != now.UnixMilli() {
		t.Errorf("expected AnalyzedAt %d, got %d", now.UnixMilli(), result.AnalyzedAt)
	}
	if result.Category != domain.CategoryNewPair {
		t.Errorf("expected new_pair for a 2h pair, got %s", result.Category)
	}
}

// TestClassifier_NextCycleRejectsBlacklisted covers the cross-cycle
// contract: a symbol blacklisted during cycle N is rejected by the
// admission filter in cycle N+1.
func TestClassifier_NextCycleRejectsBlacklisted(t *testing.T) {
	blacklists := NewBlacklists(config.BlacklistSeeds{}, memory.NewBlacklistStore())
	c := NewClassifier(testChain(goodReporter()), blacklists, nil)
	filter := NewFilter(config.FilterConfig{MinLiquidityUSD: 100, MinVolume24h: 100, MaxAgeHours: 48}, blacklists)
	now := time.Now()

	pair := &domain.PairRecord{
		PairAddress:  "PairAddr1",
		Symbol:       "BUNDLE",
		LiquidityUSD: 1000,
		Volume24h:    1000,
		CreatedAt:    now.Add(-time.Hour).UnixMilli(),
		Holders:      []domain.Holder{{Amount: 600}, {Amount: 400}},
	}

	if !filter.Admit(pair, now) {
		t.Fatal("expected admission before classification")
	}
	c.Classify(context.Background(), pair, now)

	if filter.Admit(pair, now) {
		t.Error("expected rejection after bundled classification")
	}
}
