package classify

import (
	"context"
	"errors"
	"testing"
	"time"

	"dexwatch/internal/config"
	"dexwatch/internal/domain"
)

// stubReporter returns a fixed report or error.
type stubReporter struct {
	report domain.SafetyReport
	err    error
}

func (s *stubReporter) Report(ctx context.Context, address string) (domain.SafetyReport, error) {
	return s.report, s.err
}

func TestSafetyCheck(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	pair := &domain.PairRecord{PairAddress: "PairAddr1"}

	tests := []struct {
		name     string
		reporter SafetyReporter
		wantCat  domain.Category
		wantHit  bool
	}{
		{"good report passes", &stubReporter{report: domain.SafetyReport{Status: "GOOD"}}, "", false},
		{"bad status is unsafe", &stubReporter{report: domain.SafetyReport{Status: "DANGER"}}, domain.CategoryUnsafe, true},
		{"empty status is unsafe", &stubReporter{}, domain.CategoryUnsafe, true},
		{"fetch failure is unsafe", &stubReporter{err: errors.New("boom")}, domain.CategoryUnsafe, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := NewSafetyCheck(tt.reporter)
			cat, hit := check.Run(ctx, pair, now)
			if hit != tt.wantHit || cat != tt.wantCat {
				t.Errorf("Run = (%q, %v), want (%q, %v)", cat, hit, tt.wantCat, tt.wantHit)
			}
		})
	}
}

func TestSupplyConcentrationCheck(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	check := NewSupplyConcentrationCheck()

	tests := []struct {
		name    string
		holders []domain.Holder
		wantHit bool
	}{
		{"no holder data continues", nil, false},
		{"even distribution continues", []domain.Holder{{Amount: 250}, {Amount: 250}, {Amount: 250}, {Amount: 250}}, false},
		{"majority holder flags", []domain.Holder{{Amount: 600}, {Amount: 400}}, true},
		{"exactly half continues", []domain.Holder{{Amount: 500}, {Amount: 500}}, false},
		{"zero total continues", []domain.Holder{{Amount: 0}, {Amount: 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := &domain.PairRecord{Holders: tt.holders}
			cat, hit := check.Run(ctx, pair, now)
			if hit != tt.wantHit {
				t.Errorf("Run hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && cat != domain.CategoryBundled {
				t.Errorf("expected bundled, got %q", cat)
			}
		})
	}
}

func TestVolumeAuthenticityCheck(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	check := NewVolumeAuthenticityCheck(config.FakeVolumePattern{
		VolumeLiquidityRatio: 10,
		MinTransactions:      100,
	})

	tests := []struct {
		name      string
		liquidity float64
		volume    float64
		txCount   int
		wantHit   bool
	}{
		{"high ratio low txns flags", 1000, 20000, 50, true},
		{"high ratio enough txns continues", 1000, 20000, 150, false},
		{"low ratio continues", 1000, 5000, 50, false},
		{"zero liquidity with volume flags", 0, 100, 50, true},
		{"zero liquidity zero volume continues", 0, 0, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := &domain.PairRecord{
				LiquidityUSD: tt.liquidity,
				Volume24h:    tt.volume,
				TxCount24h:   tt.txCount,
			}
			cat, hit := check.Run(ctx, pair, now)
			if hit != tt.wantHit {
				t.Errorf("Run hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && cat != domain.CategoryFakeVolume {
				t.Errorf("expected fake_volume, got %q", cat)
			}
		})
	}
}

func TestPatternDetector(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	detector := NewPatternDetector(
		config.FilterConfig{MinLiquidityUSD: 5000},
		config.PatternConfig{
			Rugged:  config.RuggedPattern{LiquidityThreshold: 0.5, VolumeMultiplier: 3},
			Pumped:  config.PumpedPattern{VolumeMultiplier: 5, MaxAgeHours: 24},
			NewPair: config.NewPairPattern{MaxAgeHours: 6},
		},
	)

	tests := []struct {
		name      string
		liquidity float64
		volume    float64
		ageHours  float64
		want      domain.Category
	}{
		// liquidity 2000 < 5000*0.5 and volume 7000 > 2000*3.
		{"rugged", 2000, 7000, 30, domain.CategoryRugged},
		// volume 60000 > 10000*5 on a 10h pair.
		{"pumped", 10000, 60000, 10, domain.CategoryPumped},
		{"new pair", 10000, 20000, 2, domain.CategoryNewPair},
		{"normal", 10000, 20000, 30, domain.CategoryNormal},
		// rugged outranks pumped when both would match.
		{"rugged precedence", 2000, 11000, 2, domain.CategoryRugged},
		// zero liquidity with volume satisfies rugged vacuously.
		{"zero liquidity", 0, 100, 30, domain.CategoryRugged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := &domain.PairRecord{
				LiquidityUSD: tt.liquidity,
				Volume24h:    tt.volume,
				CreatedAt:    now.Add(-time.Duration(tt.ageHours * float64(time.Hour))).UnixMilli(),
			}
			cat, hit := detector.Run(ctx, pair, now)
			if !hit {
				t.Fatal("pattern detector must always fire")
			}
			if cat != tt.want {
				t.Errorf("Run = %q, want %q", cat, tt.want)
			}
		})
	}
}
