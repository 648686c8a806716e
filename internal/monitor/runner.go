// Package monitor runs the poll loop: fetch the candidate set, admit,
// classify, persist, and trade, once per configured interval.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"dexwatch/internal/classify"
	"dexwatch/internal/config"
	"dexwatch/internal/domain"
	"dexwatch/internal/idhash"
	"dexwatch/internal/notify"
	"dexwatch/internal/observability"
	"dexwatch/internal/storage"
	"dexwatch/internal/trading"
)

// MarketData fetches the candidate pair set for one chain.
type MarketData interface {
	Search(ctx context.Context, chain string) ([]*domain.PairRecord, error)
}

// EventSink receives every non-normal analysis result, e.g. the
// websocket broadcaster.
type EventSink interface {
	Broadcast(result *domain.AnalysisResult)
}

// Runner orchestrates one classification pass per poll interval.
type Runner struct {
	market     MarketData
	filter     *classify.Filter
	classifier *classify.Classifier
	blacklists *classify.Blacklists
	decider    *trading.Decider
	notifier   notify.Notifier
	sink       EventSink

	tokenStore    storage.TokenSnapshotStore
	analysisStore storage.AnalysisEventStore
	tradeStore    storage.TradeEventStore
	priceStore    storage.PriceSnapshotStore

	chain     string
	interval  time.Duration
	amountUSD float64
	metrics   *observability.Metrics
	logger    *log.Logger
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	Market     MarketData
	Filter     *classify.Filter
	Classifier *classify.Classifier
	Blacklists *classify.Blacklists
	Decider    *trading.Decider
	Notifier   notify.Notifier // defaults to NopNotifier
	Sink       EventSink       // optional

	TokenStore    storage.TokenSnapshotStore
	AnalysisStore storage.AnalysisEventStore
	TradeStore    storage.TradeEventStore
	PriceStore    storage.PriceSnapshotStore // optional

	Chain     string        // defaults to config.DefaultChain
	Interval  time.Duration // defaults to 5 minutes
	AmountUSD float64
	Metrics   *observability.Metrics // optional
	Logger    *log.Logger            // defaults to log.Default()
}

// NewRunner creates a monitor runner.
func NewRunner(opts RunnerOptions) *Runner {
	chain := opts.Chain
	if chain == "" {
		chain = config.DefaultChain
	}
	interval := opts.Interval
	if interval == 0 {
		interval = 5 * time.Minute
	}
	var notifier notify.Notifier = notify.NopNotifier{}
	if opts.Notifier != nil {
		notifier = opts.Notifier
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Runner{
		market:        opts.Market,
		filter:        opts.Filter,
		classifier:    opts.Classifier,
		blacklists:    opts.Blacklists,
		decider:       opts.Decider,
		notifier:      notifier,
		sink:          opts.Sink,
		tokenStore:    opts.TokenStore,
		analysisStore: opts.AnalysisStore,
		tradeStore:    opts.TradeStore,
		priceStore:    opts.PriceStore,
		chain:         chain,
		interval:      interval,
		amountUSD:     opts.AmountUSD,
		metrics:       opts.Metrics,
		logger:        logger,
	}
}

// CycleResult summarizes one completed poll cycle.
type CycleResult struct {
	Fetched    int
	Admitted   int
	Categories map[domain.Category]int
	Trades     int
	Errors     int
}

// Run blocks, executing one cycle immediately and then one per
// interval, until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Printf("monitor started: chain=%s interval=%s", r.chain, r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		start := time.Now()
		result := r.RunCycle(ctx)
		r.logCycle(result, time.Since(start))

		select {
		case <-ctx.Done():
			r.logger.Println("monitor stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunCycle executes one full pass: fetch, admit, classify, persist,
// trade. A per-pair failure is counted and logged; it never aborts the
// rest of the cycle. A failed fetch degrades to an empty cycle.
func (r *Runner) RunCycle(ctx context.Context) *CycleResult {
	start := time.Now()

	pairs, err := r.market.Search(ctx, r.chain)
	if r.metrics != nil {
		r.metrics.CollaboratorLatency.WithLabelValues("market_data").Observe(time.Since(start).Seconds())
	}
	if err != nil {
		r.logger.Printf("fetch pairs: %v", err)
		if r.metrics != nil {
			r.metrics.CollaboratorErrors.WithLabelValues("market_data").Inc()
		}
		pairs = nil
	}

	result := &CycleResult{
		Fetched:    len(pairs),
		Categories: make(map[domain.Category]int),
	}
	if err != nil {
		result.Errors++
	}
	now := time.Now()
	var snapshots []*domain.PriceSnapshot

	// The feed can repeat a pair address within one response. First
	// occurrence wins; a repeat would collide on the snapshot key
	// (pair_address, timestamp_ms) and double every side effect.
	seen := make(map[string]struct{}, len(pairs))

	for _, pair := range pairs {
		if _, dup := seen[pair.PairAddress]; dup {
			continue
		}
		seen[pair.PairAddress] = struct{}{}

		if !r.filter.Admit(pair, now) {
			continue
		}
		result.Admitted++

		analysis := r.classifier.Classify(ctx, pair, now)
		result.Categories[analysis.Category]++
		if r.metrics != nil {
			r.metrics.Classifications.WithLabelValues(analysis.Category.String()).Inc()
		}

		if err := r.persist(ctx, analysis); err != nil {
			result.Errors++
			r.logger.Printf("persist %s: %v", analysis.PairAddress, err)
			continue
		}

		snapshots = append(snapshots, &domain.PriceSnapshot{
			PairAddress:  pair.PairAddress,
			TimestampMs:  analysis.AnalyzedAt,
			PriceUSD:     pair.PriceUSD,
			LiquidityUSD: pair.LiquidityUSD,
			Volume24h:    pair.Volume24h,
		})

		if analysis.Category != domain.CategoryNormal {
			r.announce(ctx, analysis)
		}

		if analysis.Category.Tradable() {
			if traded, err := r.trade(ctx, pair, analysis); err != nil {
				result.Errors++
				r.logger.Printf("trade %s: %v", pair.PairAddress, err)
			} else if traded {
				result.Trades++
			}
		}
	}

	if r.priceStore != nil && len(snapshots) > 0 {
		if err := r.priceStore.InsertBulk(ctx, snapshots); err != nil {
			result.Errors++
			r.recordStorageError("price_snapshot")
			r.logger.Printf("insert price snapshots: %v", err)
		}
	}

	r.observeCycle(result, time.Since(start))
	return result
}

// persist writes the token snapshot and, for non-normal categories,
// the analysis event.
func (r *Runner) persist(ctx context.Context, analysis *domain.AnalysisResult) error {
	if err := r.tokenStore.Upsert(ctx, analysis.Snapshot()); err != nil {
		r.recordStorageError("token_snapshot")
		return fmt.Errorf("upsert token snapshot: %w", err)
	}

	if analysis.Category == domain.CategoryNormal {
		return nil
	}

	details, err := json.Marshal(map[string]float64{
		"liquidity": analysis.LiquidityUSD,
		"volume":    analysis.Volume24h,
	})
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}

	event := &domain.AnalysisEvent{
		PairAddress: analysis.PairAddress,
		Category:    analysis.Category,
		Timestamp:   analysis.AnalyzedAt,
		Details:     string(details),
	}
	if err := r.analysisStore.Insert(ctx, event); err != nil {
		r.recordStorageError("analysis_event")
		return fmt.Errorf("insert analysis event: %w", err)
	}
	return nil
}

// announce delivers the detection to the notifier and the event sink.
// Both are fire-and-forget.
func (r *Runner) announce(ctx context.Context, analysis *domain.AnalysisResult) {
	msg := fmt.Sprintf("detected %s: %s - liquidity: $%.2f, 24h volume: $%.2f",
		analysis.Category, analysis.Symbol, analysis.LiquidityUSD, analysis.Volume24h)
	if err := r.notifier.Send(ctx, msg); err != nil {
		if r.metrics != nil {
			r.metrics.NotificationFails.Inc()
		}
		r.logger.Printf("notify: %v", err)
	} else if r.metrics != nil {
		r.metrics.NotificationsSent.Inc()
	}

	if r.sink != nil {
		r.sink.Broadcast(analysis)
	}
}

// trade samples the price and persists a trade event when the decision
// is buy or sell. Returns whether a trade was recorded.
func (r *Runner) trade(ctx context.Context, pair *domain.PairRecord, analysis *domain.AnalysisResult) (bool, error) {
	action := r.decider.OnSample(pair.PairAddress, pair.PriceUSD)
	if action == domain.ActionHold {
		return false, nil
	}

	event := &domain.TradeEvent{
		TradeID:     idhash.ComputeTradeID(pair.PairAddress, action, analysis.AnalyzedAt),
		PairAddress: pair.PairAddress,
		Action:      action,
		AmountUSD:   r.amountUSD,
		PriceUSD:    pair.PriceUSD,
		Timestamp:   analysis.AnalyzedAt,
	}
	if err := r.tradeStore.Insert(ctx, event); err != nil {
		r.recordStorageError("trade_event")
		return false, fmt.Errorf("insert trade event: %w", err)
	}

	if r.metrics != nil {
		r.metrics.TradesSimulated.WithLabelValues(action.String()).Inc()
	}

	msg := fmt.Sprintf("simulated %s: %s at $%f (amount $%.2f)",
		action, pair.Symbol, pair.PriceUSD, r.amountUSD)
	if err := r.notifier.Send(ctx, msg); err != nil {
		if r.metrics != nil {
			r.metrics.NotificationFails.Inc()
		}
		r.logger.Printf("notify: %v", err)
	} else if r.metrics != nil {
		r.metrics.NotificationsSent.Inc()
	}
	return true, nil
}

func (r *Runner) recordStorageError(record string) {
	if r.metrics != nil {
		r.metrics.StorageErrors.WithLabelValues(record).Inc()
	}
}

func (r *Runner) observeCycle(result *CycleResult, elapsed time.Duration) {
	if r.metrics == nil {
		return
	}
	r.metrics.CyclesTotal.Inc()
	r.metrics.CycleDuration.Observe(elapsed.Seconds())
	r.metrics.PairsFetched.Add(float64(result.Fetched))
	r.metrics.PairsAdmitted.Add(float64(result.Admitted))
	r.metrics.PairErrors.Add(float64(result.Errors))
	r.metrics.LastSuccessfulCycle.SetToCurrentTime()
	if r.blacklists != nil {
		for _, kind := range []domain.BlacklistKind{
			domain.BlacklistTokens, domain.BlacklistDevelopers,
			domain.BlacklistFakeVolume, domain.BlacklistBundled,
		} {
			r.metrics.BlacklistSize.WithLabelValues(kind.String()).Set(float64(r.blacklists.Size(kind)))
		}
	}
}

func (r *Runner) logCycle(result *CycleResult, elapsed time.Duration) {
	r.logger.Printf("cycle done in %s: fetched=%d admitted=%d trades=%d errors=%d",
		elapsed.Round(time.Millisecond), result.Fetched, result.Admitted, result.Trades, result.Errors)
	for _, cat := range []domain.Category{
		domain.CategoryUnsafe, domain.CategoryBundled, domain.CategoryFakeVolume,
		domain.CategoryRugged, domain.CategoryPumped, domain.CategoryNewPair,
		domain.CategoryNormal,
	} {
		if n := result.Categories[cat]; n > 0 {
			r.logger.Printf("  %s: %d", cat, n)
		}
	}
}
