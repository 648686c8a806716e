package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dexwatch/internal/classify"
	"dexwatch/internal/config"
	"dexwatch/internal/dexscreener"
	"dexwatch/internal/monitor"
	"dexwatch/internal/notify"
	"dexwatch/internal/observability"
	"dexwatch/internal/rugcheck"
	"dexwatch/internal/storage"
	chstore "dexwatch/internal/storage/clickhouse"
	"dexwatch/internal/storage/memory"
	"dexwatch/internal/storage/migrations"
	pgstore "dexwatch/internal/storage/postgres"
	"dexwatch/internal/stream"
	"dexwatch/internal/trading"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to JSON config file")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (empty to disable price snapshots)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address (empty to disable)")
	streamAddr := flag.String("stream-addr", ":8081", "WebSocket stream address (empty to disable)")

	flag.Parse()

	logger := log.New(os.Stdout, "[watch] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Load config: %v", err)
	}

	// Start metrics server if enabled
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Handle shutdown signals with graceful timeout
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	err = run(ctx, logger, cfg, *postgresDSN, *clickhouseDSN, *useMemory, *streamAddr)

	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// run wires the stores, collaborators, and monitor loop. It blocks
// until the context is cancelled.
func run(ctx context.Context, logger *log.Logger, cfg *config.Config, postgresDSN, clickhouseDSN string, useMemory bool, streamAddr string) error {
	if !useMemory && postgresDSN == "" {
		return fmt.Errorf("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	// Create stores (use interfaces)
	var tokenStore storage.TokenSnapshotStore = memory.NewTokenSnapshotStore()
	var analysisStore storage.AnalysisEventStore = memory.NewAnalysisEventStore()
	var tradeStore storage.TradeEventStore = memory.NewTradeEventStore()
	var blacklistStore storage.BlacklistStore = memory.NewBlacklistStore()
	var priceStore storage.PriceSnapshotStore

	if !useMemory {
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer pool.Close()

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return fmt.Errorf("run postgres migrations: %w", err)
		}

		tokenStore = pgstore.NewTokenSnapshotStore(pool)
		analysisStore = pgstore.NewAnalysisEventStore(pool)
		tradeStore = pgstore.NewTradeEventStore(pool)
		blacklistStore = pgstore.NewBlacklistStore(pool)
	}

	if clickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			return fmt.Errorf("run clickhouse migrations: %w", err)
		}
		defer conn.Close()
		priceStore = chstore.NewPriceSnapshotStore(conn)
	}

	// Blacklists: config seeds plus whatever earlier runs persisted.
	blacklists := classify.NewBlacklists(cfg.Blacklists, blacklistStore)
	if err := blacklists.Load(ctx); err != nil {
		return fmt.Errorf("load blacklists: %w", err)
	}

	// Collaborators
	market := dexscreener.NewClient(cfg.API.MarketData)
	safety := rugcheck.NewClient(cfg.API.SafetyReport)

	var notifier notify.Notifier = notify.NopNotifier{}
	if n := cfg.API.Notification; n.BotToken != "" && n.ChatID != "" {
		endpoint := n.Endpoint
		if endpoint == "" {
			endpoint = "https://api.telegram.org"
		}
		notifier = notify.NewTelegramNotifier(endpoint, n.BotToken, n.ChatID)
	}

	// Classification chain, in precedence order.
	checks := []classify.Check{
		classify.NewSafetyCheck(safety),
		classify.NewSupplyConcentrationCheck(),
		classify.NewVolumeAuthenticityCheck(cfg.Patterns.FakeVolume),
		classify.NewPatternDetector(cfg.Filters, cfg.Patterns),
	}
	classifier := classify.NewClassifier(checks, blacklists, &classify.Options{Logger: logger})
	filter := classify.NewFilter(cfg.Filters, blacklists)
	decider := trading.NewDecider(cfg.Trading)

	// WebSocket stream of non-normal detections.
	var sink monitor.EventSink
	if streamAddr != "" {
		broadcaster := stream.NewBroadcaster(&stream.Options{Logger: logger})
		sink = broadcaster
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/ws", broadcaster.Handler())
			logger.Printf("Starting stream server on %s", streamAddr)
			if err := http.ListenAndServe(streamAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Stream server error: %v", err)
			}
		}()
	}

	runner := monitor.NewRunner(monitor.RunnerOptions{
		Market:        market,
		Filter:        filter,
		Classifier:    classifier,
		Blacklists:    blacklists,
		Decider:       decider,
		Notifier:      notifier,
		Sink:          sink,
		TokenStore:    tokenStore,
		AnalysisStore: analysisStore,
		TradeStore:    tradeStore,
		PriceStore:    priceStore,
		Chain:         cfg.Chain,
		Interval:      cfg.Interval(),
		AmountUSD:     cfg.Trading.AmountUSD,
		Metrics:       observability.NewMetrics(""),
		Logger:        logger,
	})

	logger.Println("Starting watcher...")
	return runner.Run(ctx)
}
