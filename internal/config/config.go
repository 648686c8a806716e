// Package config loads and validates the watcher configuration file.
// A config error is fatal at startup; nothing runs on a bad config.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Default values applied when the file omits optional fields.
const (
	DefaultChain       = "solana"
	DefaultHistorySize = 64
)

// Config is the full configuration surface. Loaded once at startup and
// treated as immutable afterwards; blacklist seeds are copied into the
// runtime blacklist state, never mutated in place.
type Config struct {
	API APIConfig `json:"api"`
	// DBName is recognized but unused: storage targets come from the
	// runtime DSN flags, not the config file.
	DBName        string         `json:"db_name"`
	Chain         string         `json:"chain"`
	CheckInterval int            `json:"check_interval"` // seconds
	Filters       FilterConfig   `json:"filters"`
	Blacklists    BlacklistSeeds `json:"blacklists"`
	Patterns      PatternConfig  `json:"patterns"`
	Trading       TradingConfig  `json:"trading"`
}

// APIConfig names the external collaborator endpoints.
type APIConfig struct {
	MarketData   string             `json:"market_data"`
	SafetyReport string             `json:"safety_report"`
	Notification NotificationConfig `json:"notification"`
	// Trading is recognized but unused: trades are simulated and
	// persisted locally, never sent to an exchange.
	Trading string `json:"trading"`
}

// NotificationConfig configures the Telegram notifier. All fields empty
// disables notifications.
type NotificationConfig struct {
	Endpoint string `json:"endpoint"`
	BotToken string `json:"bot_token"`
	ChatID   string `json:"chat_id"`
}

// FilterConfig is the admission filter thresholds.
type FilterConfig struct {
	MinLiquidityUSD float64 `json:"min_liquidity_usd"`
	MinVolume24h    float64 `json:"min_volume_24h"`
	MaxAgeHours     float64 `json:"max_age_hours"`
}

// BlacklistSeeds are the denylist entries present before the first cycle.
type BlacklistSeeds struct {
	Tokens           []string `json:"tokens"`
	Developers       []string `json:"developers"`
	FakeVolumeTokens []string `json:"fake_volume_tokens"`
	BundledTokens    []string `json:"bundled_tokens"`
}

// PatternConfig holds per-pattern detection thresholds.
type PatternConfig struct {
	Rugged     RuggedPattern     `json:"rugged"`
	Pumped     PumpedPattern     `json:"pumped"`
	NewPair    NewPairPattern    `json:"new_pair"`
	FakeVolume FakeVolumePattern `json:"fake_volume"`
}

// RuggedPattern: liquidity below a fraction of the admission minimum
// while volume runs a multiple of liquidity.
type RuggedPattern struct {
	LiquidityThreshold float64 `json:"liquidity_threshold"`
	VolumeMultiplier   float64 `json:"volume_multiplier"`
}

// PumpedPattern: volume a multiple of liquidity on a young pair.
type PumpedPattern struct {
	VolumeMultiplier float64 `json:"volume_multiplier"`
	MaxAgeHours      float64 `json:"max_age_hours"`
}

// NewPairPattern: anything younger than MaxAgeHours that matched
// nothing else.
type NewPairPattern struct {
	MaxAgeHours float64 `json:"max_age_hours"`
}

// FakeVolumePattern: volume/liquidity ratio above threshold with too
// few transactions behind it.
type FakeVolumePattern struct {
	VolumeLiquidityRatio float64 `json:"volume_liquidity_ratio"`
	MinTransactions      int     `json:"min_transactions"`
}

// TradingConfig is the simulated trading state machine parameters.
// Thresholds are fractional price changes (0.10 = 10%).
type TradingConfig struct {
	AmountUSD     float64 `json:"amount_usd"`
	BuyThreshold  float64 `json:"buy_threshold"`
	SellThreshold float64 `json:"sell_threshold"`
	HistorySize   int     `json:"history_size"`
}

// Load reads and validates a JSON config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Chain == "" {
		c.Chain = DefaultChain
	}
	if c.Trading.HistorySize == 0 {
		c.Trading.HistorySize = DefaultHistorySize
	}
}

// Validate checks the fields the watcher cannot run without.
func (c *Config) Validate() error {
	if c.API.MarketData == "" {
		return fmt.Errorf("api.market_data endpoint is required")
	}
	if c.API.SafetyReport == "" {
		return fmt.Errorf("api.safety_report endpoint is required")
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("check_interval must be positive, got %d", c.CheckInterval)
	}
	if c.Filters.MinLiquidityUSD < 0 {
		return fmt.Errorf("filters.min_liquidity_usd must not be negative")
	}
	if c.Filters.MinVolume24h < 0 {
		return fmt.Errorf("filters.min_volume_24h must not be negative")
	}
	if c.Filters.MaxAgeHours <= 0 {
		return fmt.Errorf("filters.max_age_hours must be positive")
	}
	if c.Patterns.FakeVolume.VolumeLiquidityRatio <= 0 {
		return fmt.Errorf("patterns.fake_volume.volume_liquidity_ratio must be positive")
	}
	if c.Trading.BuyThreshold < 0 || c.Trading.SellThreshold < 0 {
		return fmt.Errorf("trading thresholds must not be negative")
	}
	if c.Trading.HistorySize < 2 {
		return fmt.Errorf("trading.history_size must be at least 2, got %d", c.Trading.HistorySize)
	}
	return nil
}

// Interval returns the poll interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.CheckInterval) * time.Second
}
