package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rmehta/tradesim/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Backtest   BacktestConfig   `mapstructure:"backtest"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	MarketData MarketDataConfig `mapstructure:"marketdata"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// BacktestConfig holds defaults for simulation runs.
type BacktestConfig struct {
	InitialCapital  float64 `mapstructure:"initial_capital"`
	StopLossPct     float64 `mapstructure:"stop_loss_pct"`
	TargetPct       float64 `mapstructure:"target_pct"`
	PositionSizePct float64 `mapstructure:"position_size_pct"`
	// Annualization is the number of bars per year used for the
	// Sharpe ratio. 252 assumes daily bars.
	Annualization float64 `mapstructure:"annualization"`
}

// LedgerConfig holds the paper-trading account settings.
type LedgerConfig struct {
	InitialCapital  float64 `mapstructure:"initial_capital"`
	DefaultExchange string  `mapstructure:"default_exchange"`
}

// MarketDataConfig selects and configures the price data provider.
type MarketDataConfig struct {
	Provider string `mapstructure:"provider"` // "yahoo" or "static"
	Interval string `mapstructure:"interval"`
}

// MetricsConfig toggles the prometheus instrumentation.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Backtest: BacktestConfig{
			InitialCapital:  100000,
			StopLossPct:     0.05,
			TargetPct:       0.10,
			PositionSizePct: 0.10,
			Annualization:   252,
		},
		Ledger: LedgerConfig{
			InitialCapital:  100000,
			DefaultExchange: string(core.ExchangeNSE),
		},
		MarketData: MarketDataConfig{
			Provider: "yahoo",
			Interval: "1d",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Backtest.InitialCapital <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("initial_capital must be positive, got %f", c.Backtest.InitialCapital))
	}

	for name, pct := range map[string]float64{
		"stop_loss_pct":     c.Backtest.StopLossPct,
		"target_pct":        c.Backtest.TargetPct,
		"position_size_pct": c.Backtest.PositionSizePct,
	} {
		if pct <= 0 || pct > 1 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("%s must be in (0,1], got %f", name, pct))
		}
	}

	if c.Backtest.Annualization <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("annualization must be positive, got %f", c.Backtest.Annualization))
	}

	if c.Ledger.InitialCapital <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("ledger initial_capital must be positive, got %f", c.Ledger.InitialCapital))
	}

	switch c.MarketData.Provider {
	case "yahoo", "static":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown marketdata provider: %s", c.MarketData.Provider))
	}

	return nil
}
