package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmehta/tradesim/internal/config"
	"github.com/rmehta/tradesim/internal/logger"
	"github.com/rmehta/tradesim/internal/marketdata"
	"github.com/rmehta/tradesim/internal/marketdata/static"
	"github.com/rmehta/tradesim/internal/marketdata/yahoo"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "tradesim",
	Short: "tradesim - strategy backtesting and paper trading",
	Long: `tradesim backtests trading strategies against historical market data,
ranks them by performance, and runs a paper-trading ledger against
live quotes.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

// setup initializes the logger and loads configuration, falling back
// to defaults when no config file is given.
func setup() (*config.Config, *zap.Logger, error) {
	log := logger.Must(debug)

	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Debug("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, log, nil
}

// newProviderRegistry registers every available market data provider.
func newProviderRegistry() *marketdata.Registry {
	reg := marketdata.NewRegistry()
	reg.Register(yahoo.New())
	reg.Register(static.New())
	return reg
}

// newProvider looks up the configured market data provider.
func newProvider(cfg *config.Config) (marketdata.Provider, error) {
	p, ok := newProviderRegistry().Get(cfg.MarketData.Provider)
	if !ok {
		return nil, fmt.Errorf("unknown marketdata provider: %s", cfg.MarketData.Provider)
	}
	return p, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
