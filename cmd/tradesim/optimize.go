package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmehta/tradesim/internal/backtest"
	"github.com/rmehta/tradesim/internal/metrics"
	"github.com/rmehta/tradesim/internal/optimizer"
	"github.com/rmehta/tradesim/internal/strategy/all"
)

var (
	optimizeSymbol     string
	optimizeFrom       string
	optimizeTo         string
	optimizeStrategies []string
	optimizeMinTrades  int
	optimizeOut        string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rank all strategies over a symbol's history",
	Long:  "Backtest every strategy against one symbol and rank the results by return",
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeSymbol, "symbol", "", "Symbol to optimize for (required)")
	optimizeCmd.Flags().StringVar(&optimizeFrom, "from", "", "Start date YYYY-MM-DD (required)")
	optimizeCmd.Flags().StringVar(&optimizeTo, "to", "", "End date YYYY-MM-DD (required)")
	optimizeCmd.Flags().StringSliceVar(&optimizeStrategies, "strategies", nil, "Strategies to test (default: all)")
	optimizeCmd.Flags().IntVar(&optimizeMinTrades, "min-trades", 1, "Minimum trades for the best-strategy pick")
	optimizeCmd.Flags().StringVar(&optimizeOut, "out", "", "Write report to file instead of stdout")

	optimizeCmd.MarkFlagRequired("symbol")
	optimizeCmd.MarkFlagRequired("from")
	optimizeCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	fromDate, toDate, err := parseDateRange(optimizeFrom, optimizeTo)
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	var opts []optimizer.Option
	if cfg.Metrics.Enabled {
		opts = append(opts, optimizer.WithMetrics(metrics.NewRegistry()))
	}
	opt := optimizer.New(provider, all.NewRegistry(), log, opts...)

	req := optimizer.Request{
		Symbol:     optimizeSymbol,
		Start:      fromDate,
		End:        toDate,
		Strategies: optimizeStrategies,
		Params: backtest.Params{
			StopLossPct:     cfg.Backtest.StopLossPct,
			TargetPct:       cfg.Backtest.TargetPct,
			PositionSizePct: cfg.Backtest.PositionSizePct,
			InitialCapital:  cfg.Backtest.InitialCapital,
		},
		Annualization: cfg.Backtest.Annualization,
	}

	results, err := opt.Optimize(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	report := optimizer.Report(results, req)
	if optimizeOut != "" {
		if err := os.WriteFile(optimizeOut, []byte(report), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Report written to %s\n", optimizeOut)
	} else {
		fmt.Println(report)
	}

	// Best pick honoring the trade minimum, which can differ from the
	// top-ranked row.
	for i := range results {
		if results[i].Metrics.TotalTrades >= optimizeMinTrades {
			fmt.Printf("\nBest strategy with >= %d trades: %s (%.2f%% return)\n",
				optimizeMinTrades, results[i].StrategyName,
				results[i].Metrics.TotalReturnPercent)
			return nil
		}
	}
	if len(results) > 0 {
		fmt.Printf("\nNo strategy made at least %d trades\n", optimizeMinTrades)
	}
	return nil
}
