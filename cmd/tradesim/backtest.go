package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmehta/tradesim/internal/backtest"
	"github.com/rmehta/tradesim/internal/strategy/all"
)

var (
	backtestSymbol   string
	backtestFrom     string
	backtestTo       string
	backtestStopLoss float64
	backtestTarget   float64
	backtestSize     float64
	backtestCapital  float64
)

var backtestCmd = &cobra.Command{
	Use:   "backtest [strategy]",
	Short: "Run a backtest for one strategy",
	Long:  "Run a strategy against historical data and show performance statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestSymbol, "symbol", "", "Symbol to backtest (required)")
	backtestCmd.Flags().StringVar(&backtestFrom, "from", "", "Start date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&backtestTo, "to", "", "End date YYYY-MM-DD (required)")
	backtestCmd.Flags().Float64Var(&backtestStopLoss, "stop-loss", 0, "Stop loss fraction, e.g. 0.05 (default from config)")
	backtestCmd.Flags().Float64Var(&backtestTarget, "target", 0, "Target profit fraction, e.g. 0.10 (default from config)")
	backtestCmd.Flags().Float64Var(&backtestSize, "size", 0, "Position size fraction of capital (default from config)")
	backtestCmd.Flags().Float64Var(&backtestCapital, "capital", 0, "Initial capital (default from config)")

	backtestCmd.MarkFlagRequired("symbol")
	backtestCmd.MarkFlagRequired("from")
	backtestCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(backtestCmd)
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date format (expected YYYY-MM-DD): %w", err)
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date format (expected YYYY-MM-DD): %w", err)
	}
	if toDate.Before(fromDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date must be after start date")
	}
	return fromDate, toDate, nil
}

func runBacktest(cmd *cobra.Command, args []string) error {
	name := args[0]

	fromDate, toDate, err := parseDateRange(backtestFrom, backtestTo)
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

	registry := all.NewRegistry()
	strat, ok := registry.Get(name)
	if !ok {
		return fmt.Errorf("unknown strategy %q (available: %v)", name, registry.Names())
	}

	bars, err := provider.History(cmd.Context(), backtestSymbol, fromDate, toDate)
	if err != nil {
		return fmt.Errorf("fetching history: %w", err)
	}
	if len(bars) == 0 {
		fmt.Printf("No historical data found for %s\n", backtestSymbol)
		return nil
	}
	log.Info("history fetched",
		zap.String("symbol", backtestSymbol), zap.Int("bars", len(bars)))

	rows, err := strat.GenerateSignals(bars)
	if err != nil {
		return fmt.Errorf("generating signals: %w", err)
	}
	if len(rows) == 0 {
		fmt.Printf("Not enough data for %s (need at least %d bars, have %d)\n",
			name, strat.MinBars(), len(bars))
		return nil
	}

	params := backtest.Params{
		StopLossPct:     cfg.Backtest.StopLossPct,
		TargetPct:       cfg.Backtest.TargetPct,
		PositionSizePct: cfg.Backtest.PositionSizePct,
		InitialCapital:  cfg.Backtest.InitialCapital,
	}
	if backtestStopLoss > 0 {
		params.StopLossPct = backtestStopLoss
	}
	if backtestTarget > 0 {
		params.TargetPct = backtestTarget
	}
	if backtestSize > 0 {
		params.PositionSizePct = backtestSize
	}
	if backtestCapital > 0 {
		params.InitialCapital = backtestCapital
	}
	trades, equity, err := backtest.Simulate(bars, rows, params)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	m := backtest.Evaluate(trades, equity, params.InitialCapital, cfg.Backtest.Annualization)

	fmt.Println("=== Backtest Results ===")
	fmt.Printf("Strategy:       %s\n", name)
	fmt.Printf("Symbol:         %s\n", backtestSymbol)
	fmt.Printf("Period:         %s to %s\n",
		fromDate.Format("2006-01-02"), toDate.Format("2006-01-02"))
	fmt.Printf("Initial Capital: ₹%.2f\n", m.InitialCapital)
	fmt.Printf("Final Capital:   ₹%.2f\n", m.FinalCapital)
	fmt.Printf("Total Return:    ₹%.2f (%.2f%%)\n", m.TotalReturn, m.TotalReturnPercent)
	fmt.Printf("Total Trades:    %d (won %d, lost %d)\n", m.TotalTrades, m.WinningTrades, m.LosingTrades)
	fmt.Printf("Win Rate:        %.1f%%\n", m.WinRatePercent)
	fmt.Printf("Avg Profit:      ₹%.2f\n", m.AvgProfit)
	fmt.Printf("Avg Loss:        ₹%.2f\n", m.AvgLoss)
	fmt.Printf("Max Drawdown:    %.2f%%\n", m.MaxDrawdownPercent)
	fmt.Printf("Sharpe Ratio:    %.2f\n", m.SharpeRatio)

	return nil
}
