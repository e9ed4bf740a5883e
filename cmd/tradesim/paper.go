package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmehta/tradesim/internal/core"
	"github.com/rmehta/tradesim/internal/ledger"
	"github.com/rmehta/tradesim/internal/marketdata/static"
	"github.com/rmehta/tradesim/internal/metrics"
)

var paperCmd = &cobra.Command{
	Use:   "paper",
	Short: "Run a scripted paper-trading session",
	Long: `Run a scripted buy/mark/sell session against fixed quotes and print
the resulting account performance. Useful for demonstrating the ledger
without network access.`,
	RunE: runPaper,
}

func init() {
	rootCmd.AddCommand(paperCmd)
}

func runPaper(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	exchange := core.Exchange(cfg.Ledger.DefaultExchange)

	provider := static.New()
	provider.SetPrice("RELIANCE", 2500)
	provider.SetPrice("TCS", 3600)

	var opts []ledger.Option
	if cfg.Metrics.Enabled {
		opts = append(opts, ledger.WithMetrics(metrics.NewRegistry()))
	}
	account := ledger.New(cfg.Ledger.InitialCapital, provider, log, opts...)

	fmt.Printf("=== Paper Trading Session (capital ₹%.2f) ===\n\n", cfg.Ledger.InitialCapital)

	// Accumulate a position in two fills at different prices.
	if _, err := account.PlaceOrder(ctx, "RELIANCE", exchange, core.SideBuy, 10, nil, ledger.OrderTypeMarket); err != nil {
		return err
	}
	provider.SetPrice("RELIANCE", 2600)
	if _, err := account.PlaceOrder(ctx, "RELIANCE", exchange, core.SideBuy, 5, nil, ledger.OrderTypeMarket); err != nil {
		return err
	}

	fmt.Println("Positions after buys:")
	for _, p := range account.GetPositions(ctx) {
		fmt.Printf("  %s:%s  qty %d  avg ₹%.2f  last ₹%.2f  unrealized ₹%.2f (%.2f%%)\n",
			p.Exchange, p.Symbol, p.Quantity, p.AveragePrice, p.CurrentPrice,
			p.UnrealizedPnL, p.UnrealizedPnLPercent)
	}

	// Quotes move, close the position.
	provider.SetPrice("RELIANCE", 2750)
	account.UpdatePositions(ctx)
	if _, err := account.PlaceOrder(ctx, "RELIANCE", exchange, core.SideSell, 15, nil, ledger.OrderTypeMarket); err != nil {
		return err
	}

	// An over-sized order is rejected without touching the account.
	if _, err := account.PlaceOrder(ctx, "TCS", exchange, core.SideBuy, 1000, nil, ledger.OrderTypeMarket); err != nil {
		fmt.Printf("\nRejected as expected: %v\n", err)
	}

	m := account.PerformanceMetrics(ctx)
	fmt.Println("\n=== Account Performance ===")
	fmt.Printf("Initial Capital:  ₹%.2f\n", m.InitialCapital)
	fmt.Printf("Current Capital:  ₹%.2f\n", m.CurrentCapital)
	fmt.Printf("Portfolio Value:  ₹%.2f\n", m.PortfolioValue)
	fmt.Printf("Total Return:     ₹%.2f (%.2f%%)\n", m.TotalReturn, m.TotalReturnPercent)
	fmt.Printf("Round Trips:      %d (won %d, lost %d)\n", m.TotalTrades, m.WinningTrades, m.LosingTrades)
	fmt.Printf("Win Rate:         %.1f%%\n", m.WinRatePercent)
	fmt.Printf("Total Profit:     ₹%.2f\n", m.TotalProfit)

	fmt.Printf("\nOrders placed: %d, fills: %d\n",
		len(account.OrderHistory()), len(account.TradeHistory()))
	return nil
}
