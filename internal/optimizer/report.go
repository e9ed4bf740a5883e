package optimizer

import (
	"fmt"
	"math"
	"strings"
)

// Report renders a plain-text ranking of optimization results followed
// by a detail block for the top strategy.
func Report(results []Result, req Request) string {
	if len(results) == 0 {
		return fmt.Sprintf("No valid results found for %s", req.Symbol)
	}

	var b strings.Builder
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "STRATEGY OPTIMIZATION REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Symbol: %s\n", req.Symbol)
	fmt.Fprintf(&b, "Period: %s to %s\n",
		req.Start.Format("2006-01-02"), req.End.Format("2006-01-02"))
	fmt.Fprintf(&b, "Initial Capital: ₹%.2f\n", req.Params.InitialCapital)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "PERFORMANCE RANKING:")
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "%-4s %-15s %-10s %-12s %-7s %-7s %-8s\n",
		"Rank", "Strategy", "Return %", "Return ₹", "Trades", "Win %", "Sharpe")
	fmt.Fprintln(&b, thin)

	for i, r := range results {
		m := r.Metrics
		fmt.Fprintf(&b, "%-4d %-15s %8.2f%% ₹%9.0f %5d %5.1f%% %6.2f\n",
			i+1, r.StrategyName, m.TotalReturnPercent, m.TotalReturn,
			m.TotalTrades, m.WinRatePercent, m.SharpeRatio)
	}
	fmt.Fprintln(&b, thin)

	best := results[0].Metrics
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "BEST STRATEGY DETAILS:")
	fmt.Fprintln(&b, strings.Repeat("-", 40))
	fmt.Fprintf(&b, "Strategy: %s\n", results[0].StrategyName)
	fmt.Fprintf(&b, "Total Return: ₹%.2f (%.2f%%)\n", best.TotalReturn, best.TotalReturnPercent)
	fmt.Fprintf(&b, "Final Capital: ₹%.2f\n", best.FinalCapital)
	fmt.Fprintf(&b, "Total Trades: %d\n", best.TotalTrades)
	fmt.Fprintf(&b, "Win Rate: %.1f%%\n", best.WinRatePercent)
	fmt.Fprintf(&b, "Average Profit: ₹%.2f\n", best.AvgProfit)
	fmt.Fprintf(&b, "Average Loss: ₹%.2f\n", math.Abs(best.AvgLoss))
	fmt.Fprintf(&b, "Max Drawdown: %.2f%%\n", best.MaxDrawdownPercent)
	fmt.Fprintf(&b, "Sharpe Ratio: %.2f\n", best.SharpeRatio)

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, rule)
	return b.String()
}
