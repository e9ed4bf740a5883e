package backtest

import "math"

// DefaultAnnualization is the bars-per-year factor for the Sharpe
// ratio, assuming daily bars.
const DefaultAnnualization = 252

// Evaluate reduces a trade list and equity curve to a Metrics record.
// It is a deterministic pure function of its inputs; calling it twice
// on the same inputs yields identical results. Zero trades is a valid
// outcome and produces an all-zero record, not an error.
func Evaluate(trades []Trade, equity []EquityPoint, initialCapital, annualization float64) Metrics {
	m := Metrics{
		InitialCapital: initialCapital,
		FinalCapital:   initialCapital,
		Trades:         trades,
		EquityCurve:    equity,
	}

	if len(equity) > 0 {
		m.StartDate = equity[0].Time
		m.EndDate = equity[len(equity)-1].Time
	}

	var totalPnL, profitSum, lossSum float64
	for _, t := range trades {
		totalPnL += t.PnL
		switch {
		case t.PnL > 0:
			m.WinningTrades++
			profitSum += t.PnL
		case t.PnL < 0:
			m.LosingTrades++
			lossSum += t.PnL
		}
	}

	m.TotalTrades = len(trades)
	m.TotalReturn = totalPnL
	m.FinalCapital = initialCapital + totalPnL
	if initialCapital > 0 {
		m.TotalReturnPercent = totalPnL / initialCapital * 100
	}
	if m.TotalTrades > 0 {
		m.WinRatePercent = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
	}
	if m.WinningTrades > 0 {
		m.AvgProfit = profitSum / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AvgLoss = lossSum / float64(m.LosingTrades) // retains sign
	}

	m.MaxDrawdownPercent = maxDrawdown(equity) * 100
	m.SharpeRatio = sharpeRatio(equity, annualization)

	return m
}

// maxDrawdown returns the most negative fractional decline of
// portfolio value from its running peak, or 0 for an empty curve.
// The result is always <= 0.
func maxDrawdown(equity []EquityPoint) float64 {
	var maxDD float64
	var peak float64

	for _, pt := range equity {
		if pt.PortfolioValue > peak {
			peak = pt.PortfolioValue
		}
		if peak > 0 {
			dd := (pt.PortfolioValue - peak) / peak
			if dd < maxDD {
				maxDD = dd
			}
		}
	}

	return maxDD
}

// sharpeRatio computes the annualized ratio of mean to sample
// standard deviation of per-point portfolio returns. Fewer than two
// equity points or zero volatility yields 0.
func sharpeRatio(equity []EquityPoint, annualization float64) float64 {
	if len(equity) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].PortfolioValue
		if prev == 0 {
			continue
		}
		returns = append(returns, (equity[i].PortfolioValue-prev)/prev)
	}

	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(returns)-1))

	if stdDev == 0 {
		return 0
	}

	return mean / stdDev * math.Sqrt(annualization)
}
