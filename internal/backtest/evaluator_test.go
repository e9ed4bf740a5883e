package backtest

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func closedTrade(pnl float64) Trade {
	t := Trade{Symbol: "TEST", Quantity: 10, EntryPrice: 100}
	t.close(time.Now(), 100+pnl/10, "signal")
	return t
}

func TestEvaluate_Empty(t *testing.T) {
	m := Evaluate(nil, nil, 100000, DefaultAnnualization)

	if m.TotalTrades != 0 {
		t.Errorf("TotalTrades = %d, want 0", m.TotalTrades)
	}
	if m.FinalCapital != 100000 {
		t.Errorf("FinalCapital = %f, want 100000", m.FinalCapital)
	}
	if m.WinRatePercent != 0 || m.SharpeRatio != 0 || m.MaxDrawdownPercent != 0 {
		t.Error("empty input should produce an all-zero record")
	}
}

func TestEvaluate_Counts(t *testing.T) {
	trades := []Trade{
		closedTrade(500),
		closedTrade(-200),
		closedTrade(300),
		closedTrade(0), // breakeven: counted in neither bucket
	}

	m := Evaluate(trades, nil, 100000, DefaultAnnualization)

	if m.TotalTrades != 4 {
		t.Errorf("TotalTrades = %d, want 4", m.TotalTrades)
	}
	if m.WinningTrades != 2 {
		t.Errorf("WinningTrades = %d, want 2", m.WinningTrades)
	}
	if m.LosingTrades != 1 {
		t.Errorf("LosingTrades = %d, want 1", m.LosingTrades)
	}
	if m.WinRatePercent != 50 {
		t.Errorf("WinRatePercent = %f, want 50", m.WinRatePercent)
	}
	if m.AvgProfit != 400 {
		t.Errorf("AvgProfit = %f, want 400", m.AvgProfit)
	}
	if m.AvgLoss != -200 {
		t.Errorf("AvgLoss = %f, want -200 (sign retained)", m.AvgLoss)
	}
	if m.TotalReturn != 600 {
		t.Errorf("TotalReturn = %f, want 600", m.TotalReturn)
	}
	if m.FinalCapital != 100600 {
		t.Errorf("FinalCapital = %f, want 100600", m.FinalCapital)
	}
	if math.Abs(m.TotalReturnPercent-0.6) > 1e-9 {
		t.Errorf("TotalReturnPercent = %f, want 0.6", m.TotalReturnPercent)
	}
}

func equityFrom(values []float64) []EquityPoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := make([]EquityPoint, len(values))
	for i, v := range values {
		pts[i] = EquityPoint{Time: base.AddDate(0, 0, i), PortfolioValue: v, Cash: v}
	}
	return pts
}

func TestMaxDrawdown(t *testing.T) {
	// Peak 110, trough 88: drawdown = -20%
	equity := equityFrom([]float64{100, 110, 99, 88, 104})

	m := Evaluate(nil, equity, 100000, DefaultAnnualization)

	if math.Abs(m.MaxDrawdownPercent-(-20)) > 1e-9 {
		t.Errorf("MaxDrawdownPercent = %f, want -20", m.MaxDrawdownPercent)
	}
}

func TestMaxDrawdown_NeverPositive(t *testing.T) {
	cases := [][]float64{
		{100, 105, 110, 120},     // monotonic rise
		{100, 100, 100},          // flat
		{100, 90, 95, 85},        // declines
		{},                       // empty
	}

	for i, values := range cases {
		m := Evaluate(nil, equityFrom(values), 100000, DefaultAnnualization)
		if m.MaxDrawdownPercent > 0 {
			t.Errorf("case %d: MaxDrawdownPercent = %f, must be <= 0", i, m.MaxDrawdownPercent)
		}
	}
}

func TestSharpeRatio_FlatCurveIsZero(t *testing.T) {
	equity := equityFrom([]float64{100, 100, 100, 100})
	m := Evaluate(nil, equity, 100000, DefaultAnnualization)
	if m.SharpeRatio != 0 {
		t.Errorf("SharpeRatio = %f, want 0 for zero volatility", m.SharpeRatio)
	}
}

func TestSharpeRatio_TooFewPoints(t *testing.T) {
	m := Evaluate(nil, equityFrom([]float64{100}), 100000, DefaultAnnualization)
	if m.SharpeRatio != 0 {
		t.Errorf("SharpeRatio = %f, want 0 for a single point", m.SharpeRatio)
	}
}

func TestSharpeRatio_Annualization(t *testing.T) {
	equity := equityFrom([]float64{100, 102, 101, 104, 103, 107})

	daily := Evaluate(nil, equity, 100000, 252)
	hourly := Evaluate(nil, equity, 100000, 252*6.5)

	if daily.SharpeRatio == 0 {
		t.Fatal("expected nonzero sharpe for a volatile curve")
	}
	ratio := hourly.SharpeRatio / daily.SharpeRatio
	want := math.Sqrt(6.5)
	if math.Abs(ratio-want) > 1e-9 {
		t.Errorf("annualization scaling = %f, want %f", ratio, want)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	trades := []Trade{closedTrade(500), closedTrade(-100)}
	equity := equityFrom([]float64{100000, 100500, 100400})

	a := Evaluate(trades, equity, 100000, DefaultAnnualization)
	b := Evaluate(trades, equity, 100000, DefaultAnnualization)

	if !reflect.DeepEqual(a, b) {
		t.Error("Evaluate must be deterministic for identical inputs")
	}
}

func TestEvaluate_DatesFromCurve(t *testing.T) {
	equity := equityFrom([]float64{100, 101, 102})
	m := Evaluate(nil, equity, 100000, DefaultAnnualization)

	if !m.StartDate.Equal(equity[0].Time) || !m.EndDate.Equal(equity[2].Time) {
		t.Errorf("dates = %v..%v, want curve bounds", m.StartDate, m.EndDate)
	}
}
