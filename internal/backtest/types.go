// Package backtest contains the trade-lifecycle simulator and the
// performance evaluator. Both are pure, single-pass computations over
// an already-materialized bar series; neither performs I/O.
package backtest

import (
	"time"

	"github.com/rmehta/tradesim/internal/core"
)

// Params controls a simulation run. All percentages are fractions in
// (0, 1].
type Params struct {
	StopLossPct     float64
	TargetPct       float64
	PositionSizePct float64
	InitialCapital  float64
}

// DefaultParams returns the stock simulation parameters.
func DefaultParams() Params {
	return Params{
		StopLossPct:     0.05,
		TargetPct:       0.10,
		PositionSizePct: 0.10,
		InitialCapital:  100000,
	}
}

// Validate checks the parameters for errors.
func (p Params) Validate() error {
	for _, pct := range []float64{p.StopLossPct, p.TargetPct, p.PositionSizePct} {
		if pct <= 0 || pct > 1 {
			return core.ErrInvalidParams
		}
	}
	if p.InitialCapital <= 0 {
		return core.ErrInvalidParams
	}
	return nil
}

// Trade is one simulated round trip. Entry fields are set at open;
// the exit fields are written exactly once by close(), after which
// the trade is immutable. A trade with an empty CloseReason is open.
type Trade struct {
	Symbol     string
	Side       core.Side
	EntryTime  time.Time
	EntryPrice float64
	Quantity   int64

	ExitTime    time.Time
	ExitPrice   float64
	PnL         float64
	PnLPercent  float64
	CloseReason core.CloseReason
}

// IsClosed returns true if the trade has been exited.
func (t Trade) IsClosed() bool {
	return t.CloseReason != ""
}

// IsWin returns true if the trade was closed at a profit.
func (t Trade) IsWin() bool {
	return t.IsClosed() && t.PnL > 0
}

// close fills the exit fields. It must be called at most once.
func (t *Trade) close(at time.Time, price float64, reason core.CloseReason) {
	t.ExitTime = at
	t.ExitPrice = price
	t.PnL = (price - t.EntryPrice) * float64(t.Quantity)
	t.PnLPercent = t.PnL / (t.EntryPrice * float64(t.Quantity)) * 100
	t.CloseReason = reason
}

// EquityPoint is one mark-to-market snapshot of the simulated account.
type EquityPoint struct {
	Time           time.Time
	PortfolioValue float64
	Cash           float64
	PositionsValue float64
}

// Metrics is the full performance record derived from a trade list
// and equity curve. It is recomputed whole, never updated in place.
type Metrics struct {
	StartDate          time.Time
	EndDate            time.Time
	InitialCapital     float64
	FinalCapital       float64
	TotalReturn        float64
	TotalReturnPercent float64
	TotalTrades        int
	WinningTrades      int
	LosingTrades       int
	WinRatePercent     float64
	AvgProfit          float64
	AvgLoss            float64
	MaxDrawdownPercent float64
	SharpeRatio        float64
	Trades             []Trade
	EquityCurve        []EquityPoint
}
