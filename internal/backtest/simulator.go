package backtest

import (
	"math"

	"github.com/rmehta/tradesim/internal/core"
)

// Simulate walks bars and their parallel signal rows once, in
// timestamp order, and produces the closed trades and equity curve.
//
// Per bar the order of evaluation is fixed: exits on open trades
// (stop-loss before target, mutually exclusive), then a new entry on
// a +1 position trigger, then a close-all on a -1 trigger, then the
// equity snapshot. Any trade still open after the last bar is closed
// at the final price with reason end_of_period. This ordering is a
// correctness requirement, not an optimization.
//
// Empty bars are a no-signal condition and yield empty results with a
// nil error. Misaligned series and out-of-range parameters are
// programming errors and fail loudly.
func Simulate(bars []core.Bar, rows []core.SignalRow, p Params) ([]Trade, []EquityPoint, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	if len(bars) == 0 || len(rows) == 0 {
		return []Trade{}, []EquityPoint{}, nil
	}

	if err := checkAlignment(bars, rows); err != nil {
		return nil, nil, err
	}

	capital := p.InitialCapital
	trades := make([]Trade, 0)
	open := make([]*Trade, 0, 1)
	equity := make([]EquityPoint, 0, len(bars))

	for i := range bars {
		bar := bars[i]
		row := rows[i]
		price := bar.Close

		// Exit rules run before the entry check on the same bar.
		// Stop-loss wins when a bar satisfies both thresholds.
		remaining := open[:0]
		for _, tr := range open {
			switch {
			case price <= tr.EntryPrice*(1-p.StopLossPct):
				tr.close(bar.Time, price, core.CloseReasonStopLoss)
				capital += price * float64(tr.Quantity)
				trades = append(trades, *tr)
			case price >= tr.EntryPrice*(1+p.TargetPct):
				tr.close(bar.Time, price, core.CloseReasonTarget)
				capital += price * float64(tr.Quantity)
				trades = append(trades, *tr)
			default:
				remaining = append(remaining, tr)
			}
		}
		open = remaining

		// One open trade per symbol: a fresh +1 trigger is ignored
		// while a position is held.
		if position(row) == 1 && len(open) == 0 {
			qty := int64(math.Floor(capital * p.PositionSizePct / price))
			if qty > 0 {
				open = append(open, &Trade{
					Symbol:     bar.Symbol,
					Side:       core.SideBuy,
					EntryTime:  bar.Time,
					EntryPrice: price,
					Quantity:   qty,
				})
				capital -= price * float64(qty)
			}
		}

		if position(row) == -1 {
			for _, tr := range open {
				tr.close(bar.Time, price, core.CloseReasonSignal)
				capital += price * float64(tr.Quantity)
				trades = append(trades, *tr)
			}
			open = open[:0]
		}

		positionsValue := 0.0
		for _, tr := range open {
			positionsValue += price * float64(tr.Quantity)
		}
		equity = append(equity, EquityPoint{
			Time:           bar.Time,
			PortfolioValue: capital + positionsValue,
			Cash:           capital,
			PositionsValue: positionsValue,
		})
	}

	// End-of-period closure for whatever is still open.
	last := bars[len(bars)-1]
	for _, tr := range open {
		tr.close(last.Time, last.Close, core.CloseReasonEndOfPeriod)
		capital += last.Close * float64(tr.Quantity)
		trades = append(trades, *tr)
	}

	return trades, equity, nil
}

// position reads the row's entry/exit trigger. Values outside
// {-1, 0, 1} mean no action, mirroring how undefined signals are
// treated as zero.
func position(row core.SignalRow) int {
	switch row.Position {
	case 1, -1:
		return row.Position
	default:
		return 0
	}
}

// checkAlignment verifies bars and rows are the same series.
func checkAlignment(bars []core.Bar, rows []core.SignalRow) error {
	if len(bars) != len(rows) {
		return core.ErrMisalignedSeries
	}
	for i := range bars {
		if !bars[i].Time.Equal(rows[i].Time) {
			return core.ErrMisalignedSeries
		}
	}
	return nil
}
