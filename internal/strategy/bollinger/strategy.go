// Package bollinger implements a mean-reversion strategy on Bollinger
// Bands: long below the lower band, short above the upper band.
package bollinger

import (
	"fmt"

	"github.com/rmehta/tradesim/internal/core"
	"github.com/rmehta/tradesim/internal/indicator"
	"github.com/rmehta/tradesim/internal/strategy"
)

// Bollinger implements a Bollinger Bands strategy
type Bollinger struct {
	window int
	numStd float64
}

// New creates a new Bollinger Bands strategy
func New(window int, numStd float64) *Bollinger {
	return &Bollinger{
		window: window,
		numStd: numStd,
	}
}

// Default returns the strategy with its stock parameters (20, 2σ).
func Default() strategy.Strategy {
	return New(20, 2)
}

func (b *Bollinger) Name() string {
	return "bollinger"
}

func (b *Bollinger) Description() string {
	return fmt.Sprintf("Bollinger Bands (%d, %.0fσ)", b.window, b.numStd)
}

func (b *Bollinger) MinBars() int {
	return b.window
}

func (b *Bollinger) GenerateSignals(bars []core.Bar) ([]core.SignalRow, error) {
	if len(bars) < b.MinBars() {
		return nil, nil
	}

	prices := make([]float64, len(bars))
	for i, bar := range bars {
		prices[i] = bar.Close
	}

	_, upper, lower := indicator.Bollinger(prices, b.window, b.numStd)

	rows := make([]core.SignalRow, len(bars))
	for i, bar := range bars {
		rows[i] = core.SignalRow{Time: bar.Time, Close: bar.Close}
		if i < b.window-1 {
			continue // bands not fully formed
		}
		switch {
		case bar.Close < lower[i]:
			rows[i].Signal = core.SignalLong
		case bar.Close > upper[i]:
			rows[i].Signal = core.SignalShort
		}
	}

	strategy.Diff(rows)
	return rows, nil
}
