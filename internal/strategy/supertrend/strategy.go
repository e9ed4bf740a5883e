// Package supertrend implements a volatility-band breakout strategy:
// long while the close is above the ATR upper band around the bar
// midpoint.
package supertrend

import (
	"fmt"

	"github.com/rmehta/tradesim/internal/core"
	"github.com/rmehta/tradesim/internal/indicator"
	"github.com/rmehta/tradesim/internal/strategy"
)

// Supertrend implements an ATR band breakout strategy
type Supertrend struct {
	atrPeriod  int
	multiplier float64
}

// New creates a new Supertrend strategy
func New(atrPeriod int, multiplier float64) *Supertrend {
	return &Supertrend{
		atrPeriod:  atrPeriod,
		multiplier: multiplier,
	}
}

// Default returns the strategy with its stock parameters (ATR 10, ×3).
func Default() strategy.Strategy {
	return New(10, 3)
}

func (s *Supertrend) Name() string {
	return "supertrend"
}

func (s *Supertrend) Description() string {
	return fmt.Sprintf("Supertrend (ATR %d, x%.0f)", s.atrPeriod, s.multiplier)
}

func (s *Supertrend) MinBars() int {
	return s.atrPeriod
}

func (s *Supertrend) GenerateSignals(bars []core.Bar) ([]core.SignalRow, error) {
	if len(bars) < s.MinBars() {
		return nil, nil
	}

	high := make([]float64, len(bars))
	low := make([]float64, len(bars))
	closes := make([]float64, len(bars))
	for i, b := range bars {
		high[i] = b.High
		low[i] = b.Low
		closes[i] = b.Close
	}

	atr := indicator.ATR(high, low, closes, s.atrPeriod)

	rows := make([]core.SignalRow, len(bars))
	for i, b := range bars {
		rows[i] = core.SignalRow{Time: b.Time, Close: b.Close}
		if i < s.atrPeriod {
			continue
		}
		hl2 := (b.High + b.Low) / 2
		upperBand := hl2 + s.multiplier*atr[i]
		if b.Close > upperBand {
			rows[i].Signal = core.SignalLong
		}
	}

	strategy.Diff(rows)
	return rows, nil
}
