// Package rsi implements a mean-reversion strategy on the Relative
// Strength Index: long below the oversold level, short above the
// overbought level.
package rsi

import (
	"fmt"

	"github.com/rmehta/tradesim/internal/core"
	"github.com/rmehta/tradesim/internal/indicator"
	"github.com/rmehta/tradesim/internal/strategy"
)

// RSI implements an RSI oversold/overbought strategy
type RSI struct {
	window     int
	oversold   float64
	overbought float64
}

// New creates a new RSI strategy
func New(window int, oversold, overbought float64) *RSI {
	return &RSI{
		window:     window,
		oversold:   oversold,
		overbought: overbought,
	}
}

// Default returns the strategy with its stock parameters (14, 30/70).
func Default() strategy.Strategy {
	return New(14, 30, 70)
}

func (r *RSI) Name() string {
	return "rsi"
}

func (r *RSI) Description() string {
	return fmt.Sprintf("RSI (%d, %.0f/%.0f)", r.window, r.oversold, r.overbought)
}

func (r *RSI) MinBars() int {
	return r.window
}

func (r *RSI) GenerateSignals(bars []core.Bar) ([]core.SignalRow, error) {
	if len(bars) < r.MinBars() {
		return nil, nil
	}

	prices := make([]float64, len(bars))
	for i, b := range bars {
		prices[i] = b.Close
	}

	values := indicator.RSI(prices, r.window)

	rows := make([]core.SignalRow, len(bars))
	for i, b := range bars {
		rows[i] = core.SignalRow{Time: b.Time, Close: b.Close}
		if i <= r.window {
			continue // warmup, no reading yet
		}
		switch {
		case values[i] < r.oversold:
			rows[i].Signal = core.SignalLong
		case values[i] > r.overbought:
			rows[i].Signal = core.SignalShort
		}
	}

	strategy.Diff(rows)
	return rows, nil
}
