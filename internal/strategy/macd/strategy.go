// Package macd implements a trend-following strategy on the MACD
// line: long while MACD is above its signal line.
package macd

import (
	"fmt"

	"github.com/rmehta/tradesim/internal/core"
	"github.com/rmehta/tradesim/internal/indicator"
	"github.com/rmehta/tradesim/internal/strategy"
)

// MACD implements a MACD line/signal line strategy
type MACD struct {
	fast   int
	slow   int
	signal int
}

// New creates a new MACD strategy
func New(fast, slow, signal int) *MACD {
	return &MACD{
		fast:   fast,
		slow:   slow,
		signal: signal,
	}
}

// Default returns the strategy with its stock parameters (12/26/9).
func Default() strategy.Strategy {
	return New(12, 26, 9)
}

func (m *MACD) Name() string {
	return "macd"
}

func (m *MACD) Description() string {
	return fmt.Sprintf("MACD (%d/%d/%d)", m.fast, m.slow, m.signal)
}

func (m *MACD) MinBars() int {
	return m.slow + m.signal
}

func (m *MACD) GenerateSignals(bars []core.Bar) ([]core.SignalRow, error) {
	if len(bars) < m.MinBars() {
		return nil, nil
	}

	prices := make([]float64, len(bars))
	for i, b := range bars {
		prices[i] = b.Close
	}

	line, signalLine := indicator.MACD(prices, m.fast, m.slow, m.signal)

	rows := make([]core.SignalRow, len(bars))
	for i, b := range bars {
		rows[i] = core.SignalRow{Time: b.Time, Close: b.Close}
		if i < m.MinBars() {
			continue
		}
		if line[i] > signalLine[i] {
			rows[i].Signal = core.SignalLong
		}
	}

	strategy.Diff(rows)
	return rows, nil
}
