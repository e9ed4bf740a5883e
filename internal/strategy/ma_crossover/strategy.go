// Package ma_crossover implements a simple/slow moving average
// crossover strategy: long while the short MA is above the long MA.
package ma_crossover

import (
	"fmt"

	"github.com/rmehta/tradesim/internal/core"
	"github.com/rmehta/tradesim/internal/indicator"
	"github.com/rmehta/tradesim/internal/strategy"
)

// MACrossover implements a moving average crossover strategy
type MACrossover struct {
	shortWindow int
	longWindow  int
}

// New creates a new MA Crossover strategy
func New(shortWindow, longWindow int) *MACrossover {
	return &MACrossover{
		shortWindow: shortWindow,
		longWindow:  longWindow,
	}
}

// Default returns the strategy with its stock parameters (20/50).
func Default() strategy.Strategy {
	return New(20, 50)
}

func (m *MACrossover) Name() string {
	return "ma_crossover"
}

func (m *MACrossover) Description() string {
	return fmt.Sprintf("MA Crossover (%d/%d)", m.shortWindow, m.longWindow)
}

func (m *MACrossover) MinBars() int {
	return m.longWindow
}

func (m *MACrossover) GenerateSignals(bars []core.Bar) ([]core.SignalRow, error) {
	if len(bars) < m.MinBars() {
		return nil, nil
	}

	prices := make([]float64, len(bars))
	for i, b := range bars {
		prices[i] = b.Close
	}

	shortMA := indicator.SMA(prices, m.shortWindow)
	longMA := indicator.SMA(prices, m.longWindow)

	rows := make([]core.SignalRow, len(bars))
	for i, b := range bars {
		rows[i] = core.SignalRow{Time: b.Time, Close: b.Close}
		// Stay flat until the short window has real data.
		if i >= m.shortWindow && shortMA[i] > longMA[i] {
			rows[i].Signal = core.SignalLong
		}
	}

	strategy.Diff(rows)
	return rows, nil
}
