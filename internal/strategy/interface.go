// Package strategy defines the signal-generation interface the
// simulator and optimizer consume, and a registry that maps strategy
// names to factories.
package strategy

import (
	"github.com/rmehta/tradesim/internal/core"
)

// Strategy turns a bar series into a parallel signal series.
type Strategy interface {
	// Name returns the registry key for this strategy.
	Name() string
	// Description returns a human-readable summary.
	Description() string
	// MinBars returns the minimum history length required before the
	// strategy can produce signals.
	MinBars() int
	// GenerateSignals maps bars to one SignalRow per bar, preserving
	// order and timestamps. It returns nil rows and nil error when
	// the history is shorter than MinBars.
	GenerateSignals(bars []core.Bar) ([]core.SignalRow, error)
}

// Factory constructs a strategy with its default parameters.
type Factory func() Strategy

// Diff fills in the Position column of rows as the first difference
// of Signal. The first row has no predecessor and gets position 0.
func Diff(rows []core.SignalRow) {
	for i := range rows {
		if i == 0 {
			rows[i].Position = 0
			continue
		}
		rows[i].Position = rows[i].Signal - rows[i-1].Signal
	}
}
