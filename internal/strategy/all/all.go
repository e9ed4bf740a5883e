// Package all registers every built-in strategy. Registration order
// is the canonical ranking tie-break order.
package all

import (
	"github.com/rmehta/tradesim/internal/strategy"
	"github.com/rmehta/tradesim/internal/strategy/bollinger"
	"github.com/rmehta/tradesim/internal/strategy/ma_crossover"
	"github.com/rmehta/tradesim/internal/strategy/macd"
	"github.com/rmehta/tradesim/internal/strategy/rsi"
	"github.com/rmehta/tradesim/internal/strategy/supertrend"
)

// Register adds the built-in strategies to the registry.
func Register(r *strategy.Registry) {
	r.Register("ma_crossover", ma_crossover.Default)
	r.Register("rsi", rsi.Default)
	r.Register("macd", macd.Default)
	r.Register("bollinger", bollinger.Default)
	r.Register("supertrend", supertrend.Default)
}

// NewRegistry returns a registry with all built-in strategies.
func NewRegistry() *strategy.Registry {
	r := strategy.NewRegistry()
	Register(r)
	return r
}
