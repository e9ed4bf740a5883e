// Package static implements an in-memory marketdata.Provider seeded
// with fixed bars and quotes. It backs the paper-trading demo and any
// test that needs deterministic prices without network access.
package static

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rmehta/tradesim/internal/core"
)

// Static serves bars and last prices from memory.
type Static struct {
	mu     sync.RWMutex
	bars   map[string][]core.Bar
	quotes map[string]float64
}

// New creates an empty static provider.
func New() *Static {
	return &Static{
		bars:   make(map[string][]core.Bar),
		quotes: make(map[string]float64),
	}
}

func (s *Static) Name() string {
	return "static"
}

// SetBars seeds the historical series for a symbol. The slice is
// stored as-is and must be date-ascending.
func (s *Static) SetBars(symbol string, bars []core.Bar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bars[symbol] = bars
	if len(bars) > 0 {
		s.quotes[symbol] = bars[len(bars)-1].Close
	}
}

// SetPrice sets the current quote for a symbol, independent of any
// seeded bars.
func (s *Static) SetPrice(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[symbol] = price
}

// History returns the seeded bars falling within [start, end]. An
// unseeded symbol yields an empty slice, not an error.
func (s *Static) History(_ context.Context, symbol string, start, end time.Time) ([]core.Bar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.bars[symbol]
	result := make([]core.Bar, 0, len(all))
	for _, b := range all {
		if b.Time.Before(start) || b.Time.After(end) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

// LastPrice returns the seeded quote for the symbol.
func (s *Static) LastPrice(_ context.Context, symbol string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	price, ok := s.quotes[symbol]
	if !ok {
		return 0, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("no quote for symbol: %s", symbol))
	}
	return price, nil
}
