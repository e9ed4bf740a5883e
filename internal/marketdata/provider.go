// Package marketdata defines the price-series boundary the simulator,
// optimizer, and ledger consume, and a registry for provider plugins.
package marketdata

import (
	"context"
	"time"

	"github.com/rmehta/tradesim/internal/core"
)

// Provider fetches historical and current prices for a symbol.
type Provider interface {
	// Name returns the provider identifier (e.g. "yahoo", "static").
	Name() string

	// History returns date-ascending bars for the symbol over
	// [start, end]. An empty slice means no data, not an error. Any
	// non-empty result has all required fields populated.
	History(ctx context.Context, symbol string, start, end time.Time) ([]core.Bar, error)

	// LastPrice returns the most recent traded price for the symbol.
	LastPrice(ctx context.Context, symbol string) (float64, error)
}
