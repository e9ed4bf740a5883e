// Package optimizer runs every registered strategy over one symbol's
// history and ranks the results. Data is fetched once; strategies are
// evaluated concurrently and a failing strategy never aborts the run.
package optimizer

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rmehta/tradesim/internal/backtest"
	"github.com/rmehta/tradesim/internal/core"
	"github.com/rmehta/tradesim/internal/marketdata"
	"github.com/rmehta/tradesim/internal/metrics"
	"github.com/rmehta/tradesim/internal/strategy"
)

// Request describes one optimization run.
type Request struct {
	Symbol     string
	Start, End time.Time

	// Strategies limits the run to the named strategies. Empty means
	// every registered strategy.
	Strategies []string

	Params backtest.Params

	// Annualization is the Sharpe scaling factor; zero means the
	// daily-bar default.
	Annualization float64
}

// Result pairs a strategy name with its backtest performance.
type Result struct {
	StrategyName string
	Metrics      backtest.Metrics
}

// Optimizer ranks strategies by backtested return.
type Optimizer struct {
	provider marketdata.Provider
	registry *strategy.Registry
	log      *zap.Logger
	metrics  *metrics.Registry
}

// Option configures the optimizer.
type Option func(*Optimizer)

// WithMetrics wires run counters into the registry.
func WithMetrics(reg *metrics.Registry) Option {
	return func(o *Optimizer) { o.metrics = reg }
}

// New creates an optimizer over the given provider and strategies.
func New(provider marketdata.Provider, registry *strategy.Registry, log *zap.Logger, opts ...Option) *Optimizer {
	o := &Optimizer{
		provider: provider,
		registry: registry,
		log:      log,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize backtests the requested strategies against one fetch of the
// symbol's history and returns results sorted by return percentage,
// best first. Ties keep registration order. Strategies that fail or
// produce no signals are logged and omitted. No data for the symbol
// yields an empty result set, not an error.
func (o *Optimizer) Optimize(ctx context.Context, req Request) ([]Result, error) {
	if err := req.Params.Validate(); err != nil {
		return nil, err
	}
	annualization := req.Annualization
	if annualization == 0 {
		annualization = backtest.DefaultAnnualization
	}

	started := time.Now()
	o.log.Info("optimizing strategies",
		zap.String("symbol", req.Symbol),
		zap.Time("start", req.Start),
		zap.Time("end", req.End))

	bars, err := o.provider.History(ctx, req.Symbol, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		o.log.Warn("no historical data", zap.String("symbol", req.Symbol))
		return []Result{}, nil
	}
	o.log.Info("history fetched",
		zap.String("symbol", req.Symbol), zap.Int("bars", len(bars)))

	names := req.Strategies
	if len(names) == 0 {
		names = o.registry.Names()
	}

	// One slot per strategy keeps output deterministic regardless of
	// goroutine completion order.
	slots := make([]*Result, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			slots[i] = o.runOne(name, bars, req.Params, annualization)
		}(i, name)
	}
	wg.Wait()

	results := make([]Result, 0, len(names))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.TotalReturnPercent > results[j].Metrics.TotalReturnPercent
	})

	if o.metrics != nil {
		o.metrics.RecordOptimization(time.Since(started).Seconds())
	}
	return results, nil
}

// runOne backtests a single strategy. A nil return means the strategy
// was skipped; the cause has been logged.
func (o *Optimizer) runOne(name string, bars []core.Bar, params backtest.Params, annualization float64) *Result {
	started := time.Now()

	strat, ok := o.registry.Get(name)
	if !ok {
		o.log.Warn("strategy not registered", zap.String("strategy", name))
		return nil
	}

	rows, err := strat.GenerateSignals(bars)
	if err != nil {
		o.recordBacktest(name, "failed", started)
		o.log.Warn("signal generation failed",
			zap.String("strategy", name), zap.Error(err))
		return nil
	}
	if len(rows) == 0 {
		o.recordBacktest(name, "skipped", started)
		o.log.Warn("no signals generated",
			zap.String("strategy", name), zap.Int("bars", len(bars)))
		return nil
	}

	trades, equity, err := backtest.Simulate(bars, rows, params)
	if err != nil {
		o.recordBacktest(name, "failed", started)
		o.log.Warn("simulation failed",
			zap.String("strategy", name), zap.Error(err))
		return nil
	}

	m := backtest.Evaluate(trades, equity, params.InitialCapital, annualization)
	o.recordBacktest(name, "success", started)
	o.log.Info("strategy backtested",
		zap.String("strategy", name),
		zap.Float64("return_percent", m.TotalReturnPercent),
		zap.Int("trades", m.TotalTrades))
	return &Result{StrategyName: name, Metrics: m}
}

func (o *Optimizer) recordBacktest(name, status string, started time.Time) {
	if o.metrics != nil {
		o.metrics.RecordBacktest(name, status, time.Since(started).Seconds())
	}
}

// FindBest runs Optimize and returns the top strategy with at least
// minTrades closed trades, or nil when none qualify.
func (o *Optimizer) FindBest(ctx context.Context, req Request, minTrades int) (*Result, error) {
	results, err := o.Optimize(ctx, req)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].Metrics.TotalTrades >= minTrades {
			return &results[i], nil
		}
	}
	o.log.Warn("no strategies met the trade minimum",
		zap.String("symbol", req.Symbol), zap.Int("min_trades", minTrades))
	return nil, nil
}
