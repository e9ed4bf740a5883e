package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// Backtest metrics
	backtestsTotal   *prometheus.CounterVec
	backtestDuration prometheus.Histogram

	// Optimizer metrics
	optimizationsTotal   prometheus.Counter
	optimizationDuration prometheus.Histogram

	// Ledger metrics
	ledgerOrdersTotal   *prometheus.CounterVec
	ledgerCash          prometheus.Gauge
	ledgerPortfolio     prometheus.Gauge
	ledgerOpenPositions prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		backtestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradesim_backtests_total",
				Help: "Total number of backtests run",
			},
			[]string{"strategy", "status"},
		),

		backtestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tradesim_backtest_duration_seconds",
				Help:    "Backtest duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		optimizationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tradesim_optimizations_total",
				Help: "Total number of optimization runs",
			},
		),

		optimizationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tradesim_optimization_duration_seconds",
				Help:    "Optimization run duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),

		ledgerOrdersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradesim_ledger_orders_total",
				Help: "Total number of ledger orders by side and status",
			},
			[]string{"side", "status"},
		),

		ledgerCash: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradesim_ledger_cash",
				Help: "Current ledger cash balance",
			},
		),

		ledgerPortfolio: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradesim_ledger_portfolio_value",
				Help: "Current ledger portfolio value including positions",
			},
		),

		ledgerOpenPositions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradesim_ledger_open_positions",
				Help: "Number of open ledger positions",
			},
		),
	}

	reg.MustRegister(r.backtestsTotal)
	reg.MustRegister(r.backtestDuration)
	reg.MustRegister(r.optimizationsTotal)
	reg.MustRegister(r.optimizationDuration)
	reg.MustRegister(r.ledgerOrdersTotal)
	reg.MustRegister(r.ledgerCash)
	reg.MustRegister(r.ledgerPortfolio)
	reg.MustRegister(r.ledgerOpenPositions)

	return r
}

// RecordBacktest records a backtest completion.
func (r *Registry) RecordBacktest(strategy, status string, duration float64) {
	r.backtestsTotal.WithLabelValues(strategy, status).Inc()
	r.backtestDuration.Observe(duration)
}

// RecordOptimization records an optimization run completion.
func (r *Registry) RecordOptimization(duration float64) {
	r.optimizationsTotal.Inc()
	r.optimizationDuration.Observe(duration)
}

// RecordOrder records a ledger order outcome.
func (r *Registry) RecordOrder(side, status string) {
	r.ledgerOrdersTotal.WithLabelValues(side, status).Inc()
}

// SetLedgerState updates the ledger account gauges.
func (r *Registry) SetLedgerState(cash, portfolioValue float64, openPositions int) {
	r.ledgerCash.Set(cash)
	r.ledgerPortfolio.Set(portfolioValue)
	r.ledgerOpenPositions.Set(float64(openPositions))
}
