// Package ledger implements a paper-trading account: orders execute
// against live quotes but positions, cash, and P&L exist only in
// memory. All monetary state is guarded by a single mutex so callers
// can share one account across goroutines.
package ledger

import (
	"errors"
	"time"

	"github.com/rmehta/tradesim/internal/core"
)

// Ledger-specific errors. Order rejections leave account state untouched.
var (
	// ErrInvalidQuantity indicates a non-positive order quantity.
	ErrInvalidQuantity = errors.New("ledger: invalid quantity")
	// ErrInvalidPrice indicates a non-positive resolved price.
	ErrInvalidPrice = errors.New("ledger: invalid price")
	// ErrPriceUnavailable indicates the provider could not quote the symbol.
	ErrPriceUnavailable = errors.New("ledger: price unavailable")
	// ErrInsufficientFunds indicates a buy exceeding available cash.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
	// ErrNoPosition indicates a sell with no open position.
	ErrNoPosition = errors.New("ledger: no position to sell")
	// ErrInsufficientQuantity indicates a sell exceeding the held quantity.
	ErrInsufficientQuantity = errors.New("ledger: insufficient position quantity")
	// ErrOrderNotFound indicates an unknown order id.
	ErrOrderNotFound = errors.New("ledger: order not found")
	// ErrOrderNotPending indicates the order already reached a final state.
	ErrOrderNotPending = errors.New("ledger: order is not pending")
)

// OrderType represents the type of order execution.
type OrderType string

const (
	// OrderTypeMarket executes immediately at the resolved price.
	OrderTypeMarket OrderType = "MARKET"
	// OrderTypeLimit stays pending until explicitly executed.
	OrderTypeLimit OrderType = "LIMIT"
)

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusExecuted OrderStatus = "EXECUTED"
)

// Position represents a holding in the paper account, keyed by
// exchange:symbol.
type Position struct {
	Symbol               string        `json:"symbol"`
	Exchange             core.Exchange `json:"exchange"`
	Quantity             int64         `json:"quantity"`
	AveragePrice         float64       `json:"average_price"`
	CurrentPrice         float64       `json:"current_price"`
	UnrealizedPnL        float64       `json:"unrealized_pnl"`
	UnrealizedPnLPercent float64       `json:"unrealized_pnl_percent"`
	LastUpdate           time.Time     `json:"last_update"`
}

// Order represents an order placed against the paper account.
type Order struct {
	ID        string        `json:"order_id"`
	Symbol    string        `json:"symbol"`
	Exchange  core.Exchange `json:"exchange"`
	Side      core.Side     `json:"side"`
	Quantity  int64         `json:"quantity"`
	Price     float64       `json:"price"`
	Type      OrderType     `json:"order_type"`
	Status    OrderStatus   `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Trade represents an executed order fill.
type Trade struct {
	ID       string        `json:"trade_id"`
	OrderID  string        `json:"order_id"`
	Symbol   string        `json:"symbol"`
	Exchange core.Exchange `json:"exchange"`
	Side     core.Side     `json:"side"`
	Quantity int64         `json:"quantity"`
	Price    float64       `json:"price"`
	Time     time.Time     `json:"timestamp"`
}

// PerformanceMetrics summarizes account performance. Trade counters
// track completed round trips: a sell fill counts as one trade, won or
// lost against the position's average cost at fill time.
type PerformanceMetrics struct {
	InitialCapital     float64 `json:"initial_capital"`
	CurrentCapital     float64 `json:"current_capital"`
	PortfolioValue     float64 `json:"portfolio_value"`
	TotalReturn        float64 `json:"total_return"`
	TotalReturnPercent float64 `json:"total_return_percent"`
	TotalTrades        int     `json:"total_trades"`
	WinningTrades      int     `json:"winning_trades"`
	LosingTrades       int     `json:"losing_trades"`
	WinRatePercent     float64 `json:"win_rate"`
	TotalProfit        float64 `json:"total_profit"`
	TotalLoss          float64 `json:"total_loss"`
	AvgProfit          float64 `json:"avg_profit"`
	AvgLoss            float64 `json:"avg_loss"`
}
