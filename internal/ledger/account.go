package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rmehta/tradesim/internal/core"
	"github.com/rmehta/tradesim/internal/marketdata"
	"github.com/rmehta/tradesim/internal/metrics"
)

// Account is a paper-trading account. Orders resolve prices through
// the provider, market orders execute synchronously, and limit orders
// stay pending until ExecuteOrder is called.
type Account struct {
	mu sync.Mutex

	initialCapital float64
	cash           float64
	positions      map[string]*Position // exchange:symbol -> position
	orders         map[string]*Order
	orderIDs       []string // placement order, for history
	trades         []Trade

	// Round-trip counters, updated on sell fills.
	totalTrades   int
	winningTrades int
	losingTrades  int
	totalProfit   float64
	totalLoss     float64

	provider marketdata.Provider
	log      *zap.Logger
	metrics  *metrics.Registry
}

// Option configures the account.
type Option func(*Account)

// WithMetrics wires order and balance gauges into the registry.
func WithMetrics(reg *metrics.Registry) Option {
	return func(a *Account) { a.metrics = reg }
}

// New creates a paper account funded with initialCapital.
func New(initialCapital float64, provider marketdata.Provider, log *zap.Logger, opts ...Option) *Account {
	a := &Account{
		initialCapital: initialCapital,
		cash:           initialCapital,
		positions:      make(map[string]*Position),
		orders:         make(map[string]*Order),
		provider:       provider,
		log:            log,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log.Info("paper account initialized",
		zap.Float64("initial_capital", initialCapital),
		zap.String("provider", provider.Name()))
	return a
}

func positionKey(exchange core.Exchange, symbol string) string {
	return fmt.Sprintf("%s:%s", exchange, symbol)
}

// PlaceOrder validates and places an order. Price nil means resolve
// the current quote from the provider. A rejected order returns an
// empty id and a sentinel error, leaving account state untouched.
// Market orders execute before returning.
func (a *Account) PlaceOrder(ctx context.Context, symbol string, exchange core.Exchange,
	side core.Side, quantity int64, price *float64, orderType OrderType) (string, error) {

	if quantity <= 0 {
		return "", a.reject(side, ErrInvalidQuantity,
			zap.String("symbol", symbol), zap.Int64("quantity", quantity))
	}

	var execPrice float64
	if price != nil {
		execPrice = *price
	} else {
		p, err := a.provider.LastPrice(ctx, symbol)
		if err != nil {
			return "", a.reject(side, fmt.Errorf("%w: %v", ErrPriceUnavailable, err),
				zap.String("symbol", symbol))
		}
		execPrice = p
	}
	if execPrice <= 0 {
		return "", a.reject(side, ErrInvalidPrice,
			zap.String("symbol", symbol), zap.Float64("price", execPrice))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := positionKey(exchange, symbol)

	if side == core.SideBuy {
		required := execPrice * float64(quantity)
		if required > a.cash {
			return "", a.reject(side, ErrInsufficientFunds,
				zap.String("symbol", symbol),
				zap.Float64("required", required),
				zap.Float64("available", a.cash))
		}
	}

	if side == core.SideSell {
		pos, ok := a.positions[key]
		if !ok {
			return "", a.reject(side, ErrNoPosition, zap.String("symbol", symbol))
		}
		if pos.Quantity < quantity {
			return "", a.reject(side, ErrInsufficientQuantity,
				zap.String("symbol", symbol),
				zap.Int64("available", pos.Quantity),
				zap.Int64("requested", quantity))
		}
	}

	order := &Order{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Exchange:  exchange,
		Side:      side,
		Quantity:  quantity,
		Price:     execPrice,
		Type:      orderType,
		Status:    OrderStatusPending,
		CreatedAt: time.Now(),
	}
	a.orders[order.ID] = order
	a.orderIDs = append(a.orderIDs, order.ID)

	if orderType == OrderTypeMarket {
		if err := a.executeLocked(order); err != nil {
			// Roll back so a rejected market order leaves no trace.
			delete(a.orders, order.ID)
			a.orderIDs = a.orderIDs[:len(a.orderIDs)-1]
			return "", err
		}
	}

	a.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("side", string(side)),
		zap.Int64("quantity", quantity),
		zap.String("symbol", symbol),
		zap.Float64("price", execPrice),
		zap.String("status", string(order.Status)))
	return order.ID, nil
}

// ExecuteOrder fills a pending limit order at its stored price. Buy
// funds and sell quantity are re-checked at execution time since the
// account may have changed while the order was pending.
func (a *Account) ExecuteOrder(orderID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	order, ok := a.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	if order.Status != OrderStatusPending {
		return ErrOrderNotPending
	}
	return a.executeLocked(order)
}

// executeLocked fills the order and applies its effects. Caller holds a.mu.
func (a *Account) executeLocked(order *Order) error {
	key := positionKey(order.Exchange, order.Symbol)

	if order.Side == core.SideBuy {
		required := order.Price * float64(order.Quantity)
		if required > a.cash {
			return a.reject(order.Side, ErrInsufficientFunds,
				zap.String("order_id", order.ID))
		}
	} else {
		pos, ok := a.positions[key]
		if !ok {
			return a.reject(order.Side, ErrNoPosition, zap.String("order_id", order.ID))
		}
		if pos.Quantity < order.Quantity {
			return a.reject(order.Side, ErrInsufficientQuantity,
				zap.String("order_id", order.ID))
		}
	}

	trade := Trade{
		ID:       uuid.NewString(),
		OrderID:  order.ID,
		Symbol:   order.Symbol,
		Exchange: order.Exchange,
		Side:     order.Side,
		Quantity: order.Quantity,
		Price:    order.Price,
		Time:     time.Now(),
	}
	a.trades = append(a.trades, trade)

	if order.Side == core.SideBuy {
		a.applyBuy(trade, key)
	} else {
		a.applySell(trade, key)
	}

	order.Status = OrderStatusExecuted

	if a.metrics != nil {
		a.metrics.RecordOrder(string(order.Side), "executed")
		a.metrics.SetLedgerState(a.cash, a.portfolioValueLocked(), len(a.positions))
	}

	a.log.Info("order executed",
		zap.String("order_id", order.ID),
		zap.String("trade_id", trade.ID),
		zap.String("side", string(trade.Side)),
		zap.Int64("quantity", trade.Quantity),
		zap.String("symbol", trade.Symbol),
		zap.Float64("price", trade.Price))
	return nil
}

// applyBuy debits cash and merges into the position at weighted
// average cost.
func (a *Account) applyBuy(trade Trade, key string) {
	cost := trade.Price * float64(trade.Quantity)
	a.cash -= cost

	pos, ok := a.positions[key]
	if !ok {
		a.positions[key] = &Position{
			Symbol:       trade.Symbol,
			Exchange:     trade.Exchange,
			Quantity:     trade.Quantity,
			AveragePrice: trade.Price,
			CurrentPrice: trade.Price,
			LastUpdate:   trade.Time,
		}
		return
	}

	totalQty := pos.Quantity + trade.Quantity
	totalCost := pos.AveragePrice*float64(pos.Quantity) + cost
	pos.Quantity = totalQty
	pos.AveragePrice = totalCost / float64(totalQty)
	pos.CurrentPrice = trade.Price
	pos.LastUpdate = trade.Time
}

// applySell credits cash and books realized P&L against the average
// cost. A fill with zero P&L counts as a losing round trip, matching
// the win-rate convention of the performance counters.
func (a *Account) applySell(trade Trade, key string) {
	revenue := trade.Price * float64(trade.Quantity)
	a.cash += revenue

	pos := a.positions[key]
	costBasis := pos.AveragePrice * float64(trade.Quantity)
	pnl := revenue - costBasis

	a.totalTrades++
	if pnl > 0 {
		a.winningTrades++
		a.totalProfit += pnl
	} else {
		a.losingTrades++
		a.totalLoss += -pnl
	}

	pos.Quantity -= trade.Quantity
	pos.CurrentPrice = trade.Price
	pos.LastUpdate = trade.Time
	if pos.Quantity <= 0 {
		delete(a.positions, key)
	}
}

// reject logs and counts an order rejection. Account state is never
// modified on the rejection path.
func (a *Account) reject(side core.Side, err error, fields ...zap.Field) error {
	a.log.Warn("order rejected", append(fields, zap.Error(err))...)
	if a.metrics != nil {
		a.metrics.RecordOrder(string(side), "rejected")
	}
	return err
}

// UpdatePositions re-marks all open positions at the provider's
// current quotes. Positions whose quote fails keep their last mark.
func (a *Account) UpdatePositions(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updatePositionsLocked(ctx)
}

func (a *Account) updatePositionsLocked(ctx context.Context) {
	for _, pos := range a.positions {
		price, err := a.provider.LastPrice(ctx, pos.Symbol)
		if err != nil || price <= 0 {
			a.log.Warn("quote unavailable, keeping last mark",
				zap.String("symbol", pos.Symbol), zap.Error(err))
			continue
		}
		pos.CurrentPrice = price
		pos.UnrealizedPnL = (price - pos.AveragePrice) * float64(pos.Quantity)
		pos.UnrealizedPnLPercent = pos.UnrealizedPnL / (pos.AveragePrice * float64(pos.Quantity)) * 100
		pos.LastUpdate = time.Now()
	}
}

// GetPositions returns all open positions marked at current quotes,
// sorted by position key for deterministic output.
func (a *Account) GetPositions(ctx context.Context) []Position {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updatePositionsLocked(ctx)

	keys := make([]string, 0, len(a.positions))
	for k := range a.positions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]Position, 0, len(keys))
	for _, k := range keys {
		result = append(result, *a.positions[k])
	}
	return result
}

// OrderHistory returns all orders in placement order.
func (a *Account) OrderHistory() []Order {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := make([]Order, 0, len(a.orderIDs))
	for _, id := range a.orderIDs {
		result = append(result, *a.orders[id])
	}
	return result
}

// GetOrder returns a single order by id.
func (a *Account) GetOrder(orderID string) (Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	order, ok := a.orders[orderID]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return *order, nil
}

// TradeHistory returns all executed fills in execution order.
func (a *Account) TradeHistory() []Trade {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := make([]Trade, len(a.trades))
	copy(result, a.trades)
	return result
}

// Cash returns the current cash balance.
func (a *Account) Cash() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cash
}

// PortfolioValue returns cash plus positions marked at current quotes.
func (a *Account) PortfolioValue(ctx context.Context) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updatePositionsLocked(ctx)
	return a.portfolioValueLocked()
}

func (a *Account) portfolioValueLocked() float64 {
	value := a.cash
	for _, pos := range a.positions {
		value += pos.CurrentPrice * float64(pos.Quantity)
	}
	return value
}

// PerformanceMetrics computes account performance at current quotes.
func (a *Account) PerformanceMetrics(ctx context.Context) PerformanceMetrics {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updatePositionsLocked(ctx)

	portfolioValue := a.portfolioValueLocked()
	totalReturn := portfolioValue - a.initialCapital

	m := PerformanceMetrics{
		InitialCapital: a.initialCapital,
		CurrentCapital: a.cash,
		PortfolioValue: portfolioValue,
		TotalReturn:    totalReturn,
		TotalTrades:    a.totalTrades,
		WinningTrades:  a.winningTrades,
		LosingTrades:   a.losingTrades,
		TotalProfit:    a.totalProfit,
		TotalLoss:      a.totalLoss,
	}
	if a.initialCapital > 0 {
		m.TotalReturnPercent = totalReturn / a.initialCapital * 100
	}
	if a.totalTrades > 0 {
		m.WinRatePercent = float64(a.winningTrades) / float64(a.totalTrades) * 100
	}
	if a.winningTrades > 0 {
		m.AvgProfit = a.totalProfit / float64(a.winningTrades)
	}
	if a.losingTrades > 0 {
		m.AvgLoss = a.totalLoss / float64(a.losingTrades)
	}
	return m
}

// Reset restores the account to its initial funded state, discarding
// all positions, orders, trades, and counters.
func (a *Account) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cash = a.initialCapital
	a.positions = make(map[string]*Position)
	a.orders = make(map[string]*Order)
	a.orderIDs = nil
	a.trades = nil
	a.totalTrades = 0
	a.winningTrades = 0
	a.losingTrades = 0
	a.totalProfit = 0
	a.totalLoss = 0

	if a.metrics != nil {
		a.metrics.SetLedgerState(a.cash, a.cash, 0)
	}
	a.log.Info("paper account reset")
}
