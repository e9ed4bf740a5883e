package core

import "time"

// Exchange identifies the venue a symbol trades on.
type Exchange string

const (
	ExchangeNSE Exchange = "NSE"
	ExchangeBSE Exchange = "BSE"
)

// Bar represents one OHLCV observation for a fixed time interval.
// Bars are immutable once produced and ordered by Time ascending.
type Bar struct {
	Symbol string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// IsValid checks if the bar has required fields.
func (b Bar) IsValid() bool {
	return b.Symbol != "" && b.Close > 0 && !b.Time.IsZero()
}

// Signal stances. A strategy's directional opinion at a given bar.
const (
	SignalShort = -1
	SignalFlat  = 0
	SignalLong  = 1
)

// SignalRow carries a strategy's stance for one bar. Rows are parallel
// to the bar series they were generated from: same length, same order,
// same timestamps.
//
// Position is the first difference of Signal between consecutive rows.
// A nonzero Position is the only entry/exit trigger the simulator
// reacts to: +1 enter-long, -1 exit-long.
type SignalRow struct {
	Time     time.Time
	Close    float64
	Signal   int
	Position int
}

// Side is the direction of an order or trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// CloseReason records why a simulated trade was closed.
type CloseReason string

const (
	CloseReasonTarget      CloseReason = "target"
	CloseReasonStopLoss    CloseReason = "stop_loss"
	CloseReasonSignal      CloseReason = "signal"
	CloseReasonEndOfPeriod CloseReason = "end_of_period"
)
