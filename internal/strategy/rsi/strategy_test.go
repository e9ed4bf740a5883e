package rsi

import (
	"testing"
	"time"

	"github.com/rmehta/tradesim/internal/core"
	"github.com/rmehta/tradesim/internal/strategy"
)

func TestRSI_ImplementsStrategy(t *testing.T) {
	var _ strategy.Strategy = (*RSI)(nil)
}

func makeBars(prices []float64) []core.Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, len(prices))
	for i, p := range prices {
		bars[i] = core.Bar{Symbol: "TEST", Time: base.AddDate(0, 0, i), Open: p, High: p, Low: p, Close: p, Volume: 1}
	}
	return bars
}

func TestRSI_NotEnoughData(t *testing.T) {
	s := New(14, 30, 70)
	rows, err := s.GenerateSignals(makeBars(make([]float64, 5)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != nil {
		t.Error("expected nil rows for short history")
	}
}

func TestRSI_ShortAfterRally(t *testing.T) {
	s := New(5, 30, 70)

	// A relentless rally pins RSI at 100, well above overbought.
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100 + float64(i)*5
	}

	rows, err := s.GenerateSignals(makeBars(prices))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := rows[len(rows)-1]
	if last.Signal != core.SignalShort {
		t.Errorf("expected short stance after rally, got %d", last.Signal)
	}
}

func TestRSI_LongAfterSelloff(t *testing.T) {
	s := New(5, 30, 70)

	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 200 - float64(i)*5
	}

	rows, err := s.GenerateSignals(makeBars(prices))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := rows[len(rows)-1]
	if last.Signal != core.SignalLong {
		t.Errorf("expected long stance after selloff, got %d", last.Signal)
	}
}
