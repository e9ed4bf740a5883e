package ma_crossover

import (
	"testing"
	"time"

	"github.com/rmehta/tradesim/internal/core"
	"github.com/rmehta/tradesim/internal/strategy"
)

func TestMACrossover_ImplementsStrategy(t *testing.T) {
	var _ strategy.Strategy = (*MACrossover)(nil)
}

func TestMACrossover_Name(t *testing.T) {
	s := New(5, 10)
	if s.Name() != "ma_crossover" {
		t.Errorf("expected 'ma_crossover', got '%s'", s.Name())
	}
}

func makeBars(prices []float64) []core.Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, len(prices))
	for i, p := range prices {
		bars[i] = core.Bar{
			Symbol: "TEST",
			Time:   base.AddDate(0, 0, i),
			Open:   p, High: p, Low: p, Close: p,
			Volume: 1000,
		}
	}
	return bars
}

func TestMACrossover_NotEnoughData(t *testing.T) {
	s := New(20, 50)

	rows, err := s.GenerateSignals(makeBars(make([]float64, 30)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != nil {
		t.Errorf("expected nil rows for short history, got %d", len(rows))
	}
}

func TestMACrossover_EntryOnCross(t *testing.T) {
	s := New(2, 4)

	// Flat, then a sustained rally: the short MA crosses above the
	// long MA and stays there, producing exactly one entry.
	prices := []float64{100, 100, 100, 100, 100, 110, 120, 130, 140}
	rows, err := s.GenerateSignals(makeBars(prices))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != len(prices) {
		t.Fatalf("rows len = %d, want %d", len(rows), len(prices))
	}

	entries := 0
	for _, r := range rows {
		if r.Position == 1 {
			entries++
		}
	}
	if entries != 1 {
		t.Errorf("expected exactly one entry, got %d", entries)
	}

	last := rows[len(rows)-1]
	if last.Signal != core.SignalLong {
		t.Errorf("expected long stance at end of rally, got %d", last.Signal)
	}
}

func TestMACrossover_RowsAlignWithBars(t *testing.T) {
	s := New(2, 4)
	bars := makeBars([]float64{100, 101, 102, 103, 104, 105})

	rows, err := s.GenerateSignals(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range rows {
		if !rows[i].Time.Equal(bars[i].Time) {
			t.Errorf("row %d time %v != bar time %v", i, rows[i].Time, bars[i].Time)
		}
		if rows[i].Close != bars[i].Close {
			t.Errorf("row %d close %f != bar close %f", i, rows[i].Close, bars[i].Close)
		}
	}
}
