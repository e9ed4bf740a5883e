package macd

import (
	"testing"
	"time"

	"github.com/rmehta/tradesim/internal/core"
	"github.com/rmehta/tradesim/internal/strategy"
)

func TestMACD_ImplementsStrategy(t *testing.T) {
	var _ strategy.Strategy = (*MACD)(nil)
}

func TestMACD_NotEnoughData(t *testing.T) {
	s := New(12, 26, 9)

	bars := make([]core.Bar, 20)
	rows, err := s.GenerateSignals(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != nil {
		t.Error("expected nil rows for short history")
	}
}

func TestMACD_LongInUptrend(t *testing.T) {
	s := New(3, 6, 3)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, 40)
	for i := range bars {
		// Flat first half, rising second half
		p := 100.0
		if i >= 20 {
			p = 100 + float64(i-20)*3
		}
		bars[i] = core.Bar{Symbol: "TEST", Time: base.AddDate(0, 0, i), Close: p, High: p, Low: p, Open: p, Volume: 1}
	}

	rows, err := s.GenerateSignals(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rows[len(rows)-1].Signal != core.SignalLong {
		t.Errorf("expected long stance in uptrend, got %d", rows[len(rows)-1].Signal)
	}

	entries := 0
	for _, r := range rows {
		if r.Position == 1 {
			entries++
		}
	}
	if entries == 0 {
		t.Error("expected at least one entry trigger")
	}
}
