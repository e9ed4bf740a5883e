package indicator

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}
	sma := SMA(prices, 3)

	if len(sma) != len(prices) {
		t.Fatalf("expected aligned output, got len %d", len(sma))
	}

	// Partial windows at the start
	if !almostEqual(sma[0], 1, 1e-9) || !almostEqual(sma[1], 1.5, 1e-9) {
		t.Errorf("partial window values wrong: %v", sma[:2])
	}

	if !almostEqual(sma[2], 2, 1e-9) {
		t.Errorf("sma[2] = %f, want 2", sma[2])
	}
	if !almostEqual(sma[4], 4, 1e-9) {
		t.Errorf("sma[4] = %f, want 4", sma[4])
	}
}

func TestEMA_ConstantSeries(t *testing.T) {
	prices := []float64{100, 100, 100, 100}
	ema := EMA(prices, 3)

	for i, v := range ema {
		if !almostEqual(v, 100, 1e-9) {
			t.Errorf("ema[%d] = %f, want 100", i, v)
		}
	}
}

func TestRSI_AllGains(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	rsi := RSI(prices, 3)

	// Monotonically rising prices have no losses
	if rsi[len(rsi)-1] != 100 {
		t.Errorf("RSI of rising series = %f, want 100", rsi[len(rsi)-1])
	}
}

func TestRSI_Range(t *testing.T) {
	prices := []float64{44, 44.3, 44.1, 43.6, 44.3, 44.8, 45.1, 45.4, 45.1, 46.3, 46.2, 46.0, 46.5, 46.2, 46.0}
	rsi := RSI(prices, 14)

	last := rsi[len(rsi)-1]
	if last <= 0 || last >= 100 {
		t.Errorf("RSI out of range: %f", last)
	}
}

func TestRSI_InsufficientData(t *testing.T) {
	rsi := RSI([]float64{1, 2}, 14)
	for _, v := range rsi {
		if v != 0 {
			t.Errorf("expected zero warmup values, got %f", v)
		}
	}
}

func TestMACD_ConstantSeries(t *testing.T) {
	prices := make([]float64, 50)
	for i := range prices {
		prices[i] = 100
	}

	macd, signal := MACD(prices, 12, 26, 9)

	if !almostEqual(macd[49], 0, 1e-9) {
		t.Errorf("MACD of constant series = %f, want 0", macd[49])
	}
	if !almostEqual(signal[49], 0, 1e-9) {
		t.Errorf("signal of constant series = %f, want 0", signal[49])
	}
}

func TestBollinger_ConstantSeries(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 50
	}

	middle, upper, lower := Bollinger(prices, 20, 2)

	if !almostEqual(middle[29], 50, 1e-9) {
		t.Errorf("middle = %f, want 50", middle[29])
	}
	// Zero variance collapses the bands onto the middle
	if !almostEqual(upper[29], 50, 1e-9) || !almostEqual(lower[29], 50, 1e-9) {
		t.Errorf("bands should collapse: upper=%f lower=%f", upper[29], lower[29])
	}
}

func TestBollinger_BandsBracketMiddle(t *testing.T) {
	prices := []float64{10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18, 17, 19, 18, 20, 19, 21, 20, 22}
	middle, upper, lower := Bollinger(prices, 20, 2)

	for i := range prices {
		if upper[i] < middle[i] || lower[i] > middle[i] {
			t.Errorf("bands inverted at %d: %f %f %f", i, lower[i], middle[i], upper[i])
		}
	}
}

func TestATR_Positive(t *testing.T) {
	high := []float64{12, 13, 14, 13, 15, 16, 15, 17, 16, 18, 17, 19}
	low := []float64{10, 11, 12, 11, 13, 14, 13, 15, 14, 16, 15, 17}
	close := []float64{11, 12, 13, 12, 14, 15, 14, 16, 15, 17, 16, 18}

	atr := ATR(high, low, close, 10)

	last := atr[len(atr)-1]
	if last <= 0 {
		t.Errorf("ATR should be positive, got %f", last)
	}
}

func TestATR_Empty(t *testing.T) {
	atr := ATR(nil, nil, nil, 10)
	if len(atr) != 0 {
		t.Errorf("expected empty result, got %v", atr)
	}
}
