// Package indicator provides the technical analysis primitives the
// built-in strategies are composed from. All functions return slices
// aligned to the input: result[i] corresponds to prices[i]. Values
// before the warmup period are computed from the partial window, so
// callers that need fully-formed values must gate on the period.
package indicator

import "math"

// SMA calculates a Simple Moving Average. Positions before the window
// fills are the mean of the available prefix.
func SMA(prices []float64, period int) []float64 {
	result := make([]float64, len(prices))

	var sum float64
	for i, p := range prices {
		sum += p
		if i >= period {
			sum -= prices[i-period]
			result[i] = sum / float64(period)
		} else {
			result[i] = sum / float64(i+1)
		}
	}

	return result
}

// EMA calculates an Exponential Moving Average seeded with the first price.
func EMA(prices []float64, period int) []float64 {
	result := make([]float64, len(prices))
	if len(prices) == 0 {
		return result
	}

	multiplier := 2.0 / float64(period+1)
	ema := prices[0]
	result[0] = ema

	for i := 1; i < len(prices); i++ {
		ema = (prices[i]-ema)*multiplier + ema
		result[i] = ema
	}

	return result
}

// RSI calculates the Relative Strength Index using Wilder smoothing.
// The first `period` values are zero and must not be interpreted.
func RSI(prices []float64, period int) []float64 {
	result := make([]float64, len(prices))
	if len(prices) < period+1 {
		return result
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	result[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		result[i] = rsiValue(avgGain, avgLoss)
	}

	return result
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// MACD calculates the Moving Average Convergence Divergence line and
// its signal line.
func MACD(prices []float64, fast, slow, signalPeriod int) (macd, signal []float64) {
	fastEMA := EMA(prices, fast)
	slowEMA := EMA(prices, slow)

	macd = make([]float64, len(prices))
	for i := range prices {
		macd[i] = fastEMA[i] - slowEMA[i]
	}

	signal = EMA(macd, signalPeriod)
	return macd, signal
}

// Bollinger calculates Bollinger Bands: the middle SMA plus upper and
// lower bands numStd standard deviations away.
func Bollinger(prices []float64, period int, numStd float64) (middle, upper, lower []float64) {
	middle = SMA(prices, period)
	upper = make([]float64, len(prices))
	lower = make([]float64, len(prices))

	for i := range prices {
		start := i - period + 1
		if start < 0 {
			start = 0
		}
		window := prices[start : i+1]

		var variance float64
		for _, p := range window {
			d := p - middle[i]
			variance += d * d
		}
		std := math.Sqrt(variance / float64(len(window)))

		upper[i] = middle[i] + numStd*std
		lower[i] = middle[i] - numStd*std
	}

	return middle, upper, lower
}

// ATR calculates the Average True Range using Wilder smoothing.
func ATR(high, low, close []float64, period int) []float64 {
	result := make([]float64, len(close))
	if len(close) == 0 {
		return result
	}

	tr := make([]float64, len(close))
	tr[0] = high[0] - low[0]
	for i := 1; i < len(close); i++ {
		hl := high[i] - low[i]
		hc := math.Abs(high[i] - close[i-1])
		lc := math.Abs(low[i] - close[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	if len(close) < period {
		copy(result, tr)
		return result
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += tr[i]
		result[i] = sum / float64(i+1)
	}

	atr := sum / float64(period)
	for i := period; i < len(close); i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		result[i] = atr
	}

	return result
}
