package indicator

import "math"

// epsilon guards the RSI ratio against a zero average-loss denominator.
const epsilon = 1e-8

// Levels holds simple pivot-like support and resistance levels derived from a
// current value and a volatility percentage.
type Levels struct {
	Support1    float64
	Support2    float64
	Resistance1 float64
	Resistance2 float64
}

// RSI computes the relative strength index over a trailing window of at most
// period deltas. The output has the same length as the input; early positions
// use a shorter window (minimum one delta), and position 0, which has no
// delta, reads 0. Every value lies in [0, 100].
func RSI(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	if len(prices) == 0 {
		return out
	}

	deltas := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		deltas[i] = prices[i] - prices[i-1]
	}

	for i := 1; i < len(prices); i++ {
		// The first price has no delta; the window never includes it.
		start := i - period + 1
		if start < 1 {
			start = 1
		}
		var up, down float64
		n := i - start + 1
		for j := start; j <= i; j++ {
			if deltas[j] > 0 {
				up += deltas[j]
			} else {
				down += -deltas[j]
			}
		}
		meanUp := up / float64(n)
		meanDown := down / float64(n)
		rs := meanUp / (meanDown + epsilon)
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// MovingAverage computes a trailing mean over at most period samples; early
// positions use a shorter window (minimum one sample).
func MovingAverage(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	var sum float64
	for i := range prices {
		sum += prices[i]
		if i >= period {
			sum -= prices[i-period]
		}
		n := i + 1
		if n > period {
			n = period
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Bollinger computes trailing mean +/- width standard deviations over at most
// period samples. It returns the upper and lower bands, each the same length
// as the input.
func Bollinger(prices []float64, period int, width float64) (upper, lower []float64) {
	upper = make([]float64, len(prices))
	lower = make([]float64, len(prices))
	mean := MovingAverage(prices, period)
	for i := range prices {
		start := i - period + 1
		if start < 0 {
			start = 0
		}
		var variance float64
		n := i - start + 1
		for j := start; j <= i; j++ {
			d := prices[j] - mean[i]
			variance += d * d
		}
		std := math.Sqrt(variance / float64(n))
		upper[i] = mean[i] + width*std
		lower[i] = mean[i] - width*std
	}
	return upper, lower
}

// SupportResistance derives two support and two resistance levels as percent
// steps around the current value.
func SupportResistance(currentValue, volatility float64) Levels {
	return Levels{
		Support1:    currentValue * (1 - volatility),
		Support2:    currentValue * (1 - volatility*2),
		Resistance1: currentValue * (1 + volatility),
		Resistance2: currentValue * (1 + volatility*2),
	}
}
