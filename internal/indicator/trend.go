package indicator

import "github.com/shopspring/decimal"

// SMA computes the simple moving average of the trailing period values.
// Indices before period-1 stay null.
func SMA(values []decimal.Decimal, period int) Series {
	out := NewSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	windowSum := decimal.Zero
	periodDec := decimal.NewFromInt(int64(period))
	for i, v := range values {
		windowSum = windowSum.Add(v)
		if i >= period {
			windowSum = windowSum.Sub(values[i-period])
		}
		if i >= period-1 {
			out.set(i, windowSum.Div(periodDec))
		}
	}
	return out
}

// EMA computes the exponential moving average with multiplier 2/(period+1).
// The value at index period-1 is seeded with the SMA of the first period
// values; everything before stays null.
func EMA(values []decimal.Decimal, period int) Series {
	out := NewSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	seed := decimal.Zero
	for _, v := range values[:period] {
		seed = seed.Add(v)
	}
	seed = seed.Div(decimal.NewFromInt(int64(period)))
	out.set(period-1, seed)

	mult := decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(period + 1)))
	prev := seed
	for i := period; i < len(values); i++ {
		ema := values[i].Sub(prev).Mul(mult).Add(prev)
		out.set(i, ema)
		prev = ema
	}
	return out
}

// MACD computes the MACD line (fast EMA - slow EMA), its signal line (an EMA
// over the valid portion of the MACD line) and the histogram (line - signal).
// All three series are aligned to the full input length.
func MACD(values []decimal.Decimal, fast, slow, signal int) (line, signalLine, histogram Series) {
	line = NewSeries(len(values))
	signalLine = NewSeries(len(values))
	histogram = NewSeries(len(values))

	emaFast := EMA(values, fast)
	emaSlow := EMA(values, slow)

	var valid []decimal.Decimal
	lineStart := -1
	for i := range values {
		if emaFast.Valid(i) && emaSlow.Valid(i) {
			v := emaFast.At(i).Sub(emaSlow.At(i))
			line.set(i, v)
			valid = append(valid, v)
			if lineStart < 0 {
				lineStart = i
			}
		}
	}
	if lineStart < 0 {
		return line, signalLine, histogram
	}

	signalCompact := EMA(valid, signal)
	for j := range signalCompact {
		if !signalCompact.Valid(j) {
			continue
		}
		i := lineStart + j
		signalLine.set(i, signalCompact.At(j))
		histogram.set(i, line.At(i).Sub(signalCompact.At(j)))
	}
	return line, signalLine, histogram
}
