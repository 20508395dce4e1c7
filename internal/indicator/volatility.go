package indicator

import (
	"math"

	"algo-backtest/internal/model"

	"github.com/shopspring/decimal"
)

// Bollinger computes the middle band as an SMA and the upper/lower bands at
// stdDev population standard deviations from it, all over the same trailing
// window.
func Bollinger(values []decimal.Decimal, period int, stdDev float64) (upper, middle, lower Series) {
	middle = SMA(values, period)
	upper = NewSeries(len(values))
	lower = NewSeries(len(values))

	for i := period - 1; i < len(values); i++ {
		if !middle.Valid(i) {
			continue
		}

		mean := middle.At(i)
		variance := 0.0
		for _, v := range values[i-period+1 : i+1] {
			diff, _ := v.Sub(mean).Float64()
			variance += diff * diff
		}
		offset := decimal.NewFromFloat(stdDev * math.Sqrt(variance/float64(period)))
		upper.set(i, mean.Add(offset))
		lower.set(i, mean.Sub(offset))
	}
	return upper, middle, lower
}

// ATR computes the average true range with Wilder's smoothing. The true range
// at index 0 is undefined (no previous close), so the seed at index period is
// the simple mean of the first period true ranges.
func ATR(candles []model.Candle, period int) Series {
	out := NewSeries(len(candles))
	if period <= 0 || len(candles) < period+1 {
		return out
	}

	trueRange := func(i int) decimal.Decimal {
		highLow := candles[i].High.Sub(candles[i].Low)
		highClose := candles[i].High.Sub(candles[i-1].Close).Abs()
		lowClose := candles[i].Low.Sub(candles[i-1].Close).Abs()
		tr := highLow
		if highClose.GreaterThan(tr) {
			tr = highClose
		}
		if lowClose.GreaterThan(tr) {
			tr = lowClose
		}
		return tr
	}

	periodDec := decimal.NewFromInt(int64(period))
	prevWeight := decimal.NewFromInt(int64(period - 1))

	seed := decimal.Zero
	for i := 1; i <= period; i++ {
		seed = seed.Add(trueRange(i))
	}
	atr := seed.Div(periodDec)
	out.set(period, atr)

	for i := period + 1; i < len(candles); i++ {
		atr = atr.Mul(prevWeight).Add(trueRange(i)).Div(periodDec)
		out.set(i, atr)
	}
	return out
}
