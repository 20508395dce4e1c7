package indicator

import (
	"algo-backtest/internal/model"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	fifty   = decimal.NewFromInt(50)
)

// RSI computes the relative strength index with Wilder's smoothing. The seed
// averages at index period are simple means of the first period deltas;
// later values are smoothed with weight (period-1)/period. When the average
// loss is zero the output is pinned to 100, or 50 when the average gain is
// also zero (no price movement at all).
func RSI(values []decimal.Decimal, period int) Series {
	out := NewSeries(len(values))
	if period <= 0 || len(values) < period+1 {
		return out
	}

	periodDec := decimal.NewFromInt(int64(period))
	prevWeight := decimal.NewFromInt(int64(period - 1))

	gainSum, lossSum := decimal.Zero, decimal.Zero
	for i := 1; i <= period; i++ {
		delta := values[i].Sub(values[i-1])
		if delta.IsPositive() {
			gainSum = gainSum.Add(delta)
		} else {
			lossSum = lossSum.Add(delta.Neg())
		}
	}
	avgGain := gainSum.Div(periodDec)
	avgLoss := lossSum.Div(periodDec)
	out.set(period, rsiValue(avgGain, avgLoss))

	for i := period + 1; i < len(values); i++ {
		delta := values[i].Sub(values[i-1])
		gain, loss := decimal.Zero, decimal.Zero
		if delta.IsPositive() {
			gain = delta
		} else {
			loss = delta.Neg()
		}
		avgGain = avgGain.Mul(prevWeight).Add(gain).Div(periodDec)
		avgLoss = avgLoss.Mul(prevWeight).Add(loss).Div(periodDec)
		out.set(i, rsiValue(avgGain, avgLoss))
	}
	return out
}

func rsiValue(avgGain, avgLoss decimal.Decimal) decimal.Decimal {
	if avgLoss.IsZero() {
		if avgGain.IsZero() {
			return fifty
		}
		return hundred
	}

	rs := avgGain.Div(avgLoss)
	rsi := hundred.Sub(hundred.Div(decimal.NewFromInt(1).Add(rs)))
	if rsi.IsNegative() {
		return decimal.Zero
	}
	if rsi.GreaterThan(hundred) {
		return hundred
	}
	return rsi
}

// Stochastic computes %K over the trailing periodK window, optionally
// smoothed with an SMA of smoothK, and %D as an SMA of %K over periodD.
// A zero-range window (highest high equals lowest low) yields the neutral
// value 50 rather than a division by zero.
func Stochastic(candles []model.Candle, periodK, smoothK, periodD int) (k, d Series) {
	k = NewSeries(len(candles))
	d = NewSeries(len(candles))
	if periodK <= 0 || len(candles) < periodK {
		return k, d
	}

	rawK := NewSeries(len(candles))
	for i := periodK - 1; i < len(candles); i++ {
		highest := candles[i-periodK+1].High
		lowest := candles[i-periodK+1].Low
		for _, c := range candles[i-periodK+2 : i+1] {
			if c.High.GreaterThan(highest) {
				highest = c.High
			}
			if c.Low.LessThan(lowest) {
				lowest = c.Low
			}
		}

		priceRange := highest.Sub(lowest)
		if priceRange.IsZero() {
			rawK.set(i, fifty)
			continue
		}
		rawK.set(i, candles[i].Close.Sub(lowest).Div(priceRange).Mul(hundred))
	}

	if smoothK > 1 {
		k = smoothValidPortion(rawK, smoothK)
	} else {
		k = rawK
	}
	d = smoothValidPortion(k, periodD)
	return k, d
}

// smoothValidPortion applies an SMA over the contiguous valid tail of a
// series and re-aligns the result to the full length.
func smoothValidPortion(s Series, period int) Series {
	out := NewSeries(len(s))
	start := s.FirstValid()
	if start < 0 {
		return out
	}

	compact := make([]decimal.Decimal, 0, len(s)-start)
	for i := start; i < len(s); i++ {
		compact = append(compact, s.At(i))
	}

	smoothed := SMA(compact, period)
	for j := range smoothed {
		if smoothed.Valid(j) {
			out.set(start+j, smoothed.At(j))
		}
	}
	return out
}
