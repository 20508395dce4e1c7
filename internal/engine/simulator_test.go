package engine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algo-backtest/internal/dto"
	"algo-backtest/internal/indicator"
	"algo-backtest/internal/model"
	"algo-backtest/pkg/logger"
)

func dailyCandles(closes ...float64) []model.Candle {
	out := make([]model.Candle, len(closes))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		price := decimal.NewFromFloat(c)
		out[i] = model.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Open:      price,
			High:      price.Add(decimal.NewFromInt(1)),
			Low:       price.Sub(decimal.NewFromInt(1)),
			Close:     price,
			Volume:    decimal.NewFromInt(1000),
		}
	}
	return out
}

func validSeries(values ...float64) indicator.Series {
	out := indicator.NewSeries(len(values))
	for i, v := range values {
		out[i] = decimal.NullDecimal{Decimal: decimal.NewFromFloat(v), Valid: true}
	}
	return out
}

func newTestSimulator(positionSize, commission, slippage float64) *Simulator {
	return NewSimulator(
		logger.NewNop(),
		decimal.NewFromInt(10000),
		decimal.NewFromFloat(positionSize),
		decimal.NewFromFloat(commission),
		decimal.NewFromFloat(slippage),
	)
}

func TestSimulator_CrossoverRoundTrip(t *testing.T) {
	candles := dailyCandles(100, 105, 110, 108, 103)
	fast := validSeries(95, 101, 105, 107, 104)
	slow := validSeries(100, 100, 102, 105, 106)

	sim := newTestSimulator(0.95, 0, 0)
	trades, curve, err := sim.Run(context.Background(), candles, fast, slow)

	require.NoError(t, err)
	require.Len(t, trades, 1)
	require.Len(t, curve, len(candles))

	trade := trades[0]
	assert.Equal(t, dto.SideLong, trade.Side)
	assert.Equal(t, dto.ExitReasonSignal, trade.ExitReason)
	assert.True(t, trade.EntryPrice.Equal(decimal.NewFromInt(105)))
	assert.True(t, trade.ExitPrice.Equal(decimal.NewFromInt(103)))
	assert.Equal(t, candles[1].Timestamp, trade.EntryTime)
	assert.Equal(t, candles[4].Timestamp, trade.ExitTime)
	assert.True(t, trade.PnL.IsNegative())
	assert.True(t, trade.PnLPercent.IsNegative())
	assert.Equal(t, int64(3*24*60), trade.DurationMinutes)

	// Before the entry the account is pure cash.
	assert.True(t, curve[0].Equity.Equal(decimal.NewFromInt(10000)))
	assert.True(t, curve[0].PositionValue.IsZero())
	// While long the position is marked at the close.
	assert.True(t, curve[2].PositionValue.IsPositive())
}

func TestSimulator_EquityInvariants(t *testing.T) {
	candles := dailyCandles(100, 105, 110, 108, 103, 99, 104, 108)
	fast := validSeries(95, 101, 105, 107, 104, 98, 103, 107)
	slow := validSeries(100, 100, 102, 105, 106, 101, 100, 102)

	sim := newTestSimulator(0.95, 0.001, 0.0005)
	_, curve, err := sim.Run(context.Background(), candles, fast, slow)
	require.NoError(t, err)
	require.Len(t, curve, len(candles))

	prevPeak := decimal.Zero
	for i, point := range curve {
		assert.True(t, point.Equity.Equal(point.Cash.Add(point.PositionValue)), "index %d", i)
		assert.True(t, point.Peak.GreaterThanOrEqual(prevPeak), "index %d", i)
		assert.True(t, point.Drawdown.LessThanOrEqual(decimal.Zero), "index %d", i)
		prevPeak = point.Peak
	}
}

func TestSimulator_ForceCloseAtEnd(t *testing.T) {
	candles := dailyCandles(100, 105, 110)
	fast := validSeries(101, 106, 111)
	slow := validSeries(100, 100, 100)

	sim := newTestSimulator(0.95, 0, 0)
	trades, curve, err := sim.Run(context.Background(), candles, fast, slow)

	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, dto.ExitReasonBacktestEnd, trades[0].ExitReason)
	assert.True(t, trades[0].ExitPrice.Equal(decimal.NewFromInt(110)))

	final := curve[len(curve)-1]
	assert.True(t, final.PositionValue.IsZero())
	assert.True(t, final.Equity.Equal(final.Cash))
}

func TestSimulator_EqualValuesNoTransition(t *testing.T) {
	candles := dailyCandles(100, 100, 100, 100)
	flat := validSeries(100, 100, 100, 100)

	sim := newTestSimulator(0.95, 0, 0)
	trades, curve, err := sim.Run(context.Background(), candles, flat, flat)

	require.NoError(t, err)
	assert.Empty(t, trades)
	for _, point := range curve {
		assert.True(t, point.Equity.Equal(decimal.NewFromInt(10000)))
	}
}

func TestSimulator_NonCrossingPairZeroTrades(t *testing.T) {
	closes := make([]float64, 50)
	fastValues := make([]float64, 50)
	slowValues := make([]float64, 50)
	for i := range closes {
		closes[i] = 100
		fastValues[i] = 99
		slowValues[i] = 100
	}

	sim := newTestSimulator(0.95, 0.001, 0)
	trades, curve, err := sim.Run(context.Background(), dailyCandles(closes...), validSeries(fastValues...), validSeries(slowValues...))

	require.NoError(t, err)
	assert.Empty(t, trades)
	require.Len(t, curve, 50)

	m := CalculateMetrics(trades, curve, decimal.NewFromInt(10000))
	assert.Equal(t, 0, m.TotalTrades)
	assert.Zero(t, m.WinRate)
	assert.Zero(t, m.ProfitFactor)
}

func TestSimulator_WarmupProducesNoSignals(t *testing.T) {
	candles := dailyCandles(100, 105, 110, 108, 103)
	fast := indicator.NewSeries(len(candles))
	slow := indicator.NewSeries(len(candles))

	sim := newTestSimulator(0.95, 0, 0)
	trades, curve, err := sim.Run(context.Background(), candles, fast, slow)

	require.NoError(t, err)
	assert.Empty(t, trades)
	require.Len(t, curve, len(candles))
	for _, point := range curve {
		assert.True(t, point.Equity.Equal(decimal.NewFromInt(10000)))
		assert.True(t, point.Drawdown.IsZero())
	}
}

func TestSimulator_InsufficientCashSkipsEntry(t *testing.T) {
	candles := dailyCandles(100, 105, 110)
	fast := validSeries(101, 106, 111)
	slow := validSeries(100, 100, 100)

	// Full position sizing plus a commission can never be afforded.
	sim := newTestSimulator(1.0, 0.001, 0)
	trades, curve, err := sim.Run(context.Background(), candles, fast, slow)

	require.NoError(t, err)
	assert.Empty(t, trades)
	for _, point := range curve {
		assert.True(t, point.Equity.Equal(decimal.NewFromInt(10000)))
	}
}

func TestSimulator_SlippageWorsensFills(t *testing.T) {
	candles := dailyCandles(100, 105, 110, 100)
	fast := validSeries(101, 106, 111, 95)
	slow := validSeries(100, 100, 100, 100)

	sim := newTestSimulator(0.95, 0, 0.01)
	trades, _, err := sim.Run(context.Background(), candles, fast, slow)

	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.True(t, trades[0].EntryPrice.Equal(decimal.NewFromFloat(101))) // 100 * 1.01
	assert.True(t, trades[0].ExitPrice.Equal(decimal.NewFromInt(99)))    // 100 * 0.99
}

func TestSimulator_EmptyCandles(t *testing.T) {
	sim := newTestSimulator(0.95, 0, 0)
	_, _, err := sim.Run(context.Background(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoCandles)
}

func TestSimulator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := newTestSimulator(0.95, 0, 0)
	_, _, err := sim.Run(ctx, dailyCandles(100, 105), validSeries(1, 2), validSeries(0, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_Deterministic(t *testing.T) {
	candles := dailyCandles(100, 105, 110, 108, 103, 99, 104, 108, 112, 107)
	fast := validSeries(95, 101, 105, 107, 104, 98, 103, 107, 110, 106)
	slow := validSeries(100, 100, 102, 105, 106, 101, 100, 102, 104, 108)

	sim := newTestSimulator(0.95, 0.001, 0.0005)
	trades1, curve1, err1 := sim.Run(context.Background(), candles, fast, slow)
	trades2, curve2, err2 := sim.Run(context.Background(), candles, fast, slow)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, trades1, trades2)
	assert.Equal(t, curve1, curve2)
}
