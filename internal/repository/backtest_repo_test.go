package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algo-backtest/internal/dto"
)

func TestBacktestRecordRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	original := &dto.BacktestResults{
		BacktestID: "9f1c9e2a-0000-0000-0000-000000000001",
		Status:     dto.StatusCompleted,
		Config: dto.BacktestConfig{
			Symbol:         "BTC/USD",
			AssetClass:     "crypto",
			Timeframe:      "day",
			StartDate:      "2024-01-01",
			EndDate:        "2024-04-01",
			InitialCapital: decimal.NewFromInt(10000),
			PositionSize:   decimal.NewFromFloat(0.95),
			Commission:     decimal.NewFromFloat(0.001),
			FastPeriod:     20,
			SlowPeriod:     50,
		},
		StartedAt:       now,
		CompletedAt:     now.Add(300 * time.Millisecond),
		ExecutionTimeMS: 300,
		Metrics: &dto.BacktestMetrics{
			TotalReturn: 12.5,
			SharpeRatio: 1.8,
			TotalTrades: 4,
			AvgWin:      decimal.NewFromInt(120),
			AvgLoss:     decimal.NewFromInt(60),
		},
		Trades: []dto.TradeResult{
			{
				Side:       dto.SideLong,
				EntryPrice: decimal.NewFromInt(100),
				ExitPrice:  decimal.NewFromInt(110),
				PnL:        decimal.NewFromInt(95),
				ExitReason: dto.ExitReasonSignal,
			},
		},
		EquityCurve: []dto.EquityPoint{
			{Timestamp: now, Equity: decimal.NewFromInt(10000), Peak: decimal.NewFromInt(10000)},
		},
		Metadata: map[string]any{"strategy": "sma_crossover"},
	}

	record, err := toRecord(original)
	require.NoError(t, err)

	assert.Equal(t, original.BacktestID, record.ID)
	assert.Equal(t, "BTC/USD", record.Symbol)
	assert.Equal(t, "crypto", record.AssetClass)
	assert.Equal(t, 12.5, record.TotalReturn)
	assert.Equal(t, 1.8, record.SharpeRatio)
	assert.Equal(t, 4, record.TotalTrades)

	restored, err := fromRecord(record)
	require.NoError(t, err)

	assert.Equal(t, original.BacktestID, restored.BacktestID)
	assert.Equal(t, original.Status, restored.Status)
	assert.Equal(t, original.Config.Symbol, restored.Config.Symbol)
	assert.True(t, restored.Config.InitialCapital.Equal(original.Config.InitialCapital))
	require.NotNil(t, restored.Metrics)
	assert.Equal(t, original.Metrics.TotalReturn, restored.Metrics.TotalReturn)
	assert.True(t, restored.Metrics.AvgWin.Equal(original.Metrics.AvgWin))
	require.Len(t, restored.Trades, 1)
	assert.True(t, restored.Trades[0].PnL.Equal(original.Trades[0].PnL))
	require.Len(t, restored.EquityCurve, 1)
	assert.True(t, restored.EquityCurve[0].Equity.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, "sma_crossover", restored.Metadata["strategy"])
}

func TestBacktestRecordWithoutMetrics(t *testing.T) {
	original := &dto.BacktestResults{
		BacktestID: "9f1c9e2a-0000-0000-0000-000000000002",
		Status:     dto.StatusCompleted,
		Config:     dto.BacktestConfig{Symbol: "ES", Timeframe: "day"},
	}

	record, err := toRecord(original)
	require.NoError(t, err)
	assert.Empty(t, record.Metrics)
	assert.Zero(t, record.TotalReturn)

	restored, err := fromRecord(record)
	require.NoError(t, err)
	assert.Nil(t, restored.Metrics)
	assert.Empty(t, restored.Trades)
}
